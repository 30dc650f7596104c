package domain

import "context"

// IdentifierRepository issues globally unique, monotonically increasing
// exchange and offer ids. An issued id is never reused, not even after a
// restart of the daemon.
type IdentifierRepository interface {
	// NextExchangeID allocates the next exchange id.
	NextExchangeID(ctx context.Context) (uint64, error)
	// NextOfferID allocates the next offer id.
	NextOfferID(ctx context.Context) (uint64, error)
}
