package domain

import "context"

// EscrowRepository is the abstraction for any kind of database intended to
// persist the custodial bookkeeping of the engine.
type EscrowRepository interface {
	// AddEntry adds the escrow entry of a newly placed offer.
	AddEntry(ctx context.Context, entry *EscrowEntry) error
	// GetEntryForOffer returns the escrow entry of the given offer, or
	// ErrEscrowEntryNotFound.
	GetEntryForOffer(ctx context.Context, offerID uint64) (*EscrowEntry, error)
	// UpdateEntry commits multiple changes to the same entry in a
	// transactional way through the update closure.
	UpdateEntry(
		ctx context.Context,
		offerID uint64, updateFn func(e *EscrowEntry) (*EscrowEntry, error),
	) error
	// DeleteEntry removes the escrow entry of an offer leaving the book.
	DeleteEntry(ctx context.Context, offerID uint64) error
	// GetEntriesForToken returns all entries holding the given token.
	GetEntriesForToken(ctx context.Context, token TokenRef) ([]EscrowEntry, error)
}
