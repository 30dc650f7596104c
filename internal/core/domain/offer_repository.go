package domain

import "context"

// OfferRepository is the abstraction for any kind of database intended to
// persist the resting offers of the exchanges.
type OfferRepository interface {
	// AddOffer adds a new offer to the repository.
	AddOffer(ctx context.Context, offer *Offer) error
	// GetOfferByID returns the offer with the given id, or ErrOfferNotFound.
	// Removed offers resolve to ErrOfferNotFound, never to a stale record.
	GetOfferByID(ctx context.Context, id uint64) (*Offer, error)
	// GetOffersForExchange returns the active offers of an exchange in
	// insertion order.
	GetOffersForExchange(ctx context.Context, exchangeID uint64) ([]Offer, error)
	// UpdateOffer commits multiple changes to the same offer in a
	// transactional way through the update closure.
	UpdateOffer(
		ctx context.Context,
		id uint64, updateFn func(o *Offer) (*Offer, error),
	) error
	// DeleteOffer removes an offer from the repository.
	DeleteOffer(ctx context.Context, id uint64) error
}
