package domain

import "context"

// ExchangeRepository is the abstraction for any kind of database intended to
// persist Exchanges.
type ExchangeRepository interface {
	// AddExchange adds a new exchange to the repository.
	AddExchange(ctx context.Context, exchange *Exchange) error
	// GetExchangeByID returns the exchange with the given id, or
	// ErrExchangeNotFound.
	GetExchangeByID(ctx context.Context, id uint64) (*Exchange, error)
	// GetAllExchanges returns all exchanges sorted by ascending id.
	GetAllExchanges(ctx context.Context) ([]Exchange, error)
}
