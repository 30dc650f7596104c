package ports

import "github.com/tokex-network/tokex-daemon/internal/core/domain"

// RepoManager gives access to all the repositories of the engine backed by
// the same underlying store.
type RepoManager interface {
	// ExchangeRepository returns the repository of the exchange registry.
	ExchangeRepository() domain.ExchangeRepository
	// OfferRepository returns the repository of the offer book.
	OfferRepository() domain.OfferRepository
	// EscrowRepository returns the repository of the escrow ledger.
	EscrowRepository() domain.EscrowRepository
	// IdentifierRepository returns the id allocator.
	IdentifierRepository() domain.IdentifierRepository
	// Close should be used to gracefully close the connection with the store.
	Close() error
}
