package inmemory

import (
	"github.com/tokex-network/tokex-daemon/internal/core/domain"
	"github.com/tokex-network/tokex-daemon/internal/core/ports"
)

// RepoManager is a volatile implementation of ports.RepoManager, mostly
// useful for testing and for running the daemon in standalone mode.
type RepoManager struct {
	exchangeRepository   domain.ExchangeRepository
	offerRepository      domain.OfferRepository
	escrowRepository     domain.EscrowRepository
	identifierRepository domain.IdentifierRepository
}

// NewRepoManager returns a repo manager backed by in-memory maps.
func NewRepoManager() ports.RepoManager {
	return &RepoManager{
		exchangeRepository:   NewExchangeRepositoryImpl(),
		offerRepository:      NewOfferRepositoryImpl(),
		escrowRepository:     NewEscrowRepositoryImpl(),
		identifierRepository: NewIdentifierRepositoryImpl(),
	}
}

func (d *RepoManager) ExchangeRepository() domain.ExchangeRepository {
	return d.exchangeRepository
}

func (d *RepoManager) OfferRepository() domain.OfferRepository {
	return d.offerRepository
}

func (d *RepoManager) EscrowRepository() domain.EscrowRepository {
	return d.escrowRepository
}

func (d *RepoManager) IdentifierRepository() domain.IdentifierRepository {
	return d.identifierRepository
}

func (d *RepoManager) Close() error { return nil }
