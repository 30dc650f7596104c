package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/tokex-network/tokex-daemon/internal/core/domain"
)

// EscrowRepositoryImpl represents an in memory storage for the escrow ledger.
type EscrowRepositoryImpl struct {
	entries map[uint64]domain.EscrowEntry

	lock *sync.RWMutex
}

// NewEscrowRepositoryImpl returns a new empty EscrowRepositoryImpl.
func NewEscrowRepositoryImpl() *EscrowRepositoryImpl {
	return &EscrowRepositoryImpl{
		entries: map[uint64]domain.EscrowEntry{},
		lock:    &sync.RWMutex{},
	}
}

func (r *EscrowRepositoryImpl) AddEntry(
	_ context.Context, entry *domain.EscrowEntry,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.entries[entry.OfferID] = *entry
	return nil
}

func (r *EscrowRepositoryImpl) GetEntryForOffer(
	_ context.Context, offerID uint64,
) (*domain.EscrowEntry, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	entry, ok := r.entries[offerID]
	if !ok {
		return nil, domain.ErrEscrowEntryNotFound
	}
	return &entry, nil
}

func (r *EscrowRepositoryImpl) UpdateEntry(
	_ context.Context,
	offerID uint64, updateFn func(e *domain.EscrowEntry) (*domain.EscrowEntry, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	currentEntry, ok := r.entries[offerID]
	if !ok {
		return domain.ErrEscrowEntryNotFound
	}

	updatedEntry, err := updateFn(&currentEntry)
	if err != nil {
		return err
	}

	r.entries[offerID] = *updatedEntry
	return nil
}

func (r *EscrowRepositoryImpl) DeleteEntry(
	_ context.Context, offerID uint64,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.entries[offerID]; !ok {
		return domain.ErrEscrowEntryNotFound
	}

	delete(r.entries, offerID)
	return nil
}

func (r *EscrowRepositoryImpl) GetEntriesForToken(
	_ context.Context, token domain.TokenRef,
) ([]domain.EscrowEntry, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	entries := make([]domain.EscrowEntry, 0)
	for _, entry := range r.entries {
		if entry.Token.AccountID == token.AccountID {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].OfferID < entries[j].OfferID
	})
	return entries, nil
}
