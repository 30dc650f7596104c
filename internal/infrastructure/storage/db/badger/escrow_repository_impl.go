package dbbadger

import (
	"context"
	"errors"

	"github.com/timshannon/badgerhold/v4"
	"github.com/tokex-network/tokex-daemon/internal/core/domain"
)

type escrowRepositoryImpl struct {
	store *badgerhold.Store
}

func newEscrowRepositoryImpl(store *badgerhold.Store) domain.EscrowRepository {
	return escrowRepositoryImpl{store: store}
}

func (r escrowRepositoryImpl) AddEntry(
	_ context.Context, entry *domain.EscrowEntry,
) error {
	return r.store.Insert(entry.OfferID, *entry)
}

func (r escrowRepositoryImpl) GetEntryForOffer(
	_ context.Context, offerID uint64,
) (*domain.EscrowEntry, error) {
	return r.getEntry(offerID)
}

func (r escrowRepositoryImpl) UpdateEntry(
	_ context.Context,
	offerID uint64,
	updateFn func(e *domain.EscrowEntry) (*domain.EscrowEntry, error),
) error {
	currentEntry, err := r.getEntry(offerID)
	if err != nil {
		return err
	}

	updatedEntry, err := updateFn(currentEntry)
	if err != nil {
		return err
	}

	return r.store.Update(offerID, *updatedEntry)
}

func (r escrowRepositoryImpl) DeleteEntry(
	_ context.Context, offerID uint64,
) error {
	if err := r.store.Delete(offerID, domain.EscrowEntry{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return domain.ErrEscrowEntryNotFound
		}
		return err
	}
	return nil
}

func (r escrowRepositoryImpl) GetEntriesForToken(
	_ context.Context, token domain.TokenRef,
) ([]domain.EscrowEntry, error) {
	var entries []domain.EscrowEntry
	query := badgerhold.Where("Token.AccountID").Eq(token.AccountID).SortBy("OfferID")
	if err := r.store.Find(&entries, query); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r escrowRepositoryImpl) getEntry(offerID uint64) (*domain.EscrowEntry, error) {
	var entry domain.EscrowEntry
	if err := r.store.Get(offerID, &entry); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrEscrowEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}
