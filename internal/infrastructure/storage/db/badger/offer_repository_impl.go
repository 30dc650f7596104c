package dbbadger

import (
	"context"
	"errors"

	"github.com/timshannon/badgerhold/v4"
	"github.com/tokex-network/tokex-daemon/internal/core/domain"
)

type offerRepositoryImpl struct {
	store *badgerhold.Store
}

func newOfferRepositoryImpl(store *badgerhold.Store) domain.OfferRepository {
	return offerRepositoryImpl{store: store}
}

func (r offerRepositoryImpl) AddOffer(
	_ context.Context, offer *domain.Offer,
) error {
	return r.store.Insert(offer.ID, *offer)
}

func (r offerRepositoryImpl) GetOfferByID(
	_ context.Context, id uint64,
) (*domain.Offer, error) {
	return r.getOffer(id)
}

func (r offerRepositoryImpl) GetOffersForExchange(
	_ context.Context, exchangeID uint64,
) ([]domain.Offer, error) {
	var offers []domain.Offer
	// ids are monotonic, sorting by id preserves insertion order
	query := badgerhold.Where("ExchangeID").Eq(exchangeID).SortBy("ID")
	if err := r.store.Find(&offers, query); err != nil {
		return nil, err
	}
	return offers, nil
}

func (r offerRepositoryImpl) UpdateOffer(
	_ context.Context,
	id uint64, updateFn func(o *domain.Offer) (*domain.Offer, error),
) error {
	currentOffer, err := r.getOffer(id)
	if err != nil {
		return err
	}

	updatedOffer, err := updateFn(currentOffer)
	if err != nil {
		return err
	}

	return r.store.Update(id, *updatedOffer)
}

func (r offerRepositoryImpl) DeleteOffer(_ context.Context, id uint64) error {
	if err := r.store.Delete(id, domain.Offer{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return domain.ErrOfferNotFound
		}
		return err
	}
	return nil
}

func (r offerRepositoryImpl) getOffer(id uint64) (*domain.Offer, error) {
	var offer domain.Offer
	if err := r.store.Get(id, &offer); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrOfferNotFound
		}
		return nil, err
	}
	return &offer, nil
}
