package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/tokex-network/tokex-daemon/internal/core/domain"
)

// OfferRepositoryImpl represents an in memory storage for the offer book.
type OfferRepositoryImpl struct {
	offers             map[uint64]domain.Offer
	offerIdsByExchange map[uint64][]uint64

	lock *sync.RWMutex
}

// NewOfferRepositoryImpl returns a new empty OfferRepositoryImpl.
func NewOfferRepositoryImpl() *OfferRepositoryImpl {
	return &OfferRepositoryImpl{
		offers:             map[uint64]domain.Offer{},
		offerIdsByExchange: map[uint64][]uint64{},
		lock:               &sync.RWMutex{},
	}
}

func (r *OfferRepositoryImpl) AddOffer(
	_ context.Context, offer *domain.Offer,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.offers[offer.ID] = *offer

	// ids are monotonic, so keeping the per-exchange list sorted by id
	// preserves insertion order even when a deleted offer is stored again
	ids := r.offerIdsByExchange[offer.ExchangeID]
	i := sort.Search(len(ids), func(n int) bool { return ids[n] >= offer.ID })
	if i < len(ids) && ids[i] == offer.ID {
		return nil
	}
	ids = append(ids, 0)
	copy(ids[i+1:], ids[i:])
	ids[i] = offer.ID
	r.offerIdsByExchange[offer.ExchangeID] = ids
	return nil
}

func (r *OfferRepositoryImpl) GetOfferByID(
	_ context.Context, id uint64,
) (*domain.Offer, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	offer, ok := r.offers[id]
	if !ok {
		return nil, domain.ErrOfferNotFound
	}
	return &offer, nil
}

func (r *OfferRepositoryImpl) GetOffersForExchange(
	_ context.Context, exchangeID uint64,
) ([]domain.Offer, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	ids := r.offerIdsByExchange[exchangeID]
	offers := make([]domain.Offer, 0, len(ids))
	for _, id := range ids {
		if offer, ok := r.offers[id]; ok {
			offers = append(offers, offer)
		}
	}
	return offers, nil
}

func (r *OfferRepositoryImpl) UpdateOffer(
	_ context.Context,
	id uint64, updateFn func(o *domain.Offer) (*domain.Offer, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	currentOffer, ok := r.offers[id]
	if !ok {
		return domain.ErrOfferNotFound
	}

	updatedOffer, err := updateFn(&currentOffer)
	if err != nil {
		return err
	}

	r.offers[id] = *updatedOffer
	return nil
}

func (r *OfferRepositoryImpl) DeleteOffer(_ context.Context, id uint64) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	offer, ok := r.offers[id]
	if !ok {
		return domain.ErrOfferNotFound
	}

	delete(r.offers, id)

	ids := r.offerIdsByExchange[offer.ExchangeID]
	for i, offerID := range ids {
		if offerID == id {
			r.offerIdsByExchange[offer.ExchangeID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(r.offerIdsByExchange[offer.ExchangeID]) == 0 {
		delete(r.offerIdsByExchange, offer.ExchangeID)
	}
	return nil
}
