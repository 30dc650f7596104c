package inmemory

import (
	"context"
	"sync"
)

// IdentifierRepositoryImpl allocates monotonically increasing ids from in
// memory counters.
type IdentifierRepositoryImpl struct {
	nextExchangeID uint64
	nextOfferID    uint64

	lock *sync.Mutex
}

// NewIdentifierRepositoryImpl returns a new allocator starting from 1.
func NewIdentifierRepositoryImpl() *IdentifierRepositoryImpl {
	return &IdentifierRepositoryImpl{
		nextExchangeID: 1,
		nextOfferID:    1,
		lock:           &sync.Mutex{},
	}
}

func (r *IdentifierRepositoryImpl) NextExchangeID(_ context.Context) (uint64, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	id := r.nextExchangeID
	r.nextExchangeID++
	return id, nil
}

func (r *IdentifierRepositoryImpl) NextOfferID(_ context.Context) (uint64, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	id := r.nextOfferID
	r.nextOfferID++
	return id, nil
}
