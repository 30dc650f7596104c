package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/tokex-network/tokex-daemon/internal/core/domain"
)

// ExchangeRepositoryImpl represents an in memory storage for exchanges.
type ExchangeRepositoryImpl struct {
	exchanges map[uint64]domain.Exchange

	lock *sync.RWMutex
}

// NewExchangeRepositoryImpl returns a new empty ExchangeRepositoryImpl.
func NewExchangeRepositoryImpl() *ExchangeRepositoryImpl {
	return &ExchangeRepositoryImpl{
		exchanges: map[uint64]domain.Exchange{},
		lock:      &sync.RWMutex{},
	}
}

func (r *ExchangeRepositoryImpl) AddExchange(
	_ context.Context, exchange *domain.Exchange,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.exchanges[exchange.ID] = *exchange
	return nil
}

func (r *ExchangeRepositoryImpl) GetExchangeByID(
	_ context.Context, id uint64,
) (*domain.Exchange, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	exchange, ok := r.exchanges[id]
	if !ok {
		return nil, domain.ErrExchangeNotFound
	}
	return &exchange, nil
}

func (r *ExchangeRepositoryImpl) GetAllExchanges(
	_ context.Context,
) ([]domain.Exchange, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	ids := make([]uint64, 0, len(r.exchanges))
	for id := range r.exchanges {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	exchanges := make([]domain.Exchange, 0, len(ids))
	for _, id := range ids {
		exchanges = append(exchanges, r.exchanges[id])
	}
	return exchanges, nil
}
