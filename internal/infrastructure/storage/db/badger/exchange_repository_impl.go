package dbbadger

import (
	"context"
	"errors"

	"github.com/timshannon/badgerhold/v4"
	"github.com/tokex-network/tokex-daemon/internal/core/domain"
)

type exchangeRepositoryImpl struct {
	store *badgerhold.Store
}

func newExchangeRepositoryImpl(store *badgerhold.Store) domain.ExchangeRepository {
	return exchangeRepositoryImpl{store: store}
}

func (r exchangeRepositoryImpl) AddExchange(
	_ context.Context, exchange *domain.Exchange,
) error {
	return r.store.Insert(exchange.ID, *exchange)
}

func (r exchangeRepositoryImpl) GetExchangeByID(
	_ context.Context, id uint64,
) (*domain.Exchange, error) {
	var exchange domain.Exchange
	if err := r.store.Get(id, &exchange); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrExchangeNotFound
		}
		return nil, err
	}
	return &exchange, nil
}

func (r exchangeRepositoryImpl) GetAllExchanges(
	_ context.Context,
) ([]domain.Exchange, error) {
	var exchanges []domain.Exchange
	query := &badgerhold.Query{}
	if err := r.store.Find(&exchanges, query.SortBy("ID")); err != nil {
		return nil, err
	}
	return exchanges, nil
}
