package dbbadger

import (
	"context"

	"github.com/dgraph-io/badger/v3"
	"github.com/tokex-network/tokex-daemon/internal/core/domain"
)

// identifierRepositoryImpl allocates ids from badger sequences, which are
// durable across restarts and never hand out the same value twice.
type identifierRepositoryImpl struct {
	exchangeIds *badger.Sequence
	offerIds    *badger.Sequence
}

func newIdentifierRepositoryImpl(
	exchangeIds, offerIds *badger.Sequence,
) domain.IdentifierRepository {
	return identifierRepositoryImpl{
		exchangeIds: exchangeIds,
		offerIds:    offerIds,
	}
}

func (r identifierRepositoryImpl) NextExchangeID(_ context.Context) (uint64, error) {
	next, err := r.exchangeIds.Next()
	if err != nil {
		return 0, err
	}
	// sequences start from 0, published ids start from 1
	return next + 1, nil
}

func (r identifierRepositoryImpl) NextOfferID(_ context.Context) (uint64, error) {
	next, err := r.offerIds.Next()
	if err != nil {
		return 0, err
	}
	return next + 1, nil
}
