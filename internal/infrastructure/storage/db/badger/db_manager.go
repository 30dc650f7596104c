package dbbadger

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"
	"github.com/tokex-network/tokex-daemon/internal/core/domain"
	"github.com/tokex-network/tokex-daemon/internal/core/ports"
)

const sequenceBandwidth = 100

// repoManager holds the badgerhold store and the id sequences backing all
// the repositories of the engine.
type repoManager struct {
	store *badgerhold.Store

	exchangeIds *badger.Sequence
	offerIds    *badger.Sequence

	exchangeRepository   domain.ExchangeRepository
	offerRepository      domain.OfferRepository
	escrowRepository     domain.EscrowRepository
	identifierRepository domain.IdentifierRepository
}

// NewRepoManager opens (or creates if not exists) the badger store on disk.
// It expects a base data dir and an optional logger.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	store, err := createDb(baseDbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	exchangeIds, err := store.Badger().GetSequence([]byte("exchangeid"), sequenceBandwidth)
	if err != nil {
		return nil, fmt.Errorf("opening exchange id sequence: %w", err)
	}
	offerIds, err := store.Badger().GetSequence([]byte("offerid"), sequenceBandwidth)
	if err != nil {
		return nil, fmt.Errorf("opening offer id sequence: %w", err)
	}

	manager := &repoManager{
		store:       store,
		exchangeIds: exchangeIds,
		offerIds:    offerIds,
	}
	manager.exchangeRepository = newExchangeRepositoryImpl(store)
	manager.offerRepository = newOfferRepositoryImpl(store)
	manager.escrowRepository = newEscrowRepositoryImpl(store)
	manager.identifierRepository = newIdentifierRepositoryImpl(exchangeIds, offerIds)

	return manager, nil
}

func (d *repoManager) ExchangeRepository() domain.ExchangeRepository {
	return d.exchangeRepository
}

func (d *repoManager) OfferRepository() domain.OfferRepository {
	return d.offerRepository
}

func (d *repoManager) EscrowRepository() domain.EscrowRepository {
	return d.escrowRepository
}

func (d *repoManager) IdentifierRepository() domain.IdentifierRepository {
	return d.identifierRepository
}

func (d *repoManager) Close() error {
	if err := d.exchangeIds.Release(); err != nil {
		return err
	}
	if err := d.offerIds.Release(); err != nil {
		return err
	}
	return d.store.Close()
}

// JSONEncode is a custom JSON based encoder for badger
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)

	err := en.Encode(value)
	if err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger
func JSONDecode(data []byte, value interface{}) error {
	var buff bytes.Buffer
	de := json.NewDecoder(&buff)

	_, err := buff.Write(data)
	if err != nil {
		return err
	}

	return de.Decode(value)
}

func createDb(dbDir string, logger badger.Logger) (db *badgerhold.Store, err error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	db, err = badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: sequenceBandwidth,
		Options:          opts,
	})

	return
}
