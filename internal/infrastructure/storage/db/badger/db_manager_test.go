package dbbadger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tokex-network/tokex-daemon/internal/core/domain"
	"github.com/tokex-network/tokex-daemon/internal/core/ports"
	dbbadger "github.com/tokex-network/tokex-daemon/internal/infrastructure/storage/db/badger"
)

var (
	ctx      = context.Background()
	baseRef  = domain.TokenRef{AccountID: "base-token", Standard: domain.TokenStandardFungible}
	quoteRef = domain.TokenRef{AccountID: "quote-token", Standard: domain.TokenStandardFungible}
)

func newTestRepoManager(t *testing.T) ports.RepoManager {
	t.Helper()

	repoManager, err := dbbadger.NewRepoManager(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { repoManager.Close() })
	return repoManager
}

func TestIdentifierRepository(t *testing.T) {
	repoManager := newTestRepoManager(t)
	repo := repoManager.IdentifierRepository()

	first, err := repo.NextExchangeID(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1), first)

	second, err := repo.NextExchangeID(ctx)
	require.NoError(t, err)
	require.Greater(t, second, first)

	offerID, err := repo.NextOfferID(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1), offerID)
}

func TestExchangeRepository(t *testing.T) {
	repo := newTestRepoManager(t).ExchangeRepository()

	_, err := repo.GetExchangeByID(ctx, 1)
	require.EqualError(t, err, domain.ErrExchangeNotFound.Error())

	for i, creator := range []string{"alice", "bob"} {
		exchange, err := domain.NewExchange(
			uint64(i+1), creator, baseRef, quoteRef, 10, 2,
		)
		require.NoError(t, err)
		err = repo.AddExchange(ctx, exchange)
		require.NoError(t, err)
	}

	stored, err := repo.GetExchangeByID(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, "bob", stored.Creator)
	require.Equal(t, baseRef, stored.BaseToken)

	all, err := repo.GetAllExchanges(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, uint64(1), all[0].ID)
	require.Equal(t, uint64(2), all[1].ID)
}

func TestOfferRepository(t *testing.T) {
	repo := newTestRepoManager(t).OfferRepository()

	_, err := repo.GetOfferByID(ctx, 1)
	require.EqualError(t, err, domain.ErrOfferNotFound.Error())

	for i, amount := range []uint64{10, 5, 3} {
		offer, err := domain.NewOffer(
			uint64(i+1), 1, domain.OfferSideSell, "alice", amount, 2,
		)
		require.NoError(t, err)
		err = repo.AddOffer(ctx, offer)
		require.NoError(t, err)
	}

	// ids are monotonic so id order matches insertion order
	offers, err := repo.GetOffersForExchange(ctx, 1)
	require.NoError(t, err)
	require.Len(t, offers, 3)
	require.Equal(t, uint64(10), offers[0].RemainingAmount)
	require.Equal(t, uint64(3), offers[2].RemainingAmount)

	err = repo.UpdateOffer(ctx, 1, func(o *domain.Offer) (*domain.Offer, error) {
		o.RemainingAmount = 7
		return o, nil
	})
	require.NoError(t, err)

	offer, err := repo.GetOfferByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(7), offer.RemainingAmount)

	err = repo.DeleteOffer(ctx, 2)
	require.NoError(t, err)
	err = repo.DeleteOffer(ctx, 2)
	require.EqualError(t, err, domain.ErrOfferNotFound.Error())

	offers, err = repo.GetOffersForExchange(ctx, 1)
	require.NoError(t, err)
	require.Len(t, offers, 2)
}

func TestEscrowRepository(t *testing.T) {
	repo := newTestRepoManager(t).EscrowRepository()

	_, err := repo.GetEntryForOffer(ctx, 1)
	require.EqualError(t, err, domain.ErrEscrowEntryNotFound.Error())

	err = repo.AddEntry(ctx, &domain.EscrowEntry{OfferID: 1, Token: baseRef, Amount: 10})
	require.NoError(t, err)
	err = repo.AddEntry(ctx, &domain.EscrowEntry{OfferID: 2, Token: quoteRef, Amount: 15})
	require.NoError(t, err)
	err = repo.AddEntry(ctx, &domain.EscrowEntry{OfferID: 3, Token: baseRef, Amount: 3})
	require.NoError(t, err)

	entries, err := repo.GetEntriesForToken(ctx, baseRef)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, uint64(1), entries[0].OfferID)
	require.Equal(t, uint64(3), entries[1].OfferID)

	err = repo.UpdateEntry(ctx, 1, func(e *domain.EscrowEntry) (*domain.EscrowEntry, error) {
		e.Amount -= 4
		return e, nil
	})
	require.NoError(t, err)

	entry, err := repo.GetEntryForOffer(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(6), entry.Amount)

	err = repo.DeleteEntry(ctx, 1)
	require.NoError(t, err)
	err = repo.DeleteEntry(ctx, 1)
	require.EqualError(t, err, domain.ErrEscrowEntryNotFound.Error())
}
