package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tokex-network/tokex-daemon/internal/core/domain"
)

const (
	baseToken  = "base-token"
	quoteToken = "quote-token"
)

func TestNewExchange(t *testing.T) {
	t.Parallel()

	base, err := domain.NewTokenRef(baseToken, domain.TokenStandardFungible)
	require.NoError(t, err)
	quote, err := domain.NewTokenRef(quoteToken, domain.TokenStandardFungible)
	require.NoError(t, err)

	e, err := domain.NewExchange(1, offerOwner, base, quote, 10, 2)
	require.NoError(t, err)
	require.NotNil(t, e)
	require.Equal(t, uint64(1), e.ID)
	require.Equal(t, offerOwner, e.Creator)
	require.Equal(t, baseToken, e.BaseToken.AccountID)
	require.Equal(t, quoteToken, e.QuoteToken.AccountID)
	require.Equal(t, uint64(10), e.InitialAmount)
	require.Equal(t, uint64(2), e.ReferencePrice)
}

func TestFailingNewExchange(t *testing.T) {
	t.Parallel()

	base, _ := domain.NewTokenRef(baseToken, domain.TokenStandardFungible)
	quote, _ := domain.NewTokenRef(quoteToken, domain.TokenStandardFungible)

	tests := []struct {
		name          string
		creator       string
		amount        uint64
		price         uint64
		expectedError error
	}{
		{
			name:          "missing_creator",
			creator:       "",
			amount:        10,
			price:         2,
			expectedError: domain.ErrInvalidOwner,
		},
		{
			name:          "zero_amount",
			creator:       offerOwner,
			amount:        0,
			price:         2,
			expectedError: domain.ErrInvalidAmount,
		},
		{
			name:          "zero_price",
			creator:       offerOwner,
			amount:        10,
			price:         0,
			expectedError: domain.ErrInvalidPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewExchange(
				1, tt.creator, base, quote, tt.amount, tt.price,
			)
			require.EqualError(t, err, tt.expectedError.Error())
		})
	}
}

func TestFailingNewTokenRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		accountID     string
		standard      int
		expectedError error
	}{
		{
			name:          "missing_account_id",
			accountID:     "",
			standard:      domain.TokenStandardFungible,
			expectedError: domain.ErrTokenInvalidAccountID,
		},
		{
			name:          "unknown_standard",
			accountID:     baseToken,
			standard:      42,
			expectedError: domain.ErrTokenInvalidStandard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewTokenRef(tt.accountID, tt.standard)
			require.EqualError(t, err, tt.expectedError.Error())
		})
	}
}
