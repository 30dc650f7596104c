package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tokex-network/tokex-daemon/internal/core/domain"
	"github.com/tokex-network/tokex-daemon/pkg/mathutil"
)

const (
	offerOwner = "alice"
)

func TestNewOffer(t *testing.T) {
	t.Parallel()

	o, err := domain.NewOffer(1, 1, domain.OfferSideSell, offerOwner, 10, 2)
	require.NoError(t, err)
	require.NotNil(t, o)
	require.Equal(t, uint64(1), o.ID)
	require.Equal(t, uint64(1), o.ExchangeID)
	require.Equal(t, offerOwner, o.Owner)
	require.Equal(t, uint64(10), o.RemainingAmount)
	require.Equal(t, uint64(2), o.Price)
	require.True(t, o.IsSell())
	require.False(t, o.IsBuy())
	require.False(t, o.IsFilled())
}

func TestFailingNewOffer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		side          int
		owner         string
		amount        uint64
		price         uint64
		expectedError error
	}{
		{
			name:          "invalid_side",
			side:          42,
			owner:         offerOwner,
			amount:        10,
			price:         2,
			expectedError: domain.ErrOfferSideMismatch,
		},
		{
			name:          "missing_owner",
			side:          domain.OfferSideSell,
			owner:         "",
			amount:        10,
			price:         2,
			expectedError: domain.ErrInvalidOwner,
		},
		{
			name:          "zero_amount",
			side:          domain.OfferSideSell,
			owner:         offerOwner,
			amount:        0,
			price:         2,
			expectedError: domain.ErrInvalidAmount,
		},
		{
			name:          "zero_price",
			side:          domain.OfferSideBuy,
			owner:         offerOwner,
			amount:        10,
			price:         0,
			expectedError: domain.ErrInvalidPrice,
		},
		{
			name:          "buy_escrow_overflow",
			side:          domain.OfferSideBuy,
			owner:         offerOwner,
			amount:        math.MaxUint64,
			price:         2,
			expectedError: mathutil.ErrOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewOffer(1, 1, tt.side, tt.owner, tt.amount, tt.price)
			require.EqualError(t, err, tt.expectedError.Error())
		})
	}
}

func TestOfferEscrowAmount(t *testing.T) {
	t.Parallel()

	sell, err := domain.NewOffer(1, 1, domain.OfferSideSell, offerOwner, 10, 2)
	require.NoError(t, err)
	escrow, err := sell.EscrowAmount()
	require.NoError(t, err)
	require.Equal(t, uint64(10), escrow)

	buy, err := domain.NewOffer(2, 1, domain.OfferSideBuy, offerOwner, 5, 3)
	require.NoError(t, err)
	escrow, err = buy.EscrowAmount()
	require.NoError(t, err)
	require.Equal(t, uint64(15), escrow)
}

func TestOfferPayment(t *testing.T) {
	t.Parallel()

	o, err := domain.NewOffer(1, 1, domain.OfferSideSell, offerOwner, 10, 3)
	require.NoError(t, err)

	payment, err := o.Payment(4)
	require.NoError(t, err)
	require.Equal(t, uint64(12), payment)

	sellAtMax, err := domain.NewOffer(
		2, 1, domain.OfferSideSell, offerOwner, 10, math.MaxUint64,
	)
	require.NoError(t, err)
	_, err = sellAtMax.Payment(2)
	require.EqualError(t, err, mathutil.ErrOverflow.Error())
}

func TestOfferFill(t *testing.T) {
	t.Parallel()

	o, err := domain.NewOffer(1, 1, domain.OfferSideSell, offerOwner, 10, 2)
	require.NoError(t, err)

	err = o.Fill(4)
	require.NoError(t, err)
	require.Equal(t, uint64(6), o.RemainingAmount)
	require.False(t, o.IsFilled())

	err = o.Fill(6)
	require.NoError(t, err)
	require.Zero(t, o.RemainingAmount)
	require.True(t, o.IsFilled())
}

func TestFailingOfferFill(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		amount        uint64
		expectedError error
	}{
		{
			name:          "zero_amount",
			amount:        0,
			expectedError: domain.ErrInvalidAmount,
		},
		{
			name:          "amount_exceeds_remaining",
			amount:        11,
			expectedError: domain.ErrInsufficientOfferAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := domain.NewOffer(1, 1, domain.OfferSideSell, offerOwner, 10, 2)
			require.NoError(t, err)

			err = o.Fill(tt.amount)
			require.EqualError(t, err, tt.expectedError.Error())
			require.Equal(t, uint64(10), o.RemainingAmount)
		})
	}
}
