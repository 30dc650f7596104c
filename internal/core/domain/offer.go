package domain

import (
	"github.com/tokex-network/tokex-daemon/pkg/mathutil"
)

const (
	// OfferSideSell is an offer selling base token for quote token.
	OfferSideSell = iota
	// OfferSideBuy is an offer buying base token with quote token.
	OfferSideBuy
)

// OfferSideString returns the human readable name of an offer side.
func OfferSideString(side int) string {
	if side == OfferSideBuy {
		return "buy"
	}
	return "sell"
}

// Offer defines a resting order of an exchange, backed by funds held in
// engine custody until it's either fully filled or cancelled.
type Offer struct {
	// ID uniquely identifies the offer, ids are never reused.
	ID uint64
	// ExchangeID of the exchange the offer belongs to.
	ExchangeID uint64
	// Side is either sell or buy.
	Side int
	// Owner is the account that placed the offer and receives payments or
	// refunds for it.
	Owner string
	// RemainingAmount of base token still open for fills. Always > 0 while
	// the offer rests, reaching 0 removes the offer.
	RemainingAmount uint64
	// Price in quote units per base unit, quoted by the offer itself.
	Price uint64
}

// NewOffer returns a new resting offer with the given remaining amount.
func NewOffer(
	id, exchangeID uint64, side int, owner string, amount, price uint64,
) (*Offer, error) {
	if side != OfferSideSell && side != OfferSideBuy {
		return nil, ErrOfferSideMismatch
	}
	if owner == "" {
		return nil, ErrInvalidOwner
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}
	// a buy offer must be coverable by a quote escrow that fits an uint64
	if side == OfferSideBuy {
		if _, err := mathutil.CheckedMul(amount, price); err != nil {
			return nil, err
		}
	}

	return &Offer{
		ID:              id,
		ExchangeID:      exchangeID,
		Side:            side,
		Owner:           owner,
		RemainingAmount: amount,
		Price:           price,
	}, nil
}

// IsSell returns whether the offer sells base token.
func (o *Offer) IsSell() bool {
	return o.Side == OfferSideSell
}

// IsBuy returns whether the offer buys base token.
func (o *Offer) IsBuy() bool {
	return o.Side == OfferSideBuy
}

// EscrowAmount returns how much the engine holds in custody for the offer:
// the remaining amount of base token for a sell offer, remaining * price of
// quote token for a buy offer.
func (o *Offer) EscrowAmount() (uint64, error) {
	if o.IsBuy() {
		return mathutil.CheckedMul(o.RemainingAmount, o.Price)
	}
	return o.RemainingAmount, nil
}

// Payment returns the quote token value of the given amount of base token at
// the offer's price.
func (o *Offer) Payment(amount uint64) (uint64, error) {
	return mathutil.CheckedMul(amount, o.Price)
}

// Fill reduces the remaining amount of the offer by the given amount.
func (o *Offer) Fill(amount uint64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > o.RemainingAmount {
		return ErrInsufficientOfferAmount
	}

	o.RemainingAmount -= amount
	return nil
}

// IsFilled returns whether the offer has no remaining amount left and must
// leave the book.
func (o *Offer) IsFilled() bool {
	return o.RemainingAmount == 0
}
