package application

import (
	"github.com/tokex-network/tokex-daemon/internal/core/domain"
)

// Topics of the domain events published by the engine.
const (
	ExchangeCreatedTopic = "exchange.created"
	OfferPlacedTopic     = "offer.placed"
	OfferCanceledTopic   = "offer.canceled"
	OfferFilledTopic     = "offer.filled"
)

// TokenInfo is the external representation of a token reference.
type TokenInfo struct {
	AccountID string `json:"account_id"`
	Standard  string `json:"standard"`
}

// ExchangeInfo is the external representation of an exchange.
type ExchangeInfo struct {
	ID             uint64    `json:"id"`
	Creator        string    `json:"creator"`
	BaseToken      TokenInfo `json:"base_token"`
	QuoteToken     TokenInfo `json:"quote_token"`
	InitialAmount  uint64    `json:"initial_amount"`
	ReferencePrice uint64    `json:"reference_price"`
}

// OfferInfo is the external representation of a resting offer.
type OfferInfo struct {
	ID              uint64 `json:"id"`
	ExchangeID      uint64 `json:"exchange_id"`
	Side            string `json:"side"`
	Owner           string `json:"owner"`
	RemainingAmount uint64 `json:"remaining_amount"`
	Price           uint64 `json:"price"`
}

// EscrowReport is the outcome of auditing the custody of a token against the
// gateway.
type EscrowReport struct {
	Token          TokenInfo `json:"token"`
	ActiveOffers   int       `json:"active_offers"`
	TotalEscrowed  uint64    `json:"total_escrowed"`
	GatewayBalance uint64    `json:"gateway_balance"`
	Balanced       bool      `json:"balanced"`
}

// ExchangeCreatedEvent is published on ExchangeCreatedTopic.
type ExchangeCreatedEvent struct {
	ExchangeID uint64 `json:"exchange_id"`
	OfferID    uint64 `json:"offer_id"`
}

// OfferPlacedEvent is published on OfferPlacedTopic.
type OfferPlacedEvent struct {
	OfferID uint64 `json:"offer_id"`
}

// OfferCanceledEvent is published on OfferCanceledTopic.
type OfferCanceledEvent struct {
	ExchangeID uint64 `json:"exchange_id"`
	OfferID    uint64 `json:"offer_id"`
}

// OfferFilledEvent is published on OfferFilledTopic.
type OfferFilledEvent struct {
	ExchangeID      uint64 `json:"exchange_id"`
	OfferID         uint64 `json:"offer_id"`
	Side            string `json:"side"`
	Taker           string `json:"taker"`
	Amount          uint64 `json:"amount"`
	Price           uint64 `json:"price"`
	Total           uint64 `json:"total"`
	RemainingAmount uint64 `json:"remaining_amount"`
}

func tokenStandardString(standard int) string {
	if standard == domain.TokenStandardUnique {
		return "unique"
	}
	return "fungible"
}

func tokenInfoFromRef(token domain.TokenRef) TokenInfo {
	return TokenInfo{
		AccountID: token.AccountID,
		Standard:  tokenStandardString(token.Standard),
	}
}

func exchangeInfoFromExchange(exchange *domain.Exchange) ExchangeInfo {
	return ExchangeInfo{
		ID:             exchange.ID,
		Creator:        exchange.Creator,
		BaseToken:      tokenInfoFromRef(exchange.BaseToken),
		QuoteToken:     tokenInfoFromRef(exchange.QuoteToken),
		InitialAmount:  exchange.InitialAmount,
		ReferencePrice: exchange.ReferencePrice,
	}
}

func offerInfoFromOffer(offer *domain.Offer) OfferInfo {
	return OfferInfo{
		ID:              offer.ID,
		ExchangeID:      offer.ExchangeID,
		Side:            domain.OfferSideString(offer.Side),
		Owner:           offer.Owner,
		RemainingAmount: offer.RemainingAmount,
		Price:           offer.Price,
	}
}
