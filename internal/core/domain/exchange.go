package domain

// Exchange defines a market for trading a base token against a quote token.
// It is immutable after creation and never removed.
type Exchange struct {
	// ID uniquely identifies the exchange, ids are never reused.
	ID uint64
	// Creator is the account that opened the exchange.
	Creator string
	// BaseToken is the asset traded through the exchange.
	BaseToken TokenRef
	// QuoteToken is the payment asset of the exchange.
	QuoteToken TokenRef
	// InitialAmount of base token seeded by the creator's first offer.
	InitialAmount uint64
	// ReferencePrice is the price of the creator's first offer. Informational
	// only, offers quote their own price independently.
	ReferencePrice uint64
}

// NewExchange returns a new exchange for the given token pair.
func NewExchange(
	id uint64, creator string,
	baseToken, quoteToken TokenRef,
	initialAmount, price uint64,
) (*Exchange, error) {
	if creator == "" {
		return nil, ErrInvalidOwner
	}
	if initialAmount <= 0 {
		return nil, ErrInvalidAmount
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}

	return &Exchange{
		ID:             id,
		Creator:        creator,
		BaseToken:      baseToken,
		QuoteToken:     quoteToken,
		InitialAmount:  initialAmount,
		ReferencePrice: price,
	}, nil
}
