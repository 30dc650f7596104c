package application

import (
	"github.com/shopspring/decimal"
	"github.com/tokex-network/tokex-daemon/internal/core/domain"
	"github.com/tokex-network/tokex-daemon/pkg/mathutil"
)

func validateAmount(amount uint64) error {
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}
	return nil
}

func tokenRefFromRequest(req TokenRequest) (domain.TokenRef, error) {
	standard, err := validateTokenStandard(req.Standard)
	if err != nil {
		return domain.TokenRef{}, err
	}
	return domain.NewTokenRef(req.AccountID, standard)
}

func validateTokenStandard(standard string) (int, error) {
	switch standard {
	case "", "fungible":
		return domain.TokenStandardFungible, nil
	case "unique":
		return domain.TokenStandardUnique, nil
	default:
		return -1, ErrInvalidTokenStandard
	}
}

// parsePrice parses a price expressed as a decimal string into an integer
// amount of quote units per base unit.
func parsePrice(price string) (uint64, error) {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return 0, ErrMalformedPrice
	}
	if !p.IsPositive() || !p.IsInteger() {
		return 0, ErrMalformedPrice
	}

	v, err := mathutil.Uint64FromDecimal(p)
	if err != nil {
		return 0, ErrMalformedPrice
	}
	return v, nil
}
