package domain

// Token standards the engine knows how to route gateway calls for.
const (
	TokenStandardFungible = iota
	TokenStandardUnique
)

// TokenRef points to a token contract living outside of the engine. The
// engine never inspects it beyond routing gateway calls, the standard tag
// tells the gateway which capability set to dispatch on.
type TokenRef struct {
	// AccountID is the identifier of the token contract.
	AccountID string
	// Standard of the token (fungible, unique...).
	Standard int
}

// NewTokenRef returns a reference to the token contract with the given
// account id.
func NewTokenRef(accountID string, standard int) (TokenRef, error) {
	if accountID == "" {
		return TokenRef{}, ErrTokenInvalidAccountID
	}
	if standard != TokenStandardFungible && standard != TokenStandardUnique {
		return TokenRef{}, ErrTokenInvalidStandard
	}
	return TokenRef{AccountID: accountID, Standard: standard}, nil
}
