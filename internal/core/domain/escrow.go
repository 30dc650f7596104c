package domain

// EscrowEntry records how much of which token the engine holds in custody on
// behalf of a single resting offer. The sum of all entries for a token must
// always equal the engine's total balance of that token at the gateway.
type EscrowEntry struct {
	// OfferID of the resting offer the funds are locked for.
	OfferID uint64
	// Token held in custody.
	Token TokenRef
	// Amount of token locked.
	Amount uint64
}
