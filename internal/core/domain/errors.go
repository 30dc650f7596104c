package domain

import "errors"

var (
	// ErrExchangeNotFound is thrown when an exchange does not exist for a given id
	ErrExchangeNotFound = errors.New("exchange does not exist for the given id")
	// ErrOfferNotFound is thrown when an offer does not exist for a given id
	ErrOfferNotFound = errors.New("offer does not exist for the given id")
	// ErrOfferSideMismatch is thrown when buying/selling from an offer on the wrong side
	ErrOfferSideMismatch = errors.New("offer side does not match the requested operation")
	// ErrOfferNotOwned is thrown when cancelling an offer owned by another account
	ErrOfferNotOwned = errors.New("offer is not owned by the requesting account")
	// ErrInsufficientOfferAmount is thrown when filling an offer for more than its remaining amount
	ErrInsufficientOfferAmount = errors.New("amount exceeds the remaining amount of the offer")
	// ErrInvalidAmount ...
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrInvalidPrice ...
	ErrInvalidPrice = errors.New("price must be greater than zero")
	// ErrInvalidOwner ...
	ErrInvalidOwner = errors.New("owner account must not be empty")
	// ErrTokenInvalidAccountID ...
	ErrTokenInvalidAccountID = errors.New("token account id must not be empty")
	// ErrTokenInvalidStandard ...
	ErrTokenInvalidStandard = errors.New("token standard is not supported")
	// ErrEscrowEntryNotFound is thrown when no escrow is held for a given offer
	ErrEscrowEntryNotFound = errors.New("no escrow entry exists for the given offer")
)
