package application

import "errors"

var (
	// ErrInvalidTokenStandard ...
	ErrInvalidTokenStandard = errors.New("token standard is not supported")
	// ErrSameTokenPair is thrown when creating an exchange with base and quote
	// referring to the same token contract.
	ErrSameTokenPair = errors.New("base and quote must refer to different tokens")
	// ErrMalformedPrice ...
	ErrMalformedPrice = errors.New("price must be a positive integer amount of quote units per base unit")
	// ErrServiceUnavailable is the error returned in case of unexpected
	// internal errors.
	ErrServiceUnavailable = errors.New("service is unavailable, try again later")
)
