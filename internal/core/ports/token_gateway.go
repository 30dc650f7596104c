package ports

import (
	"context"
	"errors"

	"github.com/tokex-network/tokex-daemon/internal/core/domain"
)

var (
	// ErrInsufficientFunds is thrown when a token holder doesn't own enough
	// funds to complete a transfer.
	ErrInsufficientFunds = errors.New("insufficient funds for transfer")
	// ErrInsufficientAllowance is thrown when the engine wasn't granted a
	// high enough allowance to pull funds from a token holder.
	ErrInsufficientAllowance = errors.New("insufficient allowance for transfer")
)

// TokenGateway is the engine's only doorway to token contracts. Every value
// movement goes through it and any call may fail, a failed call must abort
// the whole operation it belongs to.
//
// The gateway is untrusted code, implementations of the engine must never
// leave internal state observable half-applied across a gateway call.
type TokenGateway interface {
	// Transfer moves funds owned by the engine to another account.
	Transfer(
		ctx context.Context, token domain.TokenRef, to string, amount uint64,
	) error
	// TransferFrom moves funds between two third party accounts, it requires
	// a prior allowance granted to the engine by the owner.
	TransferFrom(
		ctx context.Context, token domain.TokenRef, owner, to string, amount uint64,
	) error
	// BalanceOf returns the balance of the given account.
	BalanceOf(
		ctx context.Context, token domain.TokenRef, account string,
	) (uint64, error)
}
