package tokeninmemory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tokex-network/tokex-daemon/internal/core/domain"
	"github.com/tokex-network/tokex-daemon/internal/core/ports"
	tokeninmemory "github.com/tokex-network/tokex-daemon/internal/infrastructure/token/inmemory"
)

const engineAccount = "engine"

var (
	ctx      = context.Background()
	tokenRef = domain.TokenRef{
		AccountID: "base-token", Standard: domain.TokenStandardFungible,
	}
)

func TestTransferFrom(t *testing.T) {
	t.Parallel()

	gateway := tokeninmemory.NewTokenGateway(engineAccount)
	gateway.Mint(tokenRef, "alice", 100)
	gateway.Approve(tokenRef, "alice", 30)

	err := gateway.TransferFrom(ctx, tokenRef, "alice", engineAccount, 20)
	require.NoError(t, err)

	balance, err := gateway.BalanceOf(ctx, tokenRef, "alice")
	require.NoError(t, err)
	require.Equal(t, uint64(80), balance)
	balance, err = gateway.BalanceOf(ctx, tokenRef, engineAccount)
	require.NoError(t, err)
	require.Equal(t, uint64(20), balance)

	// the allowance shrinks with every pull
	err = gateway.TransferFrom(ctx, tokenRef, "alice", engineAccount, 11)
	require.EqualError(t, err, ports.ErrInsufficientAllowance.Error())

	err = gateway.TransferFrom(ctx, tokenRef, "alice", engineAccount, 10)
	require.NoError(t, err)
}

func TestFailingTransferFrom(t *testing.T) {
	t.Parallel()

	gateway := tokeninmemory.NewTokenGateway(engineAccount)
	gateway.Mint(tokenRef, "alice", 5)
	gateway.Approve(tokenRef, "alice", 10)

	err := gateway.TransferFrom(ctx, tokenRef, "alice", engineAccount, 10)
	require.EqualError(t, err, ports.ErrInsufficientFunds.Error())

	// a failed pull must not burn any allowance
	err = gateway.TransferFrom(ctx, tokenRef, "alice", engineAccount, 5)
	require.NoError(t, err)
	err = gateway.TransferFrom(ctx, tokenRef, "alice", engineAccount, 5)
	require.EqualError(t, err, ports.ErrInsufficientFunds.Error())
}

func TestTransfer(t *testing.T) {
	t.Parallel()

	gateway := tokeninmemory.NewTokenGateway(engineAccount)
	gateway.Mint(tokenRef, engineAccount, 10)

	err := gateway.Transfer(ctx, tokenRef, "bob", 4)
	require.NoError(t, err)

	balance, err := gateway.BalanceOf(ctx, tokenRef, "bob")
	require.NoError(t, err)
	require.Equal(t, uint64(4), balance)

	err = gateway.Transfer(ctx, tokenRef, "bob", 7)
	require.EqualError(t, err, ports.ErrInsufficientFunds.Error())
}
