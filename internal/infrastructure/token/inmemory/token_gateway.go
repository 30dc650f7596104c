package tokeninmemory

import (
	"context"
	"sync"

	"github.com/tokex-network/tokex-daemon/internal/core/domain"
	"github.com/tokex-network/tokex-daemon/internal/core/ports"
	"github.com/tokex-network/tokex-daemon/pkg/mathutil"
)

// TokenGateway is an in-process implementation of ports.TokenGateway keeping
// balances and allowances of fungible tokens in memory. It's used when the
// daemon runs in standalone mode and by the test suites.
//
// The engine is the only caller: Transfer spends the engine's custody funds,
// TransferFrom spends the allowance the owner granted to the engine.
type TokenGateway struct {
	engineAccount string
	balances      map[string]map[string]uint64
	allowances    map[string]map[string]uint64

	lock *sync.Mutex
}

// NewTokenGateway returns a gateway with no balances, holding the engine's
// custody funds on the given account.
func NewTokenGateway(engineAccount string) *TokenGateway {
	return &TokenGateway{
		engineAccount: engineAccount,
		balances:      map[string]map[string]uint64{},
		allowances:    map[string]map[string]uint64{},
		lock:          &sync.Mutex{},
	}
}

// Mint credits an account with new funds, bootstrap and test helper.
func (g *TokenGateway) Mint(token domain.TokenRef, account string, amount uint64) {
	g.lock.Lock()
	defer g.lock.Unlock()

	g.creditBalance(token.AccountID, account, amount)
}

// Approve grants the engine an allowance for pulling funds out of the
// owner's account.
func (g *TokenGateway) Approve(token domain.TokenRef, owner string, amount uint64) {
	g.lock.Lock()
	defer g.lock.Unlock()

	allowances, ok := g.allowances[token.AccountID]
	if !ok {
		allowances = map[string]uint64{}
		g.allowances[token.AccountID] = allowances
	}
	allowances[owner] = amount
}

func (g *TokenGateway) Transfer(
	_ context.Context, token domain.TokenRef, to string, amount uint64,
) error {
	g.lock.Lock()
	defer g.lock.Unlock()

	return g.move(token.AccountID, g.engineAccount, to, amount)
}

func (g *TokenGateway) TransferFrom(
	_ context.Context, token domain.TokenRef, owner, to string, amount uint64,
) error {
	g.lock.Lock()
	defer g.lock.Unlock()

	allowance := g.allowances[token.AccountID][owner]
	if allowance < amount {
		return ports.ErrInsufficientAllowance
	}

	if err := g.move(token.AccountID, owner, to, amount); err != nil {
		return err
	}

	g.allowances[token.AccountID][owner] = allowance - amount
	return nil
}

func (g *TokenGateway) BalanceOf(
	_ context.Context, token domain.TokenRef, account string,
) (uint64, error) {
	g.lock.Lock()
	defer g.lock.Unlock()

	return g.balances[token.AccountID][account], nil
}

func (g *TokenGateway) move(tokenID, from, to string, amount uint64) error {
	balance := g.balances[tokenID][from]
	if balance < amount {
		return ports.ErrInsufficientFunds
	}

	if _, err := mathutil.CheckedAdd(g.balances[tokenID][to], amount); err != nil {
		return err
	}

	g.balances[tokenID][from] = balance - amount
	g.creditBalance(tokenID, to, amount)
	return nil
}

func (g *TokenGateway) creditBalance(tokenID, account string, amount uint64) {
	balances, ok := g.balances[tokenID]
	if !ok {
		balances = map[string]uint64{}
		g.balances[tokenID] = balances
	}
	balances[account] += amount
}
