package tokenhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"github.com/tokex-network/tokex-daemon/internal/core/domain"
	"github.com/tokex-network/tokex-daemon/internal/core/ports"
	"github.com/tokex-network/tokex-daemon/pkg/circuitbreaker"
	"go.uber.org/ratelimit"
)

const (
	httpTimeout       = 15 * time.Second
	requestsPerSecond = 20
)

// tokenStandardPath maps a token standard to the path prefix of the token
// service routing calls for it.
func tokenStandardPath(standard int) string {
	if standard == domain.TokenStandardUnique {
		return "unique"
	}
	return "fungible"
}

// Client is a ports.TokenGateway talking JSON over HTTP with an external
// token service. Calls are paced by a rate limiter and wrapped in a circuit
// breaker so that a flapping token service doesn't pile up requests.
type Client struct {
	addr       string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	limiter    ratelimit.Limiter
}

// NewClient returns a gateway client for the token service at the given
// address.
func NewClient(addr string) ports.TokenGateway {
	return &Client{
		addr:       addr,
		httpClient: &http.Client{Timeout: httpTimeout},
		breaker:    circuitbreaker.NewCircuitBreaker("token-gateway"),
		limiter:    ratelimit.New(requestsPerSecond),
	}
}

type transferRequest struct {
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

type transferFromRequest struct {
	Owner  string `json:"owner"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

type balanceReply struct {
	Balance uint64 `json:"balance"`
}

type errorReply struct {
	Error string `json:"error"`
}

func (c *Client) Transfer(
	ctx context.Context, token domain.TokenRef, to string, amount uint64,
) error {
	url := fmt.Sprintf(
		"%s/%s/%s/transfer",
		c.addr, tokenStandardPath(token.Standard), token.AccountID,
	)
	_, err := c.post(ctx, url, transferRequest{To: to, Amount: amount})
	return err
}

func (c *Client) TransferFrom(
	ctx context.Context, token domain.TokenRef, owner, to string, amount uint64,
) error {
	url := fmt.Sprintf(
		"%s/%s/%s/transfer-from",
		c.addr, tokenStandardPath(token.Standard), token.AccountID,
	)
	_, err := c.post(ctx, url, transferFromRequest{Owner: owner, To: to, Amount: amount})
	return err
}

func (c *Client) BalanceOf(
	ctx context.Context, token domain.TokenRef, account string,
) (uint64, error) {
	url := fmt.Sprintf(
		"%s/%s/%s/balance/%s",
		c.addr, tokenStandardPath(token.Standard), token.AccountID, account,
	)

	body, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	reply := balanceReply{}
	if err := json.Unmarshal(body, &reply); err != nil {
		return 0, fmt.Errorf("parsing balance reply: %w", err)
	}
	return reply.Balance, nil
}

func (c *Client) post(
	ctx context.Context, url string, request interface{},
) ([]byte, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, url, payload)
}

func (c *Client) do(
	ctx context.Context, method, url string, payload []byte,
) ([]byte, error) {
	c.limiter.Take()

	body, err := c.breaker.Execute(func() (interface{}, error) {
		var reader *bytes.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		} else {
			reader = bytes.NewReader(nil)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := ioutil.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusOK {
			return nil, parseError(resp.StatusCode, body)
		}
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}

// parseError maps the failure replies of the token service onto the gateway
// errors known to the engine.
func parseError(statusCode int, body []byte) error {
	reply := errorReply{}
	if err := json.Unmarshal(body, &reply); err != nil {
		return fmt.Errorf("token service replied with status %d", statusCode)
	}

	switch reply.Error {
	case "insufficient funds":
		return ports.ErrInsufficientFunds
	case "insufficient allowance":
		return ports.ErrInsufficientAllowance
	default:
		return fmt.Errorf("token service: %s", reply.Error)
	}
}
