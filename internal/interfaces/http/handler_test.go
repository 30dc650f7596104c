package httpinterface_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"github.com/tokex-network/tokex-daemon/internal/core/application"
	"github.com/tokex-network/tokex-daemon/internal/core/domain"
	webhookpubsub "github.com/tokex-network/tokex-daemon/internal/infrastructure/pubsub"
	dbinmemory "github.com/tokex-network/tokex-daemon/internal/infrastructure/storage/db/inmemory"
	tokeninmemory "github.com/tokex-network/tokex-daemon/internal/infrastructure/token/inmemory"
	httpinterface "github.com/tokex-network/tokex-daemon/internal/interfaces/http"
)

const engineAccount = "engine"

var (
	baseRef  = domain.TokenRef{AccountID: "base-token", Standard: domain.TokenStandardFungible}
	quoteRef = domain.TokenRef{AccountID: "quote-token", Standard: domain.TokenStandardFungible}
)

func newTestRouter(t *testing.T) (*mux.Router, *tokeninmemory.TokenGateway) {
	t.Helper()

	repoManager := dbinmemory.NewRepoManager()
	t.Cleanup(func() { repoManager.Close() })

	gateway := tokeninmemory.NewTokenGateway(engineAccount)
	pubsub := webhookpubsub.NewWebhookPubSubService()
	svc := application.NewExchangeService(repoManager, gateway, pubsub, engineAccount)

	router := mux.NewRouter()
	httpinterface.NewHandler(svc, pubsub).SetupRoutes(router)
	return router, gateway
}

func doJSONRequest(
	t *testing.T, router *mux.Router, method, route string, body interface{},
) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(buf)
	}

	req := httptest.NewRequest(method, route, reqBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createExchangeRequest(creator string, amount uint64, price string) map[string]interface{} {
	return map[string]interface{}{
		"creator":        creator,
		"base_token":     map[string]string{"account_id": baseRef.AccountID},
		"quote_token":    map[string]string{"account_id": quoteRef.AccountID},
		"initial_amount": amount,
		"price":          price,
	}
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	rec := doJSONRequest(t, router, http.MethodGet, "/v1/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateAndQueryExchange(t *testing.T) {
	t.Parallel()

	router, gateway := newTestRouter(t)
	gateway.Mint(baseRef, "alice", 100)
	gateway.Approve(baseRef, "alice", 100)

	rec := doJSONRequest(
		t, router, http.MethodPost, "/v1/exchanges",
		createExchangeRequest("alice", 10, "2"),
	)
	require.Equal(t, http.StatusOK, rec.Code)

	reply := struct {
		ExchangeID uint64 `json:"exchange_id"`
		OfferID    uint64 `json:"offer_id"`
	}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	require.Equal(t, uint64(1), reply.ExchangeID)
	require.Equal(t, uint64(1), reply.OfferID)

	rec = doJSONRequest(t, router, http.MethodGet, "/v1/exchanges/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	info := application.ExchangeInfo{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	require.Equal(t, "alice", info.Creator)
	require.Equal(t, uint64(10), info.InitialAmount)

	rec = doJSONRequest(t, router, http.MethodGet, "/v1/exchanges", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	list := []application.ExchangeInfo{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)

	rec = doJSONRequest(t, router, http.MethodGet, "/v1/exchanges/1/offers", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	offers := []application.OfferInfo{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &offers))
	require.Len(t, offers, 1)
	require.Equal(t, "sell", offers[0].Side)
}

func TestPlaceFillAndCancelOffers(t *testing.T) {
	t.Parallel()

	router, gateway := newTestRouter(t)
	gateway.Mint(baseRef, "alice", 100)
	gateway.Approve(baseRef, "alice", 100)
	gateway.Mint(quoteRef, "bob", 100)
	gateway.Approve(quoteRef, "bob", 100)
	gateway.Mint(quoteRef, "dan", 100)
	gateway.Approve(quoteRef, "dan", 100)

	rec := doJSONRequest(
		t, router, http.MethodPost, "/v1/exchanges",
		createExchangeRequest("alice", 10, "2"),
	)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSONRequest(
		t, router, http.MethodPost, "/v1/exchanges/1/offers",
		map[string]interface{}{
			"side": "buy", "owner": "bob", "amount": 5, "price": "3",
		},
	)
	require.Equal(t, http.StatusOK, rec.Code)

	offerReply := struct {
		OfferID uint64 `json:"offer_id"`
	}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &offerReply))
	require.Equal(t, uint64(2), offerReply.OfferID)

	rec = doJSONRequest(
		t, router, http.MethodPost, "/v1/exchanges/1/offers/1/buy",
		map[string]interface{}{"buyer": "dan", "amount": 1},
	)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSONRequest(
		t, router, http.MethodPost, "/v1/exchanges/1/offers/2/cancel",
		map[string]interface{}{"side": "buy", "requester": "bob"},
	)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSONRequest(
		t, router, http.MethodGet, "/v1/escrow/base-token", nil,
	)
	require.Equal(t, http.StatusOK, rec.Code)

	report := application.EscrowReport{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Equal(t, uint64(9), report.TotalEscrowed)
	require.True(t, report.Balanced)
}

func TestErrorStatusCodes(t *testing.T) {
	t.Parallel()

	router, gateway := newTestRouter(t)
	gateway.Mint(baseRef, "alice", 100)
	gateway.Approve(baseRef, "alice", 100)

	rec := doJSONRequest(
		t, router, http.MethodPost, "/v1/exchanges",
		createExchangeRequest("alice", 10, "2"),
	)
	require.Equal(t, http.StatusOK, rec.Code)

	tests := []struct {
		name         string
		method       string
		route        string
		body         interface{}
		expectedCode int
	}{
		{
			name:         "unknown_exchange",
			method:       http.MethodGet,
			route:        "/v1/exchanges/42",
			expectedCode: http.StatusNotFound,
		},
		{
			name:   "unknown_offer",
			method: http.MethodPost,
			route:  "/v1/exchanges/1/offers/42/buy",
			body: map[string]interface{}{
				"buyer": "dan", "amount": 1,
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:   "malformed_price",
			method: http.MethodPost,
			route:  "/v1/exchanges/1/offers",
			body: map[string]interface{}{
				"side": "sell", "owner": "alice", "amount": 5, "price": "oops",
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "invalid_side",
			method: http.MethodPost,
			route:  "/v1/exchanges/1/offers",
			body: map[string]interface{}{
				"side": "short", "owner": "alice", "amount": 5, "price": "2",
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "missing_allowance",
			method: http.MethodPost,
			route:  "/v1/exchanges/1/offers",
			body: map[string]interface{}{
				"side": "sell", "owner": "carol", "amount": 5, "price": "2",
			},
			expectedCode: http.StatusPaymentRequired,
		},
		{
			name:   "not_the_owner",
			method: http.MethodPost,
			route:  "/v1/exchanges/1/offers/1/cancel",
			body: map[string]interface{}{
				"side": "sell", "requester": "bob",
			},
			expectedCode: http.StatusForbidden,
		},
		{
			name:   "amount_exceeds_remaining",
			method: http.MethodPost,
			route:  "/v1/exchanges/1/offers/1/buy",
			body: map[string]interface{}{
				"buyer": "dan", "amount": 11,
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSONRequest(t, router, tt.method, tt.route, tt.body)
			require.Equal(t, tt.expectedCode, rec.Code)

			errReply := struct {
				Error string `json:"error"`
			}{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errReply))
			require.NotEmpty(t, errReply.Error)
		})
	}
}
