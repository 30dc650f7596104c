package httpinterface

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/tokex-network/tokex-daemon/internal/core/application"
	"github.com/tokex-network/tokex-daemon/internal/core/domain"
	"github.com/tokex-network/tokex-daemon/internal/core/ports"
	"github.com/tokex-network/tokex-daemon/pkg/mathutil"
)

// Handler exposes the exchange service as a JSON over HTTP interface.
type Handler struct {
	svc    application.ExchangeService
	pubsub ports.PubSubService
}

// NewHandler returns a handler for the given service.
func NewHandler(
	svc application.ExchangeService, pubsub ports.PubSubService,
) *Handler {
	return &Handler{svc: svc, pubsub: pubsub}
}

// SetupRoutes registers all the routes of the interface.
func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/v1/health", h.healthCheck).Methods(http.MethodGet)
	r.HandleFunc("/v1/exchanges", h.createExchange).Methods(http.MethodPost)
	r.HandleFunc("/v1/exchanges", h.listExchanges).Methods(http.MethodGet)
	r.HandleFunc("/v1/exchanges/{id}", h.getExchange).Methods(http.MethodGet)
	r.HandleFunc("/v1/exchanges/{id}/offers", h.placeOffer).Methods(http.MethodPost)
	r.HandleFunc("/v1/exchanges/{id}/offers", h.getExchangeOffers).Methods(http.MethodGet)
	r.HandleFunc("/v1/exchanges/{id}/offers/{offerId}/cancel", h.cancelOffer).Methods(http.MethodPost)
	r.HandleFunc("/v1/exchanges/{id}/offers/{offerId}/buy", h.buyFromOffer).Methods(http.MethodPost)
	r.HandleFunc("/v1/exchanges/{id}/offers/{offerId}/sell", h.sellFromOffer).Methods(http.MethodPost)
	r.HandleFunc("/v1/escrow/{token}", h.checkEscrow).Methods(http.MethodGet)
	r.HandleFunc("/v1/subscriptions", h.subscribe).Methods(http.MethodPost)
	r.HandleFunc("/v1/subscriptions/{topic}/{id}", h.unsubscribe).Methods(http.MethodDelete)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) createExchange(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Creator       string                   `json:"creator"`
		BaseToken     application.TokenRequest `json:"base_token"`
		QuoteToken    application.TokenRequest `json:"quote_token"`
		InitialAmount uint64                   `json:"initial_amount"`
		Price         string                   `json:"price"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	exchangeID, offerID, err := h.svc.CreateExchange(
		r.Context(), req.Creator, req.BaseToken, req.QuoteToken,
		req.InitialAmount, req.Price,
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]uint64{
		"exchange_id": exchangeID,
		"offer_id":    offerID,
	})
}

func (h *Handler) listExchanges(w http.ResponseWriter, r *http.Request) {
	exchanges, err := h.svc.ListExchanges(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exchanges)
}

func (h *Handler) getExchange(w http.ResponseWriter, r *http.Request) {
	exchangeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	exchange, err := h.svc.GetExchangeByID(r.Context(), exchangeID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exchange)
}

func (h *Handler) getExchangeOffers(w http.ResponseWriter, r *http.Request) {
	exchangeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	offers, err := h.svc.GetExchangeOffers(r.Context(), exchangeID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offers)
}

func (h *Handler) placeOffer(w http.ResponseWriter, r *http.Request) {
	exchangeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	req := struct {
		Side   string `json:"side"`
		Owner  string `json:"owner"`
		Amount uint64 `json:"amount"`
		Price  string `json:"price"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var offerID uint64
	switch req.Side {
	case "sell":
		offerID, err = h.svc.PlaceSellingOffer(
			r.Context(), exchangeID, req.Owner, req.Amount, req.Price,
		)
	case "buy":
		offerID, err = h.svc.PlaceBuyingOffer(
			r.Context(), exchangeID, req.Owner, req.Amount, req.Price,
		)
	default:
		writeError(w, http.StatusBadRequest, errors.New("side must be either sell or buy"))
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]uint64{"offer_id": offerID})
}

func (h *Handler) cancelOffer(w http.ResponseWriter, r *http.Request) {
	exchangeID, offerID, err := pathIDs(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	req := struct {
		Side      string `json:"side"`
		Requester string `json:"requester"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch req.Side {
	case "sell":
		err = h.svc.CancelSellingOffer(r.Context(), exchangeID, offerID, req.Requester)
	case "buy":
		err = h.svc.CancelBuyingOffer(r.Context(), exchangeID, offerID, req.Requester)
	default:
		writeError(w, http.StatusBadRequest, errors.New("side must be either sell or buy"))
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "canceled"})
}

func (h *Handler) buyFromOffer(w http.ResponseWriter, r *http.Request) {
	exchangeID, offerID, err := pathIDs(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	req := struct {
		Buyer  string `json:"buyer"`
		Amount uint64 `json:"amount"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.svc.BuyFromOffer(
		r.Context(), exchangeID, offerID, req.Buyer, req.Amount,
	); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "filled"})
}

func (h *Handler) sellFromOffer(w http.ResponseWriter, r *http.Request) {
	exchangeID, offerID, err := pathIDs(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	req := struct {
		Seller string `json:"seller"`
		Amount uint64 `json:"amount"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.svc.SellFromOffer(
		r.Context(), exchangeID, offerID, req.Seller, req.Amount,
	); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "filled"})
}

func (h *Handler) checkEscrow(w http.ResponseWriter, r *http.Request) {
	token := application.TokenRequest{
		AccountID: mux.Vars(r)["token"],
		Standard:  r.URL.Query().Get("standard"),
	}

	report, err := h.svc.CheckEscrow(r.Context(), token)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Topic    string `json:"topic"`
		Endpoint string `json:"endpoint"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	id, err := h.pubsub.Subscribe(req.Topic, req.Endpoint)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (h *Handler) unsubscribe(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.pubsub.Unsubscribe(vars["topic"], vars["id"]); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "unsubscribed"})
}

func pathID(r *http.Request, name string) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)[name], 10, 64)
}

func pathIDs(r *http.Request) (uint64, uint64, error) {
	exchangeID, err := pathID(r, "id")
	if err != nil {
		return 0, 0, err
	}
	offerID, err := pathID(r, "offerId")
	if err != nil {
		return 0, 0, err
	}
	return exchangeID, offerID, nil
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Warn("failed to write response")
	}
}

func writeError(w http.ResponseWriter, statusCode int, err error) {
	writeJSON(w, statusCode, map[string]string{"error": err.Error()})
}

// writeDomainError maps the errors of the engine onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrExchangeNotFound),
		errors.Is(err, domain.ErrOfferNotFound),
		errors.Is(err, domain.ErrEscrowEntryNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrOfferNotOwned):
		writeError(w, http.StatusForbidden, err)
	case errors.Is(err, ports.ErrInsufficientFunds),
		errors.Is(err, ports.ErrInsufficientAllowance):
		writeError(w, http.StatusPaymentRequired, err)
	case errors.Is(err, domain.ErrInsufficientOfferAmount):
		writeError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidOwner),
		errors.Is(err, domain.ErrOfferSideMismatch),
		errors.Is(err, domain.ErrTokenInvalidAccountID),
		errors.Is(err, domain.ErrTokenInvalidStandard),
		errors.Is(err, application.ErrMalformedPrice),
		errors.Is(err, application.ErrSameTokenPair),
		errors.Is(err, application.ErrInvalidTokenStandard),
		errors.Is(err, mathutil.ErrOverflow):
		writeError(w, http.StatusBadRequest, err)
	default:
		log.WithError(err).Error("unexpected error")
		writeError(w, http.StatusInternalServerError, application.ErrServiceUnavailable)
	}
}
