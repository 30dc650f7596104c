package httpinterface

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/tokex-network/tokex-daemon/internal/core/application"
	"github.com/tokex-network/tokex-daemon/internal/core/ports"
)

// Server wraps the HTTP server of the daemon.
type Server struct {
	httpServer *http.Server
}

// NewServer returns a server exposing the exchange service on the given
// address.
func NewServer(
	addr string,
	svc application.ExchangeService, pubsub ports.PubSubService,
) *Server {
	router := mux.NewRouter()
	NewHandler(svc, pubsub).SetupRoutes(router)

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
	}
}

// ListenAndServe starts serving requests, it blocks until Shutdown is
// called.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
