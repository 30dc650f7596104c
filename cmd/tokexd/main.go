package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tokex-network/tokex-daemon/config"
	"github.com/tokex-network/tokex-daemon/internal/core/application"
	"github.com/tokex-network/tokex-daemon/internal/core/ports"
	webhookpubsub "github.com/tokex-network/tokex-daemon/internal/infrastructure/pubsub"
	dbbadger "github.com/tokex-network/tokex-daemon/internal/infrastructure/storage/db/badger"
	dbinmemory "github.com/tokex-network/tokex-daemon/internal/infrastructure/storage/db/inmemory"
	tokenhttp "github.com/tokex-network/tokex-daemon/internal/infrastructure/token/http"
	tokeninmemory "github.com/tokex-network/tokex-daemon/internal/infrastructure/token/inmemory"
	httpinterface "github.com/tokex-network/tokex-daemon/internal/interfaces/http"
	"github.com/tokex-network/tokex-daemon/pkg/stats"
)

func main() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	if config.GetBool(config.EnableProfilerKey) {
		statsCtx, stopStats := context.WithCancel(context.Background())
		defer stopStats()
		interval := time.Duration(config.GetInt(config.StatsIntervalKey)) * time.Second
		stats.EnableMemoryStatistics(
			statsCtx, interval, filepath.Join(config.GetDatadir(), "stats"),
		)
	}

	repoManager, err := newRepoManager()
	if err != nil {
		log.WithError(err).Panic("error while opening storage")
	}
	defer repoManager.Close()

	engineAccount := config.GetString(config.EngineAccountKey)
	tokenGateway := newTokenGateway(engineAccount)
	pubsubSvc := webhookpubsub.NewWebhookPubSubService()

	exchangeSvc := application.NewExchangeService(
		repoManager, tokenGateway, pubsubSvc, engineAccount,
	)

	listenAddr := config.GetString(config.ListenAddrKey)
	server := httpinterface.NewServer(listenAddr, exchangeSvc, pubsubSvc)

	log.Debug("starting daemon")

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Panic("error listening on exchange interface")
		}
	}()

	log.Info("exchange interface is listening on " + listenAddr)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("error while shutting down server")
	}

	log.Debug("exiting")
}

func newRepoManager() (ports.RepoManager, error) {
	if config.GetString(config.DbTypeKey) == config.DbTypeInMemory {
		return dbinmemory.NewRepoManager(), nil
	}
	return dbbadger.NewRepoManager(config.GetDbDir(), nil)
}

func newTokenGateway(engineAccount string) ports.TokenGateway {
	if addr := config.GetString(config.TokenGatewayAddrKey); addr != "" {
		return tokenhttp.NewClient(addr)
	}
	log.Info("no token gateway address configured, using in-process gateway")
	return tokeninmemory.NewTokenGateway(engineAccount)
}
