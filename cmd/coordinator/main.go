// Package main runs the chama coordination core as an HTTP service.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chamadapp/chama-coordinator-backend/internal/coordinator"
	"github.com/chamadapp/chama-coordinator-backend/internal/journal"
	"github.com/chamadapp/chama-coordinator-backend/internal/ledger"
	"github.com/chamadapp/chama-coordinator-backend/internal/metrics"
	"github.com/chamadapp/chama-coordinator-backend/internal/model"
	"github.com/chamadapp/chama-coordinator-backend/internal/registry"
	"github.com/chamadapp/chama-coordinator-backend/internal/service"
	"github.com/chamadapp/chama-coordinator-backend/internal/transport"
	"github.com/gorilla/mux"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

var config struct {
	Addr            string        `long:"addr" env:"COORDINATOR_ADDR" description:"http listen address" default:":8000"`
	LedgerURL       string        `long:"ledger-url" env:"COORDINATOR_LEDGER_URL" description:"ledger node base url"`
	ContractAddr    string        `long:"contract-addr" env:"COORDINATOR_CONTRACT_ADDR" description:"chama contract address"`
	JournalPath     string        `long:"journal-path" env:"COORDINATOR_JOURNAL_PATH" description:"event journal directory" default:"./data/journal"`
	ReadRPS         int           `long:"read-rps" env:"COORDINATOR_READ_RPS" description:"ledger read batches per second" default:"10"`
	RefreshInterval time.Duration `long:"refresh-interval" env:"COORDINATOR_REFRESH_INTERVAL" description:"full refresh interval" default:"30s"`
	ConfirmTimeout  time.Duration `long:"confirm-timeout" env:"COORDINATOR_CONFIRM_TIMEOUT" description:"pending action confirmation deadline" default:"3m"`
	MaxAttempts     int           `long:"max-attempts" env:"COORDINATOR_MAX_ATTEMPTS" description:"submission attempt ceiling" default:"5"`
	ActionRetention time.Duration `long:"action-retention" env:"COORDINATOR_ACTION_RETENTION" description:"how long finished actions stay queryable" default:"1h"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	client, err := ledger.NewClient(config.LedgerURL, config.ContractAddr, config.ReadRPS, logger)
	if err != nil {
		logger.Fatal("Build ledger client", zap.Error(err))
	}
	gateway := ledger.NewObservedGateway(client, metrics.NewGateway(config.ContractAddr))

	registryMetrics := metrics.NewRegistry()
	cache := registry.NewCache(logger, registryMetrics)
	refresher, err := registry.NewRefresher(gateway, cache, registryMetrics, config.RefreshInterval, logger)
	if err != nil {
		logger.Fatal("Build refresher", zap.Error(err))
	}

	eventLog, err := journal.Open(config.JournalPath, logger)
	if err != nil {
		logger.Fatal("Open event journal", zap.Error(err))
	}
	defer func() {
		_ = eventLog.Close()
	}()

	coord, err := coordinator.New(gateway, cache, eventLog, metrics.NewCoordinator(), coordinator.Config{
		MaxAttempts:     config.MaxAttempts,
		ConfirmTimeout:  config.ConfirmTimeout,
		ActionRetention: config.ActionRetention,
	}, logger)
	if err != nil {
		logger.Fatal("Build coordinator", zap.Error(err))
	}
	refresher.SetOnRefresh(coord.Reconcile)

	// Rebuild the cache from the journal before serving or refreshing. A
	// journal that starts mid-history can trip the reorder window; those
	// groups are already queued for refetch, so only real failures are fatal.
	if err := eventLog.Replay(func(ev model.Event) error {
		if applyErr := cache.ApplyConfirmed(ev); applyErr != nil && !errors.Is(applyErr, registry.ErrOutOfOrder) {
			return applyErr
		}
		return nil
	}); err != nil {
		logger.Fatal("Replay event journal", zap.Error(err))
	}

	core, err := service.NewCore(cache, coord, logger)
	if err != nil {
		logger.Fatal("Build core", zap.Error(err))
	}

	go func() {
		if runErr := refresher.Run(ctx); runErr != nil && !errors.Is(runErr, context.Canceled) {
			logger.Error("Refresher stopped", zap.Error(runErr))
		}
	}()
	go func() {
		if runErr := coord.Run(ctx); runErr != nil && !errors.Is(runErr, context.Canceled) {
			logger.Error("Coordinator stopped", zap.Error(runErr))
		}
	}()

	router := mux.NewRouter()
	transport.RegisterRoutes(router, transport.NewHandler(core, logger))
	router.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              config.Addr,
		Handler:           cors.Default().Handler(router),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", config.Addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to listen and serve", zap.Error(err))
	}
}
