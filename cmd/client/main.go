package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ashfall-game/survival-client/internal/api"
	"github.com/ashfall-game/survival-client/internal/config"
	"github.com/ashfall-game/survival-client/internal/kvstore"
	"github.com/ashfall-game/survival-client/internal/notify"
	"github.com/ashfall-game/survival-client/internal/stats"
	"github.com/ashfall-game/survival-client/internal/store"
	"github.com/ashfall-game/survival-client/internal/syncer"
	"github.com/ashfall-game/survival-client/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var kv kvstore.KV
	if cfg.Redis.URL != "" {
		kv, err = kvstore.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
	} else {
		logger.Warn("No Redis URL configured, preferences will not survive restarts")
		kv = kvstore.NewMemory()
	}

	gameStore := store.New(store.Deps{KV: kv, Logger: logger.Get()})
	queue := notify.NewQueue(notify.NewClockScheduler(), logger.Get())
	view := stats.NewView(gameStore)

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, syncer.TokenSource(kv), logger.Get())
	manager := syncer.New(syncer.Deps{
		Store:           gameStore,
		Client:          client,
		Queue:           queue,
		KV:              kv,
		Logger:          logger.Get(),
		RefreshInterval: cfg.Refresh.Interval,
	})

	gameStore.Subscribe(func(snap store.Snapshot) {
		if vitals := view.Vitals(); vitals != nil {
			logger.Debug("state updated",
				zap.Float64("energy_percent", vitals.Energy.Percent),
				zap.String("energy_band", string(vitals.Energy.Band)),
				zap.Int("inventory_items", len(snap.Inventory)),
			)
		}
	})

	if err := manager.Bootstrap(ctx); err != nil {
		logger.Error("Bootstrap failed, continuing unauthenticated", zap.Error(err))
	}
	manager.StartAutoRefresh(ctx)

	var debugServer *http.Server
	if cfg.Debug.ListenAddr != "" {
		router := chi.NewRouter()
		router.Use(chimiddleware.RequestID)
		router.Use(chimiddleware.Recoverer)
		router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
		router.Handle("/metrics", promhttp.Handler())

		debugServer = &http.Server{Addr: cfg.Debug.ListenAddr, Handler: router}
		go func() {
			logger.Info("Starting debug server", zap.String("addr", cfg.Debug.ListenAddr))
			if err := debugServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Fatal("Failed to start debug server", zap.Error(err))
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	cancel()
	manager.Close()
	queue.Shutdown()
	if debugServer != nil {
		if err := debugServer.Shutdown(context.Background()); err != nil {
			logger.Error("Debug server forced to shutdown", zap.Error(err))
		}
	}
	logger.Info("Client exited")
}
