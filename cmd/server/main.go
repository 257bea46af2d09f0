package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"currency-cache/internal/adapter/cache"
	httpRouter "currency-cache/internal/adapter/http"
	"currency-cache/internal/adapter/repository"
	"currency-cache/internal/config"
	"currency-cache/internal/metrics"
	"currency-cache/internal/service"
	"currency-cache/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	log := logger.NewLogger(os.Getenv("LOG_LEVEL"))
	log.Info("Starting currency cache service")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	appMetrics := metrics.NewMetrics(prometheus.DefaultRegisterer)

	snapshots, err := cache.NewDiskStore(cfg.Cache.DataDir, log.With("component", "snapshots"))
	if err != nil {
		log.Error("Failed to open data directory", "error", err)
		os.Exit(1)
	}
	memory := cache.NewMemoryCache(log.With("component", "memory"))

	rateRepo := repository.NewExchangeAPI(
		cfg.CurrencyAPI.BaseURL,
		cfg.CurrencyAPI.APIKey,
		cfg.CurrencyAPI.Timeout,
		log.With("component", "currency_api"),
		appMetrics,
	)

	cacheManager := service.NewCacheManager(rateRepo, snapshots, memory, log.With("component", "cache_manager"), appMetrics)

	httpLog := log.With("component", "http")
	handler := httpRouter.NewHandler(cacheManager, cacheManager, httpLog)

	router := httpRouter.NewRouter(handler, httpLog, appMetrics, prometheus.DefaultGatherer)
	routes := router.SetupRoutes()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      routes,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, cancelWarm := context.WithCancel(context.Background())
	if cfg.Cache.WarmInterval > 0 {
		go warmCache(ctx, cacheManager, cfg.Cache.WarmInterval, log)
	}

	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port, "data_dir", snapshots.Dir())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	cancelWarm()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}

// warmCache loads the catalog and the latest settled rates at startup and
// then on every tick. Already cached keys cost nothing, so a tick only
// reaches the upstream after the UTC day has rolled over.
func warmCache(ctx context.Context, manager *service.CacheManager, interval time.Duration, log *logger.Logger) {
	warm := func() {
		if _, err := manager.GetCurrencyCatalog(ctx); err != nil {
			log.Error("Failed to warm currency catalog", "error", err)
		}
		if _, err := manager.GetLatestRates(ctx); err != nil {
			log.Error("Failed to warm latest rates", "error", err)
		}
	}

	warm()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			warm()
		case <-ctx.Done():
			log.Info("Stopping cache warm-up goroutine")
			return
		}
	}
}
