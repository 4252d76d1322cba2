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

	"wallet_tracker/internal/app/service"
	"wallet_tracker/internal/infrastructure/addrvalidator"
	"wallet_tracker/internal/infrastructure/configloader"
	"wallet_tracker/internal/infrastructure/metrics"
	networkdefinition "wallet_tracker/internal/infrastructure/network/definition"
	"wallet_tracker/internal/infrastructure/restapi"
	"wallet_tracker/internal/infrastructure/resultwriter"
	"wallet_tracker/internal/infrastructure/simulator"
	"wallet_tracker/internal/pkg/logger"
	"wallet_tracker/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	_ = godotenv.Load()

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yml")
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to load configuration %s: %v\n", cfgPath, err)
		os.Exit(1)
	}
	cfg.Server.Port = utils.GetEnv("SERVER_PORT", cfg.Server.Port)

	zapLogger, err := logger.Init(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	appLogger := logger.NewSlogAdapter()
	appLogger.Info("Configuration loaded", "path", cfgPath)

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	registry := prometheus.NewRegistry()
	chains := networkdefinition.NewChainDefinitionProvider(appLogger, cfg.SupportedChains)
	analyzer := service.NewWalletAnalyzer(
		simulator.New(appLogger),
		chains,
		addrvalidator.New(cfg.Analysis.StrictAddressValidation),
		metrics.NewRecorder(registry),
		appLogger,
		cfg,
	)
	statsHandler := restapi.NewStatsHandler(analyzer, chains, cfg.Cache, appLogger)
	if cfg.Cache.PreloadFile != "" {
		if stats, err := resultwriter.ReadResults(cfg.Cache.PreloadFile); err != nil {
			appLogger.Warn("Failed to preload stats cache", "path", cfg.Cache.PreloadFile, "error", err)
		} else {
			statsHandler.Preload(stats)
		}
	}
	router := restapi.SetupRouter(statsHandler, registry, cfg, appLogger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		appLogger.Info("Server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}
	appLogger.Info("Server exiting")
}
