// cmd/scoring-server/main.go
package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"credit-scoring-service/internal/common/config"
	"credit-scoring-service/internal/common/logger"
	"credit-scoring-service/internal/common/observability"
	"credit-scoring-service/internal/scoring"
	"credit-scoring-service/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrapLog := logger.New("info", "console")
		bootstrapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting credit scoring server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	engine := scoring.NewEngine(log)
	srv := server.New(cfg, log, engine, obs)

	// Expose Prometheus metrics on a dedicated listener.
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Metrics server started", zap.String("address", cfg.Server.MetricsAddress()))
		if err := http.ListenAndServe(cfg.Server.MetricsAddress(), nil); err != nil {
			zapLog.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		if err := srv.Listen(); err != nil {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	if err := srv.Shutdown(); err != nil {
		zapLog.Error("server shutdown failed", zap.Error(err))
	}
	zapLog.Info("Server stopped")
}
