// cmd/worker-manager/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"cstore-prefill/internal/api"
	"cstore-prefill/internal/bootstrap"
	"cstore-prefill/internal/common/camunda"
	"cstore-prefill/internal/common/config"
	"cstore-prefill/internal/common/logger"
	"cstore-prefill/internal/common/observability"

	"cstore-prefill/internal/workers/prefill"
	ep "cstore-prefill/internal/workers/prefill/evaluate-property"
	mr "cstore-prefill/internal/workers/prefill/match-registry"
	rp "cstore-prefill/internal/workers/prefill/reconcile-property"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	tracing, err := observability.NewTracing(cfg.Tracing, cfg.App.Name, cfg.App.Version)
	if err != nil {
		zapLog.Fatal("tracing setup failed", zap.Error(err))
	}
	obs.AttachTracing(tracing)

	engine, err := bootstrap.NewEngine(ctx, cfg, obs, log)
	if err != nil {
		zapLog.Fatal("engine setup failed", zap.Error(err))
	}
	defer engine.Close()

	var readiness []api.Option
	if engine.Registry != nil {
		readiness = append(readiness, api.WithReadinessCheck("registry", engine.Registry.Ping))
	}

	// --- Zeebe workers ---
	var workers []*camunda.CamundaWorker
	var zeebe *camunda.Client
	if cfg.Camunda.Enabled {
		zeebe, err = camunda.NewClientWithConfig(ctx, camunda.ConfigFrom(cfg.Camunda))
		if err != nil {
			zapLog.Fatal("zeebe client failed", zap.Error(err))
		}
		zapLog.Info("Zeebe client connected successfully")
		readiness = append(readiness, api.WithReadinessCheck("zeebe", zeebe.HealthCheck))

		if config.IsWorkerEnabled(cfg, rp.TaskType) {
			wc := config.GetWorkerConfig(cfg, rp.TaskType)
			handler := rp.NewHandler(rp.NewConfig(wc), engine.Service, obs, log)
			workers = append(workers, startWorker(zeebe, rp.TaskType, wc, handler, log))
		}

		if config.IsWorkerEnabled(cfg, mr.TaskType) {
			wc := config.GetWorkerConfig(cfg, mr.TaskType)
			handler := mr.NewHandler(mr.NewConfig(wc), engine.Matcher, log)
			workers = append(workers, startWorker(zeebe, mr.TaskType, wc, handler, log))
		}

		if config.IsWorkerEnabled(cfg, ep.TaskType) {
			wc := config.GetWorkerConfig(cfg, ep.TaskType)
			handler := ep.NewHandler(ep.NewConfig(wc, engine.Options), log)
			workers = append(workers, startWorker(zeebe, ep.TaskType, wc, handler, log))
		}

		for _, a := range prefill.Catalog(cfg) {
			zapLog.Info("activity",
				zap.String("taskType", a.TaskType),
				zap.Bool("enabled", a.Enabled),
				zap.String("timeout", a.Timeout),
				zap.Int("retries", a.Retries),
			)
		}
		zapLog.Info("workers registered", zap.Int("count", len(workers)))
	} else {
		zapLog.Info("Camunda disabled, serving HTTP API only")
	}

	// --- HTTP API, health & metrics ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      api.NewServer(engine.Service, log, readiness...).Handler(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("HTTP server failed", zap.Error(err))
			stop()
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	zapLog.Info("Shutdown signal received, stopping workers...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}
	for _, w := range workers {
		w.Stop()
	}
	if zeebe != nil {
		if err := zeebe.Close(); err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client *camunda.Client, taskType string, wcfg config.WorkerConfig, handler camunda.JobHandler, log logger.Logger) *camunda.CamundaWorker {
	maxJobs := wcfg.MaxJobsActive
	if maxJobs <= 0 {
		maxJobs = 1
	}
	return camunda.NewWorker(client.GetClient(), taskType, maxJobs, config.GetDuration(wcfg.Timeout), handler, log)
}
