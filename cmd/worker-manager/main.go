// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	commonaws "vessel-risk-workers/internal/common/aws"
	"vessel-risk-workers/internal/common/camunda"
	"vessel-risk-workers/internal/common/config"
	"vessel-risk-workers/internal/common/database"
	"vessel-risk-workers/internal/common/logger"
	"vessel-risk-workers/internal/common/observability"
	"vessel-risk-workers/internal/fleetdata"

	// Assessment Workers (4)
	avr "vessel-risk-workers/internal/workers/assessment/assess-vessel-risk"
	gfr "vessel-risk-workers/internal/workers/assessment/generate-fleet-report"
	grm "vessel-risk-workers/internal/workers/assessment/generate-risk-matrix"
	sim "vessel-risk-workers/internal/workers/assessment/simulate-scenario"

	// Data Access Workers (2)
	qvd "vessel-risk-workers/internal/workers/data-access/query-vessel-data"
	sah "vessel-risk-workers/internal/workers/data-access/search-assessment-history"

	// Notification Workers (1)
	dfa "vessel-risk-workers/internal/workers/notification/dispatch-fleet-alert"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting vessel risk worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New(cfg.Observability.ServiceName)
	defer obs.Shutdown()

	ctx := context.Background()

	var tracing *observability.Tracing
	if cfg.Observability.TracingEnabled {
		tracing, err = observability.NewTracing(cfg.Observability.ServiceName, cfg.Observability.JaegerEndpoint)
		if err != nil {
			zapLog.Warn("tracing init failed, continuing without traces", zap.Error(err))
			tracing = nil
		} else {
			zapLog.Info("Tracing enabled", zap.String("endpoint", cfg.Observability.JaegerEndpoint))
		}
	}

	// --- Init Camunda client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
		return err
	}, 10, 2*time.Second, zapLog, "Camunda client initialization")

	if err != nil {
		zapLog.Fatal("camunda client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
	zapLog.Info("Camunda client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init AWS alert clients ---
	// A failed client init only disables its channel; the dispatcher
	// degrades with a warning instead of refusing jobs.
	var emailSender dfa.EmailSender
	var topicPublisher dfa.TopicPublisher

	if cfg.Alerts.Email.Enabled {
		sesClient, err := commonaws.NewSESClient(ctx, cfg.Alerts.AWS.Region)
		if err != nil {
			zapLog.Warn("SES client init failed, email alerts disabled", zap.Error(err))
		} else {
			emailSender = sesClient
			zapLog.Info("SES client initialized", zap.String("region", cfg.Alerts.AWS.Region))
		}
	}

	if cfg.Alerts.SMS.Enabled {
		snsClient, err := commonaws.NewSNSClient(ctx, cfg.Alerts.AWS.Region)
		if err != nil {
			zapLog.Warn("SNS client init failed, SMS alerts disabled", zap.Error(err))
		} else {
			topicPublisher = snsClient
			zapLog.Info("SNS client initialized", zap.String("region", cfg.Alerts.AWS.Region))
		}
	}

	// --- Warm up the fleet dataset ---
	provider := fleetdata.NewProvider(fleetdata.NewLoader(pg.GetDB(), log))
	err = retryWithBackoff(func() error {
		_, err := provider.Scorer(ctx)
		return err
	}, 5, 2*time.Second, zapLog, "Fleet dataset warm-up")

	if err != nil {
		zapLog.Fatal("fleet dataset load failed after retries", zap.Error(err))
	}
	zapLog.Info("Fleet dataset loaded")

	var workers []*camunda.CamundaWorker

	// --- Data Access Workers (2) ---
	if wcfg := cfg.Workers[qvd.TaskType]; wcfg.Enabled {
		handler := qvd.NewHandler(
			&qvd.Config{
				Timeout: time.Duration(wcfg.Timeout) * time.Millisecond,
			},
			pg.GetDB(), log,
		)
		workers = append(workers, camunda.NewWorker(
			zeebeClient, qvd.TaskType, wcfg.MaxJobsActive,
			time.Duration(wcfg.Timeout)*time.Millisecond, handler, zapLog,
		))
	} else {
		zapLog.Info("worker disabled", zap.String("taskType", qvd.TaskType))
	}

	if wcfg := cfg.Workers[sah.TaskType]; wcfg.Enabled {
		handler := sah.NewHandler(
			&sah.Config{
				Timeout:     time.Duration(wcfg.Timeout) * time.Millisecond,
				IndexName:   cfg.Assessment.AssessmentIndex,
				DefaultSize: 10,
			},
			esClient.Client, log,
		)
		workers = append(workers, camunda.NewWorker(
			zeebeClient, sah.TaskType, wcfg.MaxJobsActive,
			time.Duration(wcfg.Timeout)*time.Millisecond, handler, zapLog,
		))
	} else {
		zapLog.Info("worker disabled", zap.String("taskType", sah.TaskType))
	}

	// --- Assessment Workers (4) ---
	avrHandler, err := avr.NewHandler(avr.HandlerOptions{
		AppConfig: cfg,
		Dependencies: avr.ServiceDependencies{
			Provider: provider,
			Cache:    redisClient.GetClient(),
			ES:       esClient.Client,
			Logger:   log,
		},
		Logger: log,
	})
	if err != nil {
		zapLog.Fatal("failed to create assess-vessel-risk handler", zap.Error(err))
	}
	if avrHandler.IsEnabled() {
		workers = append(workers, camunda.NewWorker(
			zeebeClient, avrHandler.GetTaskType(), avrHandler.GetConfig().MaxJobsActive,
			avrHandler.GetConfig().Timeout, avrHandler, zapLog,
		))
	} else {
		zapLog.Info("worker disabled", zap.String("taskType", avrHandler.GetTaskType()))
	}

	grmHandler, err := grm.NewHandler(grm.HandlerOptions{
		AppConfig: cfg,
		Dependencies: grm.ServiceDependencies{
			Provider: provider,
			Logger:   log,
		},
		Logger: log,
	})
	if err != nil {
		zapLog.Fatal("failed to create generate-risk-matrix handler", zap.Error(err))
	}
	if grmHandler.IsEnabled() {
		workers = append(workers, camunda.NewWorker(
			zeebeClient, grmHandler.GetTaskType(), grmHandler.GetConfig().MaxJobsActive,
			grmHandler.GetConfig().Timeout, grmHandler, zapLog,
		))
	} else {
		zapLog.Info("worker disabled", zap.String("taskType", grmHandler.GetTaskType()))
	}

	simHandler, err := sim.NewHandler(sim.HandlerOptions{
		AppConfig: cfg,
		Dependencies: sim.ServiceDependencies{
			Provider: provider,
			Logger:   log,
		},
		Logger: log,
	})
	if err != nil {
		zapLog.Fatal("failed to create simulate-scenario handler", zap.Error(err))
	}
	if simHandler.IsEnabled() {
		workers = append(workers, camunda.NewWorker(
			zeebeClient, simHandler.GetTaskType(), simHandler.GetConfig().MaxJobsActive,
			simHandler.GetConfig().Timeout, simHandler, zapLog,
		))
	} else {
		zapLog.Info("worker disabled", zap.String("taskType", simHandler.GetTaskType()))
	}

	gfrHandler, err := gfr.NewHandler(gfr.HandlerOptions{
		AppConfig: cfg,
		Dependencies: gfr.ServiceDependencies{
			Provider: provider,
			ES:       esClient.Client,
			Logger:   log,
		},
		Logger: log,
	})
	if err != nil {
		zapLog.Fatal("failed to create generate-fleet-report handler", zap.Error(err))
	}
	if gfrHandler.IsEnabled() {
		workers = append(workers, camunda.NewWorker(
			zeebeClient, gfrHandler.GetTaskType(), gfrHandler.GetConfig().MaxJobsActive,
			gfrHandler.GetConfig().Timeout, gfrHandler, zapLog,
		))
	} else {
		zapLog.Info("worker disabled", zap.String("taskType", gfrHandler.GetTaskType()))
	}

	// --- Notification Workers (1) ---
	dfaHandler, err := dfa.NewHandler(dfa.HandlerOptions{
		AppConfig: cfg,
		Dependencies: dfa.ServiceDependencies{
			Email:  emailSender,
			Topic:  topicPublisher,
			Logger: log,
		},
		Logger: log,
	})
	if err != nil {
		zapLog.Fatal("failed to create dispatch-fleet-alert handler", zap.Error(err))
	}
	if dfaHandler.IsEnabled() {
		workers = append(workers, camunda.NewWorker(
			zeebeClient, dfaHandler.GetTaskType(), dfaHandler.GetConfig().MaxJobsActive,
			dfaHandler.GetConfig().Timeout, dfaHandler, zapLog,
		))
	} else {
		zapLog.Info("worker disabled", zap.String("taskType", dfaHandler.GetTaskType()))
	}

	for _, w := range workers {
		w.Start()
	}
	zapLog.Info("Worker registration finished", zap.Int("workers", len(workers)))

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := pg.Ping(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "not ready",
					"error":  err.Error(),
				})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())

		addr := fmt.Sprintf(":%d", cfg.Observability.MetricsPort)
		zapLog.Info("Health/Metrics server listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop(shutdownCtx)
	}

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Camunda client", zap.Error(err))
	}

	if tracing != nil {
		if err := tracing.Shutdown(shutdownCtx); err != nil {
			zapLog.Error("Error flushing traces", zap.Error(err))
		}
	}

	zapLog.Info("Worker manager stopped gracefully")
}
