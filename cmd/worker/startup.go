package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"storymap-backend/pkg/container"
	"storymap-backend/pkg/logger"
)

type healthCheck struct {
	name string
	fn   func(ctx context.Context) error
}

// startServices performs health checks and starts the probe server.
func startServices(c *container.Container, cfg *Config) error {
	logger.Info("Storymap worker starting", map[string]interface{}{
		"queues":      cfg.Queues,
		"concurrency": cfg.Concurrency,
	})

	checks := []healthCheck{
		{"Redis Connection", c.Redis.HealthCheck},
		{"Database Connection", c.DB.HealthCheck},
	}
	if err := runChecks(checks); err != nil {
		return err
	}

	go startHealthCheckServer(cfg.HealthAddr, c)

	return nil
}

func runChecks(checks []healthCheck) error {
	for _, check := range checks {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := check.fn(ctx)
		cancel()

		if err != nil {
			logger.Error(check.name+" check failed", err)
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		logger.Debug(check.name + " check passed")
	}
	return nil
}

func startHealthCheckServer(addr string, c *container.Container) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"UP","service":"storymap-worker"}`))
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := c.Redis.HealthCheck(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"NOT_READY"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"READY"}`))
	})
	mux.Handle("/metrics", promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info().Str("addr", addr).Msg("[Health] Starting health check server")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("[Health] Failed to start")
	}
}
