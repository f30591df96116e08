package database

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// Ping verifies the pool is initialized and the server answers.
func (db *PostgresDB) Ping(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close is idempotent.
func (db *PostgresDB) Close() error {
	if db.Pool == nil {
		return nil
	}

	log.Info().Msg("closing postgres pool")
	db.Pool.Close()
	db.Pool = nil
	return nil
}

// PoolStats is a snapshot of pgxpool counters, exported as metrics.
type PoolStats struct {
	AcquiredConns int32
	IdleConns     int32
	TotalConns    int32
	MaxConns      int32
	AcquireCount  int64
	EmptyAcquire  int64
}

func (db *PostgresDB) Stats() (*PoolStats, error) {
	if db.Pool == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	raw := db.Pool.Stat()
	return &PoolStats{
		AcquiredConns: raw.AcquiredConns(),
		IdleConns:     raw.IdleConns(),
		TotalConns:    raw.TotalConns(),
		MaxConns:      raw.MaxConns(),
		AcquireCount:  raw.AcquireCount(),
		EmptyAcquire:  raw.EmptyAcquireCount(),
	}, nil
}

// Collectors exposes pool gauges read from Stats at scrape time.
func (db *PostgresDB) Collectors() []prometheus.Collector {
	gauge := func(name, help string, read func(*PoolStats) float64) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "storymap",
			Subsystem: "db_pool",
			Name:      name,
			Help:      help,
		}, func() float64 {
			stats, err := db.Stats()
			if err != nil {
				return 0
			}
			return read(stats)
		})
	}

	return []prometheus.Collector{
		gauge("acquired_conns", "Connections currently in use.", func(s *PoolStats) float64 { return float64(s.AcquiredConns) }),
		gauge("idle_conns", "Idle connections in the pool.", func(s *PoolStats) float64 { return float64(s.IdleConns) }),
		gauge("total_conns", "Total connections in the pool.", func(s *PoolStats) float64 { return float64(s.TotalConns) }),
		gauge("max_conns", "Configured connection ceiling.", func(s *PoolStats) float64 { return float64(s.MaxConns) }),
	}
}
