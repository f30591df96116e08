package main

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"storymap-backend/internal/config"
	"storymap-backend/internal/shared"
	"storymap-backend/pkg/container"
)

// Config holds what the worker process needs beyond the shared container.
type Config struct {
	RedisOpt    asynq.RedisClientOpt
	Concurrency int
	Queues      map[string]int
	HealthAddr  string
	Jobs        config.WorkerConfig
}

func loadConfig(c *container.Container) *Config {
	cfg := &Config{
		RedisOpt:    c.RedisOpt,
		Concurrency: c.Config.Worker.Concurrency,
		Queues: map[string]int{
			shared.QueueCritical: 6,
			shared.QueueDefault:  3,
			shared.QueueLow:      1,
		},
		HealthAddr: c.Config.Worker.HealthAddr,
		Jobs:       c.Config.Worker,
	}

	log.Info().
		Str("redis", cfg.RedisOpt.Addr).
		Int("concurrency", cfg.Concurrency).
		Str("sweep_cron", cfg.Jobs.OrphanSweepCron).
		Msg("[Config] Worker configuration loaded")

	return cfg
}
