package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"storymap-backend/internal/config"
	"storymap-backend/internal/shared"
)

const sweepBatchSize = 500

type Scheduler struct {
	scheduler *asynq.Scheduler
	cfg       config.WorkerConfig
}

func NewScheduler(redisOpt asynq.RedisConnOpt, cfg config.WorkerConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		cfg:       cfg,
	}
}

func (s *Scheduler) RegisterJobs() error {
	return s.registerSweepOrphansJob()
}

// ================================================
// Sweep orphan stories (ORPHAN_SWEEP_CRON)
// ================================================
// Backstop for stories whose place link failed and whose compensation task
// never ran to completion.
func (s *Scheduler) registerSweepOrphansJob() error {
	payload, err := json.Marshal(shared.SweepOrphansPayload{
		MinAgeSeconds: int(s.cfg.OrphanMinAge / time.Second),
		Limit:         sweepBatchSize,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeSweepOrphanStories, payload)

	_, err = s.scheduler.Register(
		s.cfg.OrphanSweepCron,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to register SweepOrphanStories job")
		return err
	}

	log.Info().Str("cron", s.cfg.OrphanSweepCron).Msg("Registered SweepOrphanStories")
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
