package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"storymap-backend/internal/domains/story/service"
	"storymap-backend/internal/infrastructure/metrics"
	"storymap-backend/internal/shared"
)

// ================================================
// SWEEP ORPHAN STORIES JOB HANDLER
// ================================================

const (
	defaultSweepMinAge = 10 * time.Minute
	defaultSweepLimit  = 500
)

type SweepOrphansHandler struct {
	maintenance service.MaintenanceService
	metrics     *metrics.Metrics
}

func NewSweepOrphansHandler(maintenance service.MaintenanceService, m *metrics.Metrics) *SweepOrphansHandler {
	return &SweepOrphansHandler{
		maintenance: maintenance,
		metrics:     m,
	}
}

func (h *SweepOrphansHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	payload := shared.SweepOrphansPayload{}
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal SweepOrphans payload")
			return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
		}
	}

	minAge := time.Duration(payload.MinAgeSeconds) * time.Second
	if minAge <= 0 {
		minAge = defaultSweepMinAge
	}
	limit := payload.Limit
	if limit <= 0 {
		limit = defaultSweepLimit
	}

	log.Info().
		Dur("min_age", minAge).
		Int("limit", limit).
		Msg("Starting SweepOrphans job")

	removed, err := h.maintenance.SweepOrphans(ctx, minAge, limit)
	if err != nil {
		h.metrics.IncJob(shared.TypeSweepOrphanStories, metrics.StatusFailure)
		return fmt.Errorf("sweep orphan stories: %w", err)
	}

	h.metrics.IncJob(shared.TypeSweepOrphanStories, metrics.StatusSuccess)
	log.Info().
		Int("deleted_count", removed).
		Msg("Completed SweepOrphans job")
	return nil
}
