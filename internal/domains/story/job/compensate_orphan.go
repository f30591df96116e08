package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"storymap-backend/internal/domains/story/service"
	"storymap-backend/internal/infrastructure/metrics"
	"storymap-backend/internal/shared"
)

// ================================================
// COMPENSATE ORPHAN STORY JOB HANDLER
// ================================================

type CompensateOrphanHandler struct {
	maintenance service.MaintenanceService
	metrics     *metrics.Metrics
}

func NewCompensateOrphanHandler(maintenance service.MaintenanceService, m *metrics.Metrics) *CompensateOrphanHandler {
	return &CompensateOrphanHandler{
		maintenance: maintenance,
		metrics:     m,
	}
}

// ProcessTask deletes the story if it is still unlinked
func (h *CompensateOrphanHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.CompensateOrphanPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal CompensateOrphan payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	storyID, err := uuid.Parse(payload.StoryID)
	if err != nil {
		log.Error().Str("story_id", payload.StoryID).Msg("CompensateOrphan payload has an invalid story id")
		return fmt.Errorf("parse story id: %w: %w", err, asynq.SkipRetry)
	}

	log.Info().
		Str("story_id", payload.StoryID).
		Str("place_id", payload.PlaceID).
		Msg("Compensating orphan story")

	if err := h.maintenance.CompensateOrphan(ctx, storyID); err != nil {
		h.metrics.IncJob(shared.TypeCompensateOrphanStory, metrics.StatusFailure)
		log.Error().
			Err(err).
			Str("story_id", payload.StoryID).
			Msg("Failed to compensate orphan story")
		return fmt.Errorf("compensate orphan: %w", err)
	}

	h.metrics.IncJob(shared.TypeCompensateOrphanStory, metrics.StatusSuccess)
	return nil
}
