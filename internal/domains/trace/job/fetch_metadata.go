package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"storymap-backend/internal/domains/trace/service"
	"storymap-backend/internal/infrastructure/fetcher"
	"storymap-backend/internal/infrastructure/metrics"
	"storymap-backend/internal/shared"
	"storymap-backend/internal/shared/apperror"
)

// ================================================
// FETCH TRACE METADATA JOB HANDLER
// ================================================

type FetchMetadataHandler struct {
	enrichment service.EnrichmentService
	metrics    *metrics.Metrics
}

func NewFetchMetadataHandler(enrichment service.EnrichmentService, m *metrics.Metrics) *FetchMetadataHandler {
	return &FetchMetadataHandler{
		enrichment: enrichment,
		metrics:    m,
	}
}

func (h *FetchMetadataHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.FetchTraceMetadataPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal FetchTraceMetadata payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	traceID, err := uuid.Parse(payload.TraceID)
	if err != nil {
		return fmt.Errorf("parse trace id: %w: %w", err, asynq.SkipRetry)
	}

	log.Info().Str("trace_id", payload.TraceID).Msg("Fetching trace metadata")

	_, err = h.enrichment.EnrichTrace(ctx, traceID)
	if err != nil {
		h.metrics.IncJob(shared.TypeFetchTraceMetadata, metrics.StatusFailure)
		log.Warn().
			Err(err).
			Str("trace_id", payload.TraceID).
			Msg("Failed to enrich trace")

		if permanent(err) {
			return fmt.Errorf("enrich trace: %w: %w", err, asynq.SkipRetry)
		}
		return fmt.Errorf("enrich trace: %w", err)
	}

	h.metrics.IncJob(shared.TypeFetchTraceMetadata, metrics.StatusSuccess)
	return nil
}

// permanent errors will fail the same way on every retry.
func permanent(err error) bool {
	return errors.Is(err, fetcher.ErrForbiddenAddress) ||
		errors.Is(err, fetcher.ErrUnexpectedStatus) ||
		errors.Is(err, fetcher.ErrBodyTooLarge) ||
		apperror.IsKind(err, apperror.KindNotFound)
}
