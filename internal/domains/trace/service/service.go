package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	placeModel "storymap-backend/internal/domains/place/model"
	"storymap-backend/internal/domains/trace/model"
	"storymap-backend/internal/domains/trace/repository"
	"storymap-backend/internal/infrastructure/fetcher"
	"storymap-backend/internal/infrastructure/queue"
	"storymap-backend/internal/shared"
	"storymap-backend/internal/shared/apperror"
	"storymap-backend/internal/shared/query"
)

type TraceService struct {
	repo    repository.TraceRepository
	places  PlaceChecker
	queue   queue.Enqueuer
	fetcher fetcher.Fetcher
}

func NewTraceService(
	repo repository.TraceRepository,
	places PlaceChecker,
	enqueuer queue.Enqueuer,
	f fetcher.Fetcher,
) *TraceService {
	return &TraceService{
		repo:    repo,
		places:  places,
		queue:   enqueuer,
		fetcher: f,
	}
}

func (s *TraceService) CreateTrace(ctx context.Context, req model.CreateTraceRequest) (*model.Trace, error) {
	// Step 1: Validate
	input, errs := req.Validate()
	if len(errs) > 0 {
		return nil, apperror.Validation(errs)
	}

	// Step 2: Place must exist
	exists, err := s.places.Exists(ctx, input.PlaceID)
	if err != nil {
		return nil, apperror.Storage("Failed to create trace", err)
	}
	if !exists {
		return nil, placeModel.NewPlaceNotFoundError(input.PlaceID.String())
	}

	// Step 3: Insert
	trace, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, apperror.Storage("Failed to create trace", err)
	}

	// Step 4: Enrichment is best effort; the trace is already usable.
	if input.Title == nil || input.Description == nil || input.Image == nil {
		payload := shared.FetchTraceMetadataPayload{TraceID: trace.ID.String()}
		if err := s.queue.Enqueue(ctx, shared.TypeFetchTraceMetadata, payload,
			asynq.Queue(shared.QueueDefault),
			asynq.MaxRetry(3),
			asynq.Timeout(30*time.Second),
		); err != nil {
			log.Warn().
				Err(err).
				Str("trace_id", trace.ID.String()).
				Msg("Failed to enqueue trace enrichment")
		}
	}

	return trace, nil
}

func (s *TraceService) ListTraces(ctx context.Context, placeID uuid.UUID, page query.Page) ([]*model.Trace, query.PageMeta, error) {
	if err := page.Validate(); err != nil {
		return nil, query.PageMeta{}, err
	}

	traces, total, err := s.repo.ListByPlace(ctx, placeID, page.Limit, page.Offset)
	if err != nil {
		return nil, query.PageMeta{}, apperror.Storage("Failed to fetch traces", err)
	}
	return traces, query.NewPageMeta(total, page), nil
}

// EnrichTrace downloads the trace URL and fills the fields the submitter
// left empty. Fields the submitter provided are never overwritten.
func (s *TraceService) EnrichTrace(ctx context.Context, id uuid.UUID) (*model.Trace, error) {
	trace, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrTraceNotFound) {
			return nil, model.NewTraceNotFoundError(id.String())
		}
		return nil, fmt.Errorf("load trace: %w", err)
	}

	meta, err := s.fetcher.Fetch(ctx, trace.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", trace.Host, err)
	}

	updated, err := s.repo.FillMetadata(ctx, id, model.Metadata{
		Title:       meta.Title,
		Description: meta.Description,
		Image:       meta.Image,
	})
	if err != nil {
		return nil, fmt.Errorf("store trace metadata: %w", err)
	}

	log.Info().
		Str("trace_id", id.String()).
		Str("host", trace.Host).
		Msg("Trace enriched")
	return updated, nil
}
