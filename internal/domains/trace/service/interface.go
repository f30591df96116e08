package service

import (
	"context"

	"github.com/google/uuid"

	"storymap-backend/internal/domains/trace/model"
	"storymap-backend/internal/shared/query"
)

type ServiceInterface interface {
	// CreateTrace stores the trace and schedules metadata enrichment.
	CreateTrace(ctx context.Context, req model.CreateTraceRequest) (*model.Trace, error)

	ListTraces(ctx context.Context, placeID uuid.UUID, page query.Page) ([]*model.Trace, query.PageMeta, error)
}

// EnrichmentService fills missing trace fields from the linked page.
type EnrichmentService interface {
	EnrichTrace(ctx context.Context, id uuid.UUID) (*model.Trace, error)
}

type PlaceChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
