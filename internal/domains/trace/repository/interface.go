package repository

import (
	"context"

	"github.com/google/uuid"

	"storymap-backend/internal/domains/trace/model"
)

type TraceRepository interface {
	// Create inserts the trace. A nil title is stored as NULL and read back
	// as the host until enrichment fills it.
	Create(ctx context.Context, trace *model.NewTrace) (*model.Trace, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.Trace, error)

	// ListByPlace returns a page of traces, newest first, plus the total.
	ListByPlace(ctx context.Context, placeID uuid.UUID, limit, offset int) ([]*model.Trace, int, error)

	// FillMetadata sets only the columns that are still NULL.
	FillMetadata(ctx context.Context, id uuid.UUID, meta model.Metadata) (*model.Trace, error)
}
