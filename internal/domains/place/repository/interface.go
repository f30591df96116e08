package repository

import (
	"context"

	"github.com/google/uuid"

	"storymap-backend/internal/domains/place/model"
	"storymap-backend/internal/shared/query"
)

type PlaceRepository interface {
	// Create inserts place. Returns model.ErrSlugTaken when the slug is
	// already used by another row.
	Create(ctx context.Context, place *model.Place) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.Place, error)
	GetBySlug(ctx context.Context, slug string) (*model.Place, error)

	// List returns places ordered by name, optionally inside bounds.
	List(ctx context.Context, bounds *query.Bounds, limit int) ([]*model.Place, error)

	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}
