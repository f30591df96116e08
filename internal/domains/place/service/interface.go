package service

import (
	"context"

	"github.com/google/uuid"

	"storymap-backend/internal/domains/place/model"
	"storymap-backend/internal/shared/query"
)

type ServiceInterface interface {
	// CreatePlace validates req, assigns a unique slug and stores the place.
	CreatePlace(ctx context.Context, req model.CreatePlaceRequest) (*model.Place, error)

	GetPlace(ctx context.Context, id uuid.UUID) (*model.Place, error)
	GetPlaceBySlug(ctx context.Context, slug string) (*model.Place, error)
	ListPlaces(ctx context.Context, bounds *query.Bounds, limit int) ([]*model.Place, error)
}
