package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"storymap-backend/internal/domains/place/model"
	"storymap-backend/internal/domains/place/repository"
	"storymap-backend/internal/shared/apperror"
	"storymap-backend/internal/shared/query"
)

// maxInsertAttempts bounds how often a slug is re-assigned after losing an
// insert race on the unique constraint.
const maxInsertAttempts = 3

type placeService struct {
	repo  repository.PlaceRepository
	slugs *SlugAssigner
}

func NewPlaceService(repo repository.PlaceRepository, slugs *SlugAssigner) ServiceInterface {
	return &placeService{
		repo:  repo,
		slugs: slugs,
	}
}

func (s *placeService) CreatePlace(ctx context.Context, req model.CreatePlaceRequest) (*model.Place, error) {
	// Step 1: Validate
	input, errs := req.Validate()
	if len(errs) > 0 {
		return nil, apperror.Validation(errs)
	}

	place := &model.Place{
		ID:          uuid.New(),
		Name:        input.Name,
		Lat:         input.Lat,
		Lng:         input.Lng,
		Country:     input.Country,
		Continent:   input.Continent,
		Description: input.Description,
	}

	// Step 2: Assign slug and insert. Losing a race re-runs the probe.
	for attempt := 1; attempt <= maxInsertAttempts; attempt++ {
		slug, release, err := s.slugs.Reserve(ctx, place.Name)
		if err != nil {
			return nil, err
		}

		place.Slug = slug
		err = s.repo.Create(ctx, place)
		release()

		if err == nil {
			log.Info().
				Str("place_id", place.ID.String()).
				Str("slug", place.Slug).
				Msg("Place created")
			return place, nil
		}

		if !errors.Is(err, model.ErrSlugTaken) {
			return nil, apperror.Storage("Failed to create place", err)
		}

		log.Warn().
			Str("slug", slug).
			Int("attempt", attempt).
			Msg("Slug taken at insert, reassigning")
	}

	return nil, model.NewSlugExhaustedError(BaseSlug(place.Name), maxInsertAttempts)
}

func (s *placeService) GetPlace(ctx context.Context, id uuid.UUID) (*model.Place, error) {
	place, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPlaceNotFound) {
			return nil, model.NewPlaceNotFoundError(id.String())
		}
		return nil, apperror.Storage("Failed to fetch place", err)
	}
	return place, nil
}

func (s *placeService) GetPlaceBySlug(ctx context.Context, slug string) (*model.Place, error) {
	place, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, model.ErrPlaceNotFound) {
			return nil, apperror.NotFound("Place not found", err).With("slug", slug)
		}
		return nil, apperror.Storage("Failed to fetch place", err)
	}
	return place, nil
}

func (s *placeService) ListPlaces(ctx context.Context, bounds *query.Bounds, limit int) ([]*model.Place, error) {
	if limit < 1 {
		limit = query.DefaultPlaceLimit
	}
	if limit > query.MaxPlaceLimit {
		limit = query.MaxPlaceLimit
	}

	places, err := s.repo.List(ctx, bounds, limit)
	if err != nil {
		return nil, apperror.Storage("Failed to fetch places", err)
	}
	return places, nil
}
