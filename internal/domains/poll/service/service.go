package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	placeModel "storymap-backend/internal/domains/place/model"
	"storymap-backend/internal/domains/poll/model"
	"storymap-backend/internal/domains/poll/repository"
	"storymap-backend/internal/shared/apperror"
	"storymap-backend/internal/shared/utils"
)

const averagePlaces = 2

type ServiceInterface interface {
	SubmitPoll(ctx context.Context, placeID uuid.UUID, req model.SubmitPollRequest) error
	GetResults(ctx context.Context, placeID uuid.UUID) (*model.Results, error)
}

type PlaceChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type pollService struct {
	repo   repository.PollRepository
	places PlaceChecker
}

func NewPollService(repo repository.PollRepository, places PlaceChecker) ServiceInterface {
	return &pollService{repo: repo, places: places}
}

func (s *pollService) requirePlace(ctx context.Context, placeID uuid.UUID, failure string) error {
	exists, err := s.places.Exists(ctx, placeID)
	if err != nil {
		return apperror.Storage(failure, err)
	}
	if !exists {
		return placeModel.NewPlaceNotFoundError(placeID.String())
	}
	return nil
}

func (s *pollService) SubmitPoll(ctx context.Context, placeID uuid.UUID, req model.SubmitPollRequest) error {
	input, errs := req.Validate()
	if len(errs) > 0 {
		return apperror.Validation(errs)
	}

	if err := s.requirePlace(ctx, placeID, "Failed to submit poll"); err != nil {
		return err
	}

	resp := &model.PollResponse{
		ID:         uuid.New(),
		PlaceID:    placeID,
		Respondent: input.Respondent,
		Values:     input.Values,
	}
	if err := s.repo.Create(ctx, resp); err != nil {
		return apperror.Storage("Failed to submit poll", err)
	}

	log.Info().
		Str("place_id", placeID.String()).
		Str("respondent", string(input.Respondent)).
		Msg("Poll response recorded")
	return nil
}

func (s *pollService) GetResults(ctx context.Context, placeID uuid.UUID) (*model.Results, error) {
	if err := s.requirePlace(ctx, placeID, "Failed to fetch poll results"); err != nil {
		return nil, err
	}

	tallies, err := s.repo.Tally(ctx, placeID)
	if err != nil {
		return nil, apperror.Storage("Failed to fetch poll results", err)
	}

	results := &model.Results{
		Labels:    model.Labels[:],
		Locals:    make([]float64, model.Dimensions),
		Travelers: make([]float64, model.Dimensions),
	}
	for _, t := range tallies {
		var target []float64
		switch t.Respondent {
		case model.RespondentLocal:
			target = results.Locals
			results.Counts.Locals = t.Responses
		case model.RespondentTraveler:
			target = results.Travelers
			results.Counts.Travelers = t.Responses
		default:
			continue
		}
		for i, sum := range t.Sums {
			target[i] = utils.Average(sum, t.Responses, averagePlaces)
		}
	}

	return results, nil
}
