package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	placeModel "storymap-backend/internal/domains/place/model"
	questionService "storymap-backend/internal/domains/question/service"
	"storymap-backend/internal/domains/story/model"
	"storymap-backend/internal/domains/story/repository"
	"storymap-backend/internal/infrastructure/metrics"
	"storymap-backend/internal/infrastructure/queue"
	"storymap-backend/internal/shared"
	"storymap-backend/internal/shared/apperror"
	"storymap-backend/internal/shared/query"
	"storymap-backend/pkg/database"
)

const compensationTimeout = 5 * time.Second

type StoryService struct {
	repo      repository.StoryRepository
	places    PlaceChecker
	questions questionService.ServiceInterface
	tx        database.TxManager
	queue     queue.Enqueuer
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewStoryService(
	repo repository.StoryRepository,
	places PlaceChecker,
	questions questionService.ServiceInterface,
	tx database.TxManager,
	enqueuer queue.Enqueuer,
	m *metrics.Metrics,
) *StoryService {
	return &StoryService{
		repo:      repo,
		places:    places,
		questions: questions,
		tx:        tx,
		queue:     enqueuer,
		metrics:   m,
		now:       time.Now,
	}
}

// =====================================================
// SUBMISSION
// =====================================================

func (s *StoryService) CreateStory(ctx context.Context, req model.CreateStoryRequest) (*model.Story, error) {
	// Step 1: Validate payload
	input, errs := req.Validate()
	if len(errs) > 0 {
		return nil, apperror.Validation(errs)
	}

	// Step 2: Referential checks
	exists, err := s.places.Exists(ctx, input.PlaceID)
	if err != nil {
		return nil, apperror.Storage("Failed to create story", err)
	}
	if !exists {
		return nil, placeModel.NewPlaceNotFoundError(input.PlaceID.String())
	}

	if input.QuestionID != nil {
		if _, err := s.questions.RequireActive(ctx, *input.QuestionID); err != nil {
			return nil, err
		}
	}

	story := &model.Story{
		ID:             uuid.New(),
		PlaceID:        input.PlaceID,
		AnswerText:     input.AnswerText,
		QuestionID:     input.QuestionID,
		Tags:           input.Tags,
		Photos:         input.Photos,
		AudioURL:       input.AudioURL,
		SubmitterEmail: input.SubmitterEmail,
		Status:         model.StatusPending,
	}

	// Step 3: Story row and place link in one unit of work
	var linkErr error
	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, story); err != nil {
			return err
		}
		if err := s.repo.LinkPlace(txCtx, story.ID, story.PlaceID); err != nil {
			linkErr = err
			return err
		}
		return nil
	})

	if err != nil {
		if linkErr == nil {
			return nil, apperror.Storage("Failed to create story", err)
		}

		// Step 4: The link failed. Make sure the story row is gone even if
		// the store did not roll it back.
		log.Error().
			Err(linkErr).
			Str("story_id", story.ID.String()).
			Str("place_id", story.PlaceID.String()).
			Msg("Failed to link story to place")

		if cErr := s.compensate(ctx, story); cErr != nil {
			return nil, apperror.CompensationFailed("Failed to create story", errors.Join(linkErr, cErr))
		}
		if database.IsForeignKeyViolation(linkErr) {
			return nil, placeModel.NewPlaceNotFoundError(story.PlaceID.String())
		}
		return nil, apperror.Storage("Failed to create story", linkErr)
	}

	s.metrics.IncStoriesSubmitted()
	log.Info().
		Str("story_id", story.ID.String()).
		Str("place_id", story.PlaceID.String()).
		Msg("Story submitted for moderation")

	return story, nil
}

// compensate deletes an unlinked story. If that fails too, the deletion is
// handed to the worker so the orphan does not outlive the request.
func (s *StoryService) compensate(ctx context.Context, story *model.Story) error {
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	defer cancel()

	_, err := s.repo.DeleteOrphan(cctx, story.ID)
	if err == nil {
		return nil
	}

	s.metrics.IncCompensationFailures()
	log.Error().
		Err(err).
		Str("story_id", story.ID.String()).
		Msg("Compensating delete failed, scheduling retry")

	payload := shared.CompensateOrphanPayload{
		StoryID: story.ID.String(),
		PlaceID: story.PlaceID.String(),
	}
	if qErr := s.queue.Enqueue(cctx, shared.TypeCompensateOrphanStory, payload,
		asynq.Queue(shared.QueueCritical),
		asynq.MaxRetry(10),
		asynq.TaskID("compensate:"+story.ID.String()),
	); qErr != nil {
		log.Error().
			Err(qErr).
			Str("story_id", story.ID.String()).
			Msg("Failed to enqueue compensation task, orphan sweep will collect it")
	}

	return err
}

// =====================================================
// READS
// =====================================================

func (s *StoryService) GetStory(ctx context.Context, id uuid.UUID) (*model.Story, error) {
	story, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrStoryNotFound) {
			return nil, model.NewStoryNotFoundError(id.String())
		}
		return nil, apperror.Storage("Failed to fetch story", err)
	}
	if story.Status != model.StatusApproved {
		return nil, model.NewStoryNotFoundError(id.String())
	}
	return story, nil
}

func (s *StoryService) ListStories(ctx context.Context, params model.ListStoriesParams) ([]*model.Story, query.PageMeta, error) {
	if params.Status == "" {
		params.Status = model.StatusApproved
	}
	if !params.Status.IsValid() {
		return nil, query.PageMeta{}, apperror.BadRequest(model.MsgListStatusInvalid)
	}

	page := query.Page{Limit: params.Limit, Offset: params.Offset}
	if err := page.Validate(); err != nil {
		return nil, query.PageMeta{}, err
	}

	stories, total, err := s.repo.ListByPlace(ctx, params)
	if err != nil {
		return nil, query.PageMeta{}, apperror.Storage("Failed to fetch stories", err)
	}

	return stories, query.NewPageMeta(total, page), nil
}

// =====================================================
// VOTES
// =====================================================

func (s *StoryService) Vote(ctx context.Context, id uuid.UUID, req model.VoteRequest) (*model.Story, error) {
	direction, ok := model.ParseDirection(req.Direction)
	if !ok {
		return nil, apperror.BadRequest(model.MsgDirectionInvalid)
	}

	story, err := s.repo.Vote(ctx, id, direction)
	if err != nil {
		if errors.Is(err, model.ErrStoryNotFound) {
			return nil, model.NewStoryNotFoundError(id.String())
		}
		return nil, apperror.Storage("Failed to record vote", err)
	}
	return story, nil
}
