package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"storymap-backend/internal/domains/story/model"
	"storymap-backend/internal/shared/apperror"
	"storymap-backend/internal/shared/query"
)

func (s *StoryService) ModerateStory(ctx context.Context, id uuid.UUID, req model.ModerateStoryRequest) (*model.Story, bool, error) {
	// Step 1: Parse target
	target, ok := model.ParseStatus(req.Status)
	if !ok {
		return nil, false, apperror.BadRequest(model.MsgModerationStatus)
	}

	// Step 2: Load current state
	story, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrStoryNotFound) {
			return nil, false, model.NewStoryNotFoundError(id.String())
		}
		return nil, false, apperror.Storage("Failed to moderate story", err)
	}

	// Step 3: Apply. A lost race re-reads once: the winner may already have
	// moved the story to our target, which makes this call a no-op.
	for attempt := 0; attempt < 2; attempt++ {
		tr, err := model.PlanTransition(story.Status, target)
		if err != nil {
			return nil, false, model.NewInvalidTransitionError(story.Status, target)
		}
		if tr.Noop {
			return story, false, nil
		}

		updated, err := s.repo.UpdateStatus(ctx, id, tr, s.now().UTC())
		if err == nil {
			s.metrics.IncModerationTransition(string(target))
			log.Info().
				Str("story_id", id.String()).
				Str("from", string(tr.From)).
				Str("to", string(tr.To)).
				Msg("Story moderated")
			return updated, true, nil
		}
		if !errors.Is(err, model.ErrStatusChanged) {
			return nil, false, apperror.Storage("Failed to moderate story", err)
		}

		story, err = s.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, model.ErrStoryNotFound) {
				return nil, false, model.NewStoryNotFoundError(id.String())
			}
			return nil, false, apperror.Storage("Failed to moderate story", err)
		}
	}

	return nil, false, model.NewInvalidTransitionError(story.Status, target)
}

func (s *StoryService) ListQueue(ctx context.Context, status model.Status, page query.Page) ([]*model.Story, query.PageMeta, error) {
	if status == "" {
		status = model.StatusPending
	}
	if !status.IsValid() {
		return nil, query.PageMeta{}, apperror.BadRequest(model.MsgListStatusInvalid)
	}
	if err := page.Validate(); err != nil {
		return nil, query.PageMeta{}, err
	}

	stories, total, err := s.repo.ListByStatus(ctx, status, page.Limit, page.Offset)
	if err != nil {
		return nil, query.PageMeta{}, apperror.Storage("Failed to fetch stories", err)
	}
	return stories, query.NewPageMeta(total, page), nil
}
