package service

import (
	"context"
	"errors"

	"storymap-backend/internal/domains/question/model"
	"storymap-backend/internal/domains/question/repository"
	"storymap-backend/internal/shared/apperror"
)

type ServiceInterface interface {
	ListActiveQuestions(ctx context.Context) ([]*model.Question, error)

	// RequireActive fails with NotFound or InactiveReference unless the
	// question exists and accepts answers.
	RequireActive(ctx context.Context, id int64) (*model.Question, error)
}

type questionService struct {
	repo repository.QuestionRepository
}

func NewQuestionService(repo repository.QuestionRepository) ServiceInterface {
	return &questionService{repo: repo}
}

func (s *questionService) ListActiveQuestions(ctx context.Context) ([]*model.Question, error) {
	questions, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, apperror.Storage("Failed to fetch questions", err)
	}
	return questions, nil
}

func (s *questionService) RequireActive(ctx context.Context, id int64) (*model.Question, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrQuestionNotFound) {
			return nil, model.NewQuestionNotFoundError(id)
		}
		return nil, apperror.Storage("Failed to create story", err)
	}
	if !q.IsActive {
		return nil, model.NewQuestionInactiveError(id)
	}
	return q, nil
}
