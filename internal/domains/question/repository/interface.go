package repository

import (
	"context"

	"storymap-backend/internal/domains/question/model"
)

type QuestionRepository interface {
	// GetByID returns model.ErrQuestionNotFound for an unknown id.
	GetByID(ctx context.Context, id int64) (*model.Question, error)

	// ListActive returns active questions ordered by id.
	ListActive(ctx context.Context) ([]*model.Question, error)
}
