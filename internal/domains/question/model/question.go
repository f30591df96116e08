package model

import (
	"errors"
	"strconv"

	"storymap-backend/internal/shared/apperror"
)

// Question is a writing prompt a story may answer.
type Question struct {
	ID       int64  `json:"id"`
	Text     string `json:"text"`
	IsActive bool   `json:"is_active"`
}

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrQuestionInactive = errors.New("question is not active")
)

func NewQuestionNotFoundError(id int64) *apperror.Error {
	return apperror.NotFound("Question not found", ErrQuestionNotFound).With("questionId", id)
}

func NewQuestionInactiveError(id int64) *apperror.Error {
	return apperror.InactiveReference("Question is not active", ErrQuestionInactive).With("questionId", id)
}

// ParseID reads a question id path/query value.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
