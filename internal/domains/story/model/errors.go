package model

import (
	"errors"
	"fmt"

	"storymap-backend/internal/shared/apperror"
)

var (
	ErrStoryNotFound     = errors.New("story not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrStatusChanged means a conditional status update found the row in a
	// different state than expected (another moderator got there first).
	ErrStatusChanged = errors.New("story status changed concurrently")
	ErrLinkFailed    = errors.New("failed to link story to place")
)

func NewStoryNotFoundError(storyID string) *apperror.Error {
	return apperror.NotFound("Story not found", ErrStoryNotFound).With("storyId", storyID)
}

func NewInvalidTransitionError(from, to Status) *apperror.Error {
	return apperror.InvalidTransition(
		"Invalid status transition",
		fmt.Sprintf("cannot move a %s story to %s", from, to),
		ErrInvalidTransition,
	)
}
