package model

import (
	"errors"
	"fmt"

	"storymap-backend/internal/shared/apperror"
)

var (
	ErrPlaceNotFound = errors.New("place not found")
	ErrSlugTaken     = errors.New("place slug already taken")
)

func NewPlaceNotFoundError(placeID string) *apperror.Error {
	return apperror.NotFound("Place not found", ErrPlaceNotFound).With("placeId", placeID)
}

func NewSlugExhaustedError(base string, attempts int) *apperror.Error {
	return apperror.SlugExhausted(
		fmt.Sprintf("all %d slug candidates for %q are taken", attempts, base),
		ErrSlugTaken,
	)
}
