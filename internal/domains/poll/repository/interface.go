package repository

import (
	"context"

	"github.com/google/uuid"

	"storymap-backend/internal/domains/poll/model"
)

type PollRepository interface {
	Create(ctx context.Context, resp *model.PollResponse) error

	// Tally sums every dimension per respondent group of a place.
	// Groups without responses are absent.
	Tally(ctx context.Context, placeID uuid.UUID) ([]model.Tally, error)
}
