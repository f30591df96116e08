package model

import (
	"errors"

	"storymap-backend/internal/shared/apperror"
)

var ErrTraceNotFound = errors.New("trace not found")

func NewTraceNotFoundError(traceID string) *apperror.Error {
	return apperror.NotFound("Trace not found", ErrTraceNotFound).With("traceId", traceID)
}
