package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"storymap-backend/internal/domains/story/model"
	"storymap-backend/internal/shared/query"
)

// ServiceInterface is the public story surface.
type ServiceInterface interface {
	// CreateStory validates, checks references and stores a pending story
	// linked to its place. A story is never left readable without its link.
	CreateStory(ctx context.Context, req model.CreateStoryRequest) (*model.Story, error)

	// GetStory returns an approved story.
	GetStory(ctx context.Context, id uuid.UUID) (*model.Story, error)

	ListStories(ctx context.Context, params model.ListStoriesParams) ([]*model.Story, query.PageMeta, error)

	Vote(ctx context.Context, id uuid.UUID, req model.VoteRequest) (*model.Story, error)
}

// ModerationService drives the pending → approved | rejected machine.
type ModerationService interface {
	// ModerateStory applies the requested status. The bool is false when the
	// story already had that status and nothing was written.
	ModerateStory(ctx context.Context, id uuid.UUID, req model.ModerateStoryRequest) (*model.Story, bool, error)

	ListQueue(ctx context.Context, status model.Status, page query.Page) ([]*model.Story, query.PageMeta, error)
}

// MaintenanceService cleans up stories whose place link was never written.
type MaintenanceService interface {
	CompensateOrphan(ctx context.Context, storyID uuid.UUID) error
	SweepOrphans(ctx context.Context, minAge time.Duration, limit int) (int, error)
}

// PlaceChecker is the place lookup a submission needs.
type PlaceChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
