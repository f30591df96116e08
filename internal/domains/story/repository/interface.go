package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"storymap-backend/internal/domains/story/model"
)

type StoryRepository interface {
	// ========================================
	// Submission
	// ========================================

	// Create inserts the story row. The caller links it to a place.
	Create(ctx context.Context, story *model.Story) error

	// LinkPlace writes the story↔place link.
	LinkPlace(ctx context.Context, storyID, placeID uuid.UUID) error

	// DeleteOrphan deletes the story when it has no place link. Deleting an
	// absent or linked row is not an error; the bool reports a deletion.
	DeleteOrphan(ctx context.Context, storyID uuid.UUID) (bool, error)

	// ========================================
	// Reads (only linked stories are visible)
	// ========================================

	GetByID(ctx context.Context, id uuid.UUID) (*model.Story, error)
	ListByPlace(ctx context.Context, params model.ListStoriesParams) ([]*model.Story, int, error)

	// ListByStatus is the moderation queue, oldest first.
	ListByStatus(ctx context.Context, status model.Status, limit, offset int) ([]*model.Story, int, error)

	// ========================================
	// Moderation & votes
	// ========================================

	// UpdateStatus applies tr only while the row is still in tr.From.
	// published_at is stamped on the first approval only.
	// Returns model.ErrStatusChanged when the row moved on meanwhile.
	UpdateStatus(ctx context.Context, id uuid.UUID, tr model.Transition, at time.Time) (*model.Story, error)

	// Vote adjusts counters of an approved story.
	Vote(ctx context.Context, id uuid.UUID, direction model.VoteDirection) (*model.Story, error)

	// ========================================
	// Maintenance
	// ========================================

	// ListOrphanIDs returns unlinked stories created before olderThan.
	ListOrphanIDs(ctx context.Context, olderThan time.Time, limit int) ([]uuid.UUID, error)
}
