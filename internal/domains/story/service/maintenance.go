package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

func (s *StoryService) CompensateOrphan(ctx context.Context, storyID uuid.UUID) error {
	deleted, err := s.repo.DeleteOrphan(ctx, storyID)
	if err != nil {
		return fmt.Errorf("delete orphan story %s: %w", storyID, err)
	}

	log.Info().
		Str("story_id", storyID.String()).
		Bool("deleted", deleted).
		Msg("Orphan story compensated")
	return nil
}

// SweepOrphans removes up to limit unlinked stories older than minAge.
// Young rows are skipped because their submission may still be in flight.
func (s *StoryService) SweepOrphans(ctx context.Context, minAge time.Duration, limit int) (int, error) {
	ids, err := s.repo.ListOrphanIDs(ctx, s.now().Add(-minAge), limit)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, id := range ids {
		deleted, err := s.repo.DeleteOrphan(ctx, id)
		if err != nil {
			log.Error().Err(err).Str("story_id", id.String()).Msg("Failed to sweep orphan story")
			continue
		}
		if deleted {
			removed++
		}
	}

	return removed, nil
}
