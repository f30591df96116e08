package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"storymap-backend/internal/domains/place/model"
	"storymap-backend/internal/infrastructure/cache"
	"storymap-backend/internal/infrastructure/metrics"
	"storymap-backend/internal/shared/apperror"
	"storymap-backend/internal/shared/utils"
)

// FallbackSlug is used when a name has no ASCII letters or digits.
const FallbackSlug = "place"

const slugLockPrefix = "lock:place-slug:"

// SlugChecker is the part of the place store the assigner probes.
type SlugChecker interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// SlugAssigner picks the first free slug among base, base-1, base-2, ...
type SlugAssigner struct {
	slugs       SlugChecker
	locker      cache.Locker
	maxAttempts int
	lockTTL     time.Duration
	metrics     *metrics.Metrics
}

func NewSlugAssigner(slugs SlugChecker, locker cache.Locker, maxAttempts int, lockTTL time.Duration, m *metrics.Metrics) *SlugAssigner {
	if locker == nil {
		locker = cache.NoopLocker{}
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &SlugAssigner{
		slugs:       slugs,
		locker:      locker,
		maxAttempts: maxAttempts,
		lockTTL:     lockTTL,
		metrics:     m,
	}
}

// BaseSlug returns the slug name would get without collisions.
func BaseSlug(name string) string {
	if base := utils.GenerateSlug(name); base != "" {
		return base
	}
	return FallbackSlug
}

// Reserve finds a free slug for name. The returned release must be called
// once the row using the slug has been written (or the write failed), so
// concurrent creators of the same base wait for it.
func (a *SlugAssigner) Reserve(ctx context.Context, name string) (string, cache.ReleaseFunc, error) {
	base := BaseSlug(name)

	release, err := a.locker.Acquire(ctx, slugLockPrefix+base, a.lockTTL)
	if err != nil {
		if !errors.Is(err, cache.ErrLockTimeout) {
			return "", nil, err
		}
		// The unique constraint still protects us; carry on unlocked.
		log.Warn().Str("base_slug", base).Msg("slug lock wait timed out")
		release = func() {}
	}

	for n := 0; n < a.maxAttempts; n++ {
		candidate := utils.SlugCandidate(base, n)

		taken, err := a.slugs.SlugExists(ctx, candidate)
		if err != nil {
			release()
			return "", nil, apperror.Storage("Failed to create place", err)
		}
		if !taken {
			a.metrics.AddSlugCollisions(n)
			return candidate, release, nil
		}
	}

	release()
	a.metrics.AddSlugCollisions(a.maxAttempts)
	return "", nil, model.NewSlugExhaustedError(base, a.maxAttempts)
}
