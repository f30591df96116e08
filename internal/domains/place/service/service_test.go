package service

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storymap-backend/internal/domains/place/model"
	"storymap-backend/internal/infrastructure/cache"
	"storymap-backend/internal/shared/apperror"
	"storymap-backend/internal/shared/query"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// memoryPlaceRepository enforces slug uniqueness like the UNIQUE constraint.
type memoryPlaceRepository struct {
	mu     sync.Mutex
	places map[uuid.UUID]*model.Place
	slugs  map[string]bool

	// stolen slugs are reported free by SlugExists but taken by Create,
	// simulating a concurrent writer winning the race.
	stolen    map[string]bool
	createErr error
}

func newMemoryPlaceRepository() *memoryPlaceRepository {
	return &memoryPlaceRepository{
		places: make(map[uuid.UUID]*model.Place),
		slugs:  make(map[string]bool),
		stolen: make(map[string]bool),
	}
}

func (r *memoryPlaceRepository) Create(_ context.Context, place *model.Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}
	if r.slugs[place.Slug] || r.stolen[place.Slug] {
		if r.stolen[place.Slug] {
			delete(r.stolen, place.Slug)
			r.slugs[place.Slug] = true
		}
		return model.ErrSlugTaken
	}

	cp := *place
	cp.CreatedAt = time.Now()
	place.CreatedAt = cp.CreatedAt
	r.places[place.ID] = &cp
	r.slugs[place.Slug] = true
	return nil
}

func (r *memoryPlaceRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.places[id]
	if !ok {
		return nil, model.ErrPlaceNotFound
	}
	return p, nil
}

func (r *memoryPlaceRepository) GetBySlug(_ context.Context, slug string) (*model.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.places {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, model.ErrPlaceNotFound
}

func (r *memoryPlaceRepository) List(_ context.Context, bounds *query.Bounds, limit int) ([]*model.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Place, 0)
	for _, p := range r.places {
		if bounds == nil || bounds.Contains(p.Lat, p.Lng) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryPlaceRepository) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.places[id]
	return ok, nil
}

func (r *memoryPlaceRepository) SlugExists(_ context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.slugs[slug], nil
}

func newTestService(repo *memoryPlaceRepository, maxAttempts int) ServiceInterface {
	assigner := NewSlugAssigner(repo, cache.NoopLocker{}, maxAttempts, time.Second, nil)
	return NewPlaceService(repo, assigner)
}

func placeRequest(name string, lat, lng float64) model.CreatePlaceRequest {
	return model.CreatePlaceRequest{Name: name, Lat: lat, Lng: lng}
}

func TestCreatePlace_AssignsSequentialSlugs(t *testing.T) {
	repo := newMemoryPlaceRepository()
	svc := newTestService(repo, 50)
	ctx := context.Background()

	want := []string{"san-jose", "san-jose-1", "san-jose-2"}
	for _, slug := range want {
		place, err := svc.CreatePlace(ctx, placeRequest("San José", 9.93, -84.08))
		require.NoError(t, err)
		assert.Equal(t, slug, place.Slug)
		assert.Regexp(t, slugPattern, place.Slug)
		assert.NotEqual(t, uuid.Nil, place.ID)
	}
}

func TestCreatePlace_FallbackSlugForNonASCIIName(t *testing.T) {
	repo := newMemoryPlaceRepository()
	svc := newTestService(repo, 50)

	place, err := svc.CreatePlace(context.Background(), placeRequest("東京", 35.68, 139.69))
	require.NoError(t, err)
	assert.Equal(t, "place", place.Slug)
	assert.Equal(t, "東京", place.Name)
}

func TestCreatePlace_SlugExhausted(t *testing.T) {
	repo := newMemoryPlaceRepository()
	repo.slugs["rome"] = true
	repo.slugs["rome-1"] = true
	repo.slugs["rome-2"] = true

	svc := newTestService(repo, 3)

	_, err := svc.CreatePlace(context.Background(), placeRequest("Rome", 41.9, 12.5))
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindSlugExhausted))
	assert.Len(t, repo.places, 0)
}

func TestCreatePlace_ReassignsAfterLosingInsertRace(t *testing.T) {
	repo := newMemoryPlaceRepository()
	repo.stolen["oslo"] = true

	svc := newTestService(repo, 50)

	place, err := svc.CreatePlace(context.Background(), placeRequest("Oslo", 59.91, 10.75))
	require.NoError(t, err)
	assert.Equal(t, "oslo-1", place.Slug)
}

func TestCreatePlace_ValidationFailureStoresNothing(t *testing.T) {
	repo := newMemoryPlaceRepository()
	svc := newTestService(repo, 50)

	_, err := svc.CreatePlace(context.Background(), placeRequest("", 120, 0))
	require.Error(t, err)

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Equal(t, []string{model.MsgNameRequired, model.MsgLatRange}, appErr.Details)
	assert.Empty(t, repo.places)
}

func TestCreatePlace_StorageError(t *testing.T) {
	repo := newMemoryPlaceRepository()
	repo.createErr = errors.New("connection reset")
	svc := newTestService(repo, 50)

	_, err := svc.CreatePlace(context.Background(), placeRequest("Quito", -0.18, -78.47))
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindStorage))
	assert.Equal(t, "Failed to create place", err.(*apperror.Error).Message)
}

func TestCreatePlace_ConcurrentSameNameGetsDistinctSlugs(t *testing.T) {
	repo := newMemoryPlaceRepository()
	svc := newTestService(repo, 50)

	const n = 10
	var wg sync.WaitGroup
	slugs := make(chan string, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			place, err := svc.CreatePlace(context.Background(), placeRequest("Accra", 5.6, -0.19))
			if err == nil {
				slugs <- place.Slug
			}
		}()
	}
	wg.Wait()
	close(slugs)

	seen := map[string]bool{}
	for s := range slugs {
		assert.False(t, seen[s], "duplicate slug %s", s)
		seen[s] = true
	}
}

func TestListPlaces_BoundsIncludeZero(t *testing.T) {
	repo := newMemoryPlaceRepository()
	svc := newTestService(repo, 50)
	ctx := context.Background()

	for _, p := range []struct {
		name     string
		lat, lng float64
	}{
		{"A", 10, 10},
		{"B", 50, 50},
		{"C", -10, -10},
	} {
		_, err := svc.CreatePlace(ctx, placeRequest(p.name, p.lat, p.lng))
		require.NoError(t, err)
	}

	bounds, err := query.ParseBounds("0,0,60,60")
	require.NoError(t, err)

	places, err := svc.ListPlaces(ctx, bounds, 1000)
	require.NoError(t, err)

	var names []string
	for _, p := range places {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"A", "B"}, names)
}

func TestGetPlace_NotFound(t *testing.T) {
	svc := newTestService(newMemoryPlaceRepository(), 50)
	id := uuid.New()

	_, err := svc.GetPlace(context.Background(), id)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindNotFound, appErr.Kind)
	assert.Equal(t, id.String(), appErr.Fields["placeId"])
}
