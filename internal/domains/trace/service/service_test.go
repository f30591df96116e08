package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storymap-backend/internal/domains/trace/model"
	"storymap-backend/internal/infrastructure/fetcher"
	"storymap-backend/internal/shared"
	"storymap-backend/internal/shared/apperror"
	"storymap-backend/internal/shared/query"
)

// memoryTraceRepository keeps a nil title as "unset" like the NULL column.
type memoryTraceRepository struct {
	mu     sync.Mutex
	rows   map[uuid.UUID]*storedTrace
	clock  time.Time
	create error
}

type storedTrace struct {
	trace    model.Trace
	titleSet bool
}

func newMemoryTraceRepository() *memoryTraceRepository {
	return &memoryTraceRepository{
		rows:  make(map[uuid.UUID]*storedTrace),
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *memoryTraceRepository) view(s *storedTrace) *model.Trace {
	cp := s.trace
	if !s.titleSet {
		cp.Title = cp.Host
	}
	return &cp
}

func (r *memoryTraceRepository) Create(_ context.Context, in *model.NewTrace) (*model.Trace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.create != nil {
		return nil, r.create
	}
	r.clock = r.clock.Add(time.Minute)
	s := &storedTrace{trace: model.Trace{
		ID:          uuid.New(),
		PlaceID:     in.PlaceID,
		URL:         in.URL,
		Host:        in.Host,
		Description: in.Description,
		Image:       in.Image,
		CreatedAt:   r.clock,
	}}
	if in.Title != nil {
		s.trace.Title = *in.Title
		s.titleSet = true
	}
	r.rows[s.trace.ID] = s
	return r.view(s), nil
}

func (r *memoryTraceRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Trace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.rows[id]
	if !ok {
		return nil, model.ErrTraceNotFound
	}
	return r.view(s), nil
}

func (r *memoryTraceRepository) ListByPlace(_ context.Context, placeID uuid.UUID, limit, offset int) ([]*model.Trace, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []*model.Trace
	for _, s := range r.rows {
		if s.trace.PlaceID == placeID {
			all = append(all, r.view(s))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := len(all)
	if offset >= total {
		return []*model.Trace{}, total, nil
	}
	end := min(offset+limit, total)
	return all[offset:end], total, nil
}

func (r *memoryTraceRepository) FillMetadata(_ context.Context, id uuid.UUID, meta model.Metadata) (*model.Trace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.rows[id]
	if !ok {
		return nil, model.ErrTraceNotFound
	}
	if !s.titleSet && meta.Title != "" {
		s.trace.Title = meta.Title
		s.titleSet = true
	}
	if s.trace.Description == nil && meta.Description != "" {
		d := meta.Description
		s.trace.Description = &d
	}
	if s.trace.Image == nil && meta.Image != "" {
		img := meta.Image
		s.trace.Image = &img
	}
	now := r.clock
	s.trace.EnrichedAt = &now
	return r.view(s), nil
}

type stubPlaces map[uuid.UUID]bool

func (p stubPlaces) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return p[id], nil
}

type recordingEnqueuer struct {
	tasks []string
	err   error
}

func (e *recordingEnqueuer) Enqueue(_ context.Context, taskType string, payload any, _ ...asynq.Option) error {
	if e.err != nil {
		return e.err
	}
	p := payload.(shared.FetchTraceMetadataPayload)
	e.tasks = append(e.tasks, taskType+":"+p.TraceID)
	return nil
}

type stubFetcher struct {
	meta *fetcher.Metadata
	err  error
	urls []string
}

func (f *stubFetcher) Fetch(_ context.Context, rawURL string) (*fetcher.Metadata, error) {
	f.urls = append(f.urls, rawURL)
	return f.meta, f.err
}

func newTestService() (*TraceService, *memoryTraceRepository, *recordingEnqueuer, *stubFetcher, uuid.UUID) {
	placeID := uuid.New()
	repo := newMemoryTraceRepository()
	q := &recordingEnqueuer{}
	f := &stubFetcher{}
	return NewTraceService(repo, stubPlaces{placeID: true}, q, f), repo, q, f, placeID
}

func TestCreateTrace(t *testing.T) {
	svc, _, q, _, placeID := newTestService()

	trace, err := svc.CreateTrace(context.Background(), model.CreateTraceRequest{
		PlaceID: placeID.String(),
		URL:     "https://kathmandupost.com/national/2026/01/01/old-folks",
	})

	require.NoError(t, err)
	assert.Equal(t, "kathmandupost.com", trace.Host)
	assert.Equal(t, "kathmandupost.com", trace.Title, "host stands in for a missing title")
	assert.Equal(t, []string{shared.TypeFetchTraceMetadata + ":" + trace.ID.String()}, q.tasks)
}

func TestCreateTrace_CompleteTraceSkipsEnrichment(t *testing.T) {
	svc, _, q, _, placeID := newTestService()

	_, err := svc.CreateTrace(context.Background(), model.CreateTraceRequest{
		PlaceID:     placeID.String(),
		URL:         "https://dawn.com/news/1",
		Title:       "World Water Day",
		Description: "A reminder",
		Image:       "https://dawn.com/img.jpg",
	})

	require.NoError(t, err)
	assert.Empty(t, q.tasks)
}

func TestCreateTrace_EnqueueFailureStillCreates(t *testing.T) {
	svc, repo, q, _, placeID := newTestService()
	q.err = errors.New("redis down")

	trace, err := svc.CreateTrace(context.Background(), model.CreateTraceRequest{
		PlaceID: placeID.String(),
		URL:     "https://dawn.com/news/1",
	})

	require.NoError(t, err)
	assert.Contains(t, repo.rows, trace.ID)
}

func TestCreateTrace_Errors(t *testing.T) {
	svc, repo, _, _, placeID := newTestService()

	_, err := svc.CreateTrace(context.Background(), model.CreateTraceRequest{PlaceID: placeID.String(), URL: "mailto:a@b.c"})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = svc.CreateTrace(context.Background(), model.CreateTraceRequest{PlaceID: uuid.NewString(), URL: "https://dawn.com"})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	repo.create = errors.New("disk full")
	_, err = svc.CreateTrace(context.Background(), model.CreateTraceRequest{PlaceID: placeID.String(), URL: "https://dawn.com"})
	assert.True(t, apperror.IsKind(err, apperror.KindStorage))
}

func TestListTraces_NewestFirst(t *testing.T) {
	svc, _, _, _, placeID := newTestService()
	for _, u := range []string{"https://a.example/1", "https://b.example/2", "https://c.example/3"} {
		_, err := svc.CreateTrace(context.Background(), model.CreateTraceRequest{PlaceID: placeID.String(), URL: u})
		require.NoError(t, err)
	}

	traces, meta, err := svc.ListTraces(context.Background(), placeID, query.Page{Limit: 2})

	require.NoError(t, err)
	require.Len(t, traces, 2)
	assert.Equal(t, "c.example", traces[0].Host)
	assert.Equal(t, 3, meta.Total)
	assert.True(t, meta.HasMore)

	_, _, err = svc.ListTraces(context.Background(), placeID, query.Page{Limit: 0})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestEnrichTrace_FillsOnlyMissingFields(t *testing.T) {
	svc, _, _, f, placeID := newTestService()
	created, err := svc.CreateTrace(context.Background(), model.CreateTraceRequest{
		PlaceID:     placeID.String(),
		URL:         "https://dawn.com/news/1",
		Description: "Submitted description",
	})
	require.NoError(t, err)

	f.meta = &fetcher.Metadata{
		Title:       "World Water Day serves a reminder",
		Description: "Fetched excerpt",
		Image:       "https://dawn.com/lead.jpg",
	}

	got, err := svc.EnrichTrace(context.Background(), created.ID)

	require.NoError(t, err)
	assert.Equal(t, []string{"https://dawn.com/news/1"}, f.urls)
	assert.Equal(t, "World Water Day serves a reminder", got.Title)
	assert.Equal(t, "Submitted description", *got.Description)
	assert.Equal(t, "https://dawn.com/lead.jpg", *got.Image)
	assert.Equal(t, "dawn.com", got.Host)
	assert.NotNil(t, got.EnrichedAt)
}

func TestEnrichTrace_Errors(t *testing.T) {
	svc, _, _, f, placeID := newTestService()

	_, err := svc.EnrichTrace(context.Background(), uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	created, err := svc.CreateTrace(context.Background(), model.CreateTraceRequest{PlaceID: placeID.String(), URL: "http://10.0.0.1/"})
	require.NoError(t, err)

	f.err = fetcher.ErrForbiddenAddress
	_, err = svc.EnrichTrace(context.Background(), created.ID)
	assert.ErrorIs(t, err, fetcher.ErrForbiddenAddress)
}
