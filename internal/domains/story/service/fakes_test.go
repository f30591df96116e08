package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/mock"

	questionModel "storymap-backend/internal/domains/question/model"
	"storymap-backend/internal/domains/story/model"
	"storymap-backend/pkg/database"
)

// memoryStoryRepository mirrors the postgres semantics: unlinked stories are
// invisible to reads, and no transaction rolls a failed link back.
type memoryStoryRepository struct {
	mu      sync.Mutex
	stories map[uuid.UUID]*model.Story
	links   map[uuid.UUID]uuid.UUID

	linkErr      error
	deleteErr    error
	deleteCalls  int
	updateRacer  func(id uuid.UUID)
	createdClock func() time.Time
}

func newMemoryStoryRepository() *memoryStoryRepository {
	return &memoryStoryRepository{
		stories:      make(map[uuid.UUID]*model.Story),
		links:        make(map[uuid.UUID]uuid.UUID),
		createdClock: time.Now,
	}
}

func (r *memoryStoryRepository) Create(_ context.Context, story *model.Story) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	story.CreatedAt = r.createdClock()
	cp := *story
	r.stories[story.ID] = &cp
	return nil
}

func (r *memoryStoryRepository) LinkPlace(_ context.Context, storyID, placeID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.linkErr != nil {
		return r.linkErr
	}
	r.links[storyID] = placeID
	return nil
}

func (r *memoryStoryRepository) DeleteOrphan(_ context.Context, storyID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.deleteCalls++
	if r.deleteErr != nil {
		return false, r.deleteErr
	}
	if _, linked := r.links[storyID]; linked {
		return false, nil
	}
	if _, ok := r.stories[storyID]; !ok {
		return false, nil
	}
	delete(r.stories, storyID)
	return true, nil
}

func (r *memoryStoryRepository) visible(id uuid.UUID) (*model.Story, bool) {
	s, ok := r.stories[id]
	if !ok {
		return nil, false
	}
	if _, linked := r.links[id]; !linked {
		return nil, false
	}
	return s, true
}

func (r *memoryStoryRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.visible(id)
	if !ok {
		return nil, model.ErrStoryNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memoryStoryRepository) collect(match func(*model.Story) bool, desc bool, limit, offset int) ([]*model.Story, int) {
	var all []*model.Story
	for id := range r.stories {
		s, ok := r.visible(id)
		if ok && match(s) {
			cp := *s
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if desc {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	total := len(all)
	if offset >= total {
		return []*model.Story{}, total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total
}

func (r *memoryStoryRepository) ListByPlace(_ context.Context, params model.ListStoriesParams) ([]*model.Story, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out, total := r.collect(func(s *model.Story) bool {
		return r.links[s.ID] == params.PlaceID && s.Status == params.Status
	}, true, params.Limit, params.Offset)
	return out, total, nil
}

func (r *memoryStoryRepository) ListByStatus(_ context.Context, status model.Status, limit, offset int) ([]*model.Story, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out, total := r.collect(func(s *model.Story) bool { return s.Status == status }, false, limit, offset)
	return out, total, nil
}

func (r *memoryStoryRepository) UpdateStatus(_ context.Context, id uuid.UUID, tr model.Transition, at time.Time) (*model.Story, error) {
	if r.updateRacer != nil {
		racer := r.updateRacer
		r.updateRacer = nil
		racer(id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.visible(id)
	if !ok {
		return nil, model.ErrStoryNotFound
	}
	if s.Status != tr.From {
		return nil, model.ErrStatusChanged
	}
	s.Status = tr.To
	if tr.To == model.StatusApproved && s.PublishedAt == nil {
		stamp := at
		s.PublishedAt = &stamp
	}
	cp := *s
	return &cp, nil
}

func (r *memoryStoryRepository) Vote(_ context.Context, id uuid.UUID, direction model.VoteDirection) (*model.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.visible(id)
	if !ok || s.Status != model.StatusApproved {
		return nil, model.ErrStoryNotFound
	}
	if direction == model.VoteUp {
		s.UpvotesCount++
		s.VotesScore++
	} else {
		s.DownvotesCount++
		s.VotesScore--
	}
	cp := *s
	return &cp, nil
}

func (r *memoryStoryRepository) ListOrphanIDs(_ context.Context, olderThan time.Time, limit int) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ids []uuid.UUID
	for id, s := range r.stories {
		if _, linked := r.links[id]; linked {
			continue
		}
		if s.CreatedAt.Before(olderThan) && len(ids) < limit {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// rawExists reports whether the row exists at all, linked or not.
func (r *memoryStoryRepository) rawExists(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.stories[id]
	return ok
}

// directTxManager runs fn without a transaction, like a store without
// rollback support.
type directTxManager struct{}

func (directTxManager) WithTransaction(ctx context.Context, fn database.TxFunc) error {
	return fn(ctx)
}

type stubPlaces struct {
	known map[uuid.UUID]bool
	err   error
}

func (p stubPlaces) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	if p.err != nil {
		return false, p.err
	}
	return p.known[id], nil
}

type MockQuestionService struct {
	mock.Mock
}

func (m *MockQuestionService) ListActiveQuestions(ctx context.Context) ([]*questionModel.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*questionModel.Question), args.Error(1)
}

func (m *MockQuestionService) RequireActive(ctx context.Context, id int64) (*questionModel.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*questionModel.Question), args.Error(1)
}

type enqueued struct {
	taskType string
	payload  any
}

type recordingEnqueuer struct {
	mu    sync.Mutex
	tasks []enqueued
	err   error
}

func (e *recordingEnqueuer) Enqueue(_ context.Context, taskType string, payload any, _ ...asynq.Option) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.tasks = append(e.tasks, enqueued{taskType: taskType, payload: payload})
	return nil
}

var errStore = errors.New("connection reset by peer")
