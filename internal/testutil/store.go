// Package testutil provides PostStore fakes for service and handler tests.
package testutil

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/model"
)

// ErrStoreDown is returned by MockPostStore methods without a configured Fn.
var ErrStoreDown = errors.New("store unavailable")

// MockPostStore implements service.PostStore with overridable functions.
// Calls records the method names in call order.
type MockPostStore struct {
	FindAllFn          func(ctx context.Context) ([]model.Post, error)
	FindByIDFn         func(ctx context.Context, id string) (*model.Post, error)
	InsertFn           func(ctx context.Context, in model.PostInput) (model.PostID, error)
	UpdateFn           func(ctx context.Context, id string, in model.PostInput) (int64, error)
	RemoveFn           func(ctx context.Context, id string) (int64, error)
	FindPostCommentsFn func(ctx context.Context, id string) ([]model.Comment, error)

	mu    sync.Mutex
	Calls []string
}

func (m *MockPostStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, name)
}

// Called reports whether method name was invoked at least once.
func (m *MockPostStore) Called(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.Calls {
		if c == name {
			return true
		}
	}
	return false
}

func (m *MockPostStore) FindAll(ctx context.Context) ([]model.Post, error) {
	m.record("FindAll")
	if m.FindAllFn != nil {
		return m.FindAllFn(ctx)
	}
	return nil, ErrStoreDown
}

func (m *MockPostStore) FindByID(ctx context.Context, id string) (*model.Post, error) {
	m.record("FindByID")
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return nil, ErrStoreDown
}

func (m *MockPostStore) Insert(ctx context.Context, in model.PostInput) (model.PostID, error) {
	m.record("Insert")
	if m.InsertFn != nil {
		return m.InsertFn(ctx, in)
	}
	return model.PostID{}, ErrStoreDown
}

func (m *MockPostStore) Update(ctx context.Context, id string, in model.PostInput) (int64, error) {
	m.record("Update")
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, in)
	}
	return 0, ErrStoreDown
}

func (m *MockPostStore) Remove(ctx context.Context, id string) (int64, error) {
	m.record("Remove")
	if m.RemoveFn != nil {
		return m.RemoveFn(ctx, id)
	}
	return 0, ErrStoreDown
}

func (m *MockPostStore) FindPostComments(ctx context.Context, id string) ([]model.Comment, error) {
	m.record("FindPostComments")
	if m.FindPostCommentsFn != nil {
		return m.FindPostCommentsFn(ctx, id)
	}
	return nil, ErrStoreDown
}

// MemoryPostStore is an in-memory service.PostStore. Ids are assigned
// sequentially from 1 and keys that are not decimal integers are absent.
type MemoryPostStore struct {
	mu       sync.RWMutex
	nextID   int64
	posts    map[int64]model.Post
	comments map[int64][]model.Comment
	now      func() time.Time
}

func NewMemoryPostStore() *MemoryPostStore {
	return &MemoryPostStore{
		nextID:   1,
		posts:    map[int64]model.Post{},
		comments: map[int64][]model.Comment{},
		now:      time.Now,
	}
}

func parseKey(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// AddComment attaches a comment to an existing post and returns it.
func (s *MemoryPostStore) AddComment(postID int64, text string) model.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c := model.Comment{
		ID:        int64(len(s.comments[postID]) + 1),
		Text:      text,
		PostID:    postID,
		Post:      s.posts[postID].Title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.comments[postID] = append(s.comments[postID], c)
	return c
}

// Len returns the number of stored posts.
func (s *MemoryPostStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

func (s *MemoryPostStore) FindAll(_ context.Context) ([]model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]model.Post, 0, len(s.posts))
	for id := int64(1); id < s.nextID; id++ {
		if p, ok := s.posts[id]; ok {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (s *MemoryPostStore) FindByID(_ context.Context, id string) (*model.Post, error) {
	key, ok := parseKey(id)
	if !ok {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[key]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *MemoryPostStore) Insert(_ context.Context, in model.PostInput) (model.PostID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	id := s.nextID
	s.nextID++
	s.posts[id] = model.Post{
		ID:        id,
		Title:     in.Title,
		Contents:  in.Contents,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return model.PostID{ID: id}, nil
}

func (s *MemoryPostStore) Update(_ context.Context, id string, in model.PostInput) (int64, error) {
	key, ok := parseKey(id)
	if !ok {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[key]
	if !ok {
		return 0, nil
	}
	p.Title = in.Title
	p.Contents = in.Contents
	p.UpdatedAt = s.now()
	s.posts[key] = p
	return 1, nil
}

func (s *MemoryPostStore) Remove(_ context.Context, id string) (int64, error) {
	key, ok := parseKey(id)
	if !ok {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[key]; !ok {
		return 0, nil
	}
	delete(s.posts, key)
	delete(s.comments, key)
	return 1, nil
}

func (s *MemoryPostStore) FindPostComments(_ context.Context, id string) ([]model.Comment, error) {
	key, ok := parseKey(id)
	if !ok {
		return []model.Comment{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := make([]model.Comment, len(s.comments[key]))
	copy(comments, s.comments[key])
	return comments, nil
}
