// forum/memstore.go
package forum

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemStore implements Store in memory. It backs tests and the in-memory
// storage mode; semantics mirror the Postgres store exactly.
type MemStore struct {
	mu      sync.RWMutex
	threads map[string]*Thread
	posts   map[string][]Post // keyed by thread id, in append order
}

func NewMemStore() *MemStore {
	return &MemStore{
		threads: make(map[string]*Thread),
		posts:   make(map[string][]Post),
	}
}

func (s *MemStore) ListThreads(ctx context.Context, limit, offset int) ([]Thread, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]Thread, 0, len(s.threads))
	for _, t := range s.threads {
		all = append(all, *t)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].LastActivity.After(all[j].LastActivity)
	})

	if offset >= len(all) {
		return []Thread{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *MemStore) CountThreads(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.threads), nil
}

func (s *MemStore) GetThread(ctx context.Context, id string) (*Thread, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.threads[id]
	if !ok {
		return nil, ErrThreadNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *MemStore) GetPostsByThread(ctx context.Context, threadID string) ([]Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]Post, len(s.posts[threadID]))
	copy(posts, s.posts[threadID])
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.Before(posts[j].CreatedAt)
	})
	return posts, nil
}

func (s *MemStore) CreateThread(ctx context.Context, thread *Thread, firstPost *Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	thread.CreatedAt = now
	thread.LastActivity = now
	firstPost.ThreadID = thread.ID
	firstPost.CreatedAt = now

	cp := *thread
	s.threads[thread.ID] = &cp
	s.posts[thread.ID] = append(s.posts[thread.ID], *firstPost)
	return nil
}

func (s *MemStore) AddReply(ctx context.Context, post *Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.threads[post.ThreadID]
	if !ok {
		return ErrThreadNotFound
	}
	post.CreatedAt = time.Now().UTC()
	t.LastActivity = post.CreatedAt
	s.posts[post.ThreadID] = append(s.posts[post.ThreadID], *post)
	return nil
}
