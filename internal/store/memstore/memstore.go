package memstore

import (
	"context"
	"sort"
	"sync"

	"task-backend/internal/models"
	"task-backend/internal/store"
)

var _ store.RecordStore = (*Store)(nil)

// Store is a simple in-memory RecordStore suitable for development and unit
// tests. It is NOT durable and should not be used in production.
type Store struct {
	mu    sync.RWMutex
	items map[string]entry
	seq   int64
}

type entry struct {
	task models.Task
	seq  int64 // insertion order, breaks timestamp ties
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{items: make(map[string]entry)}
}

func (s *Store) ItemExists(ctx context.Context, taskID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[taskID]
	return ok, nil
}

func (s *Store) GetItem(ctx context.Context, taskID string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.items[taskID]
	if !ok {
		return nil, nil
	}
	t := e.task
	return &t, nil
}

func (s *Store) ListByOwner(ctx context.Context, ownerID string) ([]models.Task, error) {
	return s.listByOwner(ownerID, false), nil
}

func (s *Store) ListByOwnerRecentFirst(ctx context.Context, ownerID string) ([]models.Task, error) {
	return s.listByOwner(ownerID, true), nil
}

func (s *Store) listByOwner(ownerID string, newestFirst bool) []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]entry, 0)
	for _, e := range s.items {
		if e.task.OwnerID == ownerID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		before := a.task.CreatedAt.Before(b.task.CreatedAt) ||
			(a.task.CreatedAt.Equal(b.task.CreatedAt) && a.seq < b.seq)
		if newestFirst {
			return !before
		}
		return before
	})
	out := make([]models.Task, len(entries))
	for i, e := range entries {
		out[i] = e.task
	}
	return out
}

func (s *Store) CreateItem(ctx context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.items[task.TaskID] = entry{task: *task, seq: s.seq}
	return nil
}

func (s *Store) UpdateFields(ctx context.Context, taskID string, upd store.TaskUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[taskID]
	if !ok {
		return nil
	}
	e.task.Title = upd.Title
	e.task.DueDate = upd.DueDate
	e.task.Done = upd.Done
	s.items[taskID] = e
	return nil
}

func (s *Store) UpdateAttachmentURL(ctx context.Context, taskID, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[taskID]
	if !ok {
		return nil
	}
	e.task.AttachmentURL = url
	s.items[taskID] = e
	return nil
}

func (s *Store) DeleteItem(ctx context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, taskID)
	return nil
}
