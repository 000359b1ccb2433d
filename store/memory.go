package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"scenescribe/types"
)

// MemoryStore is an in-process ProjectStore used by tests and the demo.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]types.Project
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{projects: make(map[string]types.Project)}
}

func (s *MemoryStore) Load(_ context.Context, name string) (*types.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	project, ok := s.projects[name]
	if !ok {
		return nil, ErrNotFound
	}
	copied := project
	copied.Scenes = append([]types.Scene(nil), project.Scenes...)
	return &copied, nil
}

func (s *MemoryStore) Save(_ context.Context, project *types.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	project.SavedAt = time.Now()
	stored := *project
	stored.Scenes = append([]types.Scene(nil), project.Scenes...)
	s.projects[project.Name] = stored
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.projects))
	for name := range s.projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.projects, name)
	return nil
}
