package state

import (
	"context"
	"sync"
)

// MemoryStore 进程内对话状态实现
type MemoryStore struct {
	mu             sync.Mutex
	lastResponses  map[int64]map[string]string
	fallbackCounts map[int64]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		lastResponses:  make(map[int64]map[string]string),
		fallbackCounts: make(map[int64]int),
	}
}

func (s *MemoryStore) GetLastResponse(ctx context.Context, sessionID int64, category string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.lastResponses[sessionID]; ok {
		return m[category], nil
	}
	return "", nil
}

func (s *MemoryStore) SetLastResponse(ctx context.Context, sessionID int64, category, response string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.lastResponses[sessionID]
	if !ok {
		m = make(map[string]string)
		s.lastResponses[sessionID] = m
	}
	m[category] = response
	return nil
}

func (s *MemoryStore) IncrFallback(ctx context.Context, sessionID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallbackCounts[sessionID]++
	return s.fallbackCounts[sessionID], nil
}

func (s *MemoryStore) Reset(ctx context.Context, sessionID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lastResponses, sessionID)
	delete(s.fallbackCounts, sessionID)
	return nil
}

var _ Store = (*MemoryStore)(nil)
