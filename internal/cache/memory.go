package cache

import (
	"context"
	"sync"
)

// Memory keeps summaries for the lifetime of the process only.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, articleURL string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	summary, ok := m.entries[articleURL]

	return summary, ok
}

func (m *Memory) Put(_ context.Context, articleURL string, summary string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[articleURL] = summary
}

func (m *Memory) Len(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return int64(len(m.entries)), nil
}
