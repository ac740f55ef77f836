package prefs

import (
	"context"
	"roadtrip-planner/internal/domain"
	"sync"
)

// MemoryStore keeps the preference for the life of the process.
type MemoryStore struct {
	mu    sync.Mutex
	theme domain.Theme
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Theme(ctx context.Context) (domain.Theme, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.theme, m.theme != "", nil
}

func (m *MemoryStore) SetTheme(ctx context.Context, theme domain.Theme) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.theme = theme
	return nil
}
