package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/teksel-io/teksel/sheet"
)

// Memory is a Store that keeps sheets in a map. Grids are stored encoded so
// that callers never share a grid with the store.
type Memory struct {
	mu     sync.RWMutex
	sheets map[string]memoryEntry
}

type memoryEntry struct {
	cells     []byte
	updatedAt time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{sheets: map[string]memoryEntry{}}
}

func (m *Memory) Create(ctx context.Context, grid *sheet.Grid) (*Sheet, error) {
	id, err := newID()
	if err != nil {
		return nil, err
	}
	s := &Sheet{ID: id, Grid: grid}
	if err := m.put(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *Memory) Get(ctx context.Context, id string) (*Sheet, error) {
	m.mu.RLock()
	entry, ok := m.sheets[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	grid, err := sheet.Decode(entry.cells, 0)
	if err != nil {
		return nil, err
	}
	return &Sheet{ID: id, Grid: grid, UpdatedAt: entry.updatedAt}, nil
}

func (m *Memory) Save(ctx context.Context, s *Sheet) error {
	m.mu.RLock()
	_, ok := m.sheets[s.ID]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	return m.put(s)
}

func (m *Memory) put(s *Sheet) error {
	cells, err := json.Marshal(s.Grid)
	if err != nil {
		return err
	}
	s.UpdatedAt = time.Now().UTC()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheets[s.ID] = memoryEntry{cells: cells, updatedAt: s.UpdatedAt}
	return nil
}

func (m *Memory) Close() error {
	return nil
}
