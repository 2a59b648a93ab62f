package storage

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/mgiraldez/mansion-engine/pkg/state"
)

// MockStorage is an in-memory implementation of Storage for testing and for
// running without a Redis backend.
type MockStorage struct {
	mu        sync.RWMutex
	saves     map[string]*state.SaveRecord
	scores    []*state.HighScore
	pingError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		saves: make(map[string]*state.SaveRecord),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) SaveGame(ctx context.Context, rec *state.SaveRecord) error {
	if rec == nil {
		return errors.New("save record cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves[rec.Slot] = rec
	return nil
}

func (m *MockStorage) LoadGame(ctx context.Context, slot string) (*state.SaveRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.saves[slot]
	if !ok {
		return nil, nil
	}
	return rec, nil
}

func (m *MockStorage) ListGames(ctx context.Context) ([]*state.SaveRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	records := make([]*state.SaveRecord, 0, len(m.saves))
	for _, rec := range m.saves {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Slot < records[j].Slot })
	return records, nil
}

func (m *MockStorage) DeleteGame(ctx context.Context, slot string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.saves[slot]; !ok {
		return false, nil
	}
	delete(m.saves, slot)
	return true, nil
}

func (m *MockStorage) AddHighScore(ctx context.Context, hs *state.HighScore) error {
	if hs == nil {
		return errors.New("high score cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = append(m.scores, hs)
	sort.SliceStable(m.scores, func(i, j int) bool { return m.scores[i].Score > m.scores[j].Score })
	if len(m.scores) > MaxHighScores {
		m.scores = m.scores[:MaxHighScores]
	}
	return nil
}

func (m *MockStorage) HighScores(ctx context.Context) ([]*state.HighScore, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	scores := make([]*state.HighScore, len(m.scores))
	copy(scores, m.scores)
	return scores, nil
}
