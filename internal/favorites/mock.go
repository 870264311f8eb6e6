package favorites

import (
	"context"
	"sync"
)

// MockStore is an in-memory FavouritesStore for testing. Without LoadFunc or
// SaveFunc it behaves like a real store.
// It is safe for concurrent use.
type MockStore struct {
	mu  sync.Mutex
	ids []int

	LoadFunc func(ctx context.Context) ([]int, error)
	SaveFunc func(ctx context.Context, ids []int) error

	LoadCalls int
	SaveCalls [][]int
}

// NewMock creates a new mock instance seeded with ids.
func NewMock(ids ...int) *MockStore {
	return &MockStore{ids: append([]int{}, ids...)}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCalls = 0
	m.SaveCalls = nil
}

// IDs returns the ids held by the mock.
func (m *MockStore) IDs() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int{}, m.ids...)
}

func (m *MockStore) Load(ctx context.Context) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCalls++
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return append([]int{}, m.ids...), nil
}

func (m *MockStore) Save(ctx context.Context, ids []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls = append(m.SaveCalls, append([]int{}, ids...))
	if m.SaveFunc != nil {
		if err := m.SaveFunc(ctx, ids); err != nil {
			return err
		}
	}
	m.ids = Dedupe(ids)
	return nil
}
