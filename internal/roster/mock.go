package roster

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the RosterClient interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	FetchPlayersFunc func(ctx context.Context, source string) ([]Player, error)

	FetchPlayersCalls []string
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchPlayersCalls = nil
}

func (m *MockClient) FetchPlayers(ctx context.Context, source string) ([]Player, error) {
	m.mu.Lock()
	m.FetchPlayersCalls = append(m.FetchPlayersCalls, source)
	fn := m.FetchPlayersFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, source)
	}
	return []Player{}, nil
}
