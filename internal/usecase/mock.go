package usecase

import (
	"context"
	"sync"

	"github.com/mauv0809/fantafav/internal/roster"
)

// MockUseCase is a mock implementation of the FavouritePlayers interface for testing.
// It is safe for concurrent use.
type MockUseCase struct {
	mu sync.Mutex

	// Spies for method calls
	FetchPlayersFunc     func(ctx context.Context, source string) ([]roster.Player, error)
	SearchPlayersFunc    func(query string) []roster.Player
	PlayersFunc          func() []roster.Player
	FavouritePlayersFunc func() []roster.Player
	AddFavouriteFunc     func(ctx context.Context, playerID int) error
	RemoveFavouriteFunc  func(ctx context.Context, playerID int) error

	// Call records
	FetchPlayersCalls    []string
	SearchPlayersCalls   []string
	AddFavouriteCalls    []int
	RemoveFavouriteCalls []int
}

// NewMock creates a new mock instance.
func NewMock() *MockUseCase {
	return &MockUseCase{}
}

// Reset clears all call records.
func (m *MockUseCase) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchPlayersCalls = nil
	m.SearchPlayersCalls = nil
	m.AddFavouriteCalls = nil
	m.RemoveFavouriteCalls = nil
}

func (m *MockUseCase) FetchPlayers(ctx context.Context, source string) ([]roster.Player, error) {
	m.mu.Lock()
	m.FetchPlayersCalls = append(m.FetchPlayersCalls, source)
	fn := m.FetchPlayersFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, source)
	}
	return []roster.Player{}, nil
}

func (m *MockUseCase) SearchPlayers(query string) []roster.Player {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SearchPlayersCalls = append(m.SearchPlayersCalls, query)
	if m.SearchPlayersFunc != nil {
		return m.SearchPlayersFunc(query)
	}
	return []roster.Player{}
}

func (m *MockUseCase) Players() []roster.Player {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PlayersFunc != nil {
		return m.PlayersFunc()
	}
	return []roster.Player{}
}

func (m *MockUseCase) FavouritePlayers() []roster.Player {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FavouritePlayersFunc != nil {
		return m.FavouritePlayersFunc()
	}
	return []roster.Player{}
}

func (m *MockUseCase) AddFavourite(ctx context.Context, playerID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddFavouriteCalls = append(m.AddFavouriteCalls, playerID)
	if m.AddFavouriteFunc != nil {
		return m.AddFavouriteFunc(ctx, playerID)
	}
	return nil
}

func (m *MockUseCase) RemoveFavourite(ctx context.Context, playerID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveFavouriteCalls = append(m.RemoveFavouriteCalls, playerID)
	if m.RemoveFavouriteFunc != nil {
		return m.RemoveFavouriteFunc(ctx, playerID)
	}
	return nil
}
