package notifier

import (
	"context"
	"sync"

	"github.com/mauv0809/fantafav/internal/roster"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	NotifyFetchFailedFunc       func(message string) error
	NotifyFavouritesChangedFunc func(favourites []roster.Player) error

	// Call records
	NotifyFetchFailedCalls       []string
	NotifyFavouritesChangedCalls [][]roster.Player
	DryRunCalls                  int
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifyFetchFailedCalls = nil
	m.NotifyFavouritesChangedCalls = nil
	m.DryRunCalls = 0
}

func (m *Mock) NotifyFetchFailed(ctx context.Context, message string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifyFetchFailedCalls = append(m.NotifyFetchFailedCalls, message)
	if dryRun {
		m.DryRunCalls++
	}
	if m.NotifyFetchFailedFunc != nil {
		return m.NotifyFetchFailedFunc(message)
	}
	return nil
}

func (m *Mock) NotifyFavouritesChanged(ctx context.Context, favourites []roster.Player, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifyFavouritesChangedCalls = append(m.NotifyFavouritesChangedCalls, favourites)
	if dryRun {
		m.DryRunCalls++
	}
	if m.NotifyFavouritesChangedFunc != nil {
		return m.NotifyFavouritesChangedFunc(favourites)
	}
	return nil
}

// FetchFailures returns a copy of the recorded fetch failure messages.
func (m *Mock) FetchFailures() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.NotifyFetchFailedCalls...)
}

// FavouriteChanges returns the number of favourites notifications.
func (m *Mock) FavouriteChanges() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.NotifyFavouritesChangedCalls)
}
