package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                    sync.Mutex
	rosterFetches         int
	rosterFetchFailures   int
	fetchDurations        []float64
	favourites            int
	favouriteSaveFailures int
	slackNotifSent        int
	slackNotifFailed      int
	startupTime           float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		fetchDurations: make([]float64, 0),
	}
}

func (m *Mock) IncRosterFetches() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rosterFetches++
}

func (m *Mock) IncRosterFetchFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rosterFetchFailures++
}

func (m *Mock) ObserveFetchDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchDurations = append(m.fetchDurations, seconds)
}

func (m *Mock) SetFavourites(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.favourites = count
}

func (m *Mock) IncFavouriteSaveFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.favouriteSaveFailures++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// RosterFetches returns the number of times IncRosterFetches was called.
func (m *Mock) RosterFetches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rosterFetches
}

// RosterFetchFailures returns the number of times IncRosterFetchFailures was called.
func (m *Mock) RosterFetchFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rosterFetchFailures
}

// FetchDurations returns the observed fetch durations.
func (m *Mock) FetchDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64{}, m.fetchDurations...)
}

// Favourites returns the last value passed to SetFavourites.
func (m *Mock) Favourites() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.favourites
}

// FavouriteSaveFailures returns the number of times IncFavouriteSaveFailures was called.
func (m *Mock) FavouriteSaveFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.favouriteSaveFailures
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
