package players

import (
	"sync"

	"github.com/mauv0809/fantafav/internal/favorites"
	"github.com/mauv0809/fantafav/internal/metrics"
	"github.com/mauv0809/fantafav/internal/roster"
)

// repository is the single owner of roster and favourite state.
type repository struct {
	client  roster.RosterClient
	store   favorites.FavouritesStore
	metrics metrics.Metrics

	// writeMu serialises fetches and favourite toggles. It is held across the
	// network call, so a second mutation waits for the first.
	writeMu sync.Mutex

	// mu guards the fields below. Writers hold writeMu as well.
	mu           sync.RWMutex
	players      []roster.Player
	favouriteIDs []int
	// loaded is set once favouriteIDs reflects the persisted store.
	loaded bool
	// dirty is set when the last save failed and the store lags behind.
	dirty bool
}
