package players

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/fantafav/internal/favorites"
	"github.com/mauv0809/fantafav/internal/metrics"
	"github.com/mauv0809/fantafav/internal/roster"
)

// New creates a new Repository.
func New(client roster.RosterClient, store favorites.FavouritesStore, metrics metrics.Metrics) Repository {
	return &repository{
		client:       client,
		store:        store,
		metrics:      metrics,
		players:      []roster.Player{},
		favouriteIDs: []int{},
	}
}

func (r *repository) FetchPlayers(ctx context.Context, source string) ([]roster.Player, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.metrics.IncRosterFetches()
	start := time.Now()
	fetched, err := r.client.FetchPlayers(ctx, source)
	r.metrics.ObserveFetchDuration(time.Since(start).Seconds())
	if err != nil {
		r.metrics.IncRosterFetchFailures()
		log.Error("Failed to fetch roster", "source", source, "error", err)
		return nil, err
	}
	if fetched == nil {
		fetched = []roster.Player{}
	}

	ids, loaded, dirty := r.reconcileFavouritesLocked(ctx)

	r.mu.Lock()
	r.players = fetched
	r.favouriteIDs = ids
	r.loaded = loaded
	r.dirty = dirty
	r.mu.Unlock()

	r.metrics.SetFavourites(len(ids))
	log.Info("Roster replaced", "players", len(fetched), "favourites", len(ids))
	return slices.Clone(fetched), nil
}

// reconcileFavouritesLocked decides which favourite ids go with a freshly
// fetched roster. Normally that is whatever the store holds; when the last
// save failed, the in-memory ids win and are written back instead.
func (r *repository) reconcileFavouritesLocked(ctx context.Context) ([]int, bool, bool) {
	current := r.favouriteIDs

	if r.dirty {
		if err := r.store.Save(ctx, current); err != nil {
			r.metrics.IncFavouriteSaveFailures()
			log.Warn("Favourites still not persisted, keeping in-memory ids", "error", err)
			return current, r.loaded, true
		}
		log.Info("Persisted favourites after earlier failure", "count", len(current))
		return current, true, false
	}

	ids, err := r.store.Load(ctx)
	if err != nil {
		log.Error("Failed to reload favourites, keeping in-memory ids", "error", err)
		return current, r.loaded, false
	}
	return favorites.Dedupe(ids), true, false
}

func (r *repository) SearchPlayers(query string) []roster.Player {
	needle := strings.ToLower(query)

	r.mu.RLock()
	defer r.mu.RUnlock()

	results := []roster.Player{}
	for _, p := range r.players {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			results = append(results, p)
		}
	}
	return results
}

func (r *repository) Players() []roster.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.players)
}

func (r *repository) FavouritePlayers() []roster.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[int]struct{}, len(r.favouriteIDs))
	for _, id := range r.favouriteIDs {
		wanted[id] = struct{}{}
	}

	// Ids missing from the roster are dropped here without complaint.
	favourites := []roster.Player{}
	for _, p := range r.players {
		if _, ok := wanted[p.ID]; ok {
			favourites = append(favourites, p)
		}
	}
	sort.SliceStable(favourites, func(i, j int) bool {
		if favourites[i].Team != favourites[j].Team {
			return favourites[i].Team < favourites[j].Team
		}
		return favourites[i].Name < favourites[j].Name
	})
	return favourites
}

func (r *repository) IsFavourite(playerID int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Contains(r.favouriteIDs, playerID)
}

func (r *repository) AddFavourite(ctx context.Context, playerID int) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if err := r.ensureLoadedLocked(ctx); err != nil {
		return err
	}
	if slices.Contains(r.favouriteIDs, playerID) {
		return nil
	}
	next := append(slices.Clone(r.favouriteIDs), playerID)
	log.Info("Adding favourite", "playerID", playerID)
	return r.commitFavouritesLocked(ctx, next)
}

func (r *repository) RemoveFavourite(ctx context.Context, playerID int) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if err := r.ensureLoadedLocked(ctx); err != nil {
		return err
	}
	idx := slices.Index(r.favouriteIDs, playerID)
	if idx < 0 {
		return nil
	}
	next := slices.Delete(slices.Clone(r.favouriteIDs), idx, idx+1)
	log.Info("Removing favourite", "playerID", playerID)
	return r.commitFavouritesLocked(ctx, next)
}

// ensureLoadedLocked pulls the persisted ids before the first toggle, so a
// toggle made before any fetch does not overwrite them.
func (r *repository) ensureLoadedLocked(ctx context.Context) error {
	if r.loaded {
		return nil
	}
	ids, err := r.store.Load(ctx)
	if err != nil {
		log.Error("Failed to load favourites", "error", err)
		return err
	}
	ids = favorites.Dedupe(ids)
	r.mu.Lock()
	r.favouriteIDs = ids
	r.loaded = true
	r.mu.Unlock()
	r.metrics.SetFavourites(len(ids))
	return nil
}

// commitFavouritesLocked applies next in memory, then persists it. A failed
// save leaves the in-memory ids in place and marks the repository dirty.
func (r *repository) commitFavouritesLocked(ctx context.Context, next []int) error {
	r.mu.Lock()
	r.favouriteIDs = next
	r.mu.Unlock()
	r.metrics.SetFavourites(len(next))

	err := r.store.Save(ctx, next)

	r.mu.Lock()
	r.dirty = err != nil
	r.mu.Unlock()

	if err != nil {
		r.metrics.IncFavouriteSaveFailures()
		log.Error("Failed to persist favourites", "error", err, "count", len(next))
		return fmt.Errorf("favourites changed in memory only: %w", err)
	}
	return nil
}
