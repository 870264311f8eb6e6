package notifier

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/fantafav/internal/roster"
	"github.com/mauv0809/fantafav/internal/viewmodel"
)

// Watch forwards view model changes to n until ctx is done or updates is
// closed. The first snapshot is taken as the baseline. After that a new
// non-empty error message raises a fetch alert and any change to the
// favourite ids raises a favourites alert.
func Watch(ctx context.Context, updates <-chan viewmodel.State, n Notifier, dryRun bool) {
	var (
		lastError string
		lastIDs   []int
		seeded    bool
	)
	for {
		select {
		case <-ctx.Done():
			return
		case state, ok := <-updates:
			if !ok {
				return
			}
			ids := playerIDs(state.Favourites)
			if !seeded {
				lastError, lastIDs, seeded = state.ErrorMessage, ids, true
				continue
			}
			if state.ErrorMessage != "" && state.ErrorMessage != lastError {
				if err := n.NotifyFetchFailed(ctx, state.ErrorMessage, dryRun); err != nil {
					log.Error("Failed to send fetch alert", "error", err)
				}
			}
			if !slices.Equal(ids, lastIDs) {
				if err := n.NotifyFavouritesChanged(ctx, state.Favourites, dryRun); err != nil {
					log.Error("Failed to send favourites alert", "error", err)
				}
			}
			lastError, lastIDs = state.ErrorMessage, ids
		}
	}
}

func playerIDs(players []roster.Player) []int {
	ids := make([]int, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	return ids
}
