package favorites

import "context"

// FavouritesStore persists the favourite player ids in a single named slot.
type FavouritesStore interface {
	// Load returns the persisted ids, initialising the slot to an empty set
	// on first access.
	Load(ctx context.Context) ([]int, error)
	// Save replaces the persisted ids. Last writer wins.
	Save(ctx context.Context, ids []int) error
}
