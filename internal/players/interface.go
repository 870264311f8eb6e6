package players

import (
	"context"

	"github.com/mauv0809/fantafav/internal/roster"
)

// Repository owns the current roster snapshot and the favourite id set.
type Repository interface {
	// FetchPlayers replaces the roster with the snapshot served at source and
	// reconciles the favourite ids with the persisted store.
	FetchPlayers(ctx context.Context, source string) ([]roster.Player, error)
	// SearchPlayers returns players whose name contains query, ignoring case,
	// in roster order.
	SearchPlayers(query string) []roster.Player
	// Players returns the current roster snapshot.
	Players() []roster.Player
	// FavouritePlayers returns the favourites in the current roster sorted by
	// team, then name.
	FavouritePlayers() []roster.Player
	AddFavourite(ctx context.Context, playerID int) error
	RemoveFavourite(ctx context.Context, playerID int) error
	IsFavourite(playerID int) bool
}
