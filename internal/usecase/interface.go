package usecase

import (
	"context"

	"github.com/mauv0809/fantafav/internal/roster"
)

// FavouritePlayers is the contract presentation code depends on. Each method
// has the same behaviour as its players.Repository counterpart.
type FavouritePlayers interface {
	FetchPlayers(ctx context.Context, source string) ([]roster.Player, error)
	SearchPlayers(query string) []roster.Player
	Players() []roster.Player
	FavouritePlayers() []roster.Player
	AddFavourite(ctx context.Context, playerID int) error
	RemoveFavourite(ctx context.Context, playerID int) error
}
