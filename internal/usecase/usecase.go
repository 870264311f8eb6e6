package usecase

import (
	"context"

	"github.com/mauv0809/fantafav/internal/players"
	"github.com/mauv0809/fantafav/internal/roster"
)

type useCase struct {
	repository players.Repository
}

// New creates a FavouritePlayers backed by repository.
func New(repository players.Repository) FavouritePlayers {
	return &useCase{repository: repository}
}

func (u *useCase) FetchPlayers(ctx context.Context, source string) ([]roster.Player, error) {
	return u.repository.FetchPlayers(ctx, source)
}

func (u *useCase) SearchPlayers(query string) []roster.Player {
	return u.repository.SearchPlayers(query)
}

func (u *useCase) Players() []roster.Player {
	return u.repository.Players()
}

func (u *useCase) FavouritePlayers() []roster.Player {
	return u.repository.FavouritePlayers()
}

func (u *useCase) AddFavourite(ctx context.Context, playerID int) error {
	return u.repository.AddFavourite(ctx, playerID)
}

func (u *useCase) RemoveFavourite(ctx context.Context, playerID int) error {
	return u.repository.RemoveFavourite(ctx, playerID)
}
