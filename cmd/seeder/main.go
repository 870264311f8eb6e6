package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/fantafav/internal/config"
	"github.com/mauv0809/fantafav/internal/database"
	"github.com/mauv0809/fantafav/internal/favorites"
	"github.com/mauv0809/fantafav/internal/roster"
)

const defaultSeedCount = 5

// seedCount reads SEED_COUNT, the number of random favourites to store.
func seedCount() int {
	raw, ok := os.LookupEnv("SEED_COUNT")
	if !ok || raw == "" {
		return defaultSeedCount
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		log.Fatalf("Error: invalid SEED_COUNT %q", raw)
	}
	return n
}

// pickFavourites returns up to n distinct player ids chosen at random.
func pickFavourites(rng *rand.Rand, players []roster.Player, n int) []int {
	ids := make([]int, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.ID)
	}
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	if n < len(ids) {
		ids = ids[:n]
	}
	return ids
}

// run stores count random favourites picked from the configured roster.
// The database is closed before it returns.
func run(ctx context.Context, cfg config.Config, count int, rng *rand.Rand) error {
	db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer teardown()

	players, err := roster.NewClient(cfg.FetchTimeout).FetchPlayers(ctx, cfg.RosterURL)
	if err != nil {
		return fmt.Errorf("failed to fetch roster: %w", err)
	}
	log.Info("Fetched roster", "players", len(players), "source", cfg.RosterURL)

	ids := pickFavourites(rng, players, count)
	if err := favorites.New(db).Save(ctx, ids); err != nil {
		return fmt.Errorf("failed to save favourites: %w", err)
	}
	log.Info("Seeded favourites", "count", len(ids), "ids", ids)
	return nil
}

func main() {
	log.Info("Starting favourites seeder...")
	cfg := config.Load()
	count := seedCount()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	err := run(ctx, cfg, count, rand.New(rand.NewSource(time.Now().UnixNano())))
	cancel()
	if err != nil {
		log.Fatalf("Seeding failed: %s", err)
	}
}
