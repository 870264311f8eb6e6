package favorites

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// SlotKey is the preferences key holding the favourite ids.
const SlotKey = "favorite_player_ids"

// store keeps the favourite ids in the preferences table.
type store struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a new FavouritesStore.
func New(db *sql.DB) FavouritesStore {
	return &store{
		db: db,
	}
}

func (s *store) Load(ctx context.Context) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var blob []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, SlotKey).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("Favourites slot not found, initialising empty set", "key", SlotKey)
		if err := s.saveLocked(ctx, []int{}); err != nil {
			return nil, err
		}
		return []int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load favourites: %w", err)
	}

	var ids []int
	if err := msgpack.Unmarshal(blob, &ids); err != nil {
		return nil, fmt.Errorf("failed to decode favourites: %w", err)
	}
	if ids == nil {
		ids = []int{}
	}
	return ids, nil
}

func (s *store) Save(ctx context.Context, ids []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, Dedupe(ids))
}

func (s *store) saveLocked(ctx context.Context, ids []int) error {
	blob, err := msgpack.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode favourites: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, SlotKey, blob, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save favourites: %w", err)
	}
	log.Debug("Saved favourites", "count", len(ids))
	return nil
}

// Dedupe returns ids without repeats, keeping first-seen order.
func Dedupe(ids []int) []int {
	out := make([]int, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
