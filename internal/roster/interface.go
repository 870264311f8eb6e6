package roster

import "context"

// RosterClient defines the interface for fetching roster snapshots.
// This allows for mock implementations to be used in tests.
type RosterClient interface {
	FetchPlayers(ctx context.Context, source string) ([]Player, error)
}
