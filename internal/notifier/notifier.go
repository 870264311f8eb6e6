package notifier

import (
	"context"

	"github.com/mauv0809/fantafav/internal/roster"
)

// Notifier defines a high-level interface for alerting about roster events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For failed roster loads
	NotifyFetchFailed(ctx context.Context, message string, dryRun bool) error
	// For edits to the favourites list
	NotifyFavouritesChanged(ctx context.Context, favourites []roster.Player, dryRun bool) error
}
