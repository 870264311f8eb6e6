package viewmodel

import (
	"fmt"

	"github.com/mauv0809/fantafav/internal/roster"
)

// Mode selects which list the UI is showing.
type Mode int

const (
	ModePlayers Mode = iota
	ModeFavourites
)

func (m Mode) String() string {
	switch m {
	case ModePlayers:
		return "players"
	case ModeFavourites:
		return "favourites"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts the string form of a Mode back.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "players":
		return ModePlayers, nil
	case "favourites", "favorites":
		return ModeFavourites, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

// MinQueryLength is the shortest search text that triggers a search.
const MinQueryLength = 3

// errorMessagePrefix is the user-facing text shown for any fetch failure.
const errorMessagePrefix = "Unable to load players: "

// State is a snapshot of everything the UI renders. Version increases by one
// with every change.
type State struct {
	Version       uint64          `json:"version"`
	Mode          Mode            `json:"-"`
	ModeName      string          `json:"mode"`
	IsFiltered    bool            `json:"isFiltered"`
	IsLoading     bool            `json:"isLoading"`
	ErrorMessage  string          `json:"errorMessage,omitempty"`
	Players       []roster.Player `json:"players"`
	Favourites    []roster.Player `json:"favourites"`
	SearchResults []roster.Player `json:"searchResults"`
	DataSource    []roster.Player `json:"dataSource"`
}
