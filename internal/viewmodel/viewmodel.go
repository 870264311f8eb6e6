package viewmodel

import (
	"context"
	"slices"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/fantafav/internal/roster"
	"github.com/mauv0809/fantafav/internal/usecase"
)

// ViewModel mediates between the UI and the FavouritePlayers use case. It
// owns display copies of the roster, favourites and search results, and
// decides which of them is the active data source.
type ViewModel struct {
	useCase usecase.FavouritePlayers

	// opMu orders use case reads with the state writes that follow them.
	// It is never held across a roster download.
	opMu sync.Mutex

	mu          sync.Mutex
	state       State
	inFlight    int
	subscribers map[int]*subscriber
	nextSubID   int
	closed      bool
}

// New creates a ViewModel in players mode with empty lists.
func New(useCase usecase.FavouritePlayers) *ViewModel {
	return &ViewModel{
		useCase: useCase,
		state: State{
			Mode:          ModePlayers,
			Players:       []roster.Player{},
			Favourites:    []roster.Player{},
			SearchResults: []roster.Player{},
			DataSource:    []roster.Player{},
		},
		subscribers: make(map[int]*subscriber),
	}
}

// FetchPlayers loads the roster from source and refreshes the derived lists.
// Any failure is turned into the user-facing ErrorMessage.
func (vm *ViewModel) FetchPlayers(ctx context.Context, source string) error {
	vm.mu.Lock()
	vm.inFlight++
	vm.state.IsLoading = true
	vm.state.ErrorMessage = ""
	vm.publishLocked()
	vm.mu.Unlock()

	_, err := vm.useCase.FetchPlayers(ctx, source)

	vm.opMu.Lock()
	defer vm.opMu.Unlock()
	var fetched, favourites []roster.Player
	if err == nil {
		// Re-read so a slower fetch never overwrites a newer roster.
		fetched = vm.useCase.Players()
		favourites = vm.useCase.FavouritePlayers()
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.inFlight--
	vm.state.IsLoading = vm.inFlight > 0
	if err != nil {
		log.Warn("Fetch failed", "source", source, "error", err)
		vm.state.ErrorMessage = errorMessagePrefix + err.Error()
		vm.publishLocked()
		return err
	}
	vm.state.Players = fetched
	vm.state.Favourites = favourites
	if !vm.state.IsFiltered {
		vm.refreshDataSourceLocked()
	}
	vm.publishLocked()
	return nil
}

// Search refreshes the search results for query. The data source follows
// only while filtered.
func (vm *ViewModel) Search(query string) {
	vm.opMu.Lock()
	defer vm.opMu.Unlock()
	results := vm.useCase.SearchPlayers(query)

	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.state.SearchResults = results
	if vm.state.IsFiltered {
		vm.state.DataSource = results
	}
	vm.publishLocked()
}

// ApplySearchText reacts to the search box: at least MinQueryLength
// characters search and filter, empty text clears an active filter, and
// anything in between is ignored.
func (vm *ViewModel) ApplySearchText(text string) {
	vm.opMu.Lock()
	defer vm.opMu.Unlock()
	switch {
	case utf8.RuneCountInString(text) >= MinQueryLength:
		results := vm.useCase.SearchPlayers(text)
		vm.mu.Lock()
		defer vm.mu.Unlock()
		vm.state.SearchResults = results
		vm.state.IsFiltered = true
		vm.state.DataSource = results
		vm.publishLocked()
	case text == "" && vm.IsFiltered():
		vm.resetSearchLocked()
	}
}

// ResetSearch reloads the roster copy and drops the filter.
func (vm *ViewModel) ResetSearch() {
	vm.opMu.Lock()
	defer vm.opMu.Unlock()
	vm.resetSearchLocked()
}

func (vm *ViewModel) resetSearchLocked() {
	players := vm.useCase.Players()

	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.state.Players = players
	vm.state.IsFiltered = false
	vm.refreshDataSourceLocked()
	vm.publishLocked()
}

// SetMode switches between the roster and favourites lists.
func (vm *ViewModel) SetMode(mode Mode) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.state.Mode = mode
	switch {
	case mode == ModeFavourites:
		vm.state.DataSource = vm.state.Favourites
	case !vm.state.IsFiltered:
		vm.state.DataSource = vm.state.Players
	}
	vm.publishLocked()
}

// SetFiltered shows the search results when true and the list for the
// current mode when false.
func (vm *ViewModel) SetFiltered(filtered bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.state.IsFiltered = filtered
	if filtered {
		vm.state.DataSource = vm.state.SearchResults
	} else {
		vm.refreshDataSourceLocked()
	}
	vm.publishLocked()
}

// AddFavourite marks playerID as favourite and refreshes the favourites copy.
// A persist error is returned but the refresh still happens, since the
// in-memory set changed regardless.
func (vm *ViewModel) AddFavourite(ctx context.Context, playerID int) error {
	vm.opMu.Lock()
	defer vm.opMu.Unlock()
	return vm.addFavouriteLocked(ctx, playerID)
}

// RemoveFavourite unmarks playerID and refreshes the favourites copy.
func (vm *ViewModel) RemoveFavourite(ctx context.Context, playerID int) error {
	vm.opMu.Lock()
	defer vm.opMu.Unlock()
	return vm.removeFavouriteLocked(ctx, playerID)
}

// ToggleFavourite flips the favourite flag of playerID.
func (vm *ViewModel) ToggleFavourite(ctx context.Context, playerID int) error {
	vm.opMu.Lock()
	defer vm.opMu.Unlock()
	if vm.IsFavourite(playerID) {
		return vm.removeFavouriteLocked(ctx, playerID)
	}
	return vm.addFavouriteLocked(ctx, playerID)
}

func (vm *ViewModel) addFavouriteLocked(ctx context.Context, playerID int) error {
	err := vm.useCase.AddFavourite(ctx, playerID)
	vm.reloadFavouritesLocked()
	return err
}

func (vm *ViewModel) removeFavouriteLocked(ctx context.Context, playerID int) error {
	err := vm.useCase.RemoveFavourite(ctx, playerID)
	vm.reloadFavouritesLocked()
	return err
}

func (vm *ViewModel) reloadFavouritesLocked() {
	favourites := vm.useCase.FavouritePlayers()

	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.state.Favourites = favourites
	if vm.state.Mode == ModeFavourites && !vm.state.IsFiltered {
		vm.state.DataSource = favourites
	}
	vm.publishLocked()
}

// IsFavourite reports whether playerID is in the favourites copy.
func (vm *ViewModel) IsFavourite(playerID int) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return slices.ContainsFunc(vm.state.Favourites, func(p roster.Player) bool {
		return p.ID == playerID
	})
}

func (vm *ViewModel) IsFiltered() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state.IsFiltered
}

// State returns a copy of the current state.
func (vm *ViewModel) State() State {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.snapshotLocked()
}

// Subscribe returns a channel that receives the current state followed by
// every later change, in order. The cancel func stops delivery and closes
// the channel.
func (vm *ViewModel) Subscribe() (<-chan State, func()) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	sub := newSubscriber()
	if vm.closed {
		sub.close()
		return sub.out, func() {}
	}
	id := vm.nextSubID
	vm.nextSubID++
	vm.subscribers[id] = sub
	sub.enqueue(vm.snapshotLocked())

	cancel := func() {
		vm.mu.Lock()
		delete(vm.subscribers, id)
		vm.mu.Unlock()
		sub.close()
	}
	return sub.out, cancel
}

// Close stops delivery to every subscriber.
func (vm *ViewModel) Close() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.closed = true
	for id, sub := range vm.subscribers {
		sub.close()
		delete(vm.subscribers, id)
	}
}

func (vm *ViewModel) refreshDataSourceLocked() {
	if vm.state.Mode == ModeFavourites {
		vm.state.DataSource = vm.state.Favourites
	} else {
		vm.state.DataSource = vm.state.Players
	}
}

func (vm *ViewModel) publishLocked() {
	vm.state.Version++
	if len(vm.subscribers) == 0 {
		return
	}
	snapshot := vm.snapshotLocked()
	for _, sub := range vm.subscribers {
		sub.enqueue(snapshot)
	}
}

func (vm *ViewModel) snapshotLocked() State {
	s := vm.state
	s.ModeName = s.Mode.String()
	s.Players = slices.Clone(s.Players)
	s.Favourites = slices.Clone(s.Favourites)
	s.SearchResults = slices.Clone(s.SearchResults)
	s.DataSource = slices.Clone(s.DataSource)
	return s
}
