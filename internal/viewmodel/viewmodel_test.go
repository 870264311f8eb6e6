package viewmodel_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/mauv0809/fantafav/internal/favorites"
	"github.com/mauv0809/fantafav/internal/metrics"
	"github.com/mauv0809/fantafav/internal/players"
	"github.com/mauv0809/fantafav/internal/roster"
	"github.com/mauv0809/fantafav/internal/usecase"
	"github.com/mauv0809/fantafav/internal/viewmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const source = "https://example.com/players.json"

var (
	rossi   = roster.Player{ID: 1, Name: "Rossi", Team: "MIL"}
	bianchi = roster.Player{ID: 2, Name: "Bianchi", Team: "INT"}
	alberti = roster.Player{ID: 3, Name: "Alberti", Team: "JUV"}
)

// setupVM wires a view model over a real repository with mocked edges.
func setupVM(t *testing.T, favouriteIDs ...int) (*viewmodel.ViewModel, *roster.MockClient) {
	t.Helper()
	client := roster.NewMockClient()
	client.FetchPlayersFunc = func(ctx context.Context, src string) ([]roster.Player, error) {
		return []roster.Player{rossi, bianchi, alberti}, nil
	}
	repo := players.New(client, favorites.NewMock(favouriteIDs...), metrics.NewMock())
	vm := viewmodel.New(usecase.New(repo))
	t.Cleanup(vm.Close)
	return vm, client
}

func ids(ps []roster.Player) []int {
	out := make([]int, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestNew_InitialState(t *testing.T) {
	vm := viewmodel.New(usecase.NewMock())
	s := vm.State()
	assert.Equal(t, viewmodel.ModePlayers, s.Mode)
	assert.False(t, s.IsFiltered)
	assert.False(t, s.IsLoading)
	assert.Empty(t, s.ErrorMessage)
	assert.NotNil(t, s.DataSource)
	assert.Empty(t, s.DataSource)
}

func TestFetchPlayers_Success(t *testing.T) {
	vm, _ := setupVM(t, 2)

	require.NoError(t, vm.FetchPlayers(context.Background(), source))

	s := vm.State()
	assert.Equal(t, []int{1, 2, 3}, ids(s.Players))
	assert.Equal(t, []int{2}, ids(s.Favourites))
	assert.Equal(t, []int{1, 2, 3}, ids(s.DataSource))
	assert.False(t, s.IsLoading)
	assert.Empty(t, s.ErrorMessage)
	assert.True(t, vm.IsFavourite(2))
	assert.False(t, vm.IsFavourite(1))
}

func TestFetchPlayers_FailureSetsErrorAndKeepsLists(t *testing.T) {
	vm, client := setupVM(t)
	ctx := context.Background()
	require.NoError(t, vm.FetchPlayers(ctx, source))

	client.FetchPlayersFunc = func(ctx context.Context, src string) ([]roster.Player, error) {
		return nil, fmt.Errorf("%w: unexpected EOF", roster.ErrDecode)
	}
	err := vm.FetchPlayers(ctx, source)
	require.ErrorIs(t, err, roster.ErrDecode)

	s := vm.State()
	assert.False(t, s.IsLoading)
	assert.Equal(t, "Unable to load players: malformed roster payload: unexpected EOF", s.ErrorMessage)
	assert.Equal(t, []int{1, 2, 3}, ids(s.Players), "roster copy is untouched")

	client.FetchPlayersFunc = func(ctx context.Context, src string) ([]roster.Player, error) {
		return []roster.Player{rossi}, nil
	}
	require.NoError(t, vm.FetchPlayers(ctx, source))
	assert.Empty(t, vm.State().ErrorMessage, "the next attempt clears the error")
}

func TestFetchPlayers_IsLoadingWhileInFlight(t *testing.T) {
	uc := usecase.NewMock()
	release := make(chan struct{})
	entered := make(chan struct{})
	uc.FetchPlayersFunc = func(ctx context.Context, src string) ([]roster.Player, error) {
		close(entered)
		<-release
		return nil, errors.New("timeout")
	}
	vm := viewmodel.New(uc)
	defer vm.Close()

	done := make(chan error, 1)
	go func() { done <- vm.FetchPlayers(context.Background(), source) }()

	<-entered
	assert.True(t, vm.State().IsLoading)
	close(release)
	require.Error(t, <-done)
	assert.False(t, vm.State().IsLoading, "cleared on failure too")
}

func TestModeAndFilterTransitions(t *testing.T) {
	vm, _ := setupVM(t, 1, 2)
	require.NoError(t, vm.FetchPlayers(context.Background(), source))
	vm.Search("ber")
	all := []int{1, 2, 3}
	favs := []int{2, 1}
	search := []int{3}

	assert.Equal(t, all, ids(vm.State().DataSource), "search alone does not switch lists")

	vm.SetMode(viewmodel.ModeFavourites)
	assert.Equal(t, favs, ids(vm.State().DataSource))

	vm.SetMode(viewmodel.ModeFavourites)
	assert.Equal(t, favs, ids(vm.State().DataSource), "same mode twice is a no-op in effect")

	vm.SetFiltered(true)
	assert.Equal(t, search, ids(vm.State().DataSource), "filter wins regardless of mode")

	vm.SetMode(viewmodel.ModeFavourites)
	assert.Equal(t, favs, ids(vm.State().DataSource), "favourites mode ignores the filter")

	vm.SetMode(viewmodel.ModePlayers)
	assert.Equal(t, favs, ids(vm.State().DataSource), "players mode while filtered leaves the source alone")

	vm.SetFiltered(true)
	assert.Equal(t, search, ids(vm.State().DataSource))

	vm.SetFiltered(false)
	assert.Equal(t, all, ids(vm.State().DataSource))

	vm.SetMode(viewmodel.ModeFavourites)
	vm.SetFiltered(false)
	assert.Equal(t, favs, ids(vm.State().DataSource))
}

func TestFavouriteToggles(t *testing.T) {
	vm, _ := setupVM(t)
	ctx := context.Background()
	require.NoError(t, vm.FetchPlayers(ctx, source))

	t.Run("players mode keeps the roster as source", func(t *testing.T) {
		require.NoError(t, vm.AddFavourite(ctx, 1))
		s := vm.State()
		assert.Equal(t, []int{1}, ids(s.Favourites))
		assert.Equal(t, []int{1, 2, 3}, ids(s.DataSource))
	})

	t.Run("favourites mode follows the favourites", func(t *testing.T) {
		vm.SetMode(viewmodel.ModeFavourites)
		require.NoError(t, vm.AddFavourite(ctx, 2))
		assert.Equal(t, []int{2, 1}, ids(vm.State().DataSource))

		require.NoError(t, vm.RemoveFavourite(ctx, 1))
		assert.Equal(t, []int{2}, ids(vm.State().DataSource))
	})

	t.Run("filtered favourites mode leaves the source alone", func(t *testing.T) {
		vm.Search("ross")
		vm.SetFiltered(true)
		require.NoError(t, vm.AddFavourite(ctx, 3))
		s := vm.State()
		assert.Equal(t, []int{1}, ids(s.DataSource))
		assert.Equal(t, []int{2, 3}, ids(s.Favourites))
	})

	t.Run("toggle flips membership", func(t *testing.T) {
		require.NoError(t, vm.ToggleFavourite(ctx, 3))
		assert.False(t, vm.IsFavourite(3))
		require.NoError(t, vm.ToggleFavourite(ctx, 3))
		assert.True(t, vm.IsFavourite(3))
	})
}

func TestAddFavourite_PersistErrorStillRefreshes(t *testing.T) {
	uc := usecase.NewMock()
	uc.AddFavouriteFunc = func(ctx context.Context, id int) error { return errors.New("disk full") }
	uc.FavouritePlayersFunc = func() []roster.Player { return []roster.Player{rossi} }
	vm := viewmodel.New(uc)
	defer vm.Close()

	err := vm.AddFavourite(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, vm.IsFavourite(1))
	assert.Empty(t, vm.State().ErrorMessage, "only fetch failures set the error message")
}

func TestApplySearchText(t *testing.T) {
	vm, _ := setupVM(t)
	require.NoError(t, vm.FetchPlayers(context.Background(), source))

	vm.ApplySearchText("ro")
	assert.False(t, vm.State().IsFiltered, "short text is ignored")

	vm.ApplySearchText("ROS")
	s := vm.State()
	assert.True(t, s.IsFiltered)
	assert.Equal(t, []int{1}, ids(s.DataSource))

	vm.ApplySearchText("ro")
	assert.True(t, vm.State().IsFiltered, "shortening the text keeps the filter")

	vm.ApplySearchText("zzz")
	assert.Empty(t, vm.State().DataSource)

	vm.ApplySearchText("")
	s = vm.State()
	assert.False(t, s.IsFiltered)
	assert.Equal(t, []int{1, 2, 3}, ids(s.DataSource))
}

func TestStateIsACopy(t *testing.T) {
	vm, _ := setupVM(t)
	require.NoError(t, vm.FetchPlayers(context.Background(), source))

	s := vm.State()
	s.DataSource[0].Name = "changed"
	assert.Equal(t, "Rossi", vm.State().DataSource[0].Name)
}

func TestSubscribe_DeliversSnapshotsInOrder(t *testing.T) {
	vm, _ := setupVM(t)
	updates, cancel := vm.Subscribe()
	defer cancel()

	next := func() viewmodel.State {
		t.Helper()
		select {
		case s, ok := <-updates:
			require.True(t, ok)
			return s
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for a state update")
			return viewmodel.State{}
		}
	}

	initial := next()
	assert.False(t, initial.IsLoading)

	require.NoError(t, vm.FetchPlayers(context.Background(), source))
	vm.SetMode(viewmodel.ModeFavourites)

	loading := next()
	assert.True(t, loading.IsLoading)
	loaded := next()
	assert.False(t, loaded.IsLoading)
	assert.Len(t, loaded.Players, 3)
	switched := next()
	assert.Equal(t, viewmodel.ModeFavourites, switched.Mode)
	assert.Equal(t, "favourites", switched.ModeName)

	assert.Less(t, initial.Version, loading.Version)
	assert.Less(t, loading.Version, loaded.Version)
	assert.Less(t, loaded.Version, switched.Version)
}

func TestSubscribe_SlowConsumerDoesNotBlock(t *testing.T) {
	vm, _ := setupVM(t)
	updates, cancel := vm.Subscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			vm.SetFiltered(i%2 == 0)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publishing blocked on an unread subscriber")
	}

	var last viewmodel.State
	for i := 0; i < 101; i++ {
		last = <-updates
	}
	assert.False(t, last.IsFiltered)

	cancel()
	_, ok := <-updates
	assert.False(t, ok, "cancel closes the channel")
}

func TestClose_ClosesSubscriptions(t *testing.T) {
	vm := viewmodel.New(usecase.NewMock())
	updates, _ := vm.Subscribe()
	<-updates

	vm.Close()
	_, ok := <-updates
	assert.False(t, ok)

	late, _ := vm.Subscribe()
	_, ok = <-late
	assert.False(t, ok, "subscribing after Close yields a closed channel")
}

func TestParseMode(t *testing.T) {
	m, err := viewmodel.ParseMode("favourites")
	require.NoError(t, err)
	assert.Equal(t, viewmodel.ModeFavourites, m)

	m, err = viewmodel.ParseMode("players")
	require.NoError(t, err)
	assert.Equal(t, viewmodel.ModePlayers, m)

	_, err = viewmodel.ParseMode("teams")
	assert.Error(t, err)
}

// parkingUseCase holds a favourite set and can pause the first
// FavouritePlayers call after it has taken its snapshot.
type parkingUseCase struct {
	*usecase.MockUseCase

	mu     sync.Mutex
	ids    []int
	calls  int
	parked chan struct{}
	resume chan struct{}
}

func newParkingUseCase() *parkingUseCase {
	uc := &parkingUseCase{
		MockUseCase: usecase.NewMock(),
		parked:      make(chan struct{}),
		resume:      make(chan struct{}),
	}
	uc.AddFavouriteFunc = func(ctx context.Context, id int) error {
		uc.mu.Lock()
		defer uc.mu.Unlock()
		uc.ids = append(uc.ids, id)
		return nil
	}
	return uc
}

func (uc *parkingUseCase) FavouritePlayers() []roster.Player {
	uc.mu.Lock()
	uc.calls++
	first := uc.calls == 1
	snapshot := make([]roster.Player, 0, len(uc.ids))
	for _, id := range uc.ids {
		snapshot = append(snapshot, roster.Player{ID: id})
	}
	uc.mu.Unlock()

	if first {
		close(uc.parked)
		<-uc.resume
	}
	return snapshot
}

func TestAddFavourite_ConcurrentAddsKeepLatestFavourites(t *testing.T) {
	uc := newParkingUseCase()
	vm := viewmodel.New(uc)
	defer vm.Close()
	ctx := context.Background()

	first := make(chan error, 1)
	go func() { first <- vm.AddFavourite(ctx, 1) }()
	<-uc.parked

	second := make(chan error, 1)
	go func() { second <- vm.AddFavourite(ctx, 2) }()

	select {
	case <-second:
		t.Fatal("second add finished while the first refresh was still pending")
	case <-time.After(50 * time.Millisecond):
	}

	close(uc.resume)
	require.NoError(t, <-first)
	require.NoError(t, <-second)

	assert.Equal(t, []int{1, 2}, ids(vm.State().Favourites))
	assert.True(t, vm.IsFavourite(1))
	assert.True(t, vm.IsFavourite(2))
}

func TestToggleFavourite_ConcurrentTogglesAreSerialized(t *testing.T) {
	vm, _ := setupVM(t)
	ctx := context.Background()
	require.NoError(t, vm.FetchPlayers(ctx, source))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, vm.ToggleFavourite(ctx, 1))
		}()
	}
	wg.Wait()

	assert.False(t, vm.IsFavourite(1), "an even number of toggles cancels out")
	assert.Empty(t, vm.State().Favourites)
}

func TestFetchPlayers_ConcurrentWithAddKeepsFavourites(t *testing.T) {
	vm, client := setupVM(t)
	ctx := context.Background()
	release := make(chan struct{})
	entered := make(chan struct{})
	client.FetchPlayersFunc = func(ctx context.Context, src string) ([]roster.Player, error) {
		close(entered)
		<-release
		return []roster.Player{rossi, bianchi, alberti}, nil
	}

	fetched := make(chan error, 1)
	go func() { fetched <- vm.FetchPlayers(ctx, source) }()
	<-entered

	added := make(chan error, 1)
	go func() { added <- vm.AddFavourite(ctx, 2) }()
	close(release)

	require.NoError(t, <-fetched)
	require.NoError(t, <-added)
	s := vm.State()
	assert.Equal(t, []int{1, 2, 3}, ids(s.Players))
	assert.Equal(t, []int{2}, ids(s.Favourites))
}
