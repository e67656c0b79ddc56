package viewstate

import (
	"context"
	"log/slog"
	"sync"

	"movie-catalog-service/internal/models"
)

// MovieListAdapter drives a movie list screen (the full catalog or the
// favorites-only view). It re-enters Loading on each refresh trigger, goes
// to Success on every pipeline emission and to Error when the pipeline
// reports a failure.
type MovieListAdapter struct {
	subscribe func(context.Context) <-chan models.ListSnapshot
	refresher Refresher
	favorites FavoriteToggler

	mu     sync.RWMutex
	state  ListState
	runCtx context.Context
}

// NewMovieListAdapter creates an adapter over one list pipeline. refresher
// may be nil for screens without a refresh action.
func NewMovieListAdapter(subscribe func(context.Context) <-chan models.ListSnapshot, refresher Refresher, favorites FavoriteToggler) *MovieListAdapter {
	return &MovieListAdapter{
		subscribe: subscribe,
		refresher: refresher,
		favorites: favorites,
		state:     ListState{Phase: PhaseLoading},
		runCtx:    context.Background(),
	}
}

// Run subscribes to the pipeline and keeps the view state current until ctx
// ends. Blocks; run it on its own goroutine.
func (a *MovieListAdapter) Run(ctx context.Context) {
	a.mu.Lock()
	a.runCtx = ctx
	a.state = ListState{Phase: PhaseLoading}
	a.mu.Unlock()

	for snap := range a.subscribe(ctx) {
		if snap.Err != nil {
			a.setState(ListState{Phase: PhaseError, Error: "failed to read movie cache: " + snap.Err.Error()})
			continue
		}
		a.setState(ListState{Phase: PhaseSuccess, Movies: snap.Movies})
	}
}

// State returns the current view state.
func (a *MovieListAdapter) State() ListState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// Refresh re-enters Loading and triggers the refresh operation. A failed
// refresh only downgrades to Error while the screen is still Loading, so it
// never clobbers data that arrived from the cache in the meantime.
func (a *MovieListAdapter) Refresh() {
	if a.refresher == nil {
		return
	}

	a.setState(ListState{Phase: PhaseLoading})
	go func() {
		if err := a.refresher.RefreshPopular(1); err != nil {
			slog.Error("refresh failed", "error", err)
			a.setErrorIfLoading("could not refresh movies")
		}
	}()
}

// ToggleFavorite routes a favorite toggle to the key-value store,
// fire-and-forget. The pipeline re-emits once the store applies it.
func (a *MovieListAdapter) ToggleFavorite(movieID int) {
	a.mu.RLock()
	ctx := a.runCtx
	a.mu.RUnlock()

	go func() {
		if err := a.favorites.Toggle(ctx, movieID); err != nil {
			slog.Error("failed to toggle favorite", "movie_id", movieID, "error", err)
		}
	}()
}

func (a *MovieListAdapter) setState(s ListState) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}

func (a *MovieListAdapter) setErrorIfLoading(msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.Phase == PhaseLoading {
		a.state = ListState{Phase: PhaseError, Error: msg}
	}
}
