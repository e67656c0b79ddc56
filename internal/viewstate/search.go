package viewstate

import (
	"context"
	"log/slog"
	"sync"

	"movie-catalog-service/internal/models"
)

// Searcher runs a one-shot movie search.
type Searcher interface {
	Search(query string, page int) []models.DisplayMovie
}

// SearchAdapter drives the search screen: Loading while the one-shot call
// runs, then Success with results, or Empty when nothing matched.
type SearchAdapter struct {
	search    Searcher
	favorites FavoriteToggler

	mu    sync.RWMutex
	state ListState
}

// NewSearchAdapter creates the search screen adapter.
func NewSearchAdapter(search Searcher, favorites FavoriteToggler) *SearchAdapter {
	return &SearchAdapter{
		search:    search,
		favorites: favorites,
		state:     ListState{Phase: PhaseEmpty},
	}
}

// Search runs a search and returns the resulting state. A blank query comes
// back Empty without any network traffic (the service short-circuits it).
func (a *SearchAdapter) Search(query string) ListState {
	a.setState(ListState{Phase: PhaseLoading})

	movies := a.search.Search(query, 1)
	next := ListState{Phase: PhaseSuccess, Movies: movies}
	if len(movies) == 0 {
		next = ListState{Phase: PhaseEmpty}
	}
	a.setState(next)
	return next
}

// Reset returns the screen to its initial empty state.
func (a *SearchAdapter) Reset() {
	a.setState(ListState{Phase: PhaseEmpty})
}

// State returns the current view state.
func (a *SearchAdapter) State() ListState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// ToggleFavorite routes a favorite toggle from a search result,
// fire-and-forget.
func (a *SearchAdapter) ToggleFavorite(movieID int) {
	go func() {
		if err := a.favorites.Toggle(context.Background(), movieID); err != nil {
			slog.Error("failed to toggle favorite", "movie_id", movieID, "error", err)
		}
	}()
}

func (a *SearchAdapter) setState(s ListState) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}
