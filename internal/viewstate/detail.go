package viewstate

import (
	"sync"

	"movie-catalog-service/internal/models"
)

// DetailLoader fetches the detail view for one movie, nil on failure.
type DetailLoader interface {
	Detail(movieID int) *models.MovieDetail
}

// DetailState is the view model of the movie detail screen.
type DetailState struct {
	Phase Phase               `json:"phase"`
	Movie *models.MovieDetail `json:"movie,omitempty"`
	Error string              `json:"error,omitempty"`
}

// DetailAdapter drives the movie detail screen.
type DetailAdapter struct {
	loader DetailLoader

	mu    sync.RWMutex
	state DetailState
}

// NewDetailAdapter creates the detail screen adapter.
func NewDetailAdapter(loader DetailLoader) *DetailAdapter {
	return &DetailAdapter{loader: loader, state: DetailState{Phase: PhaseLoading}}
}

// Load fetches one movie's details and returns the resulting state.
func (a *DetailAdapter) Load(movieID int) DetailState {
	a.setState(DetailState{Phase: PhaseLoading})

	detail := a.loader.Detail(movieID)
	next := DetailState{Phase: PhaseSuccess, Movie: detail}
	if detail == nil {
		next = DetailState{Phase: PhaseError, Error: "failed to load movie details"}
	}
	a.setState(next)
	return next
}

// State returns the current view state.
func (a *DetailAdapter) State() DetailState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

func (a *DetailAdapter) setState(s DetailState) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}
