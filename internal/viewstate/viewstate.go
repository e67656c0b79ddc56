// Package viewstate holds the per-screen presentation adapters. Each
// adapter exposes a loading/success/error view of one pipeline and routes
// user actions (refresh, favorite toggles, searches) to the layers below;
// no business logic lives here.
package viewstate

import (
	"context"

	"movie-catalog-service/internal/models"
)

// Phase is the rendering phase of a screen.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseEmpty   Phase = "empty"
	PhaseError   Phase = "error"
)

// ListState is the view model of a movie list screen.
type ListState struct {
	Phase  Phase                 `json:"phase"`
	Movies []models.DisplayMovie `json:"movies,omitempty"`
	Error  string                `json:"error,omitempty"`
}

// Refresher triggers a cache refresh.
type Refresher interface {
	RefreshPopular(page int) error
}

// FavoriteToggler flips favorite membership for one movie.
type FavoriteToggler interface {
	Toggle(ctx context.Context, movieID int) error
}
