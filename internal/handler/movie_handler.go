package handler

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"movie-catalog-service/internal/favorites"
	"movie-catalog-service/internal/service"
	"movie-catalog-service/internal/viewstate"
)

// MovieHandler renders the movie screens' view states and routes user
// actions to the presentation adapters.
type MovieHandler struct {
	list      *viewstate.MovieListAdapter
	favorites *viewstate.MovieListAdapter
	search    *viewstate.SearchAdapter
	detail    *viewstate.DetailAdapter
	store     *favorites.Store
	svc       *service.MovieService
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(list, favs *viewstate.MovieListAdapter, search *viewstate.SearchAdapter, detail *viewstate.DetailAdapter, store *favorites.Store, svc *service.MovieService) *MovieHandler {
	return &MovieHandler{
		list:      list,
		favorites: favs,
		search:    search,
		detail:    detail,
		store:     store,
		svc:       svc,
	}
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Health returns service health status.
func (h *MovieHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "movie-catalog-service",
	})
}

// ListMovies returns the home screen view state.
func (h *MovieHandler) ListMovies(c fiber.Ctx) error {
	return c.JSON(h.list.State())
}

// RefreshMovies triggers the popular-movies refresh. The cache observation
// picks up the result, so the response only acknowledges the trigger.
func (h *MovieHandler) RefreshMovies(c fiber.Ctx) error {
	h.list.Refresh()
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "refresh triggered"})
}

// FavoriteMovies returns the favorites screen view state.
func (h *MovieHandler) FavoriteMovies(c fiber.Ctx) error {
	return c.JSON(h.favorites.State())
}

// ToggleFavorite flips favorite membership for one movie.
func (h *MovieHandler) ToggleFavorite(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}

	h.list.ToggleFavorite(id)
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "favorite toggled"})
}

// RemoveFavorite unconditionally removes one movie from the favorite set.
func (h *MovieHandler) RemoveFavorite(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}

	if err := h.store.Remove(context.Background(), id); err != nil {
		slog.Error("failed to remove favorite", "movie_id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to remove favorite"})
	}
	return c.JSON(fiber.Map{"message": "favorite removed"})
}

// SearchMovies runs a one-shot search and returns the resulting view state.
func (h *MovieHandler) SearchMovies(c fiber.Ctx) error {
	return c.JSON(h.search.Search(c.Query("query")))
}

// GetMovieDetail loads the detail screen for one movie.
func (h *MovieHandler) GetMovieDetail(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}

	state := h.detail.Load(id)
	if state.Phase == viewstate.PhaseError {
		return c.Status(fiber.StatusNotFound).JSON(state)
	}
	return c.JSON(state)
}

// CacheStatus reports the age of the local movie cache.
func (h *MovieHandler) CacheStatus(c fiber.Ctx) error {
	status, err := h.svc.Cache()
	if err != nil {
		slog.Error("failed to read cache status", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to read cache status"})
	}
	return c.JSON(status)
}

// ClearCache deletes every cached movie row.
func (h *MovieHandler) ClearCache(c fiber.Ctx) error {
	if err := h.svc.ClearCache(); err != nil {
		slog.Error("failed to clear cache", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to clear cache"})
	}
	return c.JSON(fiber.Map{"message": "cache cleared"})
}
