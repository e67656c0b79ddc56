// Package feed produces the display-ready movie list consumed by list
// screens: a combine-latest over the cached movie table and the favorite id
// set, recomputing the derived list whenever either source changes.
package feed

import (
	"context"
	"time"

	"movie-catalog-service/internal/models"
)

// MovieSource is the reactive contract of the relational movie store.
type MovieSource interface {
	ObserveAll(ctx context.Context) <-chan models.MoviesSnapshot
}

// FavoriteSource is the reactive contract of the favorite id store.
type FavoriteSource interface {
	Observe(ctx context.Context) <-chan models.FavoritesSnapshot
}

// Feed merges the two sources into one stream of display movies.
type Feed struct {
	movies    MovieSource
	favorites FavoriteSource
	now       func() time.Time
}

// New creates a feed over the given sources.
func New(movies MovieSource, favorites FavoriteSource) *Feed {
	return &Feed{movies: movies, favorites: favorites, now: time.Now}
}

// Observe emits the full display list. The first emission happens once both
// sources have produced a value (each emits immediately on subscribe); after
// that, any emission from either source triggers a recompute from the latest
// value of both.
func (f *Feed) Observe(ctx context.Context) <-chan models.ListSnapshot {
	return f.observe(ctx, false)
}

// ObserveFavorites is the same combination filtered to favorite rows only.
func (f *Feed) ObserveFavorites(ctx context.Context) <-chan models.ListSnapshot {
	return f.observe(ctx, true)
}

func (f *Feed) observe(ctx context.Context, favoritesOnly bool) <-chan models.ListSnapshot {
	out := make(chan models.ListSnapshot, 1)
	moviesCh := f.movies.ObserveAll(ctx)
	favoritesCh := f.favorites.Observe(ctx)

	go func() {
		defer close(out)

		var rows []models.CachedMovie
		favorites := models.FavoriteSet{}
		haveMovies, haveFavorites := false, false

		emit := func(snap models.ListSnapshot) bool {
			select {
			case out <- snap:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for moviesCh != nil || favoritesCh != nil {
			select {
			case snap, ok := <-moviesCh:
				if !ok {
					moviesCh = nil
					continue
				}
				if snap.Err != nil {
					if !emit(models.ListSnapshot{Err: snap.Err}) {
						return
					}
					continue
				}
				rows = snap.Movies
				haveMovies = true

			case snap, ok := <-favoritesCh:
				if !ok {
					favoritesCh = nil
					continue
				}
				if snap.Err != nil {
					if !emit(models.ListSnapshot{Err: snap.Err}) {
						return
					}
					continue
				}
				favorites = snap.IDs
				haveFavorites = true

			case <-ctx.Done():
				return
			}

			if !haveMovies || !haveFavorites {
				continue
			}
			if !emit(models.ListSnapshot{Movies: f.combine(rows, favorites, favoritesOnly)}) {
				return
			}
		}
	}()

	return out
}

func (f *Feed) combine(rows []models.CachedMovie, favorites models.FavoriteSet, favoritesOnly bool) []models.DisplayMovie {
	now := f.now()
	movies := make([]models.DisplayMovie, 0, len(rows))
	for _, row := range rows {
		d := models.NewDisplayMovie(row, now, favorites)
		if favoritesOnly && !d.IsFavorite {
			continue
		}
		movies = append(movies, d)
	}
	return movies
}
