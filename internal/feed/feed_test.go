package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-catalog-service/internal/models"
)

type fakeMovieSource struct {
	ch chan models.MoviesSnapshot
}

func (f *fakeMovieSource) ObserveAll(ctx context.Context) <-chan models.MoviesSnapshot {
	return f.ch
}

type fakeFavoriteSource struct {
	ch chan models.FavoritesSnapshot
}

func (f *fakeFavoriteSource) Observe(ctx context.Context) <-chan models.FavoritesSnapshot {
	return f.ch
}

func newTestFeed() (*Feed, *fakeMovieSource, *fakeFavoriteSource) {
	movies := &fakeMovieSource{ch: make(chan models.MoviesSnapshot, 4)}
	favorites := &fakeFavoriteSource{ch: make(chan models.FavoritesSnapshot, 4)}
	f := New(movies, favorites)
	f.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return f, movies, favorites
}

func nextList(t *testing.T, ch <-chan models.ListSnapshot) models.ListSnapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		require.True(t, ok, "list channel closed unexpectedly")
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for list snapshot")
	}
	return models.ListSnapshot{}
}

func assertNoEmission(t *testing.T, ch <-chan models.ListSnapshot) {
	t.Helper()
	select {
	case snap := <-ch:
		t.Fatalf("unexpected emission: %+v", snap)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestObserve_WaitsForBothSources(t *testing.T) {
	f, movies, favorites := newTestFeed()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := f.Observe(ctx)

	movies.ch <- models.MoviesSnapshot{Movies: []models.CachedMovie{{ID: 42, Title: "Example"}}}
	assertNoEmission(t, ch)

	favorites.ch <- models.FavoritesSnapshot{IDs: models.FavoriteSet{}}

	snap := nextList(t, ch)
	require.NoError(t, snap.Err)
	require.Len(t, snap.Movies, 1)
	assert.Equal(t, 42, snap.Movies[0].ID)
	assert.False(t, snap.Movies[0].IsFavorite)
}

func TestObserve_MarksFavorites(t *testing.T) {
	f, movies, favorites := newTestFeed()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := f.Observe(ctx)

	movies.ch <- models.MoviesSnapshot{Movies: []models.CachedMovie{
		{ID: 42, Title: "Example"},
		{ID: 7, Title: "Other"},
	}}
	favorites.ch <- models.FavoritesSnapshot{IDs: models.FavoriteSet{"42": {}}}

	snap := nextList(t, ch)
	require.NoError(t, snap.Err)
	require.Len(t, snap.Movies, 2)
	assert.True(t, snap.Movies[0].IsFavorite)
	assert.False(t, snap.Movies[1].IsFavorite)
}

func TestObserve_RecomputesOnFavoriteChange(t *testing.T) {
	f, movies, favorites := newTestFeed()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := f.Observe(ctx)

	movies.ch <- models.MoviesSnapshot{Movies: []models.CachedMovie{{ID: 42, Title: "Example"}}}
	favorites.ch <- models.FavoritesSnapshot{IDs: models.FavoriteSet{}}

	first := nextList(t, ch)
	assert.False(t, first.Movies[0].IsFavorite)

	// A favorites-only change must re-derive the list without a table change.
	favorites.ch <- models.FavoritesSnapshot{IDs: models.FavoriteSet{"42": {}}}

	second := nextList(t, ch)
	assert.True(t, second.Movies[0].IsFavorite)
}

func TestObserveFavorites_FiltersToFavoriteRows(t *testing.T) {
	f, movies, favorites := newTestFeed()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := f.ObserveFavorites(ctx)

	movies.ch <- models.MoviesSnapshot{Movies: []models.CachedMovie{
		{ID: 42, Title: "Example"},
		{ID: 7, Title: "Other"},
	}}
	favorites.ch <- models.FavoritesSnapshot{IDs: models.FavoriteSet{"7": {}}}

	snap := nextList(t, ch)
	require.NoError(t, snap.Err)
	require.Len(t, snap.Movies, 1)
	assert.Equal(t, 7, snap.Movies[0].ID)
	assert.True(t, snap.Movies[0].IsFavorite)
}

func TestObserve_ForwardsSourceErrors(t *testing.T) {
	f, movies, _ := newTestFeed()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := f.Observe(ctx)

	movies.ch <- models.MoviesSnapshot{Err: errors.New("table unavailable")}

	snap := nextList(t, ch)
	require.Error(t, snap.Err)
	assert.Contains(t, snap.Err.Error(), "table unavailable")
}

func TestObserve_EmptyTableEmitsEmptyList(t *testing.T) {
	f, movies, favorites := newTestFeed()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := f.Observe(ctx)

	movies.ch <- models.MoviesSnapshot{Movies: nil}
	favorites.ch <- models.FavoritesSnapshot{IDs: models.FavoriteSet{"42": {}}}

	snap := nextList(t, ch)
	require.NoError(t, snap.Err)
	assert.Empty(t, snap.Movies)
	assert.NotNil(t, snap.Movies)
}
