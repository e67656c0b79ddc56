package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"movie-catalog-service/internal/models"
	"movie-catalog-service/internal/repository"
	"movie-catalog-service/internal/tmdb"
)

// MovieService handles the refresh, search and detail operations. Failures
// are collapsed at this boundary the way the screens expect them: refresh is
// all-or-nothing, search degrades to an empty list, detail degrades to nil.
type MovieService struct {
	repo *repository.MovieRepository
	tmdb *tmdb.Client
	now  func() time.Time
}

// NewMovieService creates a new MovieService.
func NewMovieService(repo *repository.MovieRepository, tmdbClient *tmdb.Client) *MovieService {
	return &MovieService{repo: repo, tmdb: tmdbClient, now: time.Now}
}

// CacheStatus describes the age of the local movie cache.
type CacheStatus struct {
	Empty     bool   `json:"empty"`
	FetchedAt int64  `json:"fetched_at,omitempty"`
	CacheAge  string `json:"cache_age"`
}

// RefreshPopular fetches one page of popular movies and replaces the
// corresponding cached rows. The operation is all-or-nothing at page
// granularity: an empty page or any network/storage failure fails the whole
// refresh. No retry, no backoff.
func (s *MovieService) RefreshPopular(page int) error {
	result, err := s.tmdb.PopularMovies(page)
	if err != nil {
		return fmt.Errorf("failed to fetch popular movies: %w", err)
	}
	if len(result.Results) == 0 {
		return errors.New("no popular movies returned")
	}

	fetchedAt := s.now().UnixMilli()
	rows := make([]models.CachedMovie, 0, len(result.Results))
	for _, entry := range result.Results {
		rows = append(rows, entryToRow(entry, fetchedAt))
	}

	if err := s.repo.UpsertMovies(rows); err != nil {
		return fmt.Errorf("failed to store popular movies: %w", err)
	}

	slog.Info("refreshed popular movies", "page", page, "count", len(rows))
	return nil
}

// Search returns display movies matching a free-text query. A blank query
// returns an empty result immediately without touching the network; failures
// collapse to an empty result. Search results carry no favorite flag.
func (s *MovieService) Search(query string, page int) []models.DisplayMovie {
	if strings.TrimSpace(query) == "" {
		return []models.DisplayMovie{}
	}

	result, err := s.tmdb.SearchMovies(query, page)
	if err != nil {
		slog.Error("movie search failed", "query", query, "error", err)
		return []models.DisplayMovie{}
	}

	now := s.now()
	movies := make([]models.DisplayMovie, 0, len(result.Results))
	for _, entry := range result.Results {
		movies = append(movies, models.NewDisplayMovie(entryToRow(entry, now.UnixMilli()), now, models.FavoriteSet{}))
	}
	return movies
}

// Detail fetches the detail view for one movie, or nil on any failure.
func (s *MovieService) Detail(movieID int) *models.MovieDetail {
	resp, err := s.tmdb.GetMovieDetail(movieID)
	if err != nil {
		slog.Error("failed to fetch movie detail", "movie_id", movieID, "error", err)
		return nil
	}

	genres := make([]string, 0, len(resp.Genres))
	for _, g := range resp.Genres {
		genres = append(genres, g.Name)
	}

	return &models.MovieDetail{
		ID:                   resp.ID,
		Title:                resp.Title,
		Overview:             resp.Overview,
		ReleaseDate:          resp.ReleaseDate,
		OriginalLanguage:     resp.OriginalLanguage,
		OriginalTitle:        resp.OriginalTitle,
		Popularity:           resp.Popularity,
		VoteAverage:          resp.VoteAverage,
		VoteCount:            resp.VoteCount,
		Budget:               resp.Budget,
		Revenue:              resp.Revenue,
		Runtime:              resp.Runtime,
		Genres:               models.JoinGenres(genres),
		Homepage:             resp.Homepage,
		IMDBId:               resp.IMDBId,
		Tagline:              resp.Tagline,
		Status:               resp.Status,
		PosterURL:            models.BuildImageURL(resp.PosterPath, "w500"),
		BackdropURL:          models.BuildImageURL(resp.BackdropPath, "w780"),
		ReleaseDateFormatted: models.FormatReleaseDate(resp.ReleaseDate),
		VoteAverageFormatted: models.FormatVoteAverage(resp.VoteAverage),
		RuntimeFormatted:     models.FormatRuntime(resp.Runtime),
	}
}

// Cache returns the age of the local cache based on the most recently
// fetched row.
func (s *MovieService) Cache() (CacheStatus, error) {
	latest, err := s.repo.Latest()
	if err != nil {
		return CacheStatus{}, err
	}
	if latest == nil {
		return CacheStatus{Empty: true, CacheAge: models.CacheAgeDescription(0, s.now())}, nil
	}
	return CacheStatus{
		FetchedAt: latest.FetchedAt,
		CacheAge:  models.CacheAgeDescription(latest.FetchedAt, s.now()),
	}, nil
}

// ClearCache deletes every cached row.
func (s *MovieService) ClearCache() error {
	return s.repo.ClearAll()
}

func entryToRow(e tmdb.CatalogEntry, fetchedAt int64) models.CachedMovie {
	return models.CachedMovie{
		ID:               e.ID,
		Title:            e.Title,
		Overview:         e.Overview,
		PosterPath:       e.PosterPath,
		BackdropPath:     e.BackdropPath,
		ReleaseDate:      e.ReleaseDate,
		VoteAverage:      e.VoteAverage,
		VoteCount:        e.VoteCount,
		OriginalLanguage: e.OriginalLanguage,
		OriginalTitle:    e.OriginalTitle,
		Popularity:       e.Popularity,
		FetchedAt:        fetchedAt,
	}
}
