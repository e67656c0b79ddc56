package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"movie-catalog-service/internal/models"
	"movie-catalog-service/internal/watch"
)

// MovieRepository handles database operations for cached movies. Writes
// notify the watch hub so active observations re-read the table; the
// observation contract is a full snapshot per change, not a delta.
type MovieRepository struct {
	db    *sql.DB
	watch *watch.Hub
}

// NewMovieRepository creates a new MovieRepository.
func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db, watch: watch.NewHub()}
}

const movieColumns = `id, title, overview, poster_path, backdrop_path, release_date,
		vote_average, vote_count, original_language, original_title, popularity, fetched_at`

// UpsertMovies bulk-inserts rows keyed by the remote id, replacing the whole
// row on conflict (last write wins, no field merge). All rows go in one
// transaction; observers are notified once after commit.
func (r *MovieRepository) UpsertMovies(movies []models.CachedMovie) error {
	if len(movies) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, m := range movies {
		_, err := tx.Exec(`
			INSERT INTO movies (`+movieColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (id) DO UPDATE SET
				title = EXCLUDED.title,
				overview = EXCLUDED.overview,
				poster_path = EXCLUDED.poster_path,
				backdrop_path = EXCLUDED.backdrop_path,
				release_date = EXCLUDED.release_date,
				vote_average = EXCLUDED.vote_average,
				vote_count = EXCLUDED.vote_count,
				original_language = EXCLUDED.original_language,
				original_title = EXCLUDED.original_title,
				popularity = EXCLUDED.popularity,
				fetched_at = EXCLUDED.fetched_at
		`, m.ID, m.Title, m.Overview, m.PosterPath, m.BackdropPath, m.ReleaseDate,
			m.VoteAverage, m.VoteCount, m.OriginalLanguage, m.OriginalTitle,
			m.Popularity, m.FetchedAt)
		if err != nil {
			return fmt.Errorf("failed to upsert movie %d: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit upsert: %w", err)
	}

	r.watch.Notify()
	return nil
}

// ObserveAll emits the current full row set ordered by popularity, then
// re-emits it after every write that touches the table, until ctx ends.
func (r *MovieRepository) ObserveAll(ctx context.Context) <-chan models.MoviesSnapshot {
	out := make(chan models.MoviesSnapshot, 1)
	changes := r.watch.Subscribe(ctx)

	go func() {
		defer close(out)
		for {
			snap := r.snapshotAll()
			select {
			case out <- snap:
			case <-ctx.Done():
				return
			}
			select {
			case _, ok := <-changes:
				if !ok {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// ObserveByID emits the row for one id (nil when absent), re-emitting on
// every table write, until ctx ends.
func (r *MovieRepository) ObserveByID(ctx context.Context, id int) <-chan models.MovieSnapshot {
	out := make(chan models.MovieSnapshot, 1)
	changes := r.watch.Subscribe(ctx)

	go func() {
		defer close(out)
		for {
			snap := r.snapshotByID(id)
			select {
			case out <- snap:
			case <-ctx.Done():
				return
			}
			select {
			case _, ok := <-changes:
				if !ok {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// ClearAll deletes all cached rows; observers see an empty set.
func (r *MovieRepository) ClearAll() error {
	if _, err := r.db.Exec(`DELETE FROM movies`); err != nil {
		return fmt.Errorf("failed to clear movies: %w", err)
	}
	r.watch.Notify()
	return nil
}

// Latest returns the most recently fetched row, or nil when the cache is
// empty.
func (r *MovieRepository) Latest() (*models.CachedMovie, error) {
	row := r.db.QueryRow(`
		SELECT ` + movieColumns + `
		FROM movies
		ORDER BY fetched_at DESC
		LIMIT 1
	`)

	var m models.CachedMovie
	if err := scanMovie(row, &m); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read latest movie: %w", err)
	}
	return &m, nil
}

func (r *MovieRepository) snapshotAll() models.MoviesSnapshot {
	rows, err := r.db.Query(`
		SELECT ` + movieColumns + `
		FROM movies
		ORDER BY popularity DESC
	`)
	if err != nil {
		return models.MoviesSnapshot{Err: fmt.Errorf("failed to query movies: %w", err)}
	}
	defer rows.Close()

	movies := make([]models.CachedMovie, 0)
	for rows.Next() {
		var m models.CachedMovie
		if err := scanMovie(rows, &m); err != nil {
			slog.Error("failed to scan movie row", "error", err)
			continue
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return models.MoviesSnapshot{Err: fmt.Errorf("failed to read movie rows: %w", err)}
	}

	return models.MoviesSnapshot{Movies: movies}
}

func (r *MovieRepository) snapshotByID(id int) models.MovieSnapshot {
	row := r.db.QueryRow(`
		SELECT `+movieColumns+`
		FROM movies
		WHERE id = $1
	`, id)

	var m models.CachedMovie
	if err := scanMovie(row, &m); err != nil {
		if err == sql.ErrNoRows {
			return models.MovieSnapshot{}
		}
		return models.MovieSnapshot{Err: fmt.Errorf("failed to read movie %d: %w", id, err)}
	}
	return models.MovieSnapshot{Movie: &m}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner, m *models.CachedMovie) error {
	return row.Scan(
		&m.ID, &m.Title, &m.Overview, &m.PosterPath, &m.BackdropPath,
		&m.ReleaseDate, &m.VoteAverage, &m.VoteCount, &m.OriginalLanguage,
		&m.OriginalTitle, &m.Popularity, &m.FetchedAt,
	)
}
