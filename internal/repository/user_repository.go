package repository

import (
	"context"
	"database/sql"
	"fmt"

	"movie-catalog-service/internal/models"
	"movie-catalog-service/internal/watch"
)

// UserRepository handles database operations for the single local user
// record used by the login gate.
type UserRepository struct {
	db    *sql.DB
	watch *watch.Hub
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db, watch: watch.NewHub()}
}

// Insert stores a user. On a username conflict the existing row is replaced
// rather than rejected, so repeated registration collapses to one row per
// username with the latest password.
func (r *UserRepository) Insert(username string, password models.Credential) (int64, error) {
	var id int64
	err := r.db.QueryRow(`
		INSERT INTO users (username, password)
		VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET password = EXCLUDED.password
		RETURNING user_id
	`, username, string(password)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	r.watch.Notify()
	return id, nil
}

// FindByUsername returns the user with the given username, or nil when no
// such user exists.
func (r *UserRepository) FindByUsername(username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(`
		SELECT user_id, username, password
		FROM users
		WHERE username = $1
		LIMIT 1
	`, username).Scan(&u.UserID, &u.Username, &u.Password)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}

// ObserveFirst emits the first user row (nil when the table is empty),
// re-emitting on every users write, until ctx ends.
func (r *UserRepository) ObserveFirst(ctx context.Context) <-chan models.UserSnapshot {
	out := make(chan models.UserSnapshot, 1)
	changes := r.watch.Subscribe(ctx)

	go func() {
		defer close(out)
		for {
			snap := r.snapshotFirst()
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

// ObserveExists emits whether at least one user is registered, re-emitting
// on every users write, until ctx ends.
func (r *UserRepository) ObserveExists(ctx context.Context) <-chan models.ExistsSnapshot {
	out := make(chan models.ExistsSnapshot, 1)
	changes := r.watch.Subscribe(ctx)

	go func() {
		defer close(out)
		for {
			snap := r.snapshotExists()
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

// ClearAll deletes all user rows (the logout operation).
func (r *UserRepository) ClearAll() error {
	if _, err := r.db.Exec(`DELETE FROM users`); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}
	r.watch.Notify()
	return nil
}

func (r *UserRepository) snapshotFirst() models.UserSnapshot {
	var u models.User
	err := r.db.QueryRow(`
		SELECT user_id, username, password
		FROM users
		ORDER BY user_id
		LIMIT 1
	`).Scan(&u.UserID, &u.Username, &u.Password)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.UserSnapshot{}
		}
		return models.UserSnapshot{Err: fmt.Errorf("failed to read first user: %w", err)}
	}
	return models.UserSnapshot{User: &u}
}

func (r *UserRepository) snapshotExists() models.ExistsSnapshot {
	var exists bool
	err := r.db.QueryRow(`SELECT COUNT(*) > 0 FROM users`).Scan(&exists)
	if err != nil {
		return models.ExistsSnapshot{Err: fmt.Errorf("failed to count users: %w", err)}
	}
	return models.ExistsSnapshot{Exists: exists}
}
