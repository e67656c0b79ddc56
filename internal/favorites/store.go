// Package favorites persists the set of favorite movie ids as a Redis set
// under a single key, mirroring a preference-store string-set entry.
package favorites

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"github.com/redis/go-redis/v9"

	"movie-catalog-service/internal/models"
	"movie-catalog-service/internal/watch"
)

// Key is the single preference key holding the favorite id set.
const Key = "favorite_movie_ids"

// toggleScript flips membership server-side so concurrent toggles are atomic
// read-modify-write operations.
var toggleScript = redis.NewScript(`
if redis.call('SISMEMBER', KEYS[1], ARGV[1]) == 1 then
	redis.call('SREM', KEYS[1], ARGV[1])
	return 0
else
	redis.call('SADD', KEYS[1], ARGV[1])
	return 1
end
`)

// Store is the reactive favorite-id store.
type Store struct {
	rdb   *redis.Client
	watch *watch.Hub
}

// NewStore creates a new favorite store.
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb, watch: watch.NewHub()}
}

// Toggle flips membership for one movie id and wakes observers.
func (s *Store) Toggle(ctx context.Context, movieID int) error {
	added, err := toggleScript.Run(ctx, s.rdb, []string{Key}, strconv.Itoa(movieID)).Int()
	if err != nil {
		return fmt.Errorf("failed to toggle favorite %d: %w", movieID, err)
	}

	slog.Debug("toggled favorite", "movie_id", movieID, "favorite", added == 1)
	s.watch.Notify()
	return nil
}

// Remove unconditionally removes one movie id from the set.
func (s *Store) Remove(ctx context.Context, movieID int) error {
	if err := s.rdb.SRem(ctx, Key, strconv.Itoa(movieID)).Err(); err != nil {
		return fmt.Errorf("failed to remove favorite %d: %w", movieID, err)
	}

	s.watch.Notify()
	return nil
}

// Current reads the favorite set once.
func (s *Store) Current(ctx context.Context) (models.FavoriteSet, error) {
	members, err := s.rdb.SMembers(ctx, Key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read favorites: %w", err)
	}

	set := make(models.FavoriteSet, len(members))
	for _, id := range members {
		set[id] = struct{}{}
	}
	return set, nil
}

// Observe emits the current set, then re-emits it after every mutation,
// until ctx ends. A transient I/O failure while reading degrades to an empty
// set so subscribers keep a usable value; other failures are forwarded.
func (s *Store) Observe(ctx context.Context) <-chan models.FavoritesSnapshot {
	out := make(chan models.FavoritesSnapshot, 1)
	changes := s.watch.Subscribe(ctx)

	go func() {
		defer close(out)
		for {
			snap := s.snapshot(ctx)
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

func (s *Store) snapshot(ctx context.Context) models.FavoritesSnapshot {
	set, err := s.Current(ctx)
	if err != nil {
		if isTransient(err) {
			slog.Warn("favorite read failed, substituting empty set", "error", err)
			return models.FavoritesSnapshot{IDs: models.FavoriteSet{}}
		}
		return models.FavoritesSnapshot{Err: err}
	}
	return models.FavoritesSnapshot{IDs: set}
}

func isTransient(err error) bool {
	if errors.Is(err, redis.Nil) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
