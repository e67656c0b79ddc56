package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"movie-catalog-service/internal/models"
	"movie-catalog-service/internal/repository"
)

// UserService handles the local login gate: a single username/password
// record checked entirely on this side of the network.
type UserService struct {
	repo *repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register stores the user. A repeated registration for the same username
// replaces the stored record rather than failing.
func (s *UserService) Register(username, password string) (int64, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return 0, errors.New("username and password are required")
	}
	return s.repo.Insert(username, models.Credential(password))
}

// Login reports whether a stored record exactly matches the given
// credentials. A missing user or a storage failure is a failed login, never
// an error.
func (s *UserService) Login(username, password string) bool {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		slog.Error("login lookup failed", "username", username, "error", err)
		return false
	}
	return user != nil && user.Password.Matches(password)
}

// ObserveUser emits the registered user (nil when none), re-emitting on
// every change, until ctx ends.
func (s *UserService) ObserveUser(ctx context.Context) <-chan models.UserSnapshot {
	return s.repo.ObserveFirst(ctx)
}

// ObserveExists emits whether a user is registered, re-emitting on every
// change, until ctx ends.
func (s *UserService) ObserveExists(ctx context.Context) <-chan models.ExistsSnapshot {
	return s.repo.ObserveExists(ctx)
}

// Logout deletes all local user data.
func (s *UserService) Logout() error {
	return s.repo.ClearAll()
}
