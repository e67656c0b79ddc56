package viewstate

import (
	"context"
	"sync"

	"movie-catalog-service/internal/models"
)

// SessionSource is the reactive contract of the local user store.
type SessionSource interface {
	ObserveUser(ctx context.Context) <-chan models.UserSnapshot
	ObserveExists(ctx context.Context) <-chan models.ExistsSnapshot
}

// SessionState is the view of the local login gate: whether a user record
// exists and who it is. Drives the register-or-login routing at startup.
type SessionState struct {
	HasUser  bool   `json:"has_user"`
	Username string `json:"username,omitempty"`
}

// SessionAdapter keeps the session view current by observing the user store.
type SessionAdapter struct {
	source SessionSource

	mu    sync.RWMutex
	state SessionState
}

// NewSessionAdapter creates the session adapter.
func NewSessionAdapter(source SessionSource) *SessionAdapter {
	return &SessionAdapter{source: source}
}

// Run observes the user store until ctx ends. Blocks; run it on its own
// goroutine.
func (a *SessionAdapter) Run(ctx context.Context) {
	users := a.source.ObserveUser(ctx)
	exists := a.source.ObserveExists(ctx)

	for users != nil || exists != nil {
		select {
		case snap, ok := <-users:
			if !ok {
				users = nil
				continue
			}
			if snap.Err != nil {
				continue
			}
			a.mu.Lock()
			if snap.User != nil {
				a.state.Username = snap.User.Username
			} else {
				a.state.Username = ""
			}
			a.mu.Unlock()

		case snap, ok := <-exists:
			if !ok {
				exists = nil
				continue
			}
			if snap.Err != nil {
				continue
			}
			a.mu.Lock()
			a.state.HasUser = snap.Exists
			a.mu.Unlock()

		case <-ctx.Done():
			return
		}
	}
}

// State returns the current session view.
func (a *SessionAdapter) State() SessionState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}
