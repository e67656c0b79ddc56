package viewstate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-catalog-service/internal/models"
)

type fakeSessionSource struct {
	users  chan models.UserSnapshot
	exists chan models.ExistsSnapshot
}

func newFakeSessionSource() *fakeSessionSource {
	return &fakeSessionSource{
		users:  make(chan models.UserSnapshot, 2),
		exists: make(chan models.ExistsSnapshot, 2),
	}
}

func (f *fakeSessionSource) ObserveUser(ctx context.Context) <-chan models.UserSnapshot {
	return f.users
}

func (f *fakeSessionSource) ObserveExists(ctx context.Context) <-chan models.ExistsSnapshot {
	return f.exists
}

func TestSessionAdapter_TracksRegistration(t *testing.T) {
	source := newFakeSessionSource()
	adapter := NewSessionAdapter(source)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go adapter.Run(ctx)

	source.exists <- models.ExistsSnapshot{Exists: false}
	source.users <- models.UserSnapshot{}

	require.Eventually(t, func() bool {
		s := adapter.State()
		return !s.HasUser && s.Username == ""
	}, 2*time.Second, 10*time.Millisecond)

	source.exists <- models.ExistsSnapshot{Exists: true}
	source.users <- models.UserSnapshot{User: &models.User{UserID: 1, Username: "alice"}}

	require.Eventually(t, func() bool {
		s := adapter.State()
		return s.HasUser && s.Username == "alice"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSessionAdapter_TracksLogout(t *testing.T) {
	source := newFakeSessionSource()
	adapter := NewSessionAdapter(source)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go adapter.Run(ctx)

	source.exists <- models.ExistsSnapshot{Exists: true}
	source.users <- models.UserSnapshot{User: &models.User{UserID: 1, Username: "alice"}}

	require.Eventually(t, func() bool {
		return adapter.State().HasUser
	}, 2*time.Second, 10*time.Millisecond)

	source.exists <- models.ExistsSnapshot{Exists: false}
	source.users <- models.UserSnapshot{}

	require.Eventually(t, func() bool {
		s := adapter.State()
		return !s.HasUser && s.Username == ""
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSessionAdapter_IgnoresSnapshotErrors(t *testing.T) {
	source := newFakeSessionSource()
	adapter := NewSessionAdapter(source)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go adapter.Run(ctx)

	source.exists <- models.ExistsSnapshot{Exists: true}
	require.Eventually(t, func() bool {
		return adapter.State().HasUser
	}, 2*time.Second, 10*time.Millisecond)

	source.exists <- models.ExistsSnapshot{Err: context.DeadlineExceeded}
	time.Sleep(50 * time.Millisecond)
	assert.True(t, adapter.State().HasUser, "a failed snapshot must not reset the view")
}
