package viewstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-catalog-service/internal/models"
)

type fakeDetailLoader struct {
	details map[int]*models.MovieDetail
}

func (f *fakeDetailLoader) Detail(movieID int) *models.MovieDetail {
	return f.details[movieID]
}

func TestDetailAdapter_Success(t *testing.T) {
	loader := &fakeDetailLoader{details: map[int]*models.MovieDetail{
		603: {ID: 603, Title: "The Matrix", RuntimeFormatted: "2h 16min"},
	}}
	adapter := NewDetailAdapter(loader)

	state := adapter.Load(603)
	assert.Equal(t, PhaseSuccess, state.Phase)
	require.NotNil(t, state.Movie)
	assert.Equal(t, "The Matrix", state.Movie.Title)
	assert.Equal(t, state, adapter.State())
}

func TestDetailAdapter_LoadFailure(t *testing.T) {
	adapter := NewDetailAdapter(&fakeDetailLoader{})

	state := adapter.Load(999)
	assert.Equal(t, PhaseError, state.Phase)
	assert.Nil(t, state.Movie)
	assert.Equal(t, "failed to load movie details", state.Error)
}
