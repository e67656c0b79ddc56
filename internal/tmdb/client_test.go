package tmdb

import (
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBase = "https://api.test/3"

func newTestClient(t *testing.T) *Client {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
	return NewClient("test-key", testBase, "en-US")
}

func TestPopularMovies_Success(t *testing.T) {
	c := newTestClient(t)

	// url.Values encodes parameters in sorted key order, so the full URL is
	// deterministic. Matching on it also proves the api_key and language
	// decoration happens on every request.
	httpmock.RegisterResponder("GET",
		testBase+"/movie/popular?api_key=test-key&language=en-US&page=1",
		httpmock.NewStringResponder(200, `{
			"page": 1,
			"results": [
				{"id": 42, "title": "Example", "popularity": 9.1, "poster_path": "/p.jpg"},
				{"id": 7, "title": "Other", "vote_average": 6.4, "vote_count": 120}
			],
			"total_pages": 10,
			"total_results": 200
		}`))

	resp, err := c.PopularMovies(1)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 10, resp.TotalPages)
	assert.Equal(t, 200, resp.TotalResults)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, 42, resp.Results[0].ID)
	assert.Equal(t, "Example", resp.Results[0].Title)
	assert.InDelta(t, 9.1, resp.Results[0].Popularity, 0.001)
	assert.Equal(t, "/p.jpg", resp.Results[0].PosterPath)
	assert.Equal(t, 120, resp.Results[1].VoteCount)
}

func TestPopularMovies_DefaultsPage(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder("GET",
		testBase+"/movie/popular?api_key=test-key&language=en-US&page=1",
		httpmock.NewStringResponder(200, `{"page": 1, "results": []}`))

	_, err := c.PopularMovies(0)
	require.NoError(t, err)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestSearchMovies_Success(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder("GET",
		testBase+"/search/movie?api_key=test-key&language=en-US&page=1&query=matrix",
		httpmock.NewStringResponder(200, `{
			"page": 1,
			"results": [{"id": 603, "title": "The Matrix"}],
			"total_pages": 1,
			"total_results": 1
		}`))

	resp, err := c.SearchMovies("matrix", 1)
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 603, resp.Results[0].ID)
}

func TestGetMovieDetail_Success(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder("GET",
		testBase+"/movie/603?api_key=test-key&language=en-US",
		httpmock.NewStringResponder(200, `{
			"id": 603,
			"title": "The Matrix",
			"runtime": 136,
			"budget": 63000000,
			"revenue": 463517383,
			"imdb_id": "tt0133093",
			"status": "Released",
			"tagline": "The fight for the future begins.",
			"genres": [{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}]
		}`))

	resp, err := c.GetMovieDetail(603)
	require.NoError(t, err)
	assert.Equal(t, 603, resp.ID)
	assert.Equal(t, 136, resp.Runtime)
	assert.Equal(t, int64(63000000), resp.Budget)
	assert.Equal(t, "tt0133093", resp.IMDBId)
	require.Len(t, resp.Genres, 2)
	assert.Equal(t, "Action", resp.Genres[0].Name)
}

func TestDoGet_NonOKStatus(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder("GET",
		testBase+"/movie/popular?api_key=test-key&language=en-US&page=1",
		httpmock.NewStringResponder(401, `{"status_message": "Invalid API key"}`))

	_, err := c.PopularMovies(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestPopularMovies_DecodeError(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder("GET",
		testBase+"/movie/popular?api_key=test-key&language=en-US&page=1",
		httpmock.NewStringResponder(200, `{not json`))

	_, err := c.PopularMovies(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}
