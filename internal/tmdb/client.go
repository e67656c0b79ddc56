package tmdb

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is the TMDB API client. All calls are read-only and idempotent.
type Client struct {
	apiKey   string
	baseURL  string
	language string
	http     *http.Client
}

// NewClient creates a new TMDB API client.
func NewClient(apiKey, baseURL, language string) *Client {
	return &Client{
		apiKey:   apiKey,
		baseURL:  baseURL,
		language: language,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ---- TMDB Response Types ----

// MovieListResponse is the TMDB page envelope for popular and search results.
type MovieListResponse struct {
	Page         int            `json:"page"`
	Results      []CatalogEntry `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// CatalogEntry is a single movie from a TMDB list response.
type CatalogEntry struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	OriginalLanguage string  `json:"original_language"`
	OriginalTitle    string  `json:"original_title"`
	Popularity       float64 `json:"popularity"`
}

// MovieDetailResponse is the richer single-movie shape from TMDB.
type MovieDetailResponse struct {
	CatalogEntry

	Budget   int64   `json:"budget"`
	Revenue  int64   `json:"revenue"`
	Runtime  int     `json:"runtime"`
	Genres   []Genre `json:"genres"`
	Homepage string  `json:"homepage"`
	IMDBId   string  `json:"imdb_id"`
	Tagline  string  `json:"tagline"`
	Status   string  `json:"status"`
}

// Genre is a genre from TMDB.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ---- Client Methods ----

// PopularMovies fetches one page of popular movies.
func (c *Client) PopularMovies(page int) (*MovieListResponse, error) {
	if page < 1 {
		page = 1
	}

	slog.Debug("fetching TMDB popular movies", "page", page)
	resp, err := c.doGet("/movie/popular", url.Values{"page": {strconv.Itoa(page)}})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result MovieListResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode popular movies response: %w", err)
	}
	return &result, nil
}

// SearchMovies fetches one page of search results for a free-text query.
func (c *Client) SearchMovies(query string, page int) (*MovieListResponse, error) {
	if page < 1 {
		page = 1
	}

	slog.Debug("searching TMDB movies", "query", query, "page", page)
	resp, err := c.doGet("/search/movie", url.Values{
		"query": {query},
		"page":  {strconv.Itoa(page)},
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result MovieListResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return &result, nil
}

// GetMovieDetail fetches detailed movie info for one remote id.
func (c *Client) GetMovieDetail(movieID int) (*MovieDetailResponse, error) {
	slog.Debug("fetching TMDB movie detail", "movie_id", movieID)
	resp, err := c.doGet(fmt.Sprintf("/movie/%d", movieID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result MovieDetailResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode movie detail response: %w", err)
	}
	return &result, nil
}

// buildURL appends the api_key and language parameters to every outgoing
// request.
func (c *Client) buildURL(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)
	return c.baseURL + path + "?" + params.Encode()
}

func (c *Client) doGet(path string, params url.Values) (*http.Response, error) {
	resp, err := c.http.Get(c.buildURL(path, params))
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("TMDB API returned status %d: %s", resp.StatusCode, string(body))
	}
	return resp, nil
}
