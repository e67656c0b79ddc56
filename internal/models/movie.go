package models

// CachedMovie is a movie row in the local relational store. The primary key
// is the remote catalog identifier, so at most one row exists per remote
// movie; a refresh replaces the whole row.
type CachedMovie struct {
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
	FetchedAt        int64   `json:"fetched_at"` // epoch milliseconds
}

// DisplayMovie is the display-ready shape emitted by the merge pipeline.
// It is derived from a CachedMovie and the favorite set on every emission
// and never persisted.
type DisplayMovie struct {
	CachedMovie

	PosterURL            string `json:"poster_url,omitempty"`
	BackdropURL          string `json:"backdrop_url,omitempty"`
	ReleaseDateFormatted string `json:"release_date_formatted"`
	VoteAverageFormatted string `json:"vote_average_formatted"`
	CacheAge             string `json:"cache_age"`
	IsFavorite           bool   `json:"is_favorite"`
}

// MovieDetail is the display shape for a single movie's detail view, built
// from the richer detail endpoint of the catalog API.
type MovieDetail struct {
	ID                   int     `json:"id"`
	Title                string  `json:"title"`
	Overview             string  `json:"overview"`
	ReleaseDate          string  `json:"release_date"`
	OriginalLanguage     string  `json:"original_language"`
	OriginalTitle        string  `json:"original_title"`
	Popularity           float64 `json:"popularity"`
	VoteAverage          float64 `json:"vote_average"`
	VoteCount            int     `json:"vote_count"`
	Budget               int64   `json:"budget"`
	Revenue              int64   `json:"revenue"`
	Runtime              int     `json:"runtime"`
	Genres               string  `json:"genres"`
	Homepage             string  `json:"homepage"`
	IMDBId               string  `json:"imdb_id"`
	Tagline              string  `json:"tagline"`
	Status               string  `json:"status"`
	PosterURL            string  `json:"poster_url,omitempty"`
	BackdropURL          string  `json:"backdrop_url,omitempty"`
	ReleaseDateFormatted string  `json:"release_date_formatted"`
	VoteAverageFormatted string  `json:"vote_average_formatted"`
	RuntimeFormatted     string  `json:"runtime_formatted"`
}

// FavoriteSet is the set of favorite movie identifiers, keyed by the decimal
// string representation of the remote id.
type FavoriteSet map[string]struct{}

// Contains reports whether the decimal id string is in the set.
func (s FavoriteSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// MoviesSnapshot is one emission of the full-table movie stream.
type MoviesSnapshot struct {
	Movies []CachedMovie
	Err    error
}

// MovieSnapshot is one emission of a single-row movie stream. Movie is nil
// when no row exists for the observed id.
type MovieSnapshot struct {
	Movie *CachedMovie
	Err   error
}

// FavoritesSnapshot is one emission of the favorite id set stream.
type FavoritesSnapshot struct {
	IDs FavoriteSet
	Err error
}

// ListSnapshot is one emission of the merge pipeline.
type ListSnapshot struct {
	Movies []DisplayMovie
	Err    error
}

const (
	TMDBImageBaseW500 = "https://image.tmdb.org/t/p/w500"
	TMDBImageBaseW780 = "https://image.tmdb.org/t/p/w780"
)
