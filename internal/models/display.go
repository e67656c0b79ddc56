package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Display derivation rules: absolute image URLs, human-formatted date and
// rating, and a cache-age description computed from fetched_at at
// combination time.

// NewDisplayMovie derives the display shape for one cached row. now is the
// combination time used for the cache-age description.
func NewDisplayMovie(row CachedMovie, now time.Time, favorites FavoriteSet) DisplayMovie {
	overview := row.Overview
	if overview == "" {
		overview = "No description available."
	}
	d := DisplayMovie{
		CachedMovie:          row,
		PosterURL:            BuildImageURL(row.PosterPath, "w500"),
		BackdropURL:          BuildImageURL(row.BackdropPath, "w780"),
		ReleaseDateFormatted: FormatReleaseDate(row.ReleaseDate),
		VoteAverageFormatted: FormatVoteAverage(row.VoteAverage),
		CacheAge:             CacheAgeDescription(row.FetchedAt, now),
		IsFavorite:           favorites.Contains(strconv.Itoa(row.ID)),
	}
	d.Overview = overview
	return d
}

// BuildImageURL prefixes a relative image path with the fixed image host and
// size segment. Returns "" when the path is absent.
func BuildImageURL(path, size string) string {
	if strings.TrimSpace(path) == "" {
		return ""
	}
	return "https://image.tmdb.org/t/p/" + size + path
}

// FormatReleaseDate turns a "2006-01-02" date into a readable form, or "N/A"
// when absent or unparseable.
func FormatReleaseDate(releaseDate string) string {
	if strings.TrimSpace(releaseDate) == "" {
		return "N/A"
	}
	t, err := time.Parse("2006-01-02", releaseDate)
	if err != nil {
		return "N/A"
	}
	return t.Format("2 January 2006")
}

// FormatVoteAverage renders a rating as "7.5/10", or "N/A" when missing.
func FormatVoteAverage(voteAverage float64) string {
	if voteAverage <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f/10", voteAverage)
}

// FormatRuntime renders a runtime in minutes as "2h 15min" or "45min", or
// "unknown" when missing.
func FormatRuntime(runtimeMinutes int) string {
	if runtimeMinutes <= 0 {
		return "unknown"
	}
	hours := runtimeMinutes / 60
	minutes := runtimeMinutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dmin", hours, minutes)
	}
	return fmt.Sprintf("%dmin", minutes)
}

// CacheAgeDescription describes how old a cached row is relative to now.
func CacheAgeDescription(fetchedAt int64, now time.Time) string {
	if fetchedAt <= 0 {
		return "never refreshed"
	}
	diff := now.Sub(time.UnixMilli(fetchedAt))
	minutes := int64(diff.Minutes())
	hours := int64(diff.Hours())
	days := int64(diff.Hours() / 24)

	switch {
	case minutes < 1:
		return "just now"
	case minutes < 60:
		return fmt.Sprintf("%d min ago", minutes)
	case hours < 24:
		return fmt.Sprintf("%d h ago", hours)
	case days == 1:
		return "yesterday"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}

// JoinGenres concatenates genre names for display, or "unknown" when the
// list is empty.
func JoinGenres(names []string) string {
	if len(names) == 0 {
		return "unknown"
	}
	return strings.Join(names, ", ")
}
