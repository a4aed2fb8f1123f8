package game

import (
	"strconv"
	"strings"
	"time"

	"gamelib/internal/domain/catalog"
)

const (
	FallbackTitle    = "Untitled"
	FallbackGenre    = "Various"
	FallbackPlatform = "PC"
)

// FromSummary derives a local game from a remote catalog entry. It never fails:
// every missing or malformed field falls back to a default, and the release
// year falls back to now's year.
func FromSummary(s catalog.Summary, favorite bool, now time.Time) Game {
	return Game{
		Title:       orFallback(s.Name, FallbackTitle),
		Genre:       orFallback(first(s.Genres), FallbackGenre),
		Platform:    orFallback(first(s.Platforms), FallbackPlatform),
		ReleaseYear: releaseYear(s.Released, now),
		ImageURL:    s.BackgroundImage,
		Description: s.Description,
		IsFavorite:  favorite,
	}
}

// first returns the first element of values, or "" when there is none.
// Later elements are never consulted.
func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// orFallback returns the trimmed value, or fallback when it is blank.
func orFallback(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func releaseYear(released *string, now time.Time) int {
	if released == nil {
		return now.Year()
	}
	s := strings.TrimSpace(*released)
	if len(s) < 4 {
		return now.Year()
	}
	prefix := s[:4]
	for _, c := range prefix {
		if c < '0' || c > '9' {
			return now.Year()
		}
	}
	year, err := strconv.Atoi(prefix)
	if err != nil || year < 1000 {
		return now.Year()
	}
	return year
}
