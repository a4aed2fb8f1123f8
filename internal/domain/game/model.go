package game

import (
	"fmt"
	"strings"
)

// Game is a locally owned catalog record.
type Game struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Genre       string  `json:"genre"`
	Platform    string  `json:"platform"`
	ReleaseYear int     `json:"release_year"`
	ImageURL    *string `json:"image_url,omitempty"`
	Description *string `json:"description,omitempty"`
	IsFavorite  bool    `json:"is_favorite"`
}

// Validate checks the fields the store requires.
func (g *Game) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidData)
	}
	if g.ReleaseYear < 0 {
		return fmt.Errorf("%w: release year must not be negative", ErrInvalidData)
	}
	return nil
}

// SameContent reports whether g and other are equal in every field but ID.
func (g Game) SameContent(other Game) bool {
	g.ID, other.ID = 0, 0
	return g.Title == other.Title &&
		g.Genre == other.Genre &&
		g.Platform == other.Platform &&
		g.ReleaseYear == other.ReleaseYear &&
		equalPtr(g.ImageURL, other.ImageURL) &&
		equalPtr(g.Description, other.Description) &&
		g.IsFavorite == other.IsFavorite
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
