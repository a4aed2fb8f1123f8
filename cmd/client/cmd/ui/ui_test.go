package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"gamelib/internal/domain/catalog"
	"gamelib/internal/domain/game"
)

func init() {
	color.NoColor = true
}

func TestGames(t *testing.T) {
	var buf bytes.Buffer
	Games(&buf, []game.Game{
		{ID: 1, Title: "Hades", Genre: "Action", Platform: "PC", ReleaseYear: 2020, IsFavorite: true},
		{ID: 2, Title: "Celeste", Genre: "Platformer", Platform: "Switch", ReleaseYear: 2018},
	})

	out := buf.String()
	assert.Contains(t, out, "Hades")
	assert.Contains(t, out, "Celeste")
	assert.Contains(t, out, "Total: 2")
}

func TestGames_Empty(t *testing.T) {
	var buf bytes.Buffer
	Games(&buf, nil)
	assert.Equal(t, "No games found\n", buf.String())
}

func TestResults(t *testing.T) {
	var buf bytes.Buffer
	released := "2011-04-18"
	Results(&buf, []catalog.Summary{
		{ID: 4200, Name: "Portal 2", Rating: 4.6, Released: &released, Genres: []string{"Puzzle", "Shooter"}},
		{ID: 9, Name: "Unreleased"},
	})

	out := buf.String()
	assert.Contains(t, out, "Portal 2")
	assert.Contains(t, out, "2011-04-18")
	assert.Contains(t, out, "Puzzle, Shooter")
	assert.Contains(t, out, "unknown")
}

func TestReviews(t *testing.T) {
	var buf bytes.Buffer
	Reviews(&buf, []game.Review{
		{ID: 3, GameID: 1, Rating: 4, Comment: "Great soundtrack", CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
	})

	out := buf.String()
	assert.Contains(t, out, "#3")
	assert.Contains(t, out, "★★★★☆ 4.0")
	assert.Contains(t, out, "Great soundtrack")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "The Legend...", truncate("The Legend of Zelda", 13))
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, arg := range []string{"", "abc", "0", "-3"} {
		_, err := ParseID(arg)
		assert.Error(t, err, arg)
	}
}
