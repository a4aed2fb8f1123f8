// Package ui renders library data for the terminal.
package ui

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"gamelib/internal/app/client"
	"gamelib/internal/domain/catalog"
	"gamelib/internal/domain/game"
)

var ErrNotTerminal = errors.New("stdin is not a terminal, pass --yes to confirm")

var (
	title   = color.New(color.Bold).SprintFunc()
	muted   = color.New(color.FgHiBlack).SprintFunc()
	star    = color.New(color.FgYellow).Sprint("★")
	Success = color.New(color.FgGreen).PrintfFunc()
	Failure = color.New(color.FgRed).FprintfFunc()
)

// Confirm asks a yes/no question on the terminal. Anything but y/yes is a no.
func Confirm(question string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, ErrNotTerminal
	}

	fmt.Printf("%s [y/N]: ", question)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func JSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func Games(w io.Writer, games []game.Game) {
	if len(games) == 0 {
		fmt.Fprintln(w, "No games found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\t\tTitle\tGenre\tPlatform\tYear")
	for _, g := range games {
		fav := " "
		if g.IsFavorite {
			fav = star
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\n",
			g.ID, fav, truncate(g.Title, 40), g.Genre, g.Platform, g.ReleaseYear)
	}
	tw.Flush()
	fmt.Fprintf(w, "\nTotal: %d\n", len(games))
}

func Game(w io.Writer, g game.Game) {
	fmt.Fprintf(w, "%s", title(g.Title))
	if g.IsFavorite {
		fmt.Fprintf(w, " %s", star)
	}
	fmt.Fprintln(w)
	if g.ID != 0 {
		fmt.Fprintf(w, "ID:        %d\n", g.ID)
	}
	fmt.Fprintf(w, "Genre:     %s\n", g.Genre)
	fmt.Fprintf(w, "Platform:  %s\n", g.Platform)
	fmt.Fprintf(w, "Released:  %d\n", g.ReleaseYear)
	if g.ImageURL != nil {
		fmt.Fprintf(w, "Image:     %s\n", *g.ImageURL)
	}
	if g.Description != nil && *g.Description != "" {
		fmt.Fprintf(w, "\n%s\n", *g.Description)
	}
}

func Results(w io.Writer, results []catalog.Summary) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No games found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tName\tRating\tReleased\tGenres")
	for _, s := range results {
		released := muted("unknown")
		if s.Released != nil {
			released = *s.Released
		}
		fmt.Fprintf(tw, "%d\t%s\t%.1f\t%s\t%s\n",
			s.ID, truncate(s.Name, 40), s.Rating, released, strings.Join(s.Genres, ", "))
	}
	tw.Flush()
}

func Reviews(w io.Writer, reviews []game.Review) {
	if len(reviews) == 0 {
		fmt.Fprintln(w, "No reviews yet")
		return
	}

	for _, r := range reviews {
		fmt.Fprintf(w, "#%d  %s  %s\n", r.ID, stars(r.Rating), muted(r.CreatedAt.Local().Format("2006-01-02 15:04")))
		if r.Comment != "" {
			fmt.Fprintf(w, "    %s\n", r.Comment)
		}
	}
}

func stars(rating float64) string {
	full := int(rating + 0.5)
	return color.YellowString(strings.Repeat("★", full)) +
		muted(strings.Repeat("☆", game.MaxRating-full)) +
		fmt.Sprintf(" %.1f", rating)
}

func truncate(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return string(runes[:length-3]) + "..."
}

// AppFrom returns the client started for this command run.
func AppFrom(cmd *cobra.Command) (*client.App, error) {
	app := client.FromContext(cmd.Context())
	if app == nil {
		return nil, errors.New("client is not initialized")
	}
	return app, nil
}

// ParseID parses a positive numeric ID argument.
func ParseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
