// Package storage implements game.Repository on SQLite and in memory.
package storage

import (
	"time"

	"golang.org/x/exp/slog"

	"gamelib/internal/domain/game"
	"gamelib/internal/utils/clock"
)

const defaultDebounce = 200 * time.Millisecond

var (
	_ game.Repository = (*SQLiteStore)(nil)
	_ game.Repository = (*MemoryStore)(nil)
)

type options struct {
	clock         clock.Clock
	watchExternal bool
	debounce      time.Duration
}

// Option configures a store.
type Option func(*options)

// WithClock sets the clock used to stamp new reviews.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithExternalWatch makes live queries follow writes made to the database
// file by other processes. Events closer than debounce are coalesced.
// Only the SQLite store honours it.
func WithExternalWatch(debounce time.Duration) Option {
	return func(o *options) {
		o.watchExternal = true
		if debounce > 0 {
			o.debounce = debounce
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		clock:    &clock.DefaultClock{},
		debounce: defaultDebounce,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Open opens the SQLite store at path. When that fails it logs the error and
// falls back to an empty in-memory store, so the caller always gets a store.
func Open(path string, log *slog.Logger, opts ...Option) (game.Repository, bool) {
	sqlite, err := NewSQLiteStore(path, log, opts...)
	if err != nil {
		log.Warn("sqlite store unavailable, using memory store", "path", path, "error", err)
		return NewMemoryStore(log, opts...), false
	}
	return sqlite, true
}
