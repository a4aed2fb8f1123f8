package storage

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"golang.org/x/exp/slog"

	"gamelib/internal/domain/game"
	"gamelib/internal/utils/clock"
	"gamelib/internal/utils/observable"
)

// MemoryStore keeps games and reviews in process memory. It is used when the
// SQLite database cannot be opened and in tests.
type MemoryStore struct {
	mu           sync.RWMutex
	games        map[int64]game.Game
	reviews      map[int64]game.Review
	nextGameID   int64
	nextReviewID int64
	closed       bool

	hub   *hub
	clock clock.Clock
	log   *slog.Logger
}

func NewMemoryStore(log *slog.Logger, opts ...Option) *MemoryStore {
	o := newOptions(opts)
	log = log.With("component", "memory_store")
	return &MemoryStore{
		games:   make(map[int64]game.Game),
		reviews: make(map[int64]game.Review),
		hub:     newHub(log),
		clock:   o.clock,
		log:     log,
	}
}

func (m *MemoryStore) InsertGame(ctx context.Context, g *game.Game) (int64, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return 0, ErrClosed
	}
	m.nextGameID++
	stored := cloneGame(*g)
	stored.ID = m.nextGameID
	m.games[stored.ID] = stored
	m.mu.Unlock()

	m.hub.notify()
	return stored.ID, nil
}

func (m *MemoryStore) UpdateGame(ctx context.Context, g *game.Game) error {
	if err := g.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if _, ok := m.games[g.ID]; !ok {
		m.mu.Unlock()
		return game.ErrNotFound
	}
	m.games[g.ID] = cloneGame(*g)
	m.mu.Unlock()

	m.hub.notify()
	return nil
}

func (m *MemoryStore) DeleteGame(ctx context.Context, id int64) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if _, ok := m.games[id]; !ok {
		m.mu.Unlock()
		return game.ErrNotFound
	}
	delete(m.games, id)
	m.mu.Unlock()

	m.hub.notify()
	return nil
}

func (m *MemoryStore) GetGame(ctx context.Context, id int64) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}
	g, ok := m.games[id]
	if !ok {
		return nil, game.ErrNotFound
	}
	g = cloneGame(g)
	return &g, nil
}

func (m *MemoryStore) WatchGames(ctx context.Context) (observable.Observable[[]game.Game], error) {
	return watch(ctx, m.hub, "games", func(context.Context) ([]game.Game, error) {
		return m.listGames(func(game.Game) bool { return true }), nil
	})
}

func (m *MemoryStore) WatchFavorites(ctx context.Context) (observable.Observable[[]game.Game], error) {
	return watch(ctx, m.hub, "favorites", func(context.Context) ([]game.Game, error) {
		return m.listGames(func(g game.Game) bool { return g.IsFavorite }), nil
	})
}

func (m *MemoryStore) InsertReview(ctx context.Context, r *game.Review) (int64, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return 0, ErrClosed
	}
	if _, ok := m.games[r.GameID]; !ok {
		m.mu.Unlock()
		return 0, game.ErrNotFound
	}
	m.nextReviewID++
	stored := *r
	stored.ID = m.nextReviewID
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = m.clock.Now().UTC()
	}
	m.reviews[stored.ID] = stored
	m.mu.Unlock()

	m.hub.notify()
	return stored.ID, nil
}

func (m *MemoryStore) UpdateReview(ctx context.Context, r *game.Review) error {
	if err := r.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	existing, ok := m.reviews[r.ID]
	if !ok {
		m.mu.Unlock()
		return game.ErrReviewNotFound
	}
	if _, ok := m.games[r.GameID]; !ok {
		m.mu.Unlock()
		return game.ErrNotFound
	}
	updated := *r
	updated.CreatedAt = existing.CreatedAt
	m.reviews[r.ID] = updated
	m.mu.Unlock()

	m.hub.notify()
	return nil
}

func (m *MemoryStore) DeleteReview(ctx context.Context, id int64) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if _, ok := m.reviews[id]; !ok {
		m.mu.Unlock()
		return game.ErrReviewNotFound
	}
	delete(m.reviews, id)
	m.mu.Unlock()

	m.hub.notify()
	return nil
}

func (m *MemoryStore) DeleteReviewsByGame(ctx context.Context, gameID int64) (int, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return 0, ErrClosed
	}
	n := 0
	for id, r := range m.reviews {
		if r.GameID == gameID {
			delete(m.reviews, id)
			n++
		}
	}
	m.mu.Unlock()

	if n > 0 {
		m.hub.notify()
	}
	return n, nil
}

func (m *MemoryStore) WatchReviews(ctx context.Context, gameID int64) (observable.Observable[[]game.Review], error) {
	return watch(ctx, m.hub, "reviews", func(context.Context) ([]game.Review, error) {
		m.mu.RLock()
		defer m.mu.RUnlock()

		reviews := make([]game.Review, 0)
		for _, r := range m.reviews {
			if r.GameID == gameID {
				reviews = append(reviews, r)
			}
		}
		slices.SortFunc(reviews, func(a, b game.Review) int {
			return cmp.Compare(a.ID, b.ID)
		})
		return reviews, nil
	})
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	m.hub.close()
	return nil
}

func (m *MemoryStore) listGames(keep func(game.Game) bool) []game.Game {
	m.mu.RLock()
	defer m.mu.RUnlock()

	games := make([]game.Game, 0, len(m.games))
	for _, g := range m.games {
		if keep(g) {
			games = append(games, cloneGame(g))
		}
	}
	slices.SortFunc(games, func(a, b game.Game) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return games
}

func cloneGame(g game.Game) game.Game {
	if g.ImageURL != nil {
		s := *g.ImageURL
		g.ImageURL = &s
	}
	if g.Description != nil {
		s := *g.Description
		g.Description = &s
	}
	return g
}
