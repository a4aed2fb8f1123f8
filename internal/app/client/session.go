package client

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"gamelib/internal/domain/catalog"
	"gamelib/internal/domain/game"
	"gamelib/internal/utils/clock"
	"gamelib/internal/utils/observable"
)

var ErrSessionClosed = errors.New("session is closed")

// Status is the state of the most recent remote operation.
type Status struct {
	Loading bool
	Err     string
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClock sets the clock that supplies the fallback release year on import.
func WithClock(c clock.Clock) SessionOption {
	return func(s *Session) {
		s.clock = c
	}
}

// WithOperationTimeout bounds every remote operation. Zero means no bound.
func WithOperationTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		s.opTimeout = d
	}
}

// Session owns the observable state presented to the user for its lifetime:
// the local games, the local favorites, the current remote results and the
// status of the last remote operation. Every method is safe to call from any
// goroutine and none of them blocks on I/O; operations run in the background
// and report through a Task and the observables.
//
// Remote operations are not serialized. When two overlap, whichever finishes
// last determines the final results and status, which are always published
// together.
type Session struct {
	id        string
	repo      game.Repository
	searcher  catalog.Searcher
	clock     clock.Clock
	log       *slog.Logger
	opTimeout time.Duration

	games     *observable.Value[[]game.Game]
	favorites *observable.Value[[]game.Game]
	results   *observable.Value[[]catalog.Summary]
	status    *observable.Value[Status]

	ctx    context.Context
	cancel context.CancelFunc

	// publishMu makes each remote operation's results and status land as one pair.
	publishMu sync.Mutex

	mu      sync.Mutex
	closed  bool
	tasks   sync.WaitGroup
	pipes   sync.WaitGroup
	initMu  sync.Mutex
	started bool
}

func NewSession(repo game.Repository, searcher catalog.Searcher, log *slog.Logger, opts ...SessionOption) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.NewString()

	s := &Session{
		id:        id,
		repo:      repo,
		searcher:  searcher,
		clock:     &clock.DefaultClock{},
		log:       log.With("component", "session", "session_id", id),
		games:     observable.New([]game.Game{}),
		favorites: observable.New([]game.Game{}),
		results:   observable.New([]catalog.Summary{}),
		status:    observable.New(Status{}),
		ctx:       ctx,
		cancel:    cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Games() observable.Observable[[]game.Game] {
	return s.games
}

func (s *Session) Favorites() observable.Observable[[]game.Game] {
	return s.favorites
}

func (s *Session) Results() observable.Observable[[]catalog.Summary] {
	return s.results
}

func (s *Session) Status() observable.Observable[Status] {
	return s.status
}

// Initialize opens the live games and favorites queries. They stay open until
// Close. On return Games and Favorites already hold the stored lists. Calling it again after a success does nothing.
func (s *Session) Initialize() error {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	if s.started {
		return nil
	}
	if s.isClosed() {
		return ErrSessionClosed
	}

	games, err := s.repo.WatchGames(s.ctx)
	if err != nil {
		return fmt.Errorf("watch games: %w", err)
	}
	favorites, err := s.repo.WatchFavorites(s.ctx)
	if err != nil {
		return fmt.Errorf("watch favorites: %w", err)
	}

	if !s.track(&s.pipes, 2) {
		return ErrSessionClosed
	}
	s.games.SetIfChanged(games.Value(), sameGames)
	s.favorites.SetIfChanged(favorites.Value(), sameGames)
	go s.forward(games, s.games)
	go s.forward(favorites, s.favorites)

	s.started = true
	s.log.Debug("session initialized")
	return nil
}

// forward copies every snapshot of src into dst until src ends or the session closes.
func (s *Session) forward(src observable.Observable[[]game.Game], dst *observable.Value[[]game.Game]) {
	defer s.pipes.Done()

	sub := src.Subscribe()
	defer sub.Unsubscribe()

	for {
		select {
		case v, ok := <-sub.C():
			if !ok {
				return
			}
			dst.SetIfChanged(v, sameGames)
		case <-s.ctx.Done():
			return
		}
	}
}

func sameGames(a, b []game.Game) bool {
	return slices.EqualFunc(a, b, func(x, y game.Game) bool {
		return x.ID == y.ID && x.SameContent(y)
	})
}

// SearchRemote replaces the results with the catalog's matches for query.
// A blank query loads the popular list instead.
func (s *Session) SearchRemote(query string) *Task[[]catalog.Summary] {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.LoadPopular()
	}
	return s.fetch("failed to search games", func(ctx context.Context) (*catalog.Page, error) {
		return s.searcher.Search(ctx, query)
	})
}

// LoadPopular replaces the results with the catalog's popular list.
func (s *Session) LoadPopular() *Task[[]catalog.Summary] {
	return s.fetch("failed to load popular games", s.searcher.Popular)
}

// fetch runs a remote operation. Whatever happens, the status leaves the
// loading state once the operation ends, and a failure empties the results.
func (s *Session) fetch(failure string, call func(context.Context) (*catalog.Page, error)) *Task[[]catalog.Summary] {
	return run(s, func(ctx context.Context) (results []catalog.Summary, err error) {
		s.publishMu.Lock()
		s.status.Set(Status{Loading: true})
		s.publishMu.Unlock()

		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
			status := Status{}
			if err != nil {
				results = []catalog.Summary{}
				status.Err = failure + ": " + err.Error()
				s.log.Warn(failure, "error", err)
			}

			s.publishMu.Lock()
			defer s.publishMu.Unlock()
			s.results.Set(results)
			s.status.Set(status)
		}()

		if s.opTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.opTimeout)
			defer cancel()
		}

		page, err := call(ctx)
		if err != nil {
			return nil, err
		}
		if page == nil || page.Results == nil {
			return []catalog.Summary{}, nil
		}
		return page.Results, nil
	})
}

// ClearError dismisses the error message. Loading state and results are kept.
func (s *Session) ClearError() {
	s.status.Update(func(st Status) Status {
		st.Err = ""
		return st
	})
}

// ImportRemoteSummary derives the local game that importing summary would create.
func (s *Session) ImportRemoteSummary(summary catalog.Summary, markFavorite bool) game.Game {
	return game.FromSummary(summary, markFavorite, s.clock.Now())
}

// CommitImport stores an imported game. The games observable shows it once stored.
func (s *Session) CommitImport(g game.Game) *Task[int64] {
	g.ID = 0
	return s.InsertGame(g)
}

func (s *Session) InsertGame(g game.Game) *Task[int64] {
	return run(s, func(ctx context.Context) (int64, error) {
		id, err := s.repo.InsertGame(ctx, &g)
		if err != nil {
			return 0, err
		}
		s.log.Info("game added", "id", id, "title", g.Title)
		return id, nil
	})
}

func (s *Session) UpdateGame(g game.Game) *Task[struct{}] {
	return run(s, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.repo.UpdateGame(ctx, &g)
	})
}

// DeleteGame removes a game. Its reviews are kept; see DeleteGameWithReviews.
func (s *Session) DeleteGame(id int64) *Task[struct{}] {
	return run(s, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.repo.DeleteGame(ctx, id)
	})
}

// DeleteGameWithReviews removes a game and then every review of it. It
// returns the number of reviews removed.
func (s *Session) DeleteGameWithReviews(id int64) *Task[int] {
	return run(s, func(ctx context.Context) (int, error) {
		if err := s.repo.DeleteGame(ctx, id); err != nil {
			return 0, err
		}
		n, err := s.repo.DeleteReviewsByGame(ctx, id)
		if err != nil {
			return 0, fmt.Errorf("game %d deleted but its reviews were not: %w", id, err)
		}
		return n, nil
	})
}

// ToggleFavorite flips the favorite flag of a game and returns the stored game.
func (s *Session) ToggleFavorite(id int64) *Task[game.Game] {
	return run(s, func(ctx context.Context) (game.Game, error) {
		g, err := s.repo.GetGame(ctx, id)
		if err != nil {
			return game.Game{}, err
		}
		g.IsFavorite = !g.IsFavorite
		if err := s.repo.UpdateGame(ctx, g); err != nil {
			return game.Game{}, err
		}
		return *g, nil
	})
}

// GetGameByID returns one game, or game.ErrNotFound.
func (s *Session) GetGameByID(ctx context.Context, id int64) (*game.Game, error) {
	if s.isClosed() {
		return nil, ErrSessionClosed
	}
	return s.repo.GetGame(ctx, id)
}

func (s *Session) InsertReview(r game.Review) *Task[int64] {
	return run(s, func(ctx context.Context) (int64, error) {
		return s.repo.InsertReview(ctx, &r)
	})
}

func (s *Session) UpdateReview(r game.Review) *Task[struct{}] {
	return run(s, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.repo.UpdateReview(ctx, &r)
	})
}

func (s *Session) DeleteReview(id int64) *Task[struct{}] {
	return run(s, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.repo.DeleteReview(ctx, id)
	})
}

// GetReviewsByGame returns a live list of the reviews of one game. It is
// released when the session closes.
func (s *Session) GetReviewsByGame(gameID int64) (observable.Observable[[]game.Review], error) {
	if s.isClosed() {
		return nil, ErrSessionClosed
	}
	return s.repo.WatchReviews(s.ctx, gameID)
}

// Wait blocks until every operation started so far has finished.
func (s *Session) Wait() {
	s.tasks.Wait()
}

// Close cancels running operations, releases the live queries and ends every
// subscription to the session's observables.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.tasks.Wait()
	s.pipes.Wait()

	s.games.Close()
	s.favorites.Close()
	s.results.Close()
	s.status.Close()
	s.log.Debug("session closed")
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// track registers n background goroutines on wg unless the session is closed.
func (s *Session) track(wg *sync.WaitGroup, n int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	wg.Add(n)
	return true
}

func run[T any](s *Session, fn func(ctx context.Context) (T, error)) *Task[T] {
	if !s.track(&s.tasks, 1) {
		return failedTask[T](ErrSessionClosed)
	}

	t := newTask[T]()
	go func() {
		defer s.tasks.Done()
		val, err := fn(s.ctx)
		t.finish(val, err)
	}()
	return t
}
