package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"gamelib/internal/domain/game"
	"gamelib/internal/infrastructure/migration"
	"gamelib/internal/utils/clock"
	"gamelib/internal/utils/observable"
)

//go:embed migrations/sqlite/*.sql
var sqliteMigrations embed.FS

const gameColumns = `id, title, genre, platform, release_year, image_url, description, is_favorite`

// SQLiteStore persists games and reviews in a SQLite database file.
type SQLiteStore struct {
	db    *sql.DB
	path  string
	hub   *hub
	clock clock.Clock
	log   *slog.Logger

	watcher   *fsnotify.Watcher
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewSQLiteStore opens (creating if needed) the database at path and applies
// the schema migrations.
func NewSQLiteStore(path string, log *slog.Logger, opts ...Option) (*SQLiteStore, error) {
	o := newOptions(opts)
	log = log.With("component", "sqlite_store")

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	mg := migration.NewMigration("", "sqlite3://"+path, migration.EmbeddedEngine(sqliteMigrations, "migrations/sqlite"))
	if err := mg.Up(); err != nil {
		return nil, fmt.Errorf("migrate sqlite schema: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	s := &SQLiteStore{
		db:    db,
		path:  path,
		hub:   newHub(log),
		clock: o.clock,
		log:   log,
		done:  make(chan struct{}),
	}

	if o.watchExternal {
		if err := s.startWatcher(o.debounce); err != nil {
			db.Close()
			return nil, err
		}
	}

	log.Debug("sqlite store opened", "path", path, "watch_external", o.watchExternal)
	return s, nil
}

func (s *SQLiteStore) InsertGame(ctx context.Context, g *game.Game) (int64, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO games (title, genre, platform, release_year, image_url, description, is_favorite)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.Title, g.Genre, g.Platform, g.ReleaseYear, g.ImageURL, g.Description, g.IsFavorite)
	if err != nil {
		s.log.Error("failed to insert game", "title", g.Title, "error", err)
		return 0, fmt.Errorf("insert game: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert game: %w", err)
	}

	s.hub.notify()
	return id, nil
}

func (s *SQLiteStore) UpdateGame(ctx context.Context, g *game.Game) error {
	if err := g.Validate(); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE games
		SET title = ?, genre = ?, platform = ?, release_year = ?, image_url = ?, description = ?, is_favorite = ?
		WHERE id = ?`,
		g.Title, g.Genre, g.Platform, g.ReleaseYear, g.ImageURL, g.Description, g.IsFavorite, g.ID)
	if err != nil {
		s.log.Error("failed to update game", "id", g.ID, "error", err)
		return fmt.Errorf("update game: %w", err)
	}
	if err := expectAffected(res, game.ErrNotFound); err != nil {
		return err
	}

	s.hub.notify()
	return nil
}

func (s *SQLiteStore) DeleteGame(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		s.log.Error("failed to delete game", "id", id, "error", err)
		return fmt.Errorf("delete game: %w", err)
	}
	if err := expectAffected(res, game.ErrNotFound); err != nil {
		return err
	}

	s.hub.notify()
	return nil
}

func (s *SQLiteStore) GetGame(ctx context.Context, id int64) (*game.Game, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+gameColumns+` FROM games WHERE id = ?`, id)

	g, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, game.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get game: %w", err)
	}
	return &g, nil
}

func (s *SQLiteStore) WatchGames(ctx context.Context) (observable.Observable[[]game.Game], error) {
	return watch(ctx, s.hub, "games", func(ctx context.Context) ([]game.Game, error) {
		return s.queryGames(ctx, `SELECT `+gameColumns+` FROM games ORDER BY id`)
	})
}

func (s *SQLiteStore) WatchFavorites(ctx context.Context) (observable.Observable[[]game.Game], error) {
	return watch(ctx, s.hub, "favorites", func(ctx context.Context) ([]game.Game, error) {
		return s.queryGames(ctx, `SELECT `+gameColumns+` FROM games WHERE is_favorite = 1 ORDER BY id`)
	})
}

func (s *SQLiteStore) InsertReview(ctx context.Context, r *game.Review) (int64, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.clock.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := gameExists(ctx, tx, r.GameID); err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO reviews (game_id, rating, comment, created_at)
		VALUES (?, ?, ?, ?)`,
		r.GameID, r.Rating, r.Comment, createdAt)
	if err != nil {
		s.log.Error("failed to insert review", "game_id", r.GameID, "error", err)
		return 0, fmt.Errorf("insert review: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert review: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit review: %w", err)
	}

	s.hub.notify()
	return id, nil
}

func (s *SQLiteStore) UpdateReview(ctx context.Context, r *game.Review) error {
	if err := r.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var found bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM reviews WHERE id = ?)`, r.ID).Scan(&found); err != nil {
		return fmt.Errorf("check review: %w", err)
	}
	if !found {
		return game.ErrReviewNotFound
	}
	if err := gameExists(ctx, tx, r.GameID); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE reviews SET game_id = ?, rating = ?, comment = ? WHERE id = ?`,
		r.GameID, r.Rating, r.Comment, r.ID)
	if err != nil {
		s.log.Error("failed to update review", "id", r.ID, "error", err)
		return fmt.Errorf("update review: %w", err)
	}
	if err := expectAffected(res, game.ErrReviewNotFound); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit review: %w", err)
	}

	s.hub.notify()
	return nil
}

func (s *SQLiteStore) DeleteReview(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		s.log.Error("failed to delete review", "id", id, "error", err)
		return fmt.Errorf("delete review: %w", err)
	}
	if err := expectAffected(res, game.ErrReviewNotFound); err != nil {
		return err
	}

	s.hub.notify()
	return nil
}

func (s *SQLiteStore) DeleteReviewsByGame(ctx context.Context, gameID int64) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE game_id = ?`, gameID)
	if err != nil {
		s.log.Error("failed to delete reviews", "game_id", gameID, "error", err)
		return 0, fmt.Errorf("delete reviews: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete reviews: %w", err)
	}

	if n > 0 {
		s.hub.notify()
	}
	return int(n), nil
}

func (s *SQLiteStore) WatchReviews(ctx context.Context, gameID int64) (observable.Observable[[]game.Review], error) {
	return watch(ctx, s.hub, "reviews", func(ctx context.Context) ([]game.Review, error) {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, game_id, rating, comment, created_at
			FROM reviews WHERE game_id = ? ORDER BY id`, gameID)
		if err != nil {
			return nil, fmt.Errorf("list reviews: %w", err)
		}
		defer rows.Close()

		reviews := make([]game.Review, 0)
		for rows.Next() {
			var r game.Review
			if err := rows.Scan(&r.ID, &r.GameID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
				return nil, fmt.Errorf("scan review: %w", err)
			}
			r.CreatedAt = r.CreatedAt.UTC()
			reviews = append(reviews, r)
		}
		return reviews, rows.Err()
	})
}

// Close stops the file watcher, ends every live query and closes the database.
func (s *SQLiteStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		if s.watcher != nil {
			if werr := s.watcher.Close(); werr != nil {
				s.log.Warn("failed to close file watcher", "error", werr)
			}
		}
		s.wg.Wait()
		s.hub.close()
		err = s.db.Close()
	})
	return err
}

func (s *SQLiteStore) queryGames(ctx context.Context, query string, args ...any) ([]game.Game, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	games := make([]game.Game, 0)
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (game.Game, error) {
	var (
		g           game.Game
		imageURL    sql.NullString
		description sql.NullString
	)
	err := row.Scan(&g.ID, &g.Title, &g.Genre, &g.Platform, &g.ReleaseYear,
		&imageURL, &description, &g.IsFavorite)
	if err != nil {
		return game.Game{}, err
	}
	if imageURL.Valid {
		g.ImageURL = &imageURL.String
	}
	if description.Valid {
		g.Description = &description.String
	}
	return g, nil
}

func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// startWatcher refreshes live queries when another process writes the
// database. The directory is watched because SQLite replaces and truncates
// its -wal and -journal files.
func (s *SQLiteStore) startWatcher(debounce time.Duration) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	s.watcher = w

	s.wg.Add(1)
	go s.processEvents(debounce)
	return nil
}

func (s *SQLiteStore) processEvents(debounce time.Duration) {
	defer s.wg.Done()

	base := filepath.Clean(s.path)
	relevant := map[string]bool{
		base:              true,
		base + "-wal":     true,
		base + "-journal": true,
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-s.done:
			timer.Stop()
			return

		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !relevant[filepath.Clean(event.Name)] || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if pending && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)
			pending = true

		case <-timer.C:
			pending = false
			s.log.Debug("database changed on disk, refreshing live queries")
			s.hub.notify()

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn("file watcher error", "error", err)
		}
	}
}

// gameExists reports game.ErrNotFound when no game has the given id.
func gameExists(ctx context.Context, tx *sql.Tx, id int64) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM games WHERE id = ?)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check game: %w", err)
	}
	if !exists {
		return game.ErrNotFound
	}
	return nil
}
