package game

import (
	"context"

	"gamelib/internal/utils/observable"
)

// Repository is the local store of games and reviews.
//
// Watch methods return live queries: the observable replays the current
// snapshot and re-emits a full snapshot after every write that changes it,
// including writes made by another process against the same store. A live
// query is released and its observable closed when ctx is done.
type Repository interface {
	InsertGame(ctx context.Context, g *Game) (int64, error)
	UpdateGame(ctx context.Context, g *Game) error
	DeleteGame(ctx context.Context, id int64) error
	// GetGame returns ErrNotFound when no game has the given id.
	GetGame(ctx context.Context, id int64) (*Game, error)

	// WatchGames lists every game in insertion order.
	WatchGames(ctx context.Context) (observable.Observable[[]Game], error)
	// WatchFavorites lists games with IsFavorite set, in insertion order.
	WatchFavorites(ctx context.Context) (observable.Observable[[]Game], error)

	// InsertReview returns ErrNotFound when the referenced game does not exist.
	InsertReview(ctx context.Context, r *Review) (int64, error)
	UpdateReview(ctx context.Context, r *Review) error
	DeleteReview(ctx context.Context, id int64) error
	// WatchReviews lists the reviews of one game, oldest first.
	WatchReviews(ctx context.Context, gameID int64) (observable.Observable[[]Review], error)
	// DeleteReviewsByGame removes every review of gameID and returns how many went.
	DeleteReviewsByGame(ctx context.Context, gameID int64) (int, error)

	Close() error
}
