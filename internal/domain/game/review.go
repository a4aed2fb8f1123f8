package game

import (
	"fmt"
	"time"
)

const (
	MinRating = 0
	MaxRating = 5
)

// Review is a user's rating of one game.
type Review struct {
	ID        int64     `json:"id"`
	GameID    int64     `json:"game_id"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Review) Validate() error {
	if r.GameID <= 0 {
		return fmt.Errorf("%w: review must reference a game", ErrInvalidData)
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return fmt.Errorf("%w: rating must be within %d..%d", ErrInvalidData, MinRating, MaxRating)
	}
	return nil
}
