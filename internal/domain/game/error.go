package game

import (
	"errors"
)

var (
	ErrNotFound       = errors.New("game not found")
	ErrReviewNotFound = errors.New("review not found")
	ErrInvalidData    = errors.New("invalid data")
)
