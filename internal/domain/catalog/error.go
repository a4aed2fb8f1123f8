package catalog

import (
	"errors"
)

var (
	ErrNotFound    = errors.New("catalog entry not found")
	ErrInvalidData = errors.New("invalid catalog entry")
)
