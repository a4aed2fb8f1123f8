package storage

import "errors"

var ErrClosed = errors.New("store is closed")
