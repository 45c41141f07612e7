package sqlite

import "errors"

var (
	// ErrCacheMiss indicates that no entry is stored under the key.
	ErrCacheMiss = errors.New("cache miss")
	// ErrInvalidKey indicates an empty cache key.
	ErrInvalidKey = errors.New("invalid cache key")
)
