package tmdb

import "errors"

// Sentinel errors for TMDb API operations.
var (
	ErrNotFound     = errors.New("tmdb: not found")
	ErrRateLimited  = errors.New("tmdb: rate limited by server")
	ErrUnauthorized = errors.New("tmdb: invalid api key")
	ErrServer       = errors.New("tmdb: server error")
)
