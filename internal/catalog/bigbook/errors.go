package bigbook

import "errors"

// Sentinel errors for Big Book API operations.
var (
	ErrNotFound     = errors.New("bigbook: not found")
	ErrRateLimited  = errors.New("bigbook: rate limited by server")
	ErrUnauthorized = errors.New("bigbook: invalid api key")
	ErrServer       = errors.New("bigbook: server error")
)
