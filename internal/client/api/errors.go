package api

import "errors"

var (
	// ErrUnavailable covers connectivity failures, timeouts and 5xx replies.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized covers 401/403 replies.
	ErrUnauthorized = errors.New("unauthorized")
)
