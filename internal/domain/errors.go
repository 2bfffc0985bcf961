package domain

import "errors"

var (
	// ErrStoreUnavailable means the backing store could not be reached. Callers may retry.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrNotSignedIn means an operation that needs a user was attempted without one.
	ErrNotSignedIn = errors.New("sign in required")
	// ErrInvalidCursor means a cursor is malformed, unknown, or was issued under another filter.
	ErrInvalidCursor = errors.New("invalid cursor")
	ErrNotFound      = errors.New("not found")
)
