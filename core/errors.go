package core

import "errors"

var (
	// ErrCancelled is returned when the user declines a destructive action.
	ErrCancelled = errors.New("action cancelled")
	// ErrNotLoggedIn is returned by operations that need a session.
	ErrNotLoggedIn = errors.New("please log in first")
	// ErrNotAdmin is the client-side admin check. The backend enforces the real one.
	ErrNotAdmin = errors.New("admin access required")
	// ErrSuperseded marks a response that arrived after a newer request was issued.
	ErrSuperseded = errors.New("superseded by a newer request")
)
