package router

import "errors"

// Sentinel errors for router construction and dispatch conditions.
var (
	// ErrNoDefaultRoute is returned by New when the table holds no
	// default route.
	ErrNoDefaultRoute = errors.New("router: table has no default route")

	// ErrAlreadyListening is returned by Listen when the router is
	// already attached to a navigation source.
	ErrAlreadyListening = errors.New("router: already listening")

	// ErrClosed is returned when an operation is attempted on a closed
	// router.
	ErrClosed = errors.New("router: closed")

	// ErrUnknownHandler is returned when a route names a handler that
	// is not registered.
	ErrUnknownHandler = errors.New("router: unknown handler")
)
