package router

import (
	"context"
)

// Handler is the function bound to a route. It receives the ordered
// segment parameters of the canonical path for the navigation. The
// router never inspects what the handler does; errors (and panics)
// propagate to the caller of HandleRoute/HandleLink untouched.
type Handler func(ctx context.Context, params []string) error

// Location is the primitive to update the visible location and title
// without a reload. Implemented by navigation hosts.
type Location interface {
	Update(path, title string)
}

// EventKind distinguishes navigation notifications.
type EventKind int

const (
	// EventLocation is a history or fragment location change.
	EventLocation EventKind = iota

	// EventLink is an intercepted in-page link activation.
	EventLink
)

// Event is one navigation notification from a host.
type Event struct {
	Kind  EventKind
	Path  string
	Title string
}

// Source is the notification side of a navigation host: the current
// location, a capability flag for push-style history, and the stream
// of navigation events. The stream ends when the host shuts down.
type Source interface {
	// PushSupported reports whether the host supports push-style
	// history. When false the router falls back to fragment mode.
	PushSupported() bool

	// Path returns the current location path, used for the initial
	// dispatch when listening starts.
	Path() string

	// Events returns the navigation event stream.
	Events() <-chan Event
}

// DispatchContext carries per-dispatch state through the middleware
// chain. It is created per navigation event and discarded after the
// handler call.
type DispatchContext struct {
	// Context is the caller's context, passed through to the handler.
	Context context.Context

	// Path is the raw navigated path before canonicalization.
	Path string

	// Canonical is the regenerated canonical path.
	Canonical string

	// Route is the selected route. On fallback it is the default
	// route.
	Route *Route

	// Params are the ordered segment parameters for the handler.
	Params []string

	// Fallback is true when no pattern matched and the default route
	// was selected.
	Fallback bool
}

// RoutePattern returns the raw pattern string of the selected route,
// or "" when none is set.
func (dc *DispatchContext) RoutePattern() string {
	if dc.Route == nil {
		return ""
	}
	return dc.Route.Pattern().String()
}

// Middleware wraps dispatch. Implementations must call next to
// continue the chain; errors returned from next are the handler's and
// must be propagated, not swallowed.
type Middleware interface {
	Handle(dc *DispatchContext, next func() error) error
}

// MiddlewareFunc is a function adapter for Middleware.
type MiddlewareFunc func(dc *DispatchContext, next func() error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(dc *DispatchContext, next func() error) error {
	return f(dc, next)
}

var _ Middleware = MiddlewareFunc(nil)
