package router

import (
	"context"
	"log/slog"
	"strings"
)

// Strategy selects how the visible location is kept in sync.
type Strategy int

const (
	// StrategyAuto resolves to history or fragment mode from the
	// host's capability flag when listening starts.
	StrategyAuto Strategy = iota

	// StrategyHistory uses push-style history updates.
	StrategyHistory

	// StrategyFragment uses fragment (hash) updates.
	StrategyFragment
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyHistory:
		return "history"
	case StrategyFragment:
		return "fragment"
	default:
		return "auto"
	}
}

// lifecycle state, checked by every public operation
type state int

const (
	stateConfigured state = iota
	stateListening
	stateClosed
)

// Config configures a Router.
type Config struct {
	// Logger receives dispatch and fallback log lines.
	// Defaults to slog.Default().
	Logger *slog.Logger

	// Location is the visible-location sink. Optional; when nil the
	// router dispatches without echoing canonical paths.
	Location Location

	// Strategy overrides automatic navigation strategy detection.
	Strategy Strategy
}

// Router dispatches navigated paths to route handlers. It is built
// once from a Table, optionally attached to a navigation Source via
// Listen, and never mutated by dispatch.
type Router struct {
	table    *Table
	logger   *slog.Logger
	loc      Location
	strategy Strategy
	mw       []Middleware

	state    state
	listened bool
}

// New creates a router over table. The table must hold exactly one
// default route; otherwise New fails with ErrNoDefaultRoute.
func New(table *Table, cfg Config) (*Router, error) {
	if table == nil || table.Default() == nil {
		return nil, ErrNoDefaultRoute
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		table:    table,
		logger:   logger,
		loc:      cfg.Location,
		strategy: cfg.Strategy,
	}, nil
}

// Table returns the router's route table.
func (r *Router) Table() *Table {
	return r.table
}

// Strategy returns the active navigation strategy. Before Listen
// resolves StrategyAuto, it returns the configured value.
func (r *Router) Strategy() Strategy {
	return r.strategy
}

// Use appends dispatch middleware. Call before Listen; the chain is
// read-only once dispatching begins.
func (r *Router) Use(mw ...Middleware) {
	r.mw = append(r.mw, mw...)
}

// HandleRoute dispatches a navigated path: the first registered route
// whose pattern matches wins, the path is canonicalized through the
// pattern (parse then reverse), and the handler receives the canonical
// path's segment parameters. When nothing matches, the default route's
// handler runs with no parameters and the visible location is moved to
// the default route's canonical path; a no-match is never an error.
//
// Handler errors are not caught; they surface to the caller verbatim.
func (r *Router) HandleRoute(ctx context.Context, path string) error {
	if r.state == stateClosed {
		return ErrClosed
	}

	route := r.table.Match(path)
	if route == nil {
		return r.dispatchFallback(ctx, path, false)
	}

	caps, err := route.pattern.Parse(path)
	if err != nil {
		return err
	}
	canonical, _ := r.canonicalPaths(route, caps)

	r.logger.Debug("dispatch",
		"path", path,
		"route", route.pattern.String(),
		"canonical", canonical)

	dc := &DispatchContext{
		Context:   ctx,
		Path:      path,
		Canonical: canonical,
		Route:     route,
		Params:    splitSegments(canonical),
	}
	return r.run(dc, route.handler)
}

// HandleLink dispatches an intercepted in-page link activation. The
// visible location is updated push-style before the handler runs. In
// fragment mode with a listener attached, the location update alone
// fires the fragment-change notification which re-enters HandleRoute,
// so HandleLink does not also dispatch directly.
func (r *Router) HandleLink(ctx context.Context, path, title string) error {
	if r.state == stateClosed {
		return ErrClosed
	}

	route := r.table.Match(path)
	if route == nil {
		return r.dispatchFallback(ctx, path, true)
	}

	caps, err := route.pattern.Parse(path)
	if err != nil {
		return err
	}
	canonical, locPath := r.canonicalPaths(route, caps)
	if title == "" {
		title = route.title
	}

	if r.loc != nil {
		r.loc.Update(locPath, title)
		if r.strategy == StrategyFragment && r.state == stateListening {
			// The host will echo a fragment-change event for the
			// update; dispatching here too would run the handler
			// twice.
			return nil
		}
	}

	dc := &DispatchContext{
		Context:   ctx,
		Path:      path,
		Canonical: canonical,
		Route:     route,
		Params:    splitSegments(canonical),
	}
	return r.run(dc, route.handler)
}

// Listen attaches the router to a navigation source and blocks,
// dispatching events until the stream ends or ctx is done. The current
// location is resolved once up front so a page load at a deep link
// dispatches without waiting for an event.
//
// Listen may be called at most once per router; a second call fails
// with ErrAlreadyListening.
func (r *Router) Listen(ctx context.Context, src Source) error {
	if r.state == stateClosed {
		return ErrClosed
	}
	if r.listened {
		return ErrAlreadyListening
	}
	r.listened = true
	r.state = stateListening

	if r.strategy == StrategyAuto {
		if src.PushSupported() {
			r.strategy = StrategyHistory
		} else {
			r.strategy = StrategyFragment
		}
	}
	r.logger.Debug("listening", "strategy", r.strategy.String())

	if err := r.HandleRoute(ctx, src.Path()); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-src.Events():
			if !ok {
				return nil
			}
			var err error
			switch ev.Kind {
			case EventLink:
				err = r.HandleLink(ctx, ev.Path, ev.Title)
			default:
				err = r.HandleRoute(ctx, ev.Path)
			}
			if err != nil {
				return err
			}
		}
	}
}

// Close moves the router to its terminal state. Subsequent dispatch
// and Listen calls fail with ErrClosed. Close is idempotent.
func (r *Router) Close() error {
	r.state = stateClosed
	return nil
}

// dispatchFallback runs the default route for a path nothing matched.
// viaLink marks a fallback reached through a link activation, which
// defers to the host's fragment echo the same way the matched branch
// of HandleLink does.
func (r *Router) dispatchFallback(ctx context.Context, path string, viaLink bool) error {
	def := r.table.Default()
	r.logger.Warn("no route matched, falling back to default",
		"path", path,
		"default", def.pattern.String())

	canonical, locPath := r.canonicalPaths(def, nil)
	if r.loc != nil {
		r.loc.Update(locPath, def.title)
		if viaLink && r.strategy == StrategyFragment && r.state == stateListening {
			// The host echoes a fragment-change event for the update;
			// dispatching here too would run the default handler twice.
			return nil
		}
	}

	dc := &DispatchContext{
		Context:   ctx,
		Path:      path,
		Canonical: canonical,
		Route:     def,
		Fallback:  true,
	}
	return r.run(dc, def.handler)
}

// canonicalPaths regenerates the canonical path (separator form, used
// for segment parameters) and the location path (fragment form when
// the active strategy is fragment-based and the pattern has a
// fragment marker).
func (r *Router) canonicalPaths(route *Route, caps []string) (canonical, locPath string) {
	canonical, err := route.pattern.Reverse(caps, false)
	if err != nil {
		// Only possible for a default route with capture groups
		// dispatched with no parameters.
		r.logger.Debug("route not reversible with given args, using raw pattern",
			"route", route.pattern.String())
		canonical = route.pattern.String()
	}

	locPath = canonical
	if r.strategy == StrategyFragment && route.pattern.HasFragment() {
		if p, err := route.pattern.Reverse(caps, true); err == nil {
			locPath = p
		}
	}
	return canonical, locPath
}

// run executes the middleware chain around the handler.
func (r *Router) run(dc *DispatchContext, h Handler) error {
	next := func() error { return h(dc.Context, dc.Params) }
	for i := len(r.mw) - 1; i >= 0; i-- {
		mw, inner := r.mw[i], next
		next = func() error { return mw.Handle(dc, inner) }
	}
	return next()
}

// splitSegments splits a canonical path into segment tokens, dropping
// the leading separator.
func splitSegments(path string) []string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
