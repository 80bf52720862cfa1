package router

import (
	"log/slog"

	"github.com/wayfind-dev/wayfind/pkg/pattern"
)

// Route binds a compiled pattern to exactly one handler. A default
// route is also a normal, matchable route.
type Route struct {
	pattern   *pattern.Pattern
	handler   Handler
	title     string
	isDefault bool
}

// Pattern returns the route's compiled pattern.
func (r *Route) Pattern() *pattern.Pattern { return r.pattern }

// Handler returns the bound handler.
func (r *Route) Handler() Handler { return r.handler }

// Title returns the title passed to the location primitive when this
// route is navigated to.
func (r *Route) Title() string { return r.title }

// IsDefault reports whether this route is the table's default.
func (r *Route) IsDefault() bool { return r.isDefault }

// RouteOption configures route registration.
type RouteOption func(*Route)

// WithDefault marks the route as the table's default. Registering a
// second default replaces the first; the replaced route stays in the
// table as a normal route.
func WithDefault() RouteOption {
	return func(r *Route) {
		r.isDefault = true
	}
}

// WithTitle sets the title used for location updates.
func WithTitle(title string) RouteOption {
	return func(r *Route) {
		r.title = title
	}
}

// Table is an ordered association from patterns to handlers. Routes
// are unique by pattern equality; registering an existing pattern
// rebinds it in place. Match order is first-registered-wins.
//
// A Table is built during configuration and read-only afterwards; it
// is not safe for concurrent mutation.
type Table struct {
	routes []*Route
	byRaw  map[string]*Route
	def    *Route
	logger *slog.Logger
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithLogger sets the logger used for registration warnings.
func WithLogger(logger *slog.Logger) TableOption {
	return func(t *Table) {
		t.logger = logger
	}
}

// NewTable creates an empty route table.
func NewTable(opts ...TableOption) *Table {
	t := &Table{
		byRaw: make(map[string]*Route),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	return t
}

// Register compiles raw and stores the route. A malformed pattern
// aborts registration with an error matching pattern.ErrMalformed.
func (t *Table) Register(raw string, handler Handler, opts ...RouteOption) (*Route, error) {
	p, err := pattern.Compile(raw)
	if err != nil {
		return nil, err
	}

	route := &Route{pattern: p, handler: handler}
	for _, opt := range opts {
		opt(route)
	}

	if existing, ok := t.byRaw[raw]; ok {
		// Rebind in place, keeping the registration position.
		existing.handler = route.handler
		existing.title = route.title
		if route.isDefault {
			t.setDefault(existing)
		}
		return existing, nil
	}

	t.routes = append(t.routes, route)
	t.byRaw[raw] = route
	if route.isDefault {
		route.isDefault = false // setDefault flips it back on
		t.setDefault(route)
	}
	return route, nil
}

func (t *Table) setDefault(route *Route) {
	if t.def != nil && t.def != route {
		t.logger.Warn("default route replaced",
			"old", t.def.pattern.String(),
			"new", route.pattern.String())
		t.def.isDefault = false
	}
	route.isDefault = true
	t.def = route
}

// Default returns the default route, or nil when none is set.
func (t *Table) Default() *Route {
	return t.def
}

// Routes returns the routes in registration order.
func (t *Table) Routes() []*Route {
	return t.routes
}

// Len returns the number of registered routes.
func (t *Table) Len() int {
	return len(t.routes)
}

// Match returns the first registered route whose pattern matches path,
// or nil. The default route participates at its registration position.
func (t *Table) Match(path string) *Route {
	for _, route := range t.routes {
		if route.pattern.Matches(path) {
			return route
		}
	}
	return nil
}

// MatchNonFragment is Match using only the pre-fragment portion of
// each pattern. Used by hosts that never see the fragment.
func (t *Table) MatchNonFragment(path string) *Route {
	for _, route := range t.routes {
		if route.pattern.MatchesNonFragment(path) {
			return route
		}
	}
	return nil
}
