// Package router holds the route table and dispatch logic built on
// the pattern compiler.
//
// A Table is an ordered association from compiled patterns to
// handlers with exactly one route flagged as default. A Router
// dispatches navigated paths against the table: the first registered
// matching route wins, the path is canonicalized by parsing and
// reverse-generating it through the matched pattern, and the handler
// receives the canonical path's segment parameters. Paths that match
// nothing fall back to the default route.
//
// A Router moves through three states: configured at construction,
// listening once attached to a navigation source, and closed. A
// router that never listens can still dispatch programmatically via
// HandleRoute and HandleLink.
package router
