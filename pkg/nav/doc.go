// Package nav provides navigation hosts: the boundary between the
// router and whatever owns the visible location.
//
// A host supplies the router's Source side (capability flag, current
// path, navigation event stream) and its Location side (the primitive
// to move the visible location without a reload). Three hosts are
// included: MemoryHost for tests and programmatic use, WSHost bridging
// a browser shim over a WebSocket, and PageHandler serving full page
// loads over HTTP with fragment-blind matching.
package nav
