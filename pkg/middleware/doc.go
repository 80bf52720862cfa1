// Package middleware provides dispatch middleware for the router:
// Prometheus metrics and OpenTelemetry tracing. Both are configured
// with functional options and attached via Router.Use.
package middleware
