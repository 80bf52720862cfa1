package nav

import (
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

// PageHandler serves full page loads. A server never sees the URL
// fragment, so routes are matched against the pre-fragment portion of
// each pattern; paths that match nothing are served by the default
// route, mirroring the dispatcher's fallback.
type PageHandler struct {
	table  *router.Table
	logger *slog.Logger
}

// NewPageHandler creates an HTTP adapter over table.
func NewPageHandler(table *router.Table, logger *slog.Logger) *PageHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PageHandler{table: table, logger: logger}
}

// ServeHTTP implements http.Handler. The matched route's handler runs
// with the path's segment parameters before the page shell is written;
// a handler error is a 500.
func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	route := h.table.MatchNonFragment(path)
	var params []string
	if route == nil {
		route = h.table.Default()
		if route == nil {
			http.Error(w, "no default route", http.StatusInternalServerError)
			return
		}
		h.logger.Warn("no route matched, serving default", "path", path)
	} else {
		params = pathSegments(path)
	}

	if err := route.Handler()(r.Context(), params); err != nil {
		h.logger.Error("handler failed", "path", path, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	title := route.Title()
	if title == "" {
		title = "wayfind"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, pageShell,
		html.EscapeString(title),
		html.EscapeString(route.Pattern().String()),
		html.EscapeString(path))
}

// pageShell is the minimal document served for a full page load. The
// shim script attached by the application connects back over /ws.
const pageShell = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body data-route="%s" data-path="%s"></body>
</html>
`

// pathSegments splits a path into segment tokens, dropping the
// leading separator.
func pathSegments(path string) []string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
