package nav

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

// Frame types exchanged with the browser shim.
const (
	frameHello    = "hello"    // shim -> host: capability flag + initial path
	frameLocation = "location" // shim -> host: history or hash change
	frameLink     = "link"     // shim -> host: intercepted link activation
	frameUpdate   = "update"   // host -> shim: move the visible location
)

// wsFrame is the JSON wire frame.
type wsFrame struct {
	Type  string `json:"type"`
	Path  string `json:"path,omitempty"`
	Title string `json:"title,omitempty"`
	Push  bool   `json:"push,omitempty"`
}

// Default connection timeouts.
const (
	defaultReadTimeout  = 60 * time.Second
	defaultWriteTimeout = 10 * time.Second
)

// WSHost bridges a browser navigation shim over a WebSocket. The shim
// connects, announces its capability flag and current path in a hello
// frame, then streams location changes and intercepted link clicks.
// Location updates from the router are pushed back as update frames.
//
// One shim connection is served at a time; a second upgrade attempt is
// rejected until the first connection ends.
type WSHost struct {
	upgrader     websocket.Upgrader
	logger       *slog.Logger
	readTimeout  time.Duration
	writeTimeout time.Duration

	mu         sync.Mutex
	conn       *websocket.Conn
	connecting bool
	push       bool
	path       string
	closed     bool

	events    chan router.Event
	ready     chan struct{}
	readyOnce sync.Once
	closeOnce sync.Once
}

// WSOption configures a WSHost.
type WSOption func(*WSHost)

// WithWSLogger sets the host logger.
func WithWSLogger(logger *slog.Logger) WSOption {
	return func(h *WSHost) {
		h.logger = logger
	}
}

// WithReadTimeout sets the read deadline per message.
func WithReadTimeout(d time.Duration) WSOption {
	return func(h *WSHost) {
		h.readTimeout = d
	}
}

// WithWriteTimeout sets the write deadline per update frame.
func WithWriteTimeout(d time.Duration) WSOption {
	return func(h *WSHost) {
		h.writeTimeout = d
	}
}

// WithCheckOrigin sets the upgrader's origin check.
func WithCheckOrigin(check func(r *http.Request) bool) WSOption {
	return func(h *WSHost) {
		h.upgrader.CheckOrigin = check
	}
}

// NewWSHost creates a WebSocket navigation host.
func NewWSHost(opts ...WSOption) *WSHost {
	h := &WSHost{
		logger:       slog.Default(),
		readTimeout:  defaultReadTimeout,
		writeTimeout: defaultWriteTimeout,
		events:       make(chan router.Event, memoryEventBuffer),
		ready:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Ready is closed once a shim has completed its hello frame, after
// which PushSupported and Path are meaningful.
func (h *WSHost) Ready() <-chan struct{} {
	return h.ready
}

// PushSupported implements router.Source.
func (h *WSHost) PushSupported() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.push
}

// Path implements router.Source.
func (h *WSHost) Path() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.path
}

// Events implements router.Source.
func (h *WSHost) Events() <-chan router.Event {
	return h.events
}

// Update implements router.Location by pushing an update frame.
func (h *WSHost) Update(path, title string) {
	h.mu.Lock()
	h.path = path
	conn := h.conn
	h.mu.Unlock()

	if conn == nil {
		return
	}
	conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
	if err := conn.WriteJSON(wsFrame{Type: frameUpdate, Path: path, Title: title}); err != nil {
		h.logger.Error("update write failed", "error", err)
	}
}

// ServeHTTP upgrades the request and serves the shim connection,
// blocking until it ends.
func (h *WSHost) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Reserve the slot before the upgrade so two simultaneous requests
	// cannot both pass the guard.
	h.mu.Lock()
	if h.conn != nil || h.connecting {
		h.mu.Unlock()
		http.Error(w, "navigation shim already connected", http.StatusConflict)
		return
	}
	h.connecting = true
	h.mu.Unlock()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.mu.Lock()
		h.connecting = false
		h.mu.Unlock()
		h.logger.Error("upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	h.connecting = false
	h.conn = conn
	h.mu.Unlock()

	h.readLoop(conn)

	h.mu.Lock()
	h.conn = nil
	h.mu.Unlock()
	conn.Close()
}

// readLoop reads and routes shim frames until the connection ends.
func (h *WSHost) readLoop(conn *websocket.Conn) {
	for {
		conn.SetReadDeadline(time.Now().Add(h.readTimeout))

		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				h.logger.Error("read error", "error", err)
			}
			return
		}

		var f wsFrame
		if err := json.Unmarshal(msg, &f); err != nil {
			h.logger.Error("frame decode error", "error", err)
			continue
		}

		switch f.Type {
		case frameHello:
			h.mu.Lock()
			h.push = f.Push
			h.path = f.Path
			h.mu.Unlock()
			h.readyOnce.Do(func() { close(h.ready) })

		case frameLocation:
			h.mu.Lock()
			h.path = f.Path
			h.mu.Unlock()
			h.emit(router.Event{Kind: router.EventLocation, Path: f.Path})

		case frameLink:
			h.emit(router.Event{Kind: router.EventLink, Path: f.Path, Title: f.Title})

		default:
			h.logger.Warn("unknown frame type", "type", f.Type)
		}
	}
}

// Close ends the event stream and drops the connection.
func (h *WSHost) Close() {
	h.closeOnce.Do(func() {
		h.mu.Lock()
		conn := h.conn
		h.conn = nil
		h.closed = true
		h.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
		close(h.events)
	})
}

func (h *WSHost) emit(ev router.Event) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	select {
	case h.events <- ev:
	default:
		h.logger.Warn("event dropped, consumer behind", "path", ev.Path)
	}
}

var (
	_ router.Source   = (*WSHost)(nil)
	_ router.Location = (*WSHost)(nil)
)
