package nav

import (
	"sync"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

// memoryEventBuffer bounds the in-memory event stream.
const memoryEventBuffer = 64

// MemoryHost is an in-process navigation host. It implements both
// router.Source and router.Location.
//
// Without push support, a location update that changes the path emits
// a location-change event, emulating a browser's hashchange
// notification; updating to the current path emits nothing, as a
// browser would not.
type MemoryHost struct {
	mu     sync.Mutex
	push   bool
	path   string
	title  string
	closed bool
	events chan router.Event
}

// MemoryOption configures a MemoryHost.
type MemoryOption func(*MemoryHost)

// WithPushSupport sets the push-style history capability flag.
func WithPushSupport(push bool) MemoryOption {
	return func(h *MemoryHost) {
		h.push = push
	}
}

// NewMemoryHost creates a host whose current location is path.
func NewMemoryHost(path string, opts ...MemoryOption) *MemoryHost {
	h := &MemoryHost{
		push:   true,
		path:   path,
		events: make(chan router.Event, memoryEventBuffer),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// PushSupported implements router.Source.
func (h *MemoryHost) PushSupported() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.push
}

// Path implements router.Source.
func (h *MemoryHost) Path() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.path
}

// Title returns the last title passed to Update.
func (h *MemoryHost) Title() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.title
}

// Events implements router.Source.
func (h *MemoryHost) Events() <-chan router.Event {
	return h.events
}

// Update implements router.Location.
func (h *MemoryHost) Update(path, title string) {
	h.mu.Lock()
	changed := path != h.path
	h.path = path
	h.title = title
	echo := changed && !h.push && !h.closed
	h.mu.Unlock()

	if echo {
		h.emit(router.Event{Kind: router.EventLocation, Path: path})
	}
}

// Navigate emits a location-change event, as a history or hash change
// initiated by the environment would.
func (h *MemoryHost) Navigate(path string) {
	h.mu.Lock()
	h.path = path
	closed := h.closed
	h.mu.Unlock()
	if !closed {
		h.emit(router.Event{Kind: router.EventLocation, Path: path})
	}
}

// Click emits a link-activation event.
func (h *MemoryHost) Click(path, title string) {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if !closed {
		h.emit(router.Event{Kind: router.EventLink, Path: path, Title: title})
	}
}

// Close ends the event stream. Further updates are recorded but emit
// nothing.
func (h *MemoryHost) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	close(h.events)
}

func (h *MemoryHost) emit(ev router.Event) {
	select {
	case h.events <- ev:
	default:
		// Stream full; the consumer has fallen behind.
	}
}

var (
	_ router.Source   = (*MemoryHost)(nil)
	_ router.Location = (*MemoryHost)(nil)
)
