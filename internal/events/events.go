// Package events defines the application events passed from the message pump
// thread to the tray worker, and the channel that carries them.
package events

import (
	"sync"
	"sync/atomic"

	"github.com/ctrltick/ctrltick/internal/constants"
)

// Event is an application-level notification. The set is closed; the tray
// controller switches over every value.
type Event int

const (
	// Exit - the user picked "Exit" from the tray menu.
	Exit Event = iota
	// ToggleAutoLaunch - the user clicked the "Auto Launch" item.
	ToggleAutoLaunch
	// SystemDpiChanged - the display scale changed.
	SystemDpiChanged
	// SystemColorChanged - the theme or accent colour changed.
	SystemColorChanged
)

func (e Event) String() string {
	switch e {
	case Exit:
		return "Exit"
	case ToggleAutoLaunch:
		return "ToggleAutoLaunch"
	case SystemDpiChanged:
		return "SystemDpiChanged"
	case SystemColorChanged:
		return "SystemColorChanged"
	default:
		return "Unknown"
	}
}

// Valid reports whether e is one of the declared events.
func (e Event) Valid() bool {
	return e >= Exit && e <= SystemColorChanged
}

// Sender is the producing side of a Router. The pump and the tray window
// procedure hold a Sender; only the tray controller receives.
type Sender interface {
	Send(ev Event) bool
}

// coalescible reports whether ev may be dropped under load. A later
// notification recomputes the same state, so losing one is harmless.
func coalescible(ev Event) bool {
	return ev == SystemDpiChanged || ev == SystemColorChanged
}

// Router is a FIFO queue of events with any number of producers and a single
// consumer. Send never blocks. User commands are always queued; system
// notifications are dropped and counted once limit events are pending.
type Router struct {
	mu      sync.Mutex
	pending []Event
	limit   int
	closed  bool

	wake          chan struct{}
	out           chan Event
	droppedEvents atomic.Int64
}

// NewRouter creates a router that starts dropping notifications once limit
// events are waiting for the consumer.
func NewRouter(limit int) *Router {
	if limit <= 0 {
		limit = constants.EventRouterBuffer
	}
	r := &Router{
		limit: limit,
		wake:  make(chan struct{}, 1),
		out:   make(chan Event),
	}
	go r.forward()
	return r
}

// Send enqueues ev without blocking. It returns false if the router is
// closed, ev is not a declared event, or ev is a notification and the queue
// is full.
func (r *Router) Send(ev Event) bool {
	if !ev.Valid() {
		return false
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return false
	}
	if coalescible(ev) && len(r.pending) >= r.limit {
		r.mu.Unlock()
		r.droppedEvents.Add(1)
		return false
	}
	r.pending = append(r.pending, ev)
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
	return true
}

// forward hands pending events to the consumer in order, and closes the
// receive side once the router is closed and drained.
func (r *Router) forward() {
	defer close(r.out)
	for {
		r.mu.Lock()
		if len(r.pending) == 0 {
			closed := r.closed
			r.mu.Unlock()
			if closed {
				return
			}
			<-r.wake
			continue
		}
		ev := r.pending[0]
		r.pending = r.pending[1:]
		r.mu.Unlock()

		r.out <- ev
	}
}

// Events returns the receive side. Only one goroutine may consume it.
func (r *Router) Events() <-chan Event {
	return r.out
}

// Close stops accepting events. The receive side is closed once events
// already queued have been handed to the consumer. Safe to call more than once.
func (r *Router) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// DroppedEventCount returns how many notifications were dropped because the
// queue was full.
func (r *Router) DroppedEventCount() int64 {
	return r.droppedEvents.Load()
}
