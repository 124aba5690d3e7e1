package tray

import "sync"

// ownerGate tracks whether the thread owning the tray window still services
// sent messages. Once it has stopped, other threads must not send to it.
type ownerGate struct {
	mu       sync.Mutex
	detached bool
}

// detach records that the owner's message pump has stopped.
func (g *ownerGate) detach() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.detached = true
}

// canSend reports whether a foreign thread may still send to the owner.
func (g *ownerGate) canSend() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.detached
}

// closeRoute decides how Close tears the tray down.
type closeRoute int

const (
	// closeDirect tears down on the owner thread itself.
	closeDirect closeRoute = iota
	// closeViaOwner sends the teardown to the owner and waits.
	closeViaOwner
	// closeRefused means the owner is no longer pumping.
	closeRefused
)

func (g *ownerGate) route(onOwner bool) closeRoute {
	switch {
	case onOwner:
		return closeDirect
	case g.canSend():
		return closeViaOwner
	default:
		return closeRefused
	}
}
