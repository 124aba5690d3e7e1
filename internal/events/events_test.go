package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctrltick/ctrltick/internal/constants"
)

func TestRouter_FIFO(t *testing.T) {
	r := NewRouter(8)

	sent := []Event{ToggleAutoLaunch, SystemDpiChanged, SystemColorChanged, Exit}
	for _, ev := range sent {
		require.True(t, r.Send(ev))
	}
	r.Close()

	var got []Event
	for ev := range r.Events() {
		got = append(got, ev)
	}
	assert.Equal(t, sent, got)
}

// drain closes r and returns everything it delivers.
func drain(r *Router) []Event {
	r.Close()
	var got []Event
	for ev := range r.Events() {
		got = append(got, ev)
	}
	return got
}

func TestRouter_FullQueueDropsOnlyNotifications(t *testing.T) {
	r := NewRouter(constants.EventRouterBuffer)

	for i := 0; i < constants.EventRouterBuffer; i++ {
		require.True(t, r.Send(SystemColorChanged))
	}
	// Whether the forwarder has already taken one off the queue or not, the
	// queue is at its limit again after one more.
	r.Send(SystemColorChanged)

	assert.False(t, r.Send(SystemDpiChanged), "notification past the limit is dropped")
	assert.True(t, r.Send(ToggleAutoLaunch), "user commands are never dropped")
	assert.True(t, r.Send(Exit), "Exit is never dropped")
	assert.GreaterOrEqual(t, r.DroppedEventCount(), int64(1))

	got := drain(r)
	require.GreaterOrEqual(t, len(got), 2)
	assert.Equal(t, []Event{ToggleAutoLaunch, Exit}, got[len(got)-2:])
}

func TestRouter_SendNeverBlocks(t *testing.T) {
	r := NewRouter(2)
	defer r.Close()

	// Nobody consumes; commands keep queueing.
	for i := 0; i < 10; i++ {
		assert.True(t, r.Send(ToggleAutoLaunch))
	}
	assert.Zero(t, r.DroppedEventCount())
}

func TestRouter_RejectsUndeclaredEvents(t *testing.T) {
	r := NewRouter(4)

	assert.False(t, r.Send(Event(42)))
	assert.True(t, r.Send(Exit))
	assert.Equal(t, []Event{Exit}, drain(r))
}

func TestRouter_SendAfterClose(t *testing.T) {
	r := NewRouter(4)
	r.Close()
	r.Close()

	assert.False(t, r.Send(Exit))
	_, ok := <-r.Events()
	assert.False(t, ok)
}

func TestRouter_ConcurrentProducers(t *testing.T) {
	const producers, perProducer = 4, 25
	r := NewRouter(producers * perProducer)

	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				r.Send(SystemColorChanged)
			}
		}()
	}
	wg.Wait()
	r.Close()

	count := 0
	for range r.Events() {
		count++
	}
	assert.Equal(t, producers*perProducer, count)
	assert.Zero(t, r.DroppedEventCount())
}

func TestEvent_String(t *testing.T) {
	assert.Equal(t, "Exit", Exit.String())
	assert.Equal(t, "ToggleAutoLaunch", ToggleAutoLaunch.String())
	assert.Equal(t, "SystemDpiChanged", SystemDpiChanged.String())
	assert.Equal(t, "SystemColorChanged", SystemColorChanged.String())
	assert.Equal(t, "Unknown", Event(42).String())
	assert.False(t, Event(42).Valid())
	assert.True(t, SystemColorChanged.Valid())
}

func TestNewRouter_DefaultLimit(t *testing.T) {
	r := NewRouter(0)
	defer r.Close()
	assert.Equal(t, constants.EventRouterBuffer, r.limit)
}
