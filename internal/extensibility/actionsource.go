package extensibility

import (
	"time"

	"github.com/comalice/storex/internal/primitives"
)

// ActionSource supplies external actions for a store. The store itself is
// passive; the caller drains a source into it with Pump from a goroutine of
// its own choosing.
type ActionSource interface {
	Actions() <-chan primitives.Action
}

// Dispatcher is the subset of the store surface Pump needs.
type Dispatcher interface {
	Dispatch(action primitives.Action) error
}

// Pump drains src into d until the source channel closes, returning the first
// dispatch error. Run it from the goroutine that owns the store.
func Pump(src ActionSource, d Dispatcher) error {
	for action := range src.Actions() {
		if err := d.Dispatch(action); err != nil {
			return err
		}
	}
	return nil
}

// ChannelSource is an ActionSource backed by a Go channel. Provides a simple
// way to feed externally produced actions into a store.
type ChannelSource struct {
	ch chan primitives.Action
}

// NewChannelSource creates a ChannelSource with the given channel.
// The channel should be buffered if backpressure handling is needed.
func NewChannelSource(ch chan primitives.Action) *ChannelSource {
	return &ChannelSource{ch: ch}
}

// Actions returns the receive-only channel for actions.
func (s *ChannelSource) Actions() <-chan primitives.Action {
	return s.ch
}

// TimerSource emits a fixed action periodically using time.Ticker. Useful for
// polling or heartbeat slices.
type TimerSource struct {
	ch      chan primitives.Action
	action  primitives.Action
	ticker  *time.Ticker
	stop    chan struct{}
	stopped bool
}

// NewTimerSource creates a TimerSource that emits action every d duration.
func NewTimerSource(action primitives.Action, d time.Duration) *TimerSource {
	t := &TimerSource{
		ch:     make(chan primitives.Action, 10),
		action: action,
		ticker: time.NewTicker(d),
		stop:   make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *TimerSource) run() {
	for {
		select {
		case <-t.ticker.C:
			select {
			case t.ch <- t.action:
			default:
				// drop if full
			}
		case <-t.stop:
			t.ticker.Stop()
			close(t.ch)
			return
		}
	}
}

// Actions returns the action channel.
func (t *TimerSource) Actions() <-chan primitives.Action {
	return t.ch
}

// Stop stops the ticker and closes the channel.
func (t *TimerSource) Stop() {
	if t.stopped {
		return
	}
	t.stopped = true
	close(t.stop)
}
