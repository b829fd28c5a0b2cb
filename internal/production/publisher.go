package production

import (
	"context"

	"github.com/comalice/storex/internal/core"
	"github.com/comalice/storex/internal/primitives"
)

// PublishedAction bundles a committed action with its dispatch metadata for
// publishing.
type PublishedAction struct {
	Action   primitives.Action
	Metadata core.DispatchMetadata
}

// ChannelPublisher is a stdlib-only implementation that forwards committed
// actions to a Go channel. Non-blocking publish with drop on backpressure.
type ChannelPublisher struct {
	ch chan<- PublishedAction
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- PublishedAction) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

func (p *ChannelPublisher) Publish(ctx context.Context, action primitives.Action, metadata core.DispatchMetadata) error {
	select {
	case p.ch <- PublishedAction{Action: action, Metadata: metadata}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil // Non-blocking drop
	}
}

func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}
