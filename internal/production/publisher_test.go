package production

import (
	"context"
	"testing"
	"time"

	"github.com/comalice/storex/internal/core"
	"github.com/comalice/storex/internal/primitives"
)

func TestChannelPublisher_ForwardsActions(t *testing.T) {
	ch := make(chan PublishedAction, 1)
	p := NewChannelPublisher(ch)

	action := primitives.NewAction("counter/increment", nil)
	metadata := core.DispatchMetadata{StoreID: "s1", ActionType: action.Type, Timestamp: time.Now()}
	if err := p.Publish(context.Background(), action, metadata); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-ch:
		if got.Action.Type != "counter/increment" {
			t.Errorf("got Type=%q want counter/increment", got.Action.Type)
		}
		if got.Metadata.StoreID != "s1" {
			t.Errorf("got StoreID=%q want s1", got.Metadata.StoreID)
		}
	default:
		t.Fatal("nothing published")
	}
}

func TestChannelPublisher_DropsOnBackpressure(t *testing.T) {
	ch := make(chan PublishedAction) // unbuffered, nobody reading
	p := NewChannelPublisher(ch)

	action := primitives.NewAction("counter/increment", nil)
	if err := p.Publish(context.Background(), action, core.DispatchMetadata{}); err != nil {
		t.Errorf("backpressure drop returned error: %v", err)
	}
}

func TestChannelPublisher_Close(t *testing.T) {
	ch := make(chan PublishedAction)
	p := NewChannelPublisher(ch)
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if _, open := <-ch; open {
		t.Error("channel still open after Close")
	}
}
