package engine

import (
	"context"
	"encoding/json"

	"github.com/pandamarket/backend/internal/domain/notification/event"
	"github.com/pandamarket/backend/internal/domain/notification/proxy"
	"github.com/pandamarket/backend/pkg/pubsub"
	"github.com/pandamarket/backend/pkg/xcontext"
)

// Dispatcher routes an event to the receiving user's live sessions. With a
// broadcast publisher configured the event goes through the topic and every
// instance (this one included) delivers to its own registry. Without one,
// delivery is local only.
type Dispatcher struct {
	registry  *proxy.Registry
	publisher pubsub.Publisher
	topic     string
}

func NewDispatcher(registry *proxy.Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

func (d *Dispatcher) WithBroadcast(publisher pubsub.Publisher, topic string) *Dispatcher {
	d.publisher = publisher
	d.topic = topic
	return d
}

// Dispatch is best-effort, it never fails the caller. A publish error falls
// back to local delivery so at least this instance's sessions hear it.
func (d *Dispatcher) Dispatch(ctx context.Context, ev *event.EventRequest) {
	if d.publisher != nil && d.topic != "" {
		b, err := json.Marshal(ev)
		if err == nil {
			err = d.publisher.Publish(ctx, d.topic, &pubsub.Pack{
				Key: []byte(ev.Metadata.To),
				Msg: b,
			})
		}

		if err == nil {
			return
		}

		xcontext.Logger(ctx).Warnf("Cannot broadcast event %s: %v", ev.Op, err)
	}

	d.registry.Send(ev.Metadata.To, ev)
}
