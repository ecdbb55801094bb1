package engine

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pandamarket/backend/internal/domain/notification/event"
	"github.com/pandamarket/backend/internal/domain/notification/proxy"
	"github.com/pandamarket/backend/pkg/pubsub"
	"github.com/pandamarket/backend/pkg/xcontext"
)

// NewBroadcastHandler consumes events from the broadcast topic and delivers
// them to the local registry. The srvCtx is the process context, the
// consumer's own context carries none of our infrastructure.
func NewBroadcastHandler(srvCtx context.Context, registry *proxy.Registry) pubsub.SubscribeHandler {
	return func(_ context.Context, pack *pubsub.Pack, _ time.Time) {
		var ev event.EventRequest
		if err := json.Unmarshal(pack.Msg, &ev); err != nil {
			xcontext.Logger(srvCtx).Errorf("Cannot parse broadcast event: %v", err)
			return
		}

		registry.Send(ev.Metadata.To, &ev)
	}
}
