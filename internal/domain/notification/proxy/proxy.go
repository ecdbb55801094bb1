package proxy

import (
	"context"
	"encoding/json"

	"github.com/pandamarket/backend/internal/domain/notification/directive"
	"github.com/pandamarket/backend/internal/domain/notification/event"
	"github.com/pandamarket/backend/internal/model"
	"github.com/pandamarket/backend/pkg/xcontext"
)

type ProxyServer struct {
	registry *Registry
}

func NewProxyServer(registry *Registry) *ProxyServer {
	return &ProxyServer{registry: registry}
}

// ServeProxy pumps one websocket connection. It relays directives from the
// client into the registry and events from the session onto the wire, and
// returns when the client disconnects.
func (s *ProxyServer) ServeProxy(ctx context.Context, req *model.ServeNotificationProxyRequest) error {
	userID := xcontext.RequestUserID(ctx)
	wsClient := xcontext.WSClient(ctx)

	session := NewSession()
	defer s.registry.Leave(userID, session)

	var seq uint64
	for {
		select {
		case ev := <-session.C:
			b, err := event.Format(ev, seq)
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot format event %s: %v", ev.Op, err)
				continue
			}

			seq++
			if err := wsClient.Write(b); err != nil {
				return nil
			}

		case msg, ok := <-wsClient.R:
			if !ok {
				return nil
			}

			var d directive.ServerDirective
			if err := json.Unmarshal(msg, &d); err != nil {
				xcontext.Logger(ctx).Debugf("Cannot parse directive: %v", err)
				continue
			}

			switch d.Op {
			case directive.JoinOp:
				s.registry.Join(userID, session)
			case directive.PingOp:
			default:
				xcontext.Logger(ctx).Debugf("Unknown directive op %s", d.Op)
			}
		}
	}
}
