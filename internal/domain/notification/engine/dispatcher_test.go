package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pandamarket/backend/internal/domain/notification/event"
	"github.com/pandamarket/backend/internal/domain/notification/proxy"
	"github.com/pandamarket/backend/internal/model"
	"github.com/pandamarket/backend/pkg/logger"
	"github.com/pandamarket/backend/pkg/pubsub"
	"github.com/pandamarket/backend/pkg/testutil"
	"github.com/pandamarket/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func silentContext() context.Context {
	return xcontext.WithLogger(context.Background(), logger.NewLogger(logger.SILENCE))
}

func newNotificationEvent(t *testing.T, to, message string) *event.EventRequest {
	t.Helper()
	ev, err := event.New(to, event.NewNotificationEvent{
		Notification: model.Notification{ID: 1, UserID: to, Message: message},
	})
	require.NoError(t, err)
	return ev
}

func Test_Dispatcher_delivers_locally_without_publisher(t *testing.T) {
	registry := proxy.NewRegistry()
	session := proxy.NewSession()
	registry.Join("user2", session)

	dispatcher := NewDispatcher(registry)
	ev := newNotificationEvent(t, "user2", "hello")
	dispatcher.Dispatch(silentContext(), ev)

	require.Equal(t, ev, <-session.C)
}

func Test_Dispatcher_publishes_instead_of_delivering_locally(t *testing.T) {
	registry := proxy.NewRegistry()
	session := proxy.NewSession()
	registry.Join("user2", session)

	publisher := &testutil.MockPublisher{}
	dispatcher := NewDispatcher(registry).WithBroadcast(publisher, "notifications")

	ev := newNotificationEvent(t, "user2", "hello")
	dispatcher.Dispatch(silentContext(), ev)

	packs := publisher.Published("notifications")
	require.Len(t, packs, 1)
	require.Equal(t, []byte("user2"), packs[0].Key)

	// Local delivery happens through the subscriber, not directly, so the
	// event is not delivered twice on the publishing instance.
	require.Empty(t, session.C)

	handler := NewBroadcastHandler(silentContext(), registry)
	handler(context.Background(), &pubsub.Pack{Key: packs[0].Key, Msg: packs[0].Msg}, time.Now())

	received := <-session.C
	require.Equal(t, event.NewNotificationOp, received.Op)
	require.Equal(t, "user2", received.Metadata.To)
}

func Test_Dispatcher_falls_back_to_local_delivery_on_publish_failure(t *testing.T) {
	registry := proxy.NewRegistry()
	session := proxy.NewSession()
	registry.Join("user2", session)

	publisher := &testutil.MockPublisher{
		PublishFunc: func(context.Context, string, *pubsub.Pack) error {
			return errors.New("broker down")
		},
	}
	dispatcher := NewDispatcher(registry).WithBroadcast(publisher, "notifications")

	ev := newNotificationEvent(t, "user2", "hello")
	dispatcher.Dispatch(silentContext(), ev)

	require.Equal(t, ev, <-session.C)
}
