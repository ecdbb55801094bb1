package proxy

import (
	"testing"

	"github.com/pandamarket/backend/internal/domain/notification/event"
	"github.com/stretchr/testify/require"
)

func Test_Registry_Send_fans_out_to_every_session(t *testing.T) {
	registry := NewRegistry()

	// Two tabs of the same user.
	session1 := NewSession()
	session2 := NewSession()
	registry.Join("user1", session1)
	registry.Join("user1", session2)

	ev := &event.EventRequest{Op: event.NewNotificationOp, Metadata: event.Metadata{To: "user1"}}
	registry.Send("user1", ev)

	require.Equal(t, ev, <-session1.C)
	require.Equal(t, ev, <-session2.C)
}

func Test_Registry_Send_does_not_cross_users(t *testing.T) {
	registry := NewRegistry()

	session1 := NewSession()
	session2 := NewSession()
	registry.Join("user1", session1)
	registry.Join("user2", session2)

	registry.Send("user1", &event.EventRequest{Op: event.NewNotificationOp})

	require.Len(t, session1.C, 1)
	require.Empty(t, session2.C)
}

func Test_Registry_Send_without_sessions_is_a_noop(t *testing.T) {
	registry := NewRegistry()

	require.NotPanics(t, func() {
		registry.Send("nobody", &event.EventRequest{Op: event.NewNotificationOp})
	})
}

func Test_Registry_Leave_stops_delivery(t *testing.T) {
	registry := NewRegistry()

	session := NewSession()
	registry.Join("user1", session)
	registry.Leave("user1", session)

	registry.Send("user1", &event.EventRequest{Op: event.NewNotificationOp})
	require.Empty(t, session.C)
}

func Test_Session_deliver_drops_when_buffer_is_full(t *testing.T) {
	session := NewSession()

	for i := 0; i < sessionBufferSize+5; i++ {
		session.deliver(&event.EventRequest{Op: event.NewNotificationOp})
	}

	require.Len(t, session.C, sessionBufferSize)
}
