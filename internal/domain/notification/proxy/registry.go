package proxy

import (
	"github.com/pandamarket/backend/internal/domain/notification/event"
	"github.com/puzpuzpuz/xsync"
)

// Registry tracks which users have live websocket sessions on this
// instance. Hubs are kept once created, an empty hub simply delivers to
// nobody, which avoids a delete-while-join race on the map.
type Registry struct {
	userHubs *xsync.MapOf[string, *UserHub]
}

func NewRegistry() *Registry {
	return &Registry{userHubs: xsync.NewMapOf[*UserHub]()}
}

func roomKey(userID string) string {
	return "user-" + userID
}

func (r *Registry) Join(userID string, session *Session) {
	hub, _ := r.userHubs.LoadOrStore(roomKey(userID), NewUserHub(userID))
	hub.register(session)
}

func (r *Registry) Leave(userID string, session *Session) {
	if hub, ok := r.userHubs.Load(roomKey(userID)); ok {
		hub.unregister(session)
	}
}

// Send delivers the event to every live session of the user. A user with
// no sessions here is a no-op, not an error.
func (r *Registry) Send(userID string, ev *event.EventRequest) {
	if hub, ok := r.userHubs.Load(roomKey(userID)); ok {
		hub.Send(ev)
	}
}
