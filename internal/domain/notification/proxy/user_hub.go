package proxy

import (
	"sync"

	"github.com/pandamarket/backend/internal/domain/notification/event"
)

// UserHub is the room of a single user holding its live sessions.
type UserHub struct {
	userID string

	mutex    sync.RWMutex
	sessions map[string]*Session
}

func NewUserHub(userID string) *UserHub {
	return &UserHub{
		userID:   userID,
		sessions: make(map[string]*Session),
	}
}

func (h *UserHub) register(session *Session) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.sessions[session.id] = session
}

func (h *UserHub) unregister(session *Session) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	delete(h.sessions, session.id)
}

// Send fans the event out to every session of the room. Each session is
// handled on its own, one stuck session cannot hold the others back.
func (h *UserHub) Send(ev *event.EventRequest) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for _, session := range h.sessions {
		session.deliver(ev)
	}
}
