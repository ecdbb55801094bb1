package proxy

import (
	"github.com/google/uuid"
	"github.com/pandamarket/backend/internal/domain/notification/event"
)

const sessionBufferSize = 16

// Session is one websocket connection of one user. A user with several
// tabs or devices open owns several sessions in the same room.
type Session struct {
	id string
	C  chan *event.EventRequest
}

func NewSession() *Session {
	return &Session{
		id: uuid.NewString(),
		C:  make(chan *event.EventRequest, sessionBufferSize),
	}
}

// deliver never blocks. A session too slow to drain its buffer misses the
// event, the stored row remains its source of truth.
func (s *Session) deliver(ev *event.EventRequest) {
	select {
	case s.C <- ev:
	default:
	}
}
