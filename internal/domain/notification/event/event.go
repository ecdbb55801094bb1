package event

import "encoding/json"

// Event is anything the server can push to a websocket session. Op names
// the event on the wire, the marshalled value is its payload.
type Event interface {
	Op() string
}

type Metadata struct {
	// To is the id of the receiving user.
	To string `json:"to"`
}

type EventRequest struct {
	Op       string          `json:"o"`
	Data     json.RawMessage `json:"d"`
	Metadata Metadata        `json:"m"`
}

type EventResponse struct {
	Op   string          `json:"o"`
	Seq  uint64          `json:"s"`
	Data json.RawMessage `json:"d"`
}

func New(to string, ev Event) (*EventRequest, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}

	return &EventRequest{
		Op:       ev.Op(),
		Data:     data,
		Metadata: Metadata{To: to},
	}, nil
}

// Format renders the event as the bytes written to one session. The seq is
// per session, not global.
func Format(req *EventRequest, seq uint64) ([]byte, error) {
	return json.Marshal(EventResponse{Op: req.Op, Seq: seq, Data: req.Data})
}
