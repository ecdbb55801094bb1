package directive

// ServerDirective is a client-to-server control message on the notification
// websocket. Clients never send domain data over the socket.
type ServerDirective struct {
	Op string `json:"op"`
}

const (
	// JoinOp subscribes the session to the authenticated user's room.
	JoinOp = "join"

	// PingOp keeps the connection alive through idle-unfriendly proxies.
	PingOp = "ping"
)
