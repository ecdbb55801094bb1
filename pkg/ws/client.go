package ws

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

// Client wraps a websocket connection with buffered reader and writer
// loops. The R channel is closed when the peer disconnects.
type Client struct {
	Conn *websocket.Conn
	R    chan []byte
	w    chan []byte

	closeOnce sync.Once
}

func NewClient(conn *websocket.Conn) *Client {
	if conn == nil {
		return nil
	}

	c := &Client{
		Conn: conn,
		R:    make(chan []byte, 128),
		w:    make(chan []byte, 128),
	}

	go c.runReader()
	go c.runWriter()
	return c
}

func (c *Client) runReader() {
	defer close(c.R)

	for {
		t, msg, err := c.Conn.ReadMessage()
		if err != nil {
			return
		}

		if t == websocket.CloseMessage {
			return
		}

		if t == websocket.TextMessage {
			c.R <- msg
		}
	}
}

func (c *Client) runWriter() {
	for msg := range c.w {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// Write queues msg for delivery. It recovers the panic of sending on a
// closed channel, so writing to a disconnected client returns an error
// instead of crashing the caller.
func (c *Client) Write(msg []byte) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		if s, ok := r.(string); ok {
			err = errors.New(s)
		} else {
			err = errors.New("connection is closed")
		}
	}()

	c.w <- msg
	return nil
}

func (c *Client) Close() error {
	c.closeOnce.Do(func() { close(c.w) })
	return c.Conn.Close()
}
