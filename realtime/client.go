package realtime

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Frame is the wire envelope for every realtime message, in both
// directions: a type tag and a JSON payload.
type Frame struct {
	Type byte            `json:"type"`
	Data json.RawMessage `json:"data"`
}

// client is one connected player.
type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
}

// readPump parses inbound frames and forwards them to the hub's request
// handler until the connection drops.
func (c *client) readPump() {
	defer func() {
		c.hub.remove(c)
		_ = c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logf("reading from client %s: %v", c.id, err)
			}
			return
		}

		var frame Frame
		if err := json.Unmarshal(message, &frame); err != nil {
			c.hub.logf("malformed frame from client %s: %v", c.id, err)
			continue
		}
		c.hub.dispatch(c.id, frame.Type, frame.Data)
	}
}

// writePump drains the send queue onto the socket. Closing the queue
// closes the connection.
func (c *client) writePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
