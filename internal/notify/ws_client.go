package notify

import (
	"encoding/json"
	"log"
	"time"

	"freightdesk/backend/internal/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// WebSocketClient implements the notify.Client interface for a staff
// dashboard connection. The stream is one-way: the server pushes events, the
// client only answers pings.
type WebSocketClient struct {
	ID         string
	Department string
	Conn       *websocket.Conn
	Hub        *Hub
	Send       chan models.WorkflowEvent
}

func (c *WebSocketClient) GetID() string                               { return c.ID }
func (c *WebSocketClient) GetDepartment() string                       { return c.Department }
func (c *WebSocketClient) GetSendChannel() chan<- models.WorkflowEvent { return c.Send }

// Run starts the pumps for the WebSocket connection.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close closes the Send channel, which stops the writePump.
func (c *WebSocketClient) Close() {
	close(c.Send)
}

// readPump exists only to service pongs and detect the peer going away;
// dashboards never send payloads.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading from dashboard client %s: %v", c.ID, err)
			}
			break
		}
	}
}

// writePump reads events from the Send channel and writes them to the
// WebSocket, keeping the connection alive with periodic pings.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed by the hub.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(ev)
			if err != nil {
				log.Printf("Error encoding event for client %s: %v", c.ID, err)
				continue
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
