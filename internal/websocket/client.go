package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	clientModule   = "WebSocketClient"
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub *Hub

	Conn *websocket.Conn

	ID uuid.UUID

	// Buffered channel of outbound messages.
	Send chan []byte

	mu      sync.RWMutex
	sources map[string]struct{}
}

// clientMessage is the only thing a client may send: a filter naming the
// view-model sources it wants. An empty list means all sources.
type clientMessage struct {
	Type    string   `json:"type"`
	Sources []string `json:"sources"`
}

const messageTypeFilter = "filter"

func (c *Client) SetSources(sources []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(sources) == 0 {
		c.sources = nil
		return
	}
	c.sources = make(map[string]struct{}, len(sources))
	for _, s := range sources {
		c.sources[s] = struct{}{}
	}
}

func (c *Client) Wants(source string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.sources == nil {
		return true
	}
	_, ok := c.sources[source]
	return ok
}

func (c *Client) handleMessage(raw []byte) {
	var msg clientMessage
	if err := json.Unmarshal(raw, &msg); err != nil || msg.Type != messageTypeFilter {
		c.Hub.logger.Debug(clientModule, "Ignoring client message", map[string]interface{}{"client_id": c.ID})
		return
	}
	c.SetSources(msg.Sources)
	c.Hub.logger.Info(clientModule, "Client filter updated", map[string]interface{}{
		"client_id": c.ID,
		"sources":   msg.Sources,
	})
}

// readPump applies filter messages and keeps the connection alive.
func (c *Client) readPump() {
	defer func() {
		c.Hub.leave(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn(clientModule, "Unexpected close", map[string]interface{}{
					"client_id": c.ID,
					"error":     err.Error(),
				})
			}
			return
		}
		c.handleMessage(raw)
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// One change per frame so clients can parse each message alone.
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Hub.logger.Debug(clientModule, "Ping failed", map[string]interface{}{"client_id": c.ID})
				return
			}
		}
	}
}
