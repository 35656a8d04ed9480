package handler

import (
	"context"

	"settings-core/internal/pkg/logger"
	"settings-core/internal/statebus"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const streamModule = "StateStreamHandler"

// ChangeSource is satisfied by *statebus.Bus.
type ChangeSource interface {
	Subscribe(ctx context.Context) (<-chan statebus.Change, error)
}

// StreamHub fans changes out to websocket sessions. *websocket.Hub
// satisfies it.
type StreamHub interface {
	Broadcast(change statebus.Change)
	Serve(conn *websocket.Conn)
}

// StateStreamHandler forwards every state change on the bus to connected
// websocket clients.
type StateStreamHandler struct {
	source ChangeSource
	hub    StreamHub
	logger logger.ILogger
}

func NewStateStreamHandler(source ChangeSource, hub StreamHub, log logger.ILogger) *StateStreamHandler {
	return &StateStreamHandler{
		source: source,
		hub:    hub,
		logger: log,
	}
}

func (h *StateStreamHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/settings/stream", h.ServeWs)
}

// Forward pumps changes into the hub until ctx is done.
func (h *StateStreamHandler) Forward(ctx context.Context) error {
	changes, err := h.source.Subscribe(ctx)
	if err != nil {
		return err
	}

	h.logger.Info(streamModule, "Forwarding state changes", nil)
	forwarded := 0
	for change := range changes {
		h.hub.Broadcast(change)
		forwarded++
	}
	h.logger.Info(streamModule, "State forwarding stopped", map[string]interface{}{"forwarded": forwarded})
	return nil
}

// ServeWs upgrades the request and streams changes until the peer leaves.
func (h *StateStreamHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info(streamModule, "Starting WebSocket session", map[string]interface{}{"remote": conn.RemoteAddr().String()})
		h.hub.Serve(conn)
		h.logger.Info(streamModule, "WebSocket session ended", nil)
	})(c)
}
