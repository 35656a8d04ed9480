package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"settings-core/internal/pkg/logger"
	"settings-core/internal/statebus"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	hubModule = "Hub"

	// ClusterChannel carries changes between instances sharing a Redis.
	ClusterChannel = "settings_state_events"
)

type Hub struct {
	// Registered clients keyed by connection id.
	clients map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu sync.RWMutex

	// Optional cross-instance fan-out.
	rdb        *redis.Client
	instanceID string

	logger logger.ILogger
}

type clusterPayload struct {
	Origin  string          `json:"origin"`
	Source  string          `json:"source"`
	Message json.RawMessage `json:"message"`
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

// Run owns client registration until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			h.logger.Info(hubModule, "Client registered", map[string]interface{}{"client_id": client.ID})

		case client := <-h.unregister:
			h.remove(client)

		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for id, client := range h.clients {
				close(client.Send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			return
		}
	}
}

// join reports false once the hub has stopped.
func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	delete(h.clients, client.ID)
	close(client.Send)
	h.logger.Info(hubModule, "Client unregistered", map[string]interface{}{"client_id": client.ID})
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a change to every local client and, when Redis is
// configured, to the other instances.
func (h *Hub) Broadcast(change statebus.Change) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "state_changed",
		"data": change,
	})
	if err != nil {
		h.logger.Error(hubModule, "Failed to encode change", map[string]interface{}{"error": err})
		return
	}

	h.deliver(change.Source, data)

	if h.rdb != nil {
		payload, err := json.Marshal(clusterPayload{Origin: h.instanceID, Source: change.Source, Message: data})
		if err != nil {
			h.logger.Error(hubModule, "Failed to encode cluster payload", map[string]interface{}{"error": err})
			return
		}
		if err := h.rdb.Publish(context.Background(), ClusterChannel, payload).Err(); err != nil {
			h.logger.Warn(hubModule, "Cluster publish failed", map[string]interface{}{"error": err.Error()})
		}
	}
}

// deliver skips clients filtering out source and drops clients whose send
// buffer is full.
func (h *Hub) deliver(source string, data []byte) {
	var slow []*Client

	h.mu.RLock()
	for _, client := range h.clients {
		if !client.Wants(source) {
			continue
		}
		select {
		case client.Send <- data:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.logger.Warn(hubModule, "Client send buffer full, dropping client", map[string]interface{}{"client_id": client.ID})
		h.remove(client)
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, ClusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var payload clusterPayload
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				h.logger.Warn(hubModule, "Cluster message parse error", map[string]interface{}{"error": err.Error()})
				continue
			}
			if payload.Origin == h.instanceID {
				continue
			}
			h.deliver(payload.Source, payload.Message)
		}
	}
}
