package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

// Hub maps player ids to their live connections and fans events out to them.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[string]*client
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger.With("component", "hub"),
		clients: make(map[string]*client),
	}
}

func (that *Hub) register(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[c.id] = c
}

// unregister removes c and closes its queue, which stops its write pump.
func (that *Hub) unregister(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if current, ok := that.clients[c.id]; ok && current == c {
		delete(that.clients, c.id)
		close(c.send)
	}
}

// Send queues event for playerID without blocking. Unknown players and full queues are skipped.
func (that *Hub) Send(playerID string, event *entity.Event) {
	log := that.logger.With("method", "Send", "playerID", playerID, "type", event.Type)

	data, err := json.Marshal(event)
	if err != nil {
		log.Error("failed to marshal event", "error", err)
		return
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	c, ok := that.clients[playerID]
	if !ok {
		log.Debug("no connection for player")
		return
	}

	select {
	case c.send <- data:
	default:
		log.Warn("send queue full, dropping event")
	}
}

// Count returns the number of live connections.
func (that *Hub) Count() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.clients)
}
