package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/eventhub/backend/internal/live"
)

const (
	// PingInterval and PongWait are used for heartbeat.
	PingInterval = 30
	PongWait     = 60
)

// Event names on the wire.
const (
	EventPanelState = "panel_state"
	EventError      = "error"
	EventAction     = "action"
	EventSync       = "sync"
)

// RoomKey names the room of one viewer in one event session. Panels are private, so a room only
// ever holds the connections of a single viewer.
func RoomKey(sessionID, viewerID string) string {
	return sessionID + ":" + viewerID
}

// Hub maintains room -> set of connections and delivers messages.
// Uses Redis pub/sub for horizontal scaling when a viewer is connected to several instances.
type Hub struct {
	// room -> map[clientID]*Client
	rooms    map[string]map[string]*Client
	subs     map[string]func() // cancel Redis subscription per room
	mu       sync.RWMutex
	logger   *zap.Logger
	redis    RedisPublisher
	redisSub RedisSubscriber
}

// RedisPublisher is the interface for publishing to Redis (for cross-instance delivery).
type RedisPublisher interface {
	PublishRoomEvent(ctx context.Context, room, event string, payload []byte) error
}

// RedisSubscriber subscribes to room channels and invokes handler for incoming events.
type RedisSubscriber interface {
	SubscribeRoom(room string, handler func(event string, payload []byte)) (cancel func(), err error)
}

// NewHub creates a new WebSocket hub. Both Redis arguments may be nil for a single instance.
func NewHub(logger *zap.Logger, redisPub RedisPublisher, redisSub RedisSubscriber) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		rooms:    make(map[string]map[string]*Client),
		subs:     make(map[string]func()),
		logger:   logger,
		redis:    redisPub,
		redisSub: redisSub,
	}
}

// Register adds a client to its room. The first client of a room starts its Redis subscription,
// which runs without holding the hub lock.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	first := h.rooms[c.Room] == nil
	if first {
		h.rooms[c.Room] = make(map[string]*Client)
	}
	h.rooms[c.Room][c.ID] = c
	h.mu.Unlock()
	h.logger.Debug("client joined room", zap.String("client_id", c.ID), zap.String("room", c.Room))

	if first && h.redisSub != nil {
		h.subscribe(c.Room)
	}
}

func (h *Hub) subscribe(room string) {
	cancel, err := h.redisSub.SubscribeRoom(room, func(event string, payload []byte) {
		h.BroadcastToRoom(room, event, json.RawMessage(payload))
	})
	if err != nil {
		h.logger.Warn("redis subscribe failed", zap.Error(err), zap.String("room", room))
		return
	}

	h.mu.Lock()
	_, open := h.rooms[room]
	_, dup := h.subs[room]
	if open && !dup {
		h.subs[room] = cancel
		cancel = nil
	}
	h.mu.Unlock()
	// The room emptied, or another registration subscribed it, while this call was in flight.
	if cancel != nil {
		cancel()
	}
}

// Unregister removes a client from its room. Cancels the Redis subscription when the last client leaves.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if m, ok := h.rooms[c.Room]; ok {
		if _, ok := m[c.ID]; ok {
			delete(m, c.ID)
			close(c.send)
		}
		if len(m) == 0 {
			delete(h.rooms, c.Room)
			if cancel, ok := h.subs[c.Room]; ok {
				cancel()
				delete(h.subs, c.Room)
			}
		}
	}
	h.mu.Unlock()
	h.logger.Debug("client left room", zap.String("client_id", c.ID), zap.String("room", c.Room))
}

func encode(payload interface{}) ([]byte, error) {
	switch v := payload.(type) {
	case []byte:
		return v, nil
	case json.RawMessage:
		return v, nil
	default:
		return json.Marshal(payload)
	}
}

// BroadcastToRoom sends a message to all clients in a room (local only).
func (h *Hub) BroadcastToRoom(room, event string, payload interface{}) {
	data, err := encode(payload)
	if err != nil {
		h.logger.Warn("encode ws payload failed", zap.Error(err), zap.String("event", event))
		return
	}
	msg := WSMessage{Event: event, Data: data}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.rooms[room] {
		select {
		case c.send <- msg:
		default:
			// buffer full, skip
		}
	}
}

// PublishToRoomOnly publishes to Redis only (no local delivery) so the Redis subscriber callback
// delivers once on every instance, this one included. Without Redis it delivers locally.
func (h *Hub) PublishToRoomOnly(ctx context.Context, room, event string, payload interface{}) error {
	data, err := encode(payload)
	if err != nil {
		return err
	}
	if h.redis != nil {
		return h.redis.PublishRoomEvent(ctx, room, event, data)
	}
	h.BroadcastToRoom(room, event, json.RawMessage(data))
	return nil
}

// PublishPanel delivers a panel snapshot to every connection of the panel's viewer.
func (h *Hub) PublishPanel(ctx context.Context, st live.State) error {
	return h.PublishToRoomOnly(ctx, RoomKey(st.SessionID, st.ViewerID), EventPanelState, st)
}

// ConnectionCount returns the number of connected clients in a room.
func (h *Hub) ConnectionCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// SendToClient sends a message to a single client in a room.
func (h *Hub) SendToClient(room, clientID, event string, payload interface{}) {
	data, err := encode(payload)
	if err != nil {
		return
	}
	msg := WSMessage{Event: event, Data: data}
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.rooms[room][clientID]
	if !ok {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}
