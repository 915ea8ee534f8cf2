package realtime

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Conn is the write side of one live client connection. Satisfied by
// *websocket.Conn; tests substitute fakes.
type Conn interface {
	WriteJSON(v interface{}) error
}

// Client is one registered connection plus its subscriptions. A connection
// may join any number of event rooms and at most one user channel.
type Client struct {
	id     uuid.UUID
	conn   Conn
	userID string

	mu sync.Mutex // serializes writes on the connection
}

func (c *Client) write(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Hub is the in-process connection registry behind the fan-out relay. It is
// deliberately not a broker: no persistence, no replay, no delivery
// acknowledgment. Everything it holds is advisory and lost on restart; the
// entity store is the authoritative source clients reconcile against.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]map[*Client]struct{}
	users map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[uint]map[*Client]struct{}),
		users: make(map[string]map[*Client]struct{}),
	}
}

// Register adds a connection to the hub and returns its client handle.
func (h *Hub) Register(conn Conn) *Client {
	return &Client{id: uuid.New(), conn: conn}
}

// Unregister drops the client from every room and its user channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for eventID, members := range h.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, eventID)
		}
	}
	if c.userID != "" {
		if conns, ok := h.users[c.userID]; ok {
			delete(conns, c)
			if len(conns) == 0 {
				delete(h.users, c.userID)
			}
		}
	}
}

// Join subscribes the client to an event room.
func (h *Hub) Join(c *Client, eventID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[eventID] == nil {
		h.rooms[eventID] = make(map[*Client]struct{})
	}
	h.rooms[eventID][c] = struct{}{}
}

// Subscribe binds the client to a user's personal notification channel.
func (h *Hub) Subscribe(c *Client, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c.userID != "" {
		if conns, ok := h.users[c.userID]; ok {
			delete(conns, c)
			if len(conns) == 0 {
				delete(h.users, c.userID)
			}
		}
	}
	c.userID = userID
	if h.users[userID] == nil {
		h.users[userID] = make(map[*Client]struct{})
	}
	h.users[userID][c] = struct{}{}
}

// HasUser reports whether any connection is subscribed to the user's channel.
func (h *Hub) HasUser(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users[userID]) > 0
}

// BroadcastRoom pushes a payload to every connection in an event room.
// Delivery is best-effort at-most-once: a failed write is logged and skipped
// so one slow client never stalls the room.
func (h *Hub) BroadcastRoom(eventID uint, v interface{}) {
	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[eventID]))
	for c := range h.rooms[eventID] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	for _, c := range members {
		if err := c.write(v); err != nil {
			slog.Warn("room push failed", "event_id", eventID, "conn", c.id, "error", err)
		}
	}
}

// PushUser pushes a payload to every connection on a user's channel.
func (h *Hub) PushUser(userID string, v interface{}) {
	h.mu.RLock()
	conns := make([]*Client, 0, len(h.users[userID]))
	for c := range h.users[userID] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if err := c.write(v); err != nil {
			slog.Warn("user push failed", "user_id", userID, "conn", c.id, "error", err)
		}
	}
}
