package realtime

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/localvibe/localvibe-backend/internal/dto"
	"github.com/localvibe/localvibe-backend/internal/models"
	"github.com/localvibe/localvibe-backend/internal/services"
)

// Envelope is the wire format on /ws. Inbound types: join,
// subscribe_notifications, message, ackRead. Outbound types: newMessage,
// unreadUpdate.
type Envelope struct {
	Type    string          `json:"type"`
	EventID uint            `json:"eventId,omitempty"`
	UserID  string          `json:"userId,omitempty"`
	Message json.RawMessage `json:"message,omitempty"`
}

type messagePush struct {
	Type    string                  `json:"type"`
	EventID uint                    `json:"eventId"`
	Message dto.ChatMessageResponse `json:"message"`
}

type unreadPush struct {
	Type    string `json:"type"`
	EventID uint   `json:"eventId"`
	Count   int64  `json:"count"`
}

// Relay glues the connection hub to the chat store: inbound envelopes are
// dispatched here, and newly persisted messages fan out from here. Every
// push is advisory; a client that misses one reconciles through a REST read.
type Relay struct {
	hub   *Hub
	chats *services.ChatService
}

func NewRelay(hub *Hub, chats *services.ChatService) *Relay {
	return &Relay{hub: hub, chats: chats}
}

func (r *Relay) Hub() *Hub {
	return r.hub
}

// HandleEnvelope processes one inbound frame. Malformed input is logged and
// dropped; one bad message must never take the connection or the hub down.
func (r *Relay) HandleEnvelope(c *Client, data []byte) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		slog.Warn("malformed ws envelope", "error", err)
		return
	}

	switch env.Type {
	case "join":
		if env.EventID == 0 {
			return
		}
		r.hub.Join(c, env.EventID)

	case "subscribe_notifications":
		if env.UserID == "" {
			return
		}
		r.hub.Subscribe(c, env.UserID)

	case "message":
		if env.EventID == 0 || env.UserID == "" {
			return
		}
		var content string
		if err := json.Unmarshal(env.Message, &content); err != nil || content == "" {
			slog.Warn("malformed chat payload", "event_id", env.EventID)
			return
		}
		msg, err := r.chats.CreateMessage(env.EventID, env.UserID, content)
		if err != nil {
			slog.Error("chat persist failed", "event_id", env.EventID, "user_id", env.UserID, "error", err)
			return
		}
		r.Publish(msg)

	case "ackRead":
		if env.EventID == 0 || env.UserID == "" {
			return
		}
		if err := r.chats.MarkRead(env.EventID, env.UserID, time.Now()); err != nil {
			slog.Error("ack read failed", "event_id", env.EventID, "user_id", env.UserID, "error", err)
		}

	default:
		slog.Warn("unknown ws envelope type", "type", env.Type)
	}
}

// Publish fans out an already-persisted message: the full record to the
// event room, then unread-count deltas to connected participants. Used by
// both the websocket path and the REST chat endpoint.
func (r *Relay) Publish(msg *models.ChatMessage) {
	r.hub.BroadcastRoom(msg.EventID, messagePush{
		Type:    "newMessage",
		EventID: msg.EventID,
		Message: dto.NewChatMessageResponse(msg),
	})

	participants, err := r.chats.Participants(msg.EventID)
	if err != nil {
		slog.Error("participant lookup failed", "event_id", msg.EventID, "error", err)
		return
	}
	for _, userID := range participants {
		if userID == msg.UserID || !r.hub.HasUser(userID) {
			continue
		}
		count, err := r.chats.UnreadCount(msg.EventID, userID)
		if err != nil {
			slog.Error("unread count failed", "event_id", msg.EventID, "user_id", userID, "error", err)
			continue
		}
		r.hub.PushUser(userID, unreadPush{
			Type:    "unreadUpdate",
			EventID: msg.EventID,
			Count:   count,
		})
	}
}
