package dto

import "time"

type PostMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

type ChatMessageResponse struct {
	ID        uint         `json:"id"`
	EventID   uint         `json:"event_id"`
	Sender    UserResponse `json:"sender"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
}

type ChatHistoryResponse struct {
	Messages []ChatMessageResponse `json:"messages"`
}

// UnreadCount is the authoritative per-event unread tally; the websocket
// relay pushes the same shape as an advisory delta.
type UnreadCount struct {
	EventID uint  `json:"event_id"`
	Count   int64 `json:"count"`
}

type UnreadCountsResponse struct {
	Counts []UnreadCount `json:"counts"`
}

type MarkReadRequest struct {
	EventID uint `json:"event_id" validate:"required"`
}
