package dto

import "time"

type RsvpRequest struct {
	Status string `json:"status" validate:"required,oneof=going maybe not_going attending"`
}

type RsvpResponse struct {
	EventID   uint      `json:"event_id"`
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
