package dto

import "time"

type CreateEventRequest struct {
	Title        string   `json:"title" validate:"required,max=255"`
	Description  string   `json:"description" validate:"max=5000"`
	Category     string   `json:"category" validate:"required,oneof=music sports food art tech outdoors social learning"`
	Subcategory  string   `json:"subcategory" validate:"max=100"`
	Date         string   `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime    string   `json:"start_time" validate:"required,datetime=15:04"`
	Timezone     string   `json:"timezone" validate:"omitempty,timezone"`
	Location     string   `json:"location" validate:"required,max=255"`
	Latitude     *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude" validate:"omitempty,longitude"`
	Price        string   `json:"price" validate:"omitempty,numeric"`
	Capacity     *int     `json:"capacity" validate:"omitempty,min=1"`
	Parking      string   `json:"parking" validate:"max=1000"`
	MeetingPoint string   `json:"meeting_point" validate:"max=1000"`
	Duration     string   `json:"duration" validate:"max=100"`
	Requirements string   `json:"requirements" validate:"max=1000"`
}

// UpdateEventRequest is the partial-update twin of CreateEventRequest; nil
// fields are left untouched. Organizer and id are immutable.
type UpdateEventRequest struct {
	Title        *string  `json:"title" validate:"omitempty,max=255"`
	Description  *string  `json:"description" validate:"omitempty,max=5000"`
	Category     *string  `json:"category" validate:"omitempty,oneof=music sports food art tech outdoors social learning"`
	Subcategory  *string  `json:"subcategory" validate:"omitempty,max=100"`
	Date         *string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime    *string  `json:"start_time" validate:"omitempty,datetime=15:04"`
	Timezone     *string  `json:"timezone" validate:"omitempty,timezone"`
	Location     *string  `json:"location" validate:"omitempty,max=255"`
	Latitude     *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude" validate:"omitempty,longitude"`
	Price        *string  `json:"price" validate:"omitempty,numeric"`
	Capacity     *int     `json:"capacity" validate:"omitempty,min=1"`
	Parking      *string  `json:"parking" validate:"omitempty,max=1000"`
	MeetingPoint *string  `json:"meeting_point" validate:"omitempty,max=1000"`
	Duration     *string  `json:"duration" validate:"omitempty,max=100"`
	Requirements *string  `json:"requirements" validate:"omitempty,max=1000"`
}

// EventResponse is the event read model: the row, its organizer, and the
// derived roster fields. RsvpCount covers confirmed statuses only; IsFree and
// SpotsLeft are computed, never stored.
type EventResponse struct {
	ID             uint         `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Category       string       `json:"category"`
	Subcategory    string       `json:"subcategory,omitempty"`
	Date           string       `json:"date"`
	StartTime      string       `json:"start_time"`
	Timezone       string       `json:"timezone"`
	Location       string       `json:"location"`
	Latitude       *float64     `json:"latitude,omitempty"`
	Longitude      *float64     `json:"longitude,omitempty"`
	Price          string       `json:"price"`
	IsFree         bool         `json:"is_free"`
	Capacity       *int         `json:"capacity,omitempty"`
	SpotsLeft      *int         `json:"spots_left,omitempty"`
	Parking        string       `json:"parking,omitempty"`
	MeetingPoint   string       `json:"meeting_point,omitempty"`
	Duration       string       `json:"duration,omitempty"`
	Requirements   string       `json:"requirements,omitempty"`
	Organizer      UserResponse `json:"organizer"`
	RsvpCount      int64        `json:"rsvp_count"`
	MaybeCount     int64        `json:"maybe_count"`
	UserRsvpStatus *string      `json:"user_rsvp_status,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

type EventListResponse struct {
	Events []EventResponse `json:"events"`
}
