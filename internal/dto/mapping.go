package dto

import (
	"strconv"

	"github.com/localvibe/localvibe-backend/internal/models"
	"github.com/localvibe/localvibe-backend/internal/services"
)

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		AvatarSeed:  u.AvatarSeed,
		Location:    u.Location,
		Interests:   []string(u.Interests),
		Personality: []string(u.Personality),
		Signature:   u.Signature,
		CreatedAt:   u.CreatedAt,
	}
}

func NewEventResponse(e *services.EventWithRoster) EventResponse {
	resp := EventResponse{
		ID:             e.ID,
		Title:          e.Title,
		Description:    e.Description,
		Category:       e.Category,
		Subcategory:    e.Subcategory,
		Date:           e.Date,
		StartTime:      e.StartTime,
		Timezone:       e.Timezone,
		Location:       e.Location,
		Latitude:       e.Latitude,
		Longitude:      e.Longitude,
		Price:          e.Price,
		IsFree:         isFree(e.Price),
		Capacity:       e.Capacity,
		Parking:        e.Parking,
		MeetingPoint:   e.MeetingPoint,
		Duration:       e.Duration,
		Requirements:   e.Requirements,
		Organizer:      NewUserResponse(&e.Organizer),
		RsvpCount:      e.RsvpCount,
		MaybeCount:     e.MaybeCount,
		UserRsvpStatus: e.UserRsvpStatus,
		CreatedAt:      e.CreatedAt,
	}
	if e.Capacity != nil {
		left := *e.Capacity - int(e.RsvpCount)
		if left < 0 {
			left = 0
		}
		resp.SpotsLeft = &left
	}
	return resp
}

func NewEventListResponse(events []services.EventWithRoster) EventListResponse {
	out := make([]EventResponse, len(events))
	for i := range events {
		out[i] = NewEventResponse(&events[i])
	}
	return EventListResponse{Events: out}
}

func NewChatMessageResponse(m *models.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:        m.ID,
		EventID:   m.EventID,
		Sender:    NewUserResponse(&m.User),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

// isFree derives the free flag from the decimal price; it is never stored.
func isFree(price string) bool {
	if price == "" {
		return true
	}
	v, err := strconv.ParseFloat(price, 64)
	if err != nil {
		return false
	}
	return v == 0
}
