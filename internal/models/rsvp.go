package models

import "time"

// RSVP status literals. "going" and "attending" are both accepted and both
// mean confirmed attendance; they are stored verbatim for compatibility with
// older clients and compared through ConfirmedStatuses.
const (
	RsvpStatusGoing     = "going"
	RsvpStatusMaybe     = "maybe"
	RsvpStatusNotGoing  = "not_going"
	RsvpStatusAttending = "attending"
)

var RsvpStatuses = []string{RsvpStatusGoing, RsvpStatusMaybe, RsvpStatusNotGoing, RsvpStatusAttending}

var ConfirmedStatuses = []string{RsvpStatusGoing, RsvpStatusAttending}

// EventRsvp holds one row per (event, user) pair, enforced by a composite
// unique index so concurrent double-submissions resolve in the database
// rather than in application code.
type EventRsvp struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	EventID uint   `gorm:"not null;uniqueIndex:idx_event_rsvps_event_user" json:"event_id"`
	UserID  string `gorm:"size:64;not null;uniqueIndex:idx_event_rsvps_event_user" json:"user_id"`
	Status  string `gorm:"size:20;not null" json:"status"`

	Event Event `gorm:"foreignKey:EventID" json:"-"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsConfirmed reports whether a status counts toward the attendee roster.
func IsConfirmed(status string) bool {
	for _, s := range ConfirmedStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidRsvpStatus reports whether status is one of the accepted literals.
func IsValidRsvpStatus(status string) bool {
	for _, s := range RsvpStatuses {
		if s == status {
			return true
		}
	}
	return false
}
