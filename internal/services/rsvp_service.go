package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/localvibe/localvibe-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInvalidRsvpStatus = errors.New("invalid rsvp status")

type RsvpService struct {
	db *gorm.DB
}

func NewRsvpService(db *gorm.DB) *RsvpService {
	return &RsvpService{db: db}
}

// Rsvp records a user's status for an event. Any status is reachable from any
// other: first call inserts, repeat calls overwrite in place. The conflict is
// resolved by the database against the unique (event_id, user_id) index, so
// concurrent double-submissions collapse to one row.
func (s *RsvpService) Rsvp(eventID uint, userID string, status string) (*models.EventRsvp, error) {
	if !models.IsValidRsvpStatus(status) {
		return nil, ErrInvalidRsvpStatus
	}

	var event models.Event
	err := s.db.Scopes(ActiveEvents).First(&event, eventID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	rsvp := models.EventRsvp{EventID: eventID, UserID: userID, Status: status}
	err = s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}),
	}).Create(&rsvp).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert rsvp: %w", err)
	}

	// Re-read: on the conflict path the in-memory struct does not reflect
	// the winning row.
	return s.GetUserRsvp(eventID, userID)
}

// RemoveRsvp deletes the user's RSVP, returning the pair to no relationship.
// Removing an RSVP that does not exist is a no-op, not an error; clients
// issue deletes speculatively.
func (s *RsvpService) RemoveRsvp(eventID uint, userID string) error {
	err := s.db.Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.EventRsvp{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove rsvp: %w", err)
	}
	return nil
}

// GetUserRsvp returns the user's RSVP row for an event, or nil when there is
// none.
func (s *RsvpService) GetUserRsvp(eventID uint, userID string) (*models.EventRsvp, error) {
	var rsvp models.EventRsvp
	err := s.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&rsvp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rsvp: %w", err)
	}
	return &rsvp, nil
}
