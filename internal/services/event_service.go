package services

import (
	"errors"
	"fmt"

	"github.com/localvibe/localvibe-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrNotOrganizer  = errors.New("only the organizer can modify this event")
)

const (
	DefaultFeedLimit = 20
	MaxFeedLimit     = 100
)

// ActiveEvents is a reusable scope that keeps retracted events out of every
// read path.
func ActiveEvents(db *gorm.DB) *gorm.DB {
	return db.Where("events.is_active = ?", true)
}

// EventWithRoster is the event read model: the row plus the derived roster
// fields. RsvpCount covers confirmed statuses only; "maybe" is tallied
// separately and "not_going" is never counted.
type EventWithRoster struct {
	models.Event
	RsvpCount      int64
	MaybeCount     int64
	UserRsvpStatus *string
}

// ListOptions filters the event feed. ViewerID is optional; when set, each
// returned event carries that viewer's own RSVP status.
type ListOptions struct {
	Category string
	Limit    int
	ViewerID string
}

type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

// CreateEvent inserts the event and returns it with the organizer loaded.
func (s *EventService) CreateEvent(event *models.Event) (*models.Event, error) {
	if event.Timezone == "" {
		event.Timezone = "UTC"
	}
	if event.Price == "" {
		event.Price = "0"
	}
	event.IsActive = true

	if err := s.db.Create(event).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	if err := s.db.Preload("Organizer").First(event, event.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload event: %w", err)
	}
	return event, nil
}

// GetEvent returns the read model for one active event. viewerID may be
// empty.
func (s *EventService) GetEvent(id uint, viewerID string) (*EventWithRoster, error) {
	var event models.Event
	err := s.db.Scopes(ActiveEvents).Preload("Organizer").First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	rostered, err := s.attachRosters([]models.Event{event}, viewerID)
	if err != nil {
		return nil, err
	}
	return &rostered[0], nil
}

// ListEvents returns the general feed, most recently created first.
func (s *EventService) ListEvents(opts ListOptions) ([]EventWithRoster, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}

	q := s.db.Scopes(ActiveEvents).Preload("Organizer").Order("events.created_at DESC").Limit(limit)
	if opts.Category != "" {
		q = q.Where("events.category = ?", opts.Category)
	}

	var events []models.Event
	if err := q.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return s.attachRosters(events, opts.ViewerID)
}

// OrganizedEvents returns the active events a user organizes, newest first.
func (s *EventService) OrganizedEvents(userID string, viewerID string) ([]EventWithRoster, error) {
	var events []models.Event
	err := s.db.Scopes(ActiveEvents).Preload("Organizer").
		Where("events.organizer_id = ?", userID).
		Order("events.created_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list organized events: %w", err)
	}
	return s.attachRosters(events, viewerID)
}

// AttendingEvents returns the active events a user has a confirmed RSVP for,
// ascending by event date.
func (s *EventService) AttendingEvents(userID string, viewerID string) ([]EventWithRoster, error) {
	var events []models.Event
	err := s.db.Scopes(ActiveEvents).Preload("Organizer").
		Select("events.*").
		Joins("JOIN event_rsvps ON event_rsvps.event_id = events.id").
		Where("event_rsvps.user_id = ? AND event_rsvps.status IN ?", userID, models.ConfirmedStatuses).
		Order("events.date ASC, events.start_time ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list attending events: %w", err)
	}
	return s.attachRosters(events, viewerID)
}

// UpdateEvent applies partial updates after checking the caller owns the
// event. The updates map uses column names; organizer and id never change.
func (s *EventService) UpdateEvent(id uint, callerID string, updates map[string]interface{}) (*models.Event, error) {
	var event models.Event
	err := s.db.Scopes(ActiveEvents).First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	if event.OrganizerID != callerID {
		return nil, ErrNotOrganizer
	}

	if len(updates) > 0 {
		if err := s.db.Model(&event).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update event: %w", err)
		}
	}
	if err := s.db.Preload("Organizer").First(&event, id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload event: %w", err)
	}
	return &event, nil
}

// DeactivateEvent retracts an event. RSVP rows are kept; they drop out of
// every feed because reads filter on the active flag.
func (s *EventService) DeactivateEvent(id uint, callerID string) error {
	var event models.Event
	err := s.db.Scopes(ActiveEvents).First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrEventNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to find event: %w", err)
	}
	if event.OrganizerID != callerID {
		return ErrNotOrganizer
	}

	if err := s.db.Model(&event).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to deactivate event: %w", err)
	}
	return nil
}

// attachRosters batch-loads RSVP tallies and the viewer's own status for a
// page of events. Events with no RSVPs get zero counts and no status.
func (s *EventService) attachRosters(events []models.Event, viewerID string) ([]EventWithRoster, error) {
	rostered := make([]EventWithRoster, len(events))
	for i, e := range events {
		rostered[i] = EventWithRoster{Event: e}
	}
	if len(events) == 0 {
		return rostered, nil
	}

	ids := make([]uint, len(events))
	index := make(map[uint]int, len(events))
	for i, e := range events {
		ids[i] = e.ID
		index[e.ID] = i
	}

	type statusCount struct {
		EventID uint
		Status  string
		N       int64
	}
	var counts []statusCount
	err := s.db.Model(&models.EventRsvp{}).
		Select("event_id, status, count(*) as n").
		Where("event_id IN ?", ids).
		Group("event_id, status").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count rsvps: %w", err)
	}
	for _, c := range counts {
		i, ok := index[c.EventID]
		if !ok {
			continue
		}
		if models.IsConfirmed(c.Status) {
			rostered[i].RsvpCount += c.N
		} else if c.Status == models.RsvpStatusMaybe {
			rostered[i].MaybeCount += c.N
		}
	}

	if viewerID != "" {
		var own []models.EventRsvp
		err := s.db.Where("event_id IN ? AND user_id = ?", ids, viewerID).Find(&own).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load viewer rsvps: %w", err)
		}
		for _, r := range own {
			if i, ok := index[r.EventID]; ok {
				status := r.Status
				rostered[i].UserRsvpStatus = &status
			}
		}
	}

	return rostered, nil
}
