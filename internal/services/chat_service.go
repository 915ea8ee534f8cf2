package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/localvibe/localvibe-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const DefaultHistoryLimit = 50

// EventUnread is one event's unread-message tally for a user.
type EventUnread struct {
	EventID uint
	Count   int64
}

type ChatService struct {
	db *gorm.DB
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

// CreateMessage persists a chat message for an active event and returns it
// with the sender loaded. Persistence always precedes the realtime push.
func (s *ChatService) CreateMessage(eventID uint, userID string, content string) (*models.ChatMessage, error) {
	var event models.Event
	err := s.db.Scopes(ActiveEvents).First(&event, eventID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	msg := models.ChatMessage{EventID: eventID, UserID: userID, Content: content}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	if err := s.db.Preload("User").First(&msg, msg.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload message: %w", err)
	}
	return &msg, nil
}

// History returns the latest messages for an event in chronological order.
func (s *ChatService) History(eventID uint, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}

	var messages []models.ChatMessage
	err := s.db.Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// MarkRead advances the user's read watermark for an event. The watermark is
// upserted on the unique (event_id, user_id) pair.
func (s *ChatService) MarkRead(eventID uint, userID string, at time.Time) error {
	read := models.ChatRead{EventID: eventID, UserID: userID, LastReadAt: at}
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_read_at": at,
			"updated_at":   time.Now(),
		}),
	}).Create(&read).Error
	if err != nil {
		return fmt.Errorf("failed to mark read: %w", err)
	}
	return nil
}

// UnreadCount tallies one event's messages past the user's watermark,
// excluding the user's own.
func (s *ChatService) UnreadCount(eventID uint, userID string) (int64, error) {
	counts, err := s.unreadFor(userID, []uint{eventID})
	if err != nil {
		return 0, err
	}
	for _, c := range counts {
		if c.EventID == eventID {
			return c.Count, nil
		}
	}
	return 0, nil
}

// UnreadCounts tallies unread messages per event across every event the user
// participates in (has an RSVP for or organizes).
func (s *ChatService) UnreadCounts(userID string) ([]EventUnread, error) {
	eventIDs, err := s.participatingEventIDs(userID)
	if err != nil {
		return nil, err
	}
	if len(eventIDs) == 0 {
		return nil, nil
	}
	return s.unreadFor(userID, eventIDs)
}

// Participants returns the user ids interested in an event's chat: everyone
// with an RSVP row plus the organizer.
func (s *ChatService) Participants(eventID uint) ([]string, error) {
	var ids []string
	err := s.db.Model(&models.EventRsvp{}).
		Where("event_id = ?", eventID).
		Distinct().
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}

	var event models.Event
	if err := s.db.Select("organizer_id").First(&event, eventID).Error; err != nil {
		return nil, fmt.Errorf("failed to load organizer: %w", err)
	}
	for _, id := range ids {
		if id == event.OrganizerID {
			return ids, nil
		}
	}
	return append(ids, event.OrganizerID), nil
}

func (s *ChatService) unreadFor(userID string, eventIDs []uint) ([]EventUnread, error) {
	var counts []EventUnread
	err := s.db.Model(&models.ChatMessage{}).
		Select("chat_messages.event_id, count(*) as count").
		Joins("LEFT JOIN chat_reads ON chat_reads.event_id = chat_messages.event_id AND chat_reads.user_id = ?", userID).
		Where("chat_messages.event_id IN ?", eventIDs).
		Where("chat_messages.user_id <> ?", userID).
		Where("chat_reads.last_read_at IS NULL OR chat_messages.created_at > chat_reads.last_read_at").
		Group("chat_messages.event_id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count unread: %w", err)
	}
	return counts, nil
}

func (s *ChatService) participatingEventIDs(userID string) ([]uint, error) {
	var rsvpIDs []uint
	err := s.db.Model(&models.EventRsvp{}).
		Where("user_id = ?", userID).
		Pluck("event_id", &rsvpIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load rsvp events: %w", err)
	}

	var organizedIDs []uint
	err = s.db.Model(&models.Event{}).
		Where("organizer_id = ? AND is_active = ?", userID, true).
		Pluck("id", &organizedIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load organized events: %w", err)
	}

	seen := make(map[uint]struct{}, len(rsvpIDs)+len(organizedIDs))
	ids := make([]uint, 0, len(rsvpIDs)+len(organizedIDs))
	for _, id := range append(rsvpIDs, organizedIDs...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
