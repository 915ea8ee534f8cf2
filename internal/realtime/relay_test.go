package realtime

import (
	"encoding/json"
	"testing"

	"github.com/localvibe/localvibe-backend/internal/models"
	"github.com/localvibe/localvibe-backend/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRelay(t *testing.T) (*Relay, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.EventRsvp{},
		&models.ChatMessage{},
		&models.ChatRead{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return NewRelay(NewHub(), services.NewChatService(db)), db
}

func seedEvent(t *testing.T, db *gorm.DB) (event *models.Event, organizerID, memberID string) {
	t.Helper()
	organizerID, memberID = "organizer-1", "member-1"
	for _, id := range []string{organizerID, memberID} {
		if err := db.Create(&models.User{ID: id}).Error; err != nil {
			t.Fatalf("failed to create user %s: %v", id, err)
		}
	}
	event = &models.Event{
		Title:       "Relay Test Event",
		Category:    "social",
		Date:        "2026-10-01",
		StartTime:   "19:00",
		Timezone:    "UTC",
		Location:    "Somewhere",
		Price:       "0",
		OrganizerID: organizerID,
		IsActive:    true,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	rsvp := &models.EventRsvp{EventID: event.ID, UserID: memberID, Status: models.RsvpStatusGoing}
	if err := db.Create(rsvp).Error; err != nil {
		t.Fatalf("failed to create rsvp: %v", err)
	}
	return event, organizerID, memberID
}

func envelope(t *testing.T, env Envelope) []byte {
	t.Helper()
	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("failed to marshal envelope: %v", err)
	}
	return data
}

func TestRelayMessageFlow(t *testing.T) {
	relay, db := setupRelay(t)
	event, organizerID, memberID := seedEvent(t, db)
	hub := relay.Hub()

	// Organizer is in the event room; member only listens on their channel.
	roomConn := &fakeConn{}
	roomClient := hub.Register(roomConn)
	relay.HandleEnvelope(roomClient, envelope(t, Envelope{Type: "join", EventID: event.ID}))

	otherRoomConn := &fakeConn{}
	otherRoomClient := hub.Register(otherRoomConn)
	relay.HandleEnvelope(otherRoomClient, envelope(t, Envelope{Type: "join", EventID: event.ID + 100}))

	notifyConn := &fakeConn{}
	notifyClient := hub.Register(notifyConn)
	relay.HandleEnvelope(notifyClient, envelope(t, Envelope{Type: "subscribe_notifications", UserID: memberID}))

	content, _ := json.Marshal("see everyone at 7")
	relay.HandleEnvelope(roomClient, envelope(t, Envelope{
		Type:    "message",
		EventID: event.ID,
		UserID:  organizerID,
		Message: content,
	}))

	// Persisted before push.
	var count int64
	db.Model(&models.ChatMessage{}).Where("event_id = ?", event.ID).Count(&count)
	if count != 1 {
		t.Fatalf("persisted message count got = %d, want 1", count)
	}

	got := roomConn.received()
	if len(got) != 1 {
		t.Fatalf("room client received %d payloads, want 1", len(got))
	}
	push, ok := got[0].(messagePush)
	if !ok {
		t.Fatalf("room payload type = %T, want messagePush", got[0])
	}
	if push.Type != "newMessage" || push.EventID != event.ID || push.Message.Content != "see everyone at 7" {
		t.Errorf("room push = %+v, want newMessage for event %d", push, event.ID)
	}

	if got := otherRoomConn.received(); len(got) != 0 {
		t.Errorf("client in another room received %v, want nothing", got)
	}

	notified := notifyConn.received()
	if len(notified) != 1 {
		t.Fatalf("notification client received %d payloads, want 1", len(notified))
	}
	unread, ok := notified[0].(unreadPush)
	if !ok {
		t.Fatalf("notification payload type = %T, want unreadPush", notified[0])
	}
	if unread.Type != "unreadUpdate" || unread.EventID != event.ID || unread.Count != 1 {
		t.Errorf("unread push = %+v, want unreadUpdate count 1", unread)
	}
}

func TestRelayAckReadSuppressesUnread(t *testing.T) {
	relay, db := setupRelay(t)
	event, organizerID, memberID := seedEvent(t, db)

	sender := relay.Hub().Register(&fakeConn{})
	content, _ := json.Marshal("hello")
	relay.HandleEnvelope(sender, envelope(t, Envelope{
		Type: "message", EventID: event.ID, UserID: organizerID, Message: content,
	}))

	chats := services.NewChatService(db)
	count, err := chats.UnreadCount(event.ID, memberID)
	if err != nil {
		t.Fatalf("UnreadCount() error = %v", err)
	}
	if count != 1 {
		t.Fatalf("unread before ack got = %d, want 1", count)
	}

	reader := relay.Hub().Register(&fakeConn{})
	relay.HandleEnvelope(reader, envelope(t, Envelope{
		Type: "ackRead", EventID: event.ID, UserID: memberID,
	}))

	count, err = chats.UnreadCount(event.ID, memberID)
	if err != nil {
		t.Fatalf("UnreadCount() after ack error = %v", err)
	}
	if count != 0 {
		t.Errorf("unread after ack got = %d, want 0", count)
	}
}

func TestRelaySwallowsMalformedInput(t *testing.T) {
	relay, _ := setupRelay(t)
	client := relay.Hub().Register(&fakeConn{})

	// None of these may panic or tear anything down.
	relay.HandleEnvelope(client, []byte("{not json"))
	relay.HandleEnvelope(client, envelope(t, Envelope{Type: "bogus"}))
	relay.HandleEnvelope(client, envelope(t, Envelope{Type: "message"}))
	relay.HandleEnvelope(client, envelope(t, Envelope{Type: "join"}))

	// Hub still works afterwards.
	relay.Hub().Join(client, 9)
	relay.Hub().BroadcastRoom(9, "still alive")
}
