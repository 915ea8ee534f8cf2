package services

import (
	"testing"

	"github.com/localvibe/localvibe-backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory database migrated with the domain tables.
func setupTestDB(t *testing.T) *gorm.DB {
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
	// A single connection keeps every session on the same in-memory database.
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
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, id string) *models.User {
	t.Helper()
	email := id + "@example.com"
	user := &models.User{
		ID:         id,
		Email:      &email,
		FirstName:  "Test",
		LastName:   "User",
		AvatarSeed: defaultAvatarSeed(id),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user %s: %v", id, err)
	}
	return user
}

func createTestEvent(t *testing.T, db *gorm.DB, organizerID, title, category string) *models.Event {
	t.Helper()
	event := &models.Event{
		Title:       title,
		Category:    category,
		Date:        "2026-10-01",
		StartTime:   "18:30",
		Timezone:    "UTC",
		Location:    "Test Location",
		Price:       "0",
		OrganizerID: organizerID,
		IsActive:    true,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create test event %s: %v", title, err)
	}
	return event
}
