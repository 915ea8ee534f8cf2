package services

import (
	"errors"
	"testing"
)

func TestUpsertUserFirstLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	user, err := svc.UpsertUser(UpsertUserInput{
		ID:        "ext-123",
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	if err != nil {
		t.Fatalf("UpsertUser() error = %v", err)
	}
	if user.AvatarSeed == "" {
		t.Errorf("AvatarSeed not assigned on first login")
	}
	if user.AvatarSeed != defaultAvatarSeed("ext-123") {
		t.Errorf("AvatarSeed got = %q, want deterministic seed for id", user.AvatarSeed)
	}
	if user.Email == nil || *user.Email != "ada@example.com" {
		t.Errorf("Email got = %v, want ada@example.com", user.Email)
	}
}

func TestUpsertUserMergeKeepsExistingFields(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	first, err := svc.UpsertUser(UpsertUserInput{
		ID:        "ext-123",
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	if err != nil {
		t.Fatalf("UpsertUser() first error = %v", err)
	}

	// A sparse token on a later login must not erase the profile.
	again, err := svc.UpsertUser(UpsertUserInput{ID: "ext-123"})
	if err != nil {
		t.Fatalf("UpsertUser() second error = %v", err)
	}
	if again.FirstName != "Ada" || again.LastName != "Lovelace" {
		t.Errorf("name got = %q %q, want Ada Lovelace", again.FirstName, again.LastName)
	}
	if again.AvatarSeed != first.AvatarSeed {
		t.Errorf("AvatarSeed changed on merge: %q -> %q", first.AvatarSeed, again.AvatarSeed)
	}

	var count int64
	db.Table("users").Where("id = ?", "ext-123").Count(&count)
	if count != 1 {
		t.Errorf("user row count got = %d, want 1", count)
	}
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	createTestUser(t, db, "user-1")

	location := "Lisbon"
	interests := []string{"hiking", "live music"}
	signature := "See you out there."
	user, err := svc.UpdateProfile("user-1", ProfileUpdate{
		Location:  &location,
		Interests: &interests,
		Signature: &signature,
	})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if user.Location != "Lisbon" {
		t.Errorf("Location got = %q, want Lisbon", user.Location)
	}
	if len(user.Interests) != 2 || user.Interests[0] != "hiking" {
		t.Errorf("Interests got = %v, want %v", user.Interests, interests)
	}
	if user.Signature != signature {
		t.Errorf("Signature got = %q, want %q", user.Signature, signature)
	}

	// Personality was not supplied and must be untouched.
	if len(user.Personality) != 0 {
		t.Errorf("Personality got = %v, want empty", user.Personality)
	}
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	location := "Nowhere"
	_, err := svc.UpdateProfile("ghost", ProfileUpdate{Location: &location})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("UpdateProfile() error = %v, want ErrUserNotFound", err)
	}
}
