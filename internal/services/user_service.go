package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/localvibe/localvibe-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// UpsertUserInput carries the identity claims seen at login. Empty fields are
// ignored on merge so a sparse token never erases an existing profile.
type UpsertUserInput struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
}

// ProfileUpdate carries partial profile edits; nil fields are left untouched.
type ProfileUpdate struct {
	Location    *string
	Interests   *[]string
	Personality *[]string
	Signature   *string
}

// GetUser returns the user or ErrUserNotFound.
func (s *UserService) GetUser(id string) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UpsertUser inserts the user on first sight and merges the supplied identity
// fields into the existing row otherwise. A default avatar seed derived from
// the id is assigned when none is set.
func (s *UserService) UpsertUser(in UpsertUserInput) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "id = ?", in.ID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			ID:         in.ID,
			FirstName:  in.FirstName,
			LastName:   in.LastName,
			AvatarSeed: defaultAvatarSeed(in.ID),
		}
		if in.Email != "" {
			user.Email = &in.Email
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return &user, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if in.Email != "" {
		user.Email = &in.Email
	}
	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if user.AvatarSeed == "" {
		user.AvatarSeed = defaultAvatarSeed(user.ID)
	}
	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}

// UpdateProfile merges the supplied profile fields into the user's row.
func (s *UserService) UpdateProfile(id string, update ProfileUpdate) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if update.Location != nil {
		user.Location = *update.Location
	}
	if update.Interests != nil {
		user.Interests = datatypes.JSONSlice[string](*update.Interests)
	}
	if update.Personality != nil {
		user.Personality = datatypes.JSONSlice[string](*update.Personality)
	}
	if update.Signature != nil {
		user.Signature = *update.Signature
	}
	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// defaultAvatarSeed derives a stable seed from the identity id so the same
// user always renders the same generated avatar.
func defaultAvatarSeed(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])[:16]
}
