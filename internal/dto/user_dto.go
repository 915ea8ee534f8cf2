package dto

import "time"

type UserResponse struct {
	ID          string    `json:"id"`
	Email       *string   `json:"email,omitempty"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	AvatarSeed  string    `json:"avatar_seed"`
	Location    string    `json:"location"`
	Interests   []string  `json:"interests"`
	Personality []string  `json:"personality"`
	Signature   string    `json:"signature,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// UpdateProfileRequest carries partial profile edits; nil fields are left
// untouched.
type UpdateProfileRequest struct {
	Location    *string   `json:"location" validate:"omitempty,max=255"`
	Interests   *[]string `json:"interests" validate:"omitempty,max=20,dive,max=50"`
	Personality *[]string `json:"personality" validate:"omitempty,max=20,dive,max=50"`
	Signature   *string   `json:"signature" validate:"omitempty,max=500"`
}
