package models

import (
	"time"

	"gorm.io/datatypes"
)

// User is created on first successful external-identity login and merged on
// subsequent profile edits. Identity ids are opaque strings issued by the
// identity provider; rows are never hard-deleted.
type User struct {
	ID          string                      `gorm:"primaryKey;size:64" json:"id"`
	Email       *string                     `gorm:"size:255;index" json:"email,omitempty"`
	FirstName   string                      `gorm:"size:100" json:"first_name"`
	LastName    string                      `gorm:"size:100" json:"last_name"`
	AvatarSeed  string                      `gorm:"size:64" json:"avatar_seed"`
	Location    string                      `gorm:"size:255" json:"location"`
	Interests   datatypes.JSONSlice[string] `json:"interests"`
	Personality datatypes.JSONSlice[string] `json:"personality"`
	Signature   string                      `gorm:"type:text" json:"signature"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}
