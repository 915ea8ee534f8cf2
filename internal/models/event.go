package models

import "time"

// Event categories form a closed set; everything finer-grained goes into the
// free-text Subcategory.
var EventCategories = []string{"music", "sports", "food", "art", "tech", "outdoors", "social", "learning"}

// Event date/time are organizer-local wall clock in the event's Timezone
// (IANA name, defaults to UTC). The server never converts between zones.
//
// Retracting an event flips IsActive instead of deleting the row; every read
// path filters on the flag. Price is a decimal string; whether an event is
// free is derived from it, never stored.
type Event struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	Title        string   `gorm:"size:255;not null" json:"title"`
	Description  string   `gorm:"type:text" json:"description"`
	Category     string   `gorm:"size:50;not null;index" json:"category"`
	Subcategory  string   `gorm:"size:100" json:"subcategory"`
	Date         string   `gorm:"size:10;not null" json:"date"`
	StartTime    string   `gorm:"size:5;not null" json:"start_time"`
	Timezone     string   `gorm:"size:64;not null;default:'UTC'" json:"timezone"`
	Location     string   `gorm:"size:255;not null" json:"location"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Price        string   `gorm:"type:decimal(10,2);default:0" json:"price"`
	Capacity     *int     `json:"capacity,omitempty"`
	Parking      string   `gorm:"type:text" json:"parking"`
	MeetingPoint string   `gorm:"type:text" json:"meeting_point"`
	Duration     string   `gorm:"size:100" json:"duration"`
	Requirements string   `gorm:"type:text" json:"requirements"`
	OrganizerID  string   `gorm:"size:64;not null;index" json:"organizer_id"`
	Organizer    User     `gorm:"foreignKey:OrganizerID" json:"organizer"`
	IsActive     bool     `gorm:"not null;default:true;index" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
