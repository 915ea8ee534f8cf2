package models

import "time"

// ChatMessage is the durable record behind the realtime relay. The relay push
// is advisory; this row is what a reconnecting client reads back.
type ChatMessage struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	EventID uint   `gorm:"not null;index" json:"event_id"`
	UserID  string `gorm:"size:64;not null" json:"user_id"`
	Content string `gorm:"type:text;not null" json:"content"`

	Event Event `gorm:"foreignKey:EventID" json:"-"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// ChatRead is a per-(event, user) read watermark. Messages created after
// LastReadAt count as unread for that user.
type ChatRead struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EventID    uint      `gorm:"not null;uniqueIndex:idx_chat_reads_event_user" json:"event_id"`
	UserID     string    `gorm:"size:64;not null;uniqueIndex:idx_chat_reads_event_user" json:"user_id"`
	LastReadAt time.Time `gorm:"not null" json:"last_read_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
