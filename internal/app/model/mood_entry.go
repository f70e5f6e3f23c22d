package model

import (
	"time"
)

type MoodEntry struct {
	ID        uint      `gorm:"primarykey" json:"id"`           // mood entry ID
	UserID    uint      `gorm:"index;not null" json:"user_id"`  // owner
	Mood      string    `gorm:"size:50;not null" json:"mood"`   // mood name (happy, calm, stressed, ...)
	MoodLevel int       `gorm:"not null" json:"mood_level"`     // 1 (lowest) to 10 (highest)
	Notes     string    `gorm:"type:text" json:"notes"`         // optional notes
	CreatedAt time.Time `gorm:"index" json:"created_at"`        // created timestamp
	UpdatedAt time.Time `json:"updated_at"`                     // updated timestamp
}

func (MoodEntry) TableName() string {
	return "mood_entries"
}
