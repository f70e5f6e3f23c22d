package model

import (
	"time"
)

type JournalEntry struct {
	ID        uint      `gorm:"primarykey" json:"id"`          // journal entry ID
	UserID    uint      `gorm:"index;not null" json:"user_id"` // owner
	Content   string    `gorm:"type:text;not null" json:"content"`
	Mood      string    `gorm:"size:50" json:"mood"`           // optional mood tag
	CreatedAt time.Time `gorm:"index" json:"created_at"`       // created timestamp
	UpdatedAt time.Time `json:"updated_at"`                    // updated timestamp
}

func (JournalEntry) TableName() string {
	return "journal_entries"
}
