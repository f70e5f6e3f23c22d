package model

import (
	"time"
)

type StudySession struct {
	ID              uint      `gorm:"primarykey" json:"id"`                         // study session ID
	UserID          uint      `gorm:"index;not null" json:"user_id"`                // owner
	Subject         string    `gorm:"size:100;not null" json:"subject"`             // subject studied
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`             // session length in minutes
	SessionType     string    `gorm:"size:20;default:'focus'" json:"session_type"`  // focus, review, practice
	Notes           string    `gorm:"type:text" json:"notes"`                       // optional notes
	CreatedAt       time.Time `gorm:"index" json:"created_at"`                      // created timestamp
	UpdatedAt       time.Time `json:"updated_at"`                                   // updated timestamp
}

func (StudySession) TableName() string {
	return "study_sessions"
}
