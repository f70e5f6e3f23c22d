package model

import (
	"time"

	"github.com/lib/pq"
)

type Alarm struct {
	ID         uint          `gorm:"primarykey" json:"id"`                       // alarm ID
	UserID     uint          `gorm:"index;not null" json:"user_id"`              // owner
	Title      string        `gorm:"size:100;not null" json:"title"`             // alarm label
	Time       string        `gorm:"size:5;not null" json:"time"`                // firing time, "HH:MM" 24h
	DaysOfWeek pq.Int64Array `gorm:"type:integer[]" json:"days_of_week"`         // 0=Monday .. 6=Sunday; empty = daily
	IsActive   bool          `gorm:"default:true" json:"is_active"`              // enabled flag
	Sound      string        `gorm:"size:50;default:'default'" json:"sound"`     // sound identifier
	CreatedAt  time.Time     `json:"created_at"`                                 // created timestamp
	UpdatedAt  time.Time     `json:"updated_at"`                                 // updated timestamp
}

func (Alarm) TableName() string {
	return "alarms"
}
