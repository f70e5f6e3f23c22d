package model

import (
	"time"
)

type CalendarEvent struct {
	ID          uint      `gorm:"primarykey" json:"id"`                           // event ID
	UserID      uint      `gorm:"index;not null" json:"user_id"`                  // owner
	Title       string    `gorm:"size:200;not null" json:"title"`                 // event title
	Description string    `gorm:"type:text" json:"description"`                   // free-form description
	StartTime   time.Time `gorm:"not null;index" json:"start_time"`               // start timestamp
	EndTime     time.Time `gorm:"not null" json:"end_time"`                       // end timestamp
	AllDay      bool      `gorm:"default:false" json:"all_day"`                   // all-day flag
	Color       string    `gorm:"size:20;default:'#3b82f6'" json:"color"`         // display color
	Recurrence  string    `gorm:"size:20;default:'none'" json:"recurrence"`       // none, daily, weekly, monthly
	CreatedAt   time.Time `json:"created_at"`                                     // created timestamp
	UpdatedAt   time.Time `json:"updated_at"`                                     // updated timestamp
}

func (CalendarEvent) TableName() string {
	return "calendar_events"
}
