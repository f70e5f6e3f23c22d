package model

import (
	"time"
)

type GoalStatus string // goal lifecycle state

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalPaused    GoalStatus = "paused"
)

type Goal struct {
	ID          uint       `gorm:"primarykey" json:"id"`                                // goal ID
	UserID      uint       `gorm:"index;not null" json:"user_id"`                       // owner
	Title       string     `gorm:"size:200;not null" json:"title"`                      // goal title
	Description string     `gorm:"type:text" json:"description"`                        // free-form description
	TargetDate  *time.Time `json:"target_date"`                                         // optional due date
	Priority    string     `gorm:"size:20;default:'medium'" json:"priority"`            // low, medium, high
	Status      GoalStatus `gorm:"type:varchar(20);default:'active'" json:"status"`     // lifecycle state
	Progress    int        `gorm:"default:0" json:"progress"`                           // 0-100
	Category    string     `gorm:"size:50;default:'personal'" json:"category"`          // grouping category
	CreatedAt   time.Time  `json:"created_at"`                                          // created timestamp
	UpdatedAt   time.Time  `json:"updated_at"`                                          // updated timestamp
}

func (Goal) TableName() string {
	return "goals"
}
