package service

import (
	"errors"
	"time"

	"github.com/edudesk/edudesk-backend/internal/app/model"
	"github.com/edudesk/edudesk-backend/internal/app/repository"
	"github.com/edudesk/edudesk-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrGoalNotFound = errors.New("goal not found")

type GoalStats struct {
	Total          int64   `json:"total"`
	Active         int64   `json:"active"`
	Completed      int64   `json:"completed"`
	Paused         int64   `json:"paused"`
	CompletionRate float64 `json:"completion_rate"` // percent
}

type UpdateGoalInput struct {
	Title       *string
	Description *string
	TargetDate  *time.Time
	Priority    *string
	Status      *string
	Category    *string
}

type GoalService interface {
	CreateGoal(userID uint, goal *model.Goal) error
	GetGoal(id, userID uint) (*model.Goal, error)
	ListGoals(userID uint, status, category string) ([]model.Goal, error)
	UpdateGoal(id, userID uint, input UpdateGoalInput) (*model.Goal, error)
	UpdateProgress(id, userID uint, progress int) (*model.Goal, error)
	DeleteGoal(id, userID uint) error
	Stats(userID uint) (*GoalStats, error)
	Categories(userID uint) ([]string, error)
}

type goalService struct {
	goalRepo repository.GoalRepository
}

func NewGoalService(goalRepo repository.GoalRepository) GoalService {
	return &goalService{goalRepo: goalRepo}
}

func (s *goalService) CreateGoal(userID uint, goal *model.Goal) error {
	goal.UserID = userID
	if goal.Status == "" {
		goal.Status = model.GoalActive
	}
	if goal.Progress < 0 {
		goal.Progress = 0
	}
	if goal.Progress > 100 {
		goal.Progress = 100
	}

	if err := s.goalRepo.Create(goal); err != nil {
		return err
	}

	logger.Info("Goal created", map[string]interface{}{
		"user_id": userID,
		"goal_id": goal.ID,
	})
	return nil
}

func (s *goalService) GetGoal(id, userID uint) (*model.Goal, error) {
	goal, err := s.goalRepo.FindByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return goal, nil
}

func (s *goalService) ListGoals(userID uint, status, category string) ([]model.Goal, error) {
	return s.goalRepo.FindByUser(userID, status, category)
}

func (s *goalService) UpdateGoal(id, userID uint, input UpdateGoalInput) (*model.Goal, error) {
	goal, err := s.goalRepo.FindByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}

	if input.Title != nil {
		goal.Title = *input.Title
	}
	if input.Description != nil {
		goal.Description = *input.Description
	}
	if input.TargetDate != nil {
		goal.TargetDate = input.TargetDate
	}
	if input.Priority != nil {
		goal.Priority = *input.Priority
	}
	if input.Status != nil {
		goal.Status = model.GoalStatus(*input.Status)
	}
	if input.Category != nil {
		goal.Category = *input.Category
	}

	if err := s.goalRepo.Update(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// UpdateProgress clamps progress to 0-100 and completes the goal at 100.
// Dropping back below 100 reactivates a completed goal.
func (s *goalService) UpdateProgress(id, userID uint, progress int) (*model.Goal, error) {
	goal, err := s.goalRepo.FindByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}

	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	goal.Progress = progress

	if progress == 100 {
		goal.Status = model.GoalCompleted
	} else if goal.Status == model.GoalCompleted {
		goal.Status = model.GoalActive
	}

	if err := s.goalRepo.Update(goal); err != nil {
		return nil, err
	}

	logger.Info("Goal progress updated", map[string]interface{}{
		"user_id":  userID,
		"goal_id":  goal.ID,
		"progress": goal.Progress,
		"status":   goal.Status,
	})
	return goal, nil
}

func (s *goalService) DeleteGoal(id, userID uint) error {
	if err := s.goalRepo.Delete(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGoalNotFound
		}
		return err
	}
	return nil
}

func (s *goalService) Stats(userID uint) (*GoalStats, error) {
	goals, err := s.goalRepo.FindByUser(userID, "", "")
	if err != nil {
		return nil, err
	}

	stats := &GoalStats{Total: int64(len(goals))}
	for _, goal := range goals {
		switch goal.Status {
		case model.GoalActive:
			stats.Active++
		case model.GoalCompleted:
			stats.Completed++
		case model.GoalPaused:
			stats.Paused++
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total) * 100
	}
	return stats, nil
}

func (s *goalService) Categories(userID uint) ([]string, error) {
	return s.goalRepo.Categories(userID)
}
