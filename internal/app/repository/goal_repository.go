package repository

import (
	"github.com/edudesk/edudesk-backend/internal/app/model"
	"github.com/edudesk/edudesk-backend/pkg/logger"
	"gorm.io/gorm"
)

type GoalRepository interface {
	Create(goal *model.Goal) error
	FindByID(id, userID uint) (*model.Goal, error)
	FindByUser(userID uint, status, category string) ([]model.Goal, error)
	Categories(userID uint) ([]string, error)
	Update(goal *model.Goal) error
	Delete(id, userID uint) error
}

type goalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(goal *model.Goal) error {
	if err := r.db.Create(goal).Error; err != nil {
		logger.Error("Failed to create goal in database", err, map[string]interface{}{
			"user_id": goal.UserID,
		})
		return err
	}
	return nil
}

func (r *goalRepository) FindByID(id, userID uint) (*model.Goal, error) {
	var goal model.Goal
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepository) FindByUser(userID uint, status, category string) ([]model.Goal, error) {
	var goals []model.Goal
	query := r.db.Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Order("created_at DESC").Find(&goals).Error; err != nil {
		logger.Error("Failed to list goals from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return goals, nil
}

func (r *goalRepository) Categories(userID uint) ([]string, error) {
	var categories []string
	err := r.db.Model(&model.Goal{}).
		Where("user_id = ?", userID).
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		logger.Error("Failed to list goal categories from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return categories, nil
}

func (r *goalRepository) Update(goal *model.Goal) error {
	if err := r.db.Save(goal).Error; err != nil {
		logger.Error("Failed to update goal in database", err, map[string]interface{}{
			"goal_id": goal.ID,
		})
		return err
	}
	return nil
}

func (r *goalRepository) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Goal{})
	if result.Error != nil {
		logger.Error("Failed to delete goal from database", result.Error, map[string]interface{}{
			"goal_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
