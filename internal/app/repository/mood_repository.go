package repository

import (
	"time"

	"github.com/edudesk/edudesk-backend/internal/app/model"
	"github.com/edudesk/edudesk-backend/pkg/logger"
	"gorm.io/gorm"
)

type MoodRepository interface {
	Create(entry *model.MoodEntry) error
	FindByID(id, userID uint) (*model.MoodEntry, error)
	FindByUser(userID uint, limit, offset int) ([]model.MoodEntry, error)
	FindSince(userID uint, since time.Time) ([]model.MoodEntry, error)
	Update(entry *model.MoodEntry) error
	Delete(id, userID uint) error
}

type moodRepository struct {
	db *gorm.DB
}

func NewMoodRepository(db *gorm.DB) MoodRepository {
	return &moodRepository{db: db}
}

func (r *moodRepository) Create(entry *model.MoodEntry) error {
	if err := r.db.Create(entry).Error; err != nil {
		logger.Error("Failed to create mood entry in database", err, map[string]interface{}{
			"user_id": entry.UserID,
		})
		return err
	}
	return nil
}

func (r *moodRepository) FindByID(id, userID uint) (*model.MoodEntry, error) {
	var entry model.MoodEntry
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *moodRepository) FindByUser(userID uint, limit, offset int) ([]model.MoodEntry, error) {
	var entries []model.MoodEntry
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&entries).Error; err != nil {
		logger.Error("Failed to list mood entries from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return entries, nil
}

func (r *moodRepository) FindSince(userID uint, since time.Time) ([]model.MoodEntry, error) {
	var entries []model.MoodEntry
	err := r.db.Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		logger.Error("Failed to list mood entries by range from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return entries, nil
}

func (r *moodRepository) Update(entry *model.MoodEntry) error {
	if err := r.db.Save(entry).Error; err != nil {
		logger.Error("Failed to update mood entry in database", err, map[string]interface{}{
			"entry_id": entry.ID,
		})
		return err
	}
	return nil
}

func (r *moodRepository) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.MoodEntry{})
	if result.Error != nil {
		logger.Error("Failed to delete mood entry from database", result.Error, map[string]interface{}{
			"entry_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
