package repository

import (
	"time"

	"github.com/edudesk/edudesk-backend/internal/app/model"
	"github.com/edudesk/edudesk-backend/pkg/logger"
	"gorm.io/gorm"
)

type JournalRepository interface {
	Create(entry *model.JournalEntry) error
	FindByID(id, userID uint) (*model.JournalEntry, error)
	FindByUser(userID uint, limit, offset int) ([]model.JournalEntry, error)
	Search(userID uint, query string) ([]model.JournalEntry, error)
	CountByUser(userID uint) (int64, error)
	CountSince(userID uint, since time.Time) (int64, error)
	Update(entry *model.JournalEntry) error
	Delete(id, userID uint) error
}

type journalRepository struct {
	db *gorm.DB
}

func NewJournalRepository(db *gorm.DB) JournalRepository {
	return &journalRepository{db: db}
}

func (r *journalRepository) Create(entry *model.JournalEntry) error {
	if err := r.db.Create(entry).Error; err != nil {
		logger.Error("Failed to create journal entry in database", err, map[string]interface{}{
			"user_id": entry.UserID,
		})
		return err
	}
	return nil
}

func (r *journalRepository) FindByID(id, userID uint) (*model.JournalEntry, error) {
	var entry model.JournalEntry
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *journalRepository) FindByUser(userID uint, limit, offset int) ([]model.JournalEntry, error) {
	var entries []model.JournalEntry
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&entries).Error; err != nil {
		logger.Error("Failed to list journal entries from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return entries, nil
}

func (r *journalRepository) Search(userID uint, query string) ([]model.JournalEntry, error) {
	var entries []model.JournalEntry
	pattern := "%" + query + "%"
	err := r.db.Where("user_id = ? AND LOWER(content) LIKE LOWER(?)", userID, pattern).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		logger.Error("Failed to search journal entries in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return entries, nil
}

func (r *journalRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.JournalEntry{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *journalRepository) CountSince(userID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.JournalEntry{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

func (r *journalRepository) Update(entry *model.JournalEntry) error {
	if err := r.db.Save(entry).Error; err != nil {
		logger.Error("Failed to update journal entry in database", err, map[string]interface{}{
			"entry_id": entry.ID,
		})
		return err
	}
	return nil
}

func (r *journalRepository) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.JournalEntry{})
	if result.Error != nil {
		logger.Error("Failed to delete journal entry from database", result.Error, map[string]interface{}{
			"entry_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
