package repository

import (
	"time"

	"github.com/edudesk/edudesk-backend/internal/app/model"
	"github.com/edudesk/edudesk-backend/pkg/logger"
	"gorm.io/gorm"
)

type CalendarRepository interface {
	Create(event *model.CalendarEvent) error
	FindByID(id, userID uint) (*model.CalendarEvent, error)
	FindByUser(userID uint) ([]model.CalendarEvent, error)
	FindByDateRange(userID uint, start, end time.Time) ([]model.CalendarEvent, error)
	Search(userID uint, query string) ([]model.CalendarEvent, error)
	Update(event *model.CalendarEvent) error
	Delete(id, userID uint) error
}

type calendarRepository struct {
	db *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) CalendarRepository {
	return &calendarRepository{db: db}
}

func (r *calendarRepository) Create(event *model.CalendarEvent) error {
	if err := r.db.Create(event).Error; err != nil {
		logger.Error("Failed to create calendar event in database", err, map[string]interface{}{
			"user_id": event.UserID,
		})
		return err
	}
	return nil
}

func (r *calendarRepository) FindByID(id, userID uint) (*model.CalendarEvent, error) {
	var event model.CalendarEvent
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *calendarRepository) FindByUser(userID uint) ([]model.CalendarEvent, error) {
	var events []model.CalendarEvent
	err := r.db.Where("user_id = ?", userID).
		Order("start_time ASC").
		Find(&events).Error
	if err != nil {
		logger.Error("Failed to list calendar events from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return events, nil
}

func (r *calendarRepository) FindByDateRange(userID uint, start, end time.Time) ([]model.CalendarEvent, error) {
	var events []model.CalendarEvent
	err := r.db.Where("user_id = ? AND start_time >= ? AND start_time <= ?", userID, start, end).
		Order("start_time ASC").
		Find(&events).Error
	if err != nil {
		logger.Error("Failed to list calendar events by range from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return events, nil
}

func (r *calendarRepository) Search(userID uint, query string) ([]model.CalendarEvent, error) {
	var events []model.CalendarEvent
	pattern := "%" + query + "%"
	err := r.db.Where("user_id = ? AND (LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?))", userID, pattern, pattern).
		Order("start_time ASC").
		Find(&events).Error
	if err != nil {
		logger.Error("Failed to search calendar events in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return events, nil
}

func (r *calendarRepository) Update(event *model.CalendarEvent) error {
	if err := r.db.Save(event).Error; err != nil {
		logger.Error("Failed to update calendar event in database", err, map[string]interface{}{
			"event_id": event.ID,
		})
		return err
	}
	return nil
}

func (r *calendarRepository) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.CalendarEvent{})
	if result.Error != nil {
		logger.Error("Failed to delete calendar event from database", result.Error, map[string]interface{}{
			"event_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
