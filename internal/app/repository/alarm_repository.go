package repository

import (
	"github.com/edudesk/edudesk-backend/internal/app/model"
	"github.com/edudesk/edudesk-backend/pkg/logger"
	"gorm.io/gorm"
)

type AlarmRepository interface {
	Create(alarm *model.Alarm) error
	FindByID(id, userID uint) (*model.Alarm, error)
	FindByUser(userID uint) ([]model.Alarm, error)
	FindActiveByUser(userID uint) ([]model.Alarm, error)
	Update(alarm *model.Alarm) error
	Delete(id, userID uint) error
}

type alarmRepository struct {
	db *gorm.DB
}

func NewAlarmRepository(db *gorm.DB) AlarmRepository {
	return &alarmRepository{db: db}
}

func (r *alarmRepository) Create(alarm *model.Alarm) error {
	if err := r.db.Create(alarm).Error; err != nil {
		logger.Error("Failed to create alarm in database", err, map[string]interface{}{
			"user_id": alarm.UserID,
		})
		return err
	}
	return nil
}

func (r *alarmRepository) FindByID(id, userID uint) (*model.Alarm, error) {
	var alarm model.Alarm
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&alarm).Error
	if err != nil {
		return nil, err
	}
	return &alarm, nil
}

func (r *alarmRepository) FindByUser(userID uint) ([]model.Alarm, error) {
	var alarms []model.Alarm
	err := r.db.Where("user_id = ?", userID).
		Order("time ASC").
		Find(&alarms).Error
	if err != nil {
		logger.Error("Failed to list alarms from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return alarms, nil
}

func (r *alarmRepository) FindActiveByUser(userID uint) ([]model.Alarm, error) {
	var alarms []model.Alarm
	err := r.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("time ASC").
		Find(&alarms).Error
	if err != nil {
		logger.Error("Failed to list active alarms from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return alarms, nil
}

func (r *alarmRepository) Update(alarm *model.Alarm) error {
	if err := r.db.Save(alarm).Error; err != nil {
		logger.Error("Failed to update alarm in database", err, map[string]interface{}{
			"alarm_id": alarm.ID,
		})
		return err
	}
	return nil
}

func (r *alarmRepository) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Alarm{})
	if result.Error != nil {
		logger.Error("Failed to delete alarm from database", result.Error, map[string]interface{}{
			"alarm_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
