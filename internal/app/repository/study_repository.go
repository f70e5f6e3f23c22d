package repository

import (
	"time"

	"github.com/edudesk/edudesk-backend/internal/app/model"
	"github.com/edudesk/edudesk-backend/pkg/logger"
	"gorm.io/gorm"
)

type StudyRepository interface {
	Create(session *model.StudySession) error
	BulkCreate(sessions []model.StudySession, batchSize int) error
	FindByID(id, userID uint) (*model.StudySession, error)
	FindByUser(userID uint, limit, offset int) ([]model.StudySession, error)
	FindSince(userID uint, since time.Time) ([]model.StudySession, error)
	Update(session *model.StudySession) error
	Delete(id, userID uint) error
}

type studyRepository struct {
	db *gorm.DB
}

func NewStudyRepository(db *gorm.DB) StudyRepository {
	return &studyRepository{db: db}
}

func (r *studyRepository) Create(session *model.StudySession) error {
	if err := r.db.Create(session).Error; err != nil {
		logger.Error("Failed to create study session in database", err, map[string]interface{}{
			"user_id": session.UserID,
		})
		return err
	}
	return nil
}

func (r *studyRepository) BulkCreate(sessions []model.StudySession, batchSize int) error {
	if err := r.db.CreateInBatches(sessions, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create study sessions in database", err, map[string]interface{}{
			"count": len(sessions),
		})
		return err
	}
	return nil
}

func (r *studyRepository) FindByID(id, userID uint) (*model.StudySession, error) {
	var session model.StudySession
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *studyRepository) FindByUser(userID uint, limit, offset int) ([]model.StudySession, error) {
	var sessions []model.StudySession
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&sessions).Error; err != nil {
		logger.Error("Failed to list study sessions from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return sessions, nil
}

func (r *studyRepository) FindSince(userID uint, since time.Time) ([]model.StudySession, error) {
	var sessions []model.StudySession
	err := r.db.Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		logger.Error("Failed to list study sessions by range from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return sessions, nil
}

func (r *studyRepository) Update(session *model.StudySession) error {
	if err := r.db.Save(session).Error; err != nil {
		logger.Error("Failed to update study session in database", err, map[string]interface{}{
			"session_id": session.ID,
		})
		return err
	}
	return nil
}

func (r *studyRepository) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.StudySession{})
	if result.Error != nil {
		logger.Error("Failed to delete study session from database", result.Error, map[string]interface{}{
			"session_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
