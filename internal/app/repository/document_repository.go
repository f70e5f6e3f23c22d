package repository

import (
	"github.com/edudesk/edudesk-backend/internal/app/model"
	"github.com/edudesk/edudesk-backend/pkg/logger"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	Create(doc *model.Document) error
	FindByID(id, userID uint) (*model.Document, error)
	FindByUser(userID uint, category, fileType string, limit, offset int) ([]model.Document, error)
	Categories(userID uint) ([]string, error)
	FindAllByUser(userID uint) ([]model.Document, error)
	Update(doc *model.Document) error
	Delete(id, userID uint) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(doc *model.Document) error {
	if err := r.db.Create(doc).Error; err != nil {
		logger.Error("Failed to create document in database", err, map[string]interface{}{
			"user_id": doc.UserID,
			"name":    doc.Name,
		})
		return err
	}
	return nil
}

func (r *documentRepository) FindByID(id, userID uint) (*model.Document, error) {
	var doc model.Document
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) FindByUser(userID uint, category, fileType string, limit, offset int) ([]model.Document, error) {
	var docs []model.Document
	query := r.db.Where("user_id = ?", userID)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if fileType != "" {
		query = query.Where("file_type = ?", fileType)
	}
	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&docs).Error; err != nil {
		logger.Error("Failed to list documents from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return docs, nil
}

func (r *documentRepository) Categories(userID uint) ([]string, error) {
	var categories []string
	err := r.db.Model(&model.Document{}).
		Where("user_id = ?", userID).
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		logger.Error("Failed to list document categories from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return categories, nil
}

func (r *documentRepository) FindAllByUser(userID uint) ([]model.Document, error) {
	var docs []model.Document
	err := r.db.Where("user_id = ?", userID).Find(&docs).Error
	if err != nil {
		logger.Error("Failed to list documents from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return docs, nil
}

func (r *documentRepository) Update(doc *model.Document) error {
	if err := r.db.Save(doc).Error; err != nil {
		logger.Error("Failed to update document in database", err, map[string]interface{}{
			"document_id": doc.ID,
		})
		return err
	}
	return nil
}

func (r *documentRepository) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Document{})
	if result.Error != nil {
		logger.Error("Failed to delete document from database", result.Error, map[string]interface{}{
			"document_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
