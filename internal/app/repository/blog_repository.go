package repository

import (
	"github.com/edudesk/edudesk-backend/internal/app/model"
	"github.com/edudesk/edudesk-backend/pkg/logger"
	"gorm.io/gorm"
)

type BlogRepository interface {
	Create(post *model.BlogPost) error
	FindByID(id, userID uint) (*model.BlogPost, error)
	FindByUser(userID uint) ([]model.BlogPost, error)
	FindPublic(limit, offset int) ([]model.BlogPost, error)
	CountPublic() (int64, error)
	Update(post *model.BlogPost) error
	Delete(id, userID uint) error
}

type blogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(post *model.BlogPost) error {
	if err := r.db.Create(post).Error; err != nil {
		logger.Error("Failed to create blog post in database", err, map[string]interface{}{
			"user_id": post.UserID,
		})
		return err
	}
	return nil
}

func (r *blogRepository) FindByID(id, userID uint) (*model.BlogPost, error) {
	var post model.BlogPost
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogRepository) FindByUser(userID uint) ([]model.BlogPost, error) {
	var posts []model.BlogPost
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		logger.Error("Failed to list blog posts from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return posts, nil
}

func (r *blogRepository) FindPublic(limit, offset int) ([]model.BlogPost, error) {
	var posts []model.BlogPost
	query := r.db.Where("is_public = ?", true).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&posts).Error; err != nil {
		logger.Error("Failed to list public blog posts from database", err, nil)
		return nil, err
	}
	return posts, nil
}

func (r *blogRepository) CountPublic() (int64, error) {
	var count int64
	err := r.db.Model(&model.BlogPost{}).Where("is_public = ?", true).Count(&count).Error
	return count, err
}

func (r *blogRepository) Update(post *model.BlogPost) error {
	if err := r.db.Save(post).Error; err != nil {
		logger.Error("Failed to update blog post in database", err, map[string]interface{}{
			"post_id": post.ID,
		})
		return err
	}
	return nil
}

func (r *blogRepository) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.BlogPost{})
	if result.Error != nil {
		logger.Error("Failed to delete blog post from database", result.Error, map[string]interface{}{
			"post_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
