package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/edudesk/edudesk-backend/internal/app/model"
	"github.com/edudesk/edudesk-backend/internal/app/repository"
	"github.com/edudesk/edudesk-backend/pkg/logger"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var ErrPostNotFound = errors.New("post not found")

type BlogStats struct {
	TotalPosts  int `json:"total_posts"`
	PublicPosts int `json:"public_posts"`
	DraftPosts  int `json:"draft_posts"`
	TagCount    int `json:"tag_count"`
}

type UpdatePostInput struct {
	Title    *string
	Content  *string
	Tags     *[]string
	IsPublic *bool
}

type BlogService interface {
	CreatePost(userID uint, post *model.BlogPost) error
	GetPost(id, userID uint) (*model.BlogPost, error)
	ListPosts(userID uint) ([]model.BlogPost, error)
	ListPublicPosts(limit, offset int) ([]model.BlogPost, int64, error)
	UpdatePost(id, userID uint, input UpdatePostInput) (*model.BlogPost, error)
	TogglePublish(id, userID uint) (*model.BlogPost, error)
	DeletePost(id, userID uint) error
	Tags(userID uint) ([]string, error)
	Stats(userID uint) (*BlogStats, error)
}

type blogService struct {
	blogRepo repository.BlogRepository
}

func NewBlogService(blogRepo repository.BlogRepository) BlogService {
	return &blogService{blogRepo: blogRepo}
}

func (s *blogService) CreatePost(userID uint, post *model.BlogPost) error {
	post.UserID = userID
	post.Tags = normalizeTags(post.Tags)

	if err := s.blogRepo.Create(post); err != nil {
		return err
	}

	logger.Info("Blog post created", map[string]interface{}{
		"user_id": userID,
		"post_id": post.ID,
	})
	return nil
}

func (s *blogService) GetPost(id, userID uint) (*model.BlogPost, error) {
	post, err := s.blogRepo.FindByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *blogService) ListPosts(userID uint) ([]model.BlogPost, error) {
	return s.blogRepo.FindByUser(userID)
}

func (s *blogService) ListPublicPosts(limit, offset int) ([]model.BlogPost, int64, error) {
	posts, err := s.blogRepo.FindPublic(limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.blogRepo.CountPublic()
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *blogService) UpdatePost(id, userID uint, input UpdatePostInput) (*model.BlogPost, error) {
	post, err := s.blogRepo.FindByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Tags != nil {
		post.Tags = normalizeTags(*input.Tags)
	}
	if input.IsPublic != nil {
		post.IsPublic = *input.IsPublic
	}

	if err := s.blogRepo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *blogService) TogglePublish(id, userID uint) (*model.BlogPost, error) {
	post, err := s.blogRepo.FindByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	post.IsPublic = !post.IsPublic
	if err := s.blogRepo.Update(post); err != nil {
		return nil, err
	}

	logger.Info("Blog post publish state toggled", map[string]interface{}{
		"user_id":   userID,
		"post_id":   post.ID,
		"is_public": post.IsPublic,
	})
	return post, nil
}

func (s *blogService) DeletePost(id, userID uint) error {
	if err := s.blogRepo.Delete(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

// Tags returns the distinct tags across the user's posts, sorted
func (s *blogService) Tags(userID uint) ([]string, error) {
	posts, err := s.blogRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	tags := []string{}
	for _, post := range posts {
		for _, tag := range post.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

func (s *blogService) Stats(userID uint) (*BlogStats, error) {
	posts, err := s.blogRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	stats := &BlogStats{TotalPosts: len(posts)}
	seen := make(map[string]bool)
	for _, post := range posts {
		if post.IsPublic {
			stats.PublicPosts++
		} else {
			stats.DraftPosts++
		}
		for _, tag := range post.Tags {
			seen[tag] = true
		}
	}
	stats.TagCount = len(seen)
	return stats, nil
}

func normalizeTags(tags pq.StringArray) pq.StringArray {
	normalized := pq.StringArray{}
	seen := make(map[string]bool)
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		normalized = append(normalized, tag)
	}
	return normalized
}
