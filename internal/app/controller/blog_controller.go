package controller

import (
	"errors"
	"net/http"

	"github.com/edudesk/edudesk-backend/internal/app/model"
	"github.com/edudesk/edudesk-backend/internal/app/service"
	apperrors "github.com/edudesk/edudesk-backend/internal/errors"
	"github.com/edudesk/edudesk-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type BlogController struct {
	blogService service.BlogService
}

func NewBlogController(blogService service.BlogService) *BlogController {
	return &BlogController{blogService: blogService}
}

type CreatePostRequest struct {
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content" binding:"required"`
	Tags     []string `json:"tags"`
	IsPublic bool     `json:"is_public"`
}

type UpdatePostRequest struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	IsPublic *bool     `json:"is_public"`
}

// CreatePost creates a blog post
// POST /api/v1/blog
func (ctrl *BlogController) CreatePost(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	post := &model.BlogPost{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		IsPublic: req.IsPublic,
	}

	if err := ctrl.blogService.CreatePost(userID, post); err != nil {
		log.Error("Failed to create blog post", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create post")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// ListPosts lists the user's own posts, drafts included
// GET /api/v1/blog
func (ctrl *BlogController) ListPosts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	posts, err := ctrl.blogService.ListPosts(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"count": len(posts),
	})
}

// ListPublicPosts lists published posts across all users
// GET /api/v1/blog/public
func (ctrl *BlogController) ListPublicPosts(c *gin.Context) {
	limit := parseIntQuery(c, "limit", 20)
	offset := parseIntQuery(c, "offset", 0)

	posts, total, err := ctrl.blogService.ListPublicPosts(limit, offset)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list public posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"total": total,
	})
}

// GetPost returns one of the user's posts
// GET /api/v1/blog/:id
func (ctrl *BlogController) GetPost(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	post, err := ctrl.blogService.GetPost(id, userID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Post not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// UpdatePost updates a blog post
// PUT /api/v1/blog/:id
func (ctrl *BlogController) UpdatePost(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	post, err := ctrl.blogService.UpdatePost(id, userID, service.UpdatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Post not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// TogglePublish flips a post between draft and published
// PUT /api/v1/blog/:id/publish
func (ctrl *BlogController) TogglePublish(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	post, err := ctrl.blogService.TogglePublish(id, userID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Post not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// DeletePost deletes a blog post
// DELETE /api/v1/blog/:id
func (ctrl *BlogController) DeletePost(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.blogService.DeletePost(id, userID); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Post not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// Tags lists the distinct tags across the user's posts
// GET /api/v1/blog/tags
func (ctrl *BlogController) Tags(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	tags, err := ctrl.blogService.Tags(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "blog tags")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// Stats returns blog statistics
// GET /api/v1/blog/stats
func (ctrl *BlogController) Stats(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	stats, err := ctrl.blogService.Stats(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "blog stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}
