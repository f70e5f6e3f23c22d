package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/edudesk/edudesk-backend/internal/app/model"
	"github.com/edudesk/edudesk-backend/internal/app/service"
	apperrors "github.com/edudesk/edudesk-backend/internal/errors"
	"github.com/edudesk/edudesk-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type GoalController struct {
	goalService service.GoalService
}

func NewGoalController(goalService service.GoalService) *GoalController {
	return &GoalController{goalService: goalService}
}

type CreateGoalRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	TargetDate  *time.Time `json:"target_date"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
	Progress    int        `json:"progress"`
}

type UpdateGoalRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	TargetDate  *time.Time `json:"target_date"`
	Priority    *string    `json:"priority"`
	Status      *string    `json:"status"`
	Category    *string    `json:"category"`
}

type UpdateProgressRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

// CreateGoal creates a goal
// POST /api/v1/goals
func (ctrl *GoalController) CreateGoal(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	goal := &model.Goal{
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  req.TargetDate,
		Priority:    req.Priority,
		Category:    req.Category,
		Progress:    req.Progress,
	}

	if err := ctrl.goalService.CreateGoal(userID, goal); err != nil {
		log.Error("Failed to create goal", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create goal")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// ListGoals lists goals, optionally filtered by ?status=&category=
// GET /api/v1/goals
func (ctrl *GoalController) ListGoals(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	goals, err := ctrl.goalService.ListGoals(userID, c.Query("status"), c.Query("category"))
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list goals")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"goals": goals,
		"count": len(goals),
	})
}

// GetGoal returns a single goal
// GET /api/v1/goals/:id
func (ctrl *GoalController) GetGoal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	goal, err := ctrl.goalService.GetGoal(id, userID)
	if err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Goal not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get goal")
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// UpdateGoal updates a goal
// PUT /api/v1/goals/:id
func (ctrl *GoalController) UpdateGoal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	goal, err := ctrl.goalService.UpdateGoal(id, userID, service.UpdateGoalInput{
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  req.TargetDate,
		Priority:    req.Priority,
		Status:      req.Status,
		Category:    req.Category,
	})
	if err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Goal not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update goal")
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// UpdateProgress sets goal progress, completing the goal at 100
// PUT /api/v1/goals/:id/progress
func (ctrl *GoalController) UpdateProgress(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Progress == nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	goal, err := ctrl.goalService.UpdateProgress(id, userID, *req.Progress)
	if err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Goal not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update goal")
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal deletes a goal
// DELETE /api/v1/goals/:id
func (ctrl *GoalController) DeleteGoal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.goalService.DeleteGoal(id, userID); err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Goal not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete goal")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully"})
}

// Stats returns goal statistics
// GET /api/v1/goals/stats
func (ctrl *GoalController) Stats(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	stats, err := ctrl.goalService.Stats(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "goal stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Categories lists the distinct goal categories in use
// GET /api/v1/goals/categories
func (ctrl *GoalController) Categories(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	categories, err := ctrl.goalService.Categories(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "goal categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
