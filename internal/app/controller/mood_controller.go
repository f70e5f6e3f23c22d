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

type MoodController struct {
	moodService service.MoodService
}

func NewMoodController(moodService service.MoodService) *MoodController {
	return &MoodController{moodService: moodService}
}

type CreateMoodRequest struct {
	Mood      string `json:"mood" binding:"required"`
	MoodLevel int    `json:"mood_level" binding:"required"`
	Notes     string `json:"notes"`
}

type UpdateMoodRequest struct {
	Mood      *string `json:"mood"`
	MoodLevel *int    `json:"mood_level"`
	Notes     *string `json:"notes"`
}

// CreateEntry logs a mood entry
// POST /api/v1/mood
func (ctrl *MoodController) CreateEntry(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	entry := &model.MoodEntry{
		Mood:      req.Mood,
		MoodLevel: req.MoodLevel,
		Notes:     req.Notes,
	}

	if err := ctrl.moodService.CreateEntry(userID, entry); err != nil {
		if errors.Is(err, service.ErrInvalidMoodLevel) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
			return
		}
		log.Error("Failed to create mood entry", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create mood")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// ListEntries lists mood entries, newest first
// GET /api/v1/mood
func (ctrl *MoodController) ListEntries(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	limit := parseIntQuery(c, "limit", 0)
	offset := parseIntQuery(c, "offset", 0)

	entries, err := ctrl.moodService.ListEntries(userID, limit, offset)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list mood")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

// GetEntry returns a single mood entry
// GET /api/v1/mood/:id
func (ctrl *MoodController) GetEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	entry, err := ctrl.moodService.GetEntry(id, userID)
	if err != nil {
		if errors.Is(err, service.ErrMoodNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Mood entry not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get mood")
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// UpdateEntry updates a mood entry
// PUT /api/v1/mood/:id
func (ctrl *MoodController) UpdateEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	entry, err := ctrl.moodService.UpdateEntry(id, userID, service.UpdateMoodInput{
		Mood:      req.Mood,
		MoodLevel: req.MoodLevel,
		Notes:     req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrMoodNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Mood entry not found")
			return
		}
		if errors.Is(err, service.ErrInvalidMoodLevel) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update mood")
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// DeleteEntry deletes a mood entry
// DELETE /api/v1/mood/:id
func (ctrl *MoodController) DeleteEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.moodService.DeleteEntry(id, userID); err != nil {
		if errors.Is(err, service.ErrMoodNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Mood entry not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete mood")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mood entry deleted successfully"})
}

// Analytics returns aggregates over a trailing window
// GET /api/v1/mood/analytics?days=30
func (ctrl *MoodController) Analytics(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	days := parseIntQuery(c, "days", 30)
	analytics, err := ctrl.moodService.Analytics(userID, days)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "mood analytics")
		return
	}

	c.JSON(http.StatusOK, analytics)
}

// Today returns today's mood entries
// GET /api/v1/mood/today
func (ctrl *MoodController) Today(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entries, err := ctrl.moodService.Today(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "mood today")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

// Streak returns the consecutive-day logging streak
// GET /api/v1/mood/streak
func (ctrl *MoodController) Streak(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	streak, err := ctrl.moodService.Streak(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "mood streak")
		return
	}

	c.JSON(http.StatusOK, gin.H{"streak": streak})
}
