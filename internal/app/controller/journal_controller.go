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

type JournalController struct {
	journalService service.JournalService
}

func NewJournalController(journalService service.JournalService) *JournalController {
	return &JournalController{journalService: journalService}
}

type CreateJournalRequest struct {
	Content string `json:"content" binding:"required"`
	Mood    string `json:"mood"`
}

type UpdateJournalRequest struct {
	Content *string `json:"content"`
	Mood    *string `json:"mood"`
}

// CreateEntry writes a journal entry
// POST /api/v1/journal
func (ctrl *JournalController) CreateEntry(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	entry := &model.JournalEntry{
		Content: req.Content,
		Mood:    req.Mood,
	}

	if err := ctrl.journalService.CreateEntry(userID, entry); err != nil {
		if errors.Is(err, service.ErrEmptyContent) {
			apperrors.BadRequest(c, apperrors.ValidationRequired, err.Error())
			return
		}
		log.Error("Failed to create journal entry", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create journal")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// ListEntries lists journal entries, newest first
// GET /api/v1/journal
func (ctrl *JournalController) ListEntries(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	limit := parseIntQuery(c, "limit", 0)
	offset := parseIntQuery(c, "offset", 0)

	entries, err := ctrl.journalService.ListEntries(userID, limit, offset)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list journal")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

// SearchEntries searches journal content
// GET /api/v1/journal/search?q=
func (ctrl *JournalController) SearchEntries(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entries, err := ctrl.journalService.SearchEntries(userID, c.Query("q"))
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "search journal")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

// GetEntry returns a single journal entry
// GET /api/v1/journal/:id
func (ctrl *JournalController) GetEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	entry, err := ctrl.journalService.GetEntry(id, userID)
	if err != nil {
		if errors.Is(err, service.ErrJournalNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Journal entry not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get journal")
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// UpdateEntry updates a journal entry
// PUT /api/v1/journal/:id
func (ctrl *JournalController) UpdateEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	entry, err := ctrl.journalService.UpdateEntry(id, userID, service.UpdateJournalInput{
		Content: req.Content,
		Mood:    req.Mood,
	})
	if err != nil {
		if errors.Is(err, service.ErrJournalNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Journal entry not found")
			return
		}
		if errors.Is(err, service.ErrEmptyContent) {
			apperrors.BadRequest(c, apperrors.ValidationRequired, err.Error())
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update journal")
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// DeleteEntry deletes a journal entry
// DELETE /api/v1/journal/:id
func (ctrl *JournalController) DeleteEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.journalService.DeleteEntry(id, userID); err != nil {
		if errors.Is(err, service.ErrJournalNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Journal entry not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete journal")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Journal entry deleted successfully"})
}

// Stats returns journal statistics
// GET /api/v1/journal/stats
func (ctrl *JournalController) Stats(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	stats, err := ctrl.journalService.Stats(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "journal stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}
