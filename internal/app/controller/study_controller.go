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

type StudyController struct {
	studyService service.StudyService
}

func NewStudyController(studyService service.StudyService) *StudyController {
	return &StudyController{studyService: studyService}
}

type CreateSessionRequest struct {
	Subject         string `json:"subject" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
	SessionType     string `json:"session_type"`
	Notes           string `json:"notes"`
}

type UpdateSessionRequest struct {
	Subject         *string `json:"subject"`
	DurationMinutes *int    `json:"duration_minutes"`
	SessionType     *string `json:"session_type"`
	Notes           *string `json:"notes"`
}

// CreateSession records a study session
// POST /api/v1/study
func (ctrl *StudyController) CreateSession(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	session := &model.StudySession{
		Subject:         req.Subject,
		DurationMinutes: req.DurationMinutes,
		SessionType:     req.SessionType,
		Notes:           req.Notes,
	}

	if err := ctrl.studyService.CreateSession(userID, session); err != nil {
		if errors.Is(err, service.ErrInvalidDuration) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
			return
		}
		log.Error("Failed to create study session", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create study session")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// ListSessions lists study sessions, newest first
// GET /api/v1/study
func (ctrl *StudyController) ListSessions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	limit := parseIntQuery(c, "limit", 0)
	offset := parseIntQuery(c, "offset", 0)

	sessions, err := ctrl.studyService.ListSessions(userID, limit, offset)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list study sessions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// GetSession returns a single study session
// GET /api/v1/study/:id
func (ctrl *StudyController) GetSession(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	session, err := ctrl.studyService.GetSession(id, userID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Study session not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get study session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

// UpdateSession updates a study session
// PUT /api/v1/study/:id
func (ctrl *StudyController) UpdateSession(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	session, err := ctrl.studyService.UpdateSession(id, userID, service.UpdateSessionInput{
		Subject:         req.Subject,
		DurationMinutes: req.DurationMinutes,
		SessionType:     req.SessionType,
		Notes:           req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Study session not found")
			return
		}
		if errors.Is(err, service.ErrInvalidDuration) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update study session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

// DeleteSession deletes a study session
// DELETE /api/v1/study/:id
func (ctrl *StudyController) DeleteSession(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.studyService.DeleteSession(id, userID); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Study session not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete study session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Study session deleted successfully"})
}

// Stats returns aggregate study statistics
// GET /api/v1/study/stats
func (ctrl *StudyController) Stats(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	stats, err := ctrl.studyService.Stats(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "study stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}
