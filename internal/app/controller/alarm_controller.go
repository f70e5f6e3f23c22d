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

type AlarmController struct {
	alarmService service.AlarmService
}

func NewAlarmController(alarmService service.AlarmService) *AlarmController {
	return &AlarmController{alarmService: alarmService}
}

type CreateAlarmRequest struct {
	Title      string  `json:"title" binding:"required"`
	Time       string  `json:"time" binding:"required"`
	DaysOfWeek []int64 `json:"days_of_week"`
	Sound      string  `json:"sound"`
	IsActive   *bool   `json:"is_active"`
}

type UpdateAlarmRequest struct {
	Title      *string  `json:"title"`
	Time       *string  `json:"time"`
	DaysOfWeek *[]int64 `json:"days_of_week"`
	Sound      *string  `json:"sound"`
}

// CreateAlarm creates an alarm
// POST /api/v1/alarms
func (ctrl *AlarmController) CreateAlarm(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateAlarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	alarm := &model.Alarm{
		Title:      req.Title,
		Time:       req.Time,
		DaysOfWeek: req.DaysOfWeek,
		Sound:      req.Sound,
		IsActive:   true,
	}
	if req.IsActive != nil {
		alarm.IsActive = *req.IsActive
	}

	if err := ctrl.alarmService.CreateAlarm(userID, alarm); err != nil {
		if errors.Is(err, service.ErrInvalidAlarmTime) || errors.Is(err, service.ErrInvalidAlarmDay) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
			return
		}
		log.Error("Failed to create alarm", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create alarm")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"alarm": alarm})
}

// ListAlarms lists the user's alarms
// GET /api/v1/alarms
func (ctrl *AlarmController) ListAlarms(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	alarms, err := ctrl.alarmService.ListAlarms(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list alarms")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"alarms": alarms,
		"count":  len(alarms),
	})
}

// GetAlarm returns a single alarm
// GET /api/v1/alarms/:id
func (ctrl *AlarmController) GetAlarm(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	alarm, err := ctrl.alarmService.GetAlarm(id, userID)
	if err != nil {
		if errors.Is(err, service.ErrAlarmNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Alarm not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get alarm")
		return
	}

	c.JSON(http.StatusOK, gin.H{"alarm": alarm})
}

// UpdateAlarm updates an alarm
// PUT /api/v1/alarms/:id
func (ctrl *AlarmController) UpdateAlarm(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateAlarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	alarm, err := ctrl.alarmService.UpdateAlarm(id, userID, service.UpdateAlarmInput{
		Title:      req.Title,
		Time:       req.Time,
		DaysOfWeek: req.DaysOfWeek,
		Sound:      req.Sound,
	})
	if err != nil {
		if errors.Is(err, service.ErrAlarmNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Alarm not found")
			return
		}
		if errors.Is(err, service.ErrInvalidAlarmTime) || errors.Is(err, service.ErrInvalidAlarmDay) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update alarm")
		return
	}

	c.JSON(http.StatusOK, gin.H{"alarm": alarm})
}

// ToggleAlarm flips an alarm between active and inactive
// PUT /api/v1/alarms/:id/toggle
func (ctrl *AlarmController) ToggleAlarm(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	alarm, err := ctrl.alarmService.ToggleAlarm(id, userID)
	if err != nil {
		if errors.Is(err, service.ErrAlarmNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Alarm not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update alarm")
		return
	}

	c.JSON(http.StatusOK, gin.H{"alarm": alarm})
}

// DeleteAlarm deletes an alarm
// DELETE /api/v1/alarms/:id
func (ctrl *AlarmController) DeleteAlarm(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.alarmService.DeleteAlarm(id, userID); err != nil {
		if errors.Is(err, service.ErrAlarmNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Alarm not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete alarm")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Alarm deleted successfully"})
}

// Upcoming returns each active alarm with its next firing time
// GET /api/v1/alarms/upcoming
func (ctrl *AlarmController) Upcoming(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	upcoming, err := ctrl.alarmService.Upcoming(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "upcoming alarms")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"upcoming": upcoming,
		"count":    len(upcoming),
	})
}

// Stats returns alarm statistics
// GET /api/v1/alarms/stats
func (ctrl *AlarmController) Stats(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	stats, err := ctrl.alarmService.Stats(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "alarm stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}
