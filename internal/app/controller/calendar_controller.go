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

type CalendarController struct {
	calendarService service.CalendarService
}

func NewCalendarController(calendarService service.CalendarService) *CalendarController {
	return &CalendarController{calendarService: calendarService}
}

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	AllDay      bool      `json:"all_day"`
	Color       string    `json:"color"`
	Recurrence  string    `json:"recurrence"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	AllDay      *bool      `json:"all_day"`
	Color       *string    `json:"color"`
	Recurrence  *string    `json:"recurrence"`
}

// CreateEvent creates a calendar event
// POST /api/v1/calendar/events
func (ctrl *CalendarController) CreateEvent(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	event := &model.CalendarEvent{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		AllDay:      req.AllDay,
		Color:       req.Color,
		Recurrence:  req.Recurrence,
	}

	if err := ctrl.calendarService.CreateEvent(userID, event); err != nil {
		if errors.Is(err, service.ErrInvalidTimeRange) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
			return
		}
		log.Error("Failed to create calendar event", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create event")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// ListEvents lists events, optionally filtered by ?start=&end=
// GET /api/v1/calendar/events
func (ctrl *CalendarController) ListEvents(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	start, err := parseTimeQuery(c, "start")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidDate, "Invalid start date")
		return
	}
	end, err := parseTimeQuery(c, "end")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidDate, "Invalid end date")
		return
	}

	events, err := ctrl.calendarService.ListEvents(userID, start, end)
	if err != nil {
		log.Error("Failed to list calendar events", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list events")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}

// SearchEvents searches events by title and description
// GET /api/v1/calendar/events/search?q=
func (ctrl *CalendarController) SearchEvents(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	events, err := ctrl.calendarService.SearchEvents(userID, c.Query("q"))
	if err != nil {
		log.Error("Failed to search calendar events", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "search events")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}

// GetEvent returns a single event
// GET /api/v1/calendar/events/:id
func (ctrl *CalendarController) GetEvent(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	event, err := ctrl.calendarService.GetEvent(id, userID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Event not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get event")
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// UpdateEvent updates an event
// PUT /api/v1/calendar/events/:id
func (ctrl *CalendarController) UpdateEvent(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	event, err := ctrl.calendarService.UpdateEvent(id, userID, service.UpdateEventInput{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		AllDay:      req.AllDay,
		Color:       req.Color,
		Recurrence:  req.Recurrence,
	})
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Event not found")
			return
		}
		if errors.Is(err, service.ErrInvalidTimeRange) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
			return
		}
		log.Error("Failed to update calendar event", err, map[string]interface{}{
			"user_id":  userID,
			"event_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update event")
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// DeleteEvent deletes an event
// DELETE /api/v1/calendar/events/:id
func (ctrl *CalendarController) DeleteEvent(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.calendarService.DeleteEvent(id, userID); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Event not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete event")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
