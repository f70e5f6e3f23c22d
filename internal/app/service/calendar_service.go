package service

import (
	"errors"
	"strings"
	"time"

	"github.com/edudesk/edudesk-backend/internal/app/model"
	"github.com/edudesk/edudesk-backend/internal/app/repository"
	"github.com/edudesk/edudesk-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrInvalidTimeRange = errors.New("end time must not be before start time")
)

// UpdateEventInput carries optional field updates; nil fields are left as-is
type UpdateEventInput struct {
	Title       *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	AllDay      *bool
	Color       *string
	Recurrence  *string
}

type CalendarService interface {
	CreateEvent(userID uint, event *model.CalendarEvent) error
	GetEvent(id, userID uint) (*model.CalendarEvent, error)
	ListEvents(userID uint, start, end *time.Time) ([]model.CalendarEvent, error)
	SearchEvents(userID uint, query string) ([]model.CalendarEvent, error)
	UpdateEvent(id, userID uint, input UpdateEventInput) (*model.CalendarEvent, error)
	DeleteEvent(id, userID uint) error
}

type calendarService struct {
	calendarRepo repository.CalendarRepository
}

func NewCalendarService(calendarRepo repository.CalendarRepository) CalendarService {
	return &calendarService{calendarRepo: calendarRepo}
}

func (s *calendarService) CreateEvent(userID uint, event *model.CalendarEvent) error {
	if event.EndTime.Before(event.StartTime) {
		return ErrInvalidTimeRange
	}

	event.UserID = userID
	if err := s.calendarRepo.Create(event); err != nil {
		return err
	}

	logger.Info("Calendar event created", map[string]interface{}{
		"user_id":  userID,
		"event_id": event.ID,
	})
	return nil
}

func (s *calendarService) GetEvent(id, userID uint) (*model.CalendarEvent, error) {
	event, err := s.calendarRepo.FindByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *calendarService) ListEvents(userID uint, start, end *time.Time) ([]model.CalendarEvent, error) {
	if start != nil && end != nil {
		return s.calendarRepo.FindByDateRange(userID, *start, *end)
	}
	return s.calendarRepo.FindByUser(userID)
}

func (s *calendarService) SearchEvents(userID uint, query string) ([]model.CalendarEvent, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.CalendarEvent{}, nil
	}
	return s.calendarRepo.Search(userID, query)
}

func (s *calendarService) UpdateEvent(id, userID uint, input UpdateEventInput) (*model.CalendarEvent, error) {
	event, err := s.calendarRepo.FindByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if input.Title != nil {
		event.Title = *input.Title
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.StartTime != nil {
		event.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		event.EndTime = *input.EndTime
	}
	if input.AllDay != nil {
		event.AllDay = *input.AllDay
	}
	if input.Color != nil {
		event.Color = *input.Color
	}
	if input.Recurrence != nil {
		event.Recurrence = *input.Recurrence
	}

	if event.EndTime.Before(event.StartTime) {
		return nil, ErrInvalidTimeRange
	}

	if err := s.calendarRepo.Update(event); err != nil {
		return nil, err
	}

	logger.Info("Calendar event updated", map[string]interface{}{
		"user_id":  userID,
		"event_id": event.ID,
	})
	return event, nil
}

func (s *calendarService) DeleteEvent(id, userID uint) error {
	if err := s.calendarRepo.Delete(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	logger.Info("Calendar event deleted", map[string]interface{}{
		"user_id":  userID,
		"event_id": id,
	})
	return nil
}
