package service

import (
	"errors"
	"sort"
	"time"

	"github.com/edudesk/edudesk-backend/internal/app/model"
	"github.com/edudesk/edudesk-backend/internal/app/repository"
	"github.com/edudesk/edudesk-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrAlarmNotFound    = errors.New("alarm not found")
	ErrInvalidAlarmTime = errors.New("time must be in HH:MM format")
	ErrInvalidAlarmDay  = errors.New("days of week must be between 0 and 6")
)

type AlarmStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// UpcomingAlarm pairs an alarm with its next firing time
type UpcomingAlarm struct {
	Alarm    model.Alarm `json:"alarm"`
	NextRing time.Time   `json:"next_ring"`
}

type UpdateAlarmInput struct {
	Title      *string
	Time       *string
	DaysOfWeek *[]int64
	Sound      *string
}

type AlarmService interface {
	CreateAlarm(userID uint, alarm *model.Alarm) error
	GetAlarm(id, userID uint) (*model.Alarm, error)
	ListAlarms(userID uint) ([]model.Alarm, error)
	UpdateAlarm(id, userID uint, input UpdateAlarmInput) (*model.Alarm, error)
	ToggleAlarm(id, userID uint) (*model.Alarm, error)
	DeleteAlarm(id, userID uint) error
	Upcoming(userID uint) ([]UpcomingAlarm, error)
	Stats(userID uint) (*AlarmStats, error)
}

type alarmService struct {
	alarmRepo repository.AlarmRepository
}

func NewAlarmService(alarmRepo repository.AlarmRepository) AlarmService {
	return &alarmService{alarmRepo: alarmRepo}
}

func (s *alarmService) CreateAlarm(userID uint, alarm *model.Alarm) error {
	if err := validateAlarm(alarm.Time, alarm.DaysOfWeek); err != nil {
		return err
	}

	alarm.UserID = userID
	if err := s.alarmRepo.Create(alarm); err != nil {
		return err
	}

	logger.Info("Alarm created", map[string]interface{}{
		"user_id":  userID,
		"alarm_id": alarm.ID,
		"time":     alarm.Time,
	})
	return nil
}

func (s *alarmService) GetAlarm(id, userID uint) (*model.Alarm, error) {
	alarm, err := s.alarmRepo.FindByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlarmNotFound
		}
		return nil, err
	}
	return alarm, nil
}

func (s *alarmService) ListAlarms(userID uint) ([]model.Alarm, error) {
	return s.alarmRepo.FindByUser(userID)
}

func (s *alarmService) UpdateAlarm(id, userID uint, input UpdateAlarmInput) (*model.Alarm, error) {
	alarm, err := s.alarmRepo.FindByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlarmNotFound
		}
		return nil, err
	}

	if input.Title != nil {
		alarm.Title = *input.Title
	}
	if input.Time != nil {
		alarm.Time = *input.Time
	}
	if input.DaysOfWeek != nil {
		alarm.DaysOfWeek = *input.DaysOfWeek
	}
	if input.Sound != nil {
		alarm.Sound = *input.Sound
	}

	if err := validateAlarm(alarm.Time, alarm.DaysOfWeek); err != nil {
		return nil, err
	}

	if err := s.alarmRepo.Update(alarm); err != nil {
		return nil, err
	}
	return alarm, nil
}

func (s *alarmService) ToggleAlarm(id, userID uint) (*model.Alarm, error) {
	alarm, err := s.alarmRepo.FindByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlarmNotFound
		}
		return nil, err
	}

	alarm.IsActive = !alarm.IsActive
	if err := s.alarmRepo.Update(alarm); err != nil {
		return nil, err
	}

	logger.Info("Alarm toggled", map[string]interface{}{
		"user_id":   userID,
		"alarm_id":  alarm.ID,
		"is_active": alarm.IsActive,
	})
	return alarm, nil
}

func (s *alarmService) DeleteAlarm(id, userID uint) error {
	if err := s.alarmRepo.Delete(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAlarmNotFound
		}
		return err
	}
	return nil
}

// Upcoming returns the next firing time of each active alarm, soonest first
func (s *alarmService) Upcoming(userID uint) ([]UpcomingAlarm, error) {
	alarms, err := s.alarmRepo.FindActiveByUser(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	upcoming := []UpcomingAlarm{}
	for _, alarm := range alarms {
		next, ok := nextRing(alarm, now)
		if !ok {
			continue
		}
		upcoming = append(upcoming, UpcomingAlarm{Alarm: alarm, NextRing: next})
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].NextRing.Before(upcoming[j].NextRing)
	})
	return upcoming, nil
}

func (s *alarmService) Stats(userID uint) (*AlarmStats, error) {
	alarms, err := s.alarmRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	stats := &AlarmStats{Total: len(alarms)}
	for _, alarm := range alarms {
		if alarm.IsActive {
			stats.Active++
		} else {
			stats.Inactive++
		}
	}
	return stats, nil
}

// nextRing finds the first time at or after now that matches the alarm's
// HH:MM and weekday schedule. Empty DaysOfWeek means every day.
func nextRing(alarm model.Alarm, now time.Time) (time.Time, bool) {
	parsed, err := time.Parse("15:04", alarm.Time)
	if err != nil {
		return time.Time{}, false
	}

	days := make(map[int64]bool, len(alarm.DaysOfWeek))
	for _, d := range alarm.DaysOfWeek {
		days[d] = true
	}

	for offset := 0; offset < 8; offset++ {
		day := now.AddDate(0, 0, offset)
		candidate := time.Date(day.Year(), day.Month(), day.Day(),
			parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
		if candidate.Before(now) {
			continue
		}
		if len(days) == 0 || days[mondayWeekday(candidate)] {
			return candidate, true
		}
	}
	return time.Time{}, false
}

// mondayWeekday maps time.Weekday to the 0=Monday .. 6=Sunday convention
func mondayWeekday(t time.Time) int64 {
	return int64((int(t.Weekday()) + 6) % 7)
}

func validateAlarm(timeStr string, days []int64) error {
	if _, err := time.Parse("15:04", timeStr); err != nil {
		return ErrInvalidAlarmTime
	}
	for _, d := range days {
		if d < 0 || d > 6 {
			return ErrInvalidAlarmDay
		}
	}
	return nil
}
