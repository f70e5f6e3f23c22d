package service

import (
	"errors"
	"time"

	"github.com/edudesk/edudesk-backend/internal/app/model"
	"github.com/edudesk/edudesk-backend/internal/app/repository"
	"github.com/edudesk/edudesk-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrMoodNotFound     = errors.New("mood entry not found")
	ErrInvalidMoodLevel = errors.New("mood level must be between 1 and 10")
)

// MoodAnalytics aggregates entries over a trailing window
type MoodAnalytics struct {
	Days         int            `json:"days"`
	EntryCount   int            `json:"entry_count"`
	AverageLevel float64        `json:"average_level"`
	Distribution map[string]int `json:"distribution"`
	DailySeries  []DailyMood    `json:"daily_series"`
}

type DailyMood struct {
	Date         string  `json:"date"` // YYYY-MM-DD
	AverageLevel float64 `json:"average_level"`
	EntryCount   int     `json:"entry_count"`
}

type UpdateMoodInput struct {
	Mood      *string
	MoodLevel *int
	Notes     *string
}

type MoodService interface {
	CreateEntry(userID uint, entry *model.MoodEntry) error
	GetEntry(id, userID uint) (*model.MoodEntry, error)
	ListEntries(userID uint, limit, offset int) ([]model.MoodEntry, error)
	UpdateEntry(id, userID uint, input UpdateMoodInput) (*model.MoodEntry, error)
	DeleteEntry(id, userID uint) error
	Analytics(userID uint, days int) (*MoodAnalytics, error)
	Today(userID uint) ([]model.MoodEntry, error)
	Streak(userID uint) (int, error)
}

type moodService struct {
	moodRepo repository.MoodRepository
}

func NewMoodService(moodRepo repository.MoodRepository) MoodService {
	return &moodService{moodRepo: moodRepo}
}

func (s *moodService) CreateEntry(userID uint, entry *model.MoodEntry) error {
	if entry.MoodLevel < 1 || entry.MoodLevel > 10 {
		return ErrInvalidMoodLevel
	}

	entry.UserID = userID
	if err := s.moodRepo.Create(entry); err != nil {
		return err
	}

	logger.Info("Mood entry created", map[string]interface{}{
		"user_id":  userID,
		"entry_id": entry.ID,
		"mood":     entry.Mood,
	})
	return nil
}

func (s *moodService) GetEntry(id, userID uint) (*model.MoodEntry, error) {
	entry, err := s.moodRepo.FindByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMoodNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (s *moodService) ListEntries(userID uint, limit, offset int) ([]model.MoodEntry, error) {
	return s.moodRepo.FindByUser(userID, limit, offset)
}

func (s *moodService) UpdateEntry(id, userID uint, input UpdateMoodInput) (*model.MoodEntry, error) {
	entry, err := s.moodRepo.FindByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMoodNotFound
		}
		return nil, err
	}

	if input.Mood != nil {
		entry.Mood = *input.Mood
	}
	if input.MoodLevel != nil {
		if *input.MoodLevel < 1 || *input.MoodLevel > 10 {
			return nil, ErrInvalidMoodLevel
		}
		entry.MoodLevel = *input.MoodLevel
	}
	if input.Notes != nil {
		entry.Notes = *input.Notes
	}

	if err := s.moodRepo.Update(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *moodService) DeleteEntry(id, userID uint) error {
	if err := s.moodRepo.Delete(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMoodNotFound
		}
		return err
	}
	return nil
}

func (s *moodService) Analytics(userID uint, days int) (*MoodAnalytics, error) {
	if days <= 0 {
		days = 30
	}

	since := time.Now().AddDate(0, 0, -days)
	entries, err := s.moodRepo.FindSince(userID, since)
	if err != nil {
		return nil, err
	}

	analytics := &MoodAnalytics{
		Days:         days,
		EntryCount:   len(entries),
		Distribution: make(map[string]int),
		DailySeries:  []DailyMood{},
	}
	if len(entries) == 0 {
		return analytics, nil
	}

	levelSum := 0
	type dayAgg struct {
		sum   int
		count int
	}
	byDay := make(map[string]*dayAgg)

	for _, entry := range entries {
		levelSum += entry.MoodLevel
		analytics.Distribution[entry.Mood]++

		day := entry.CreatedAt.Format("2006-01-02")
		agg, ok := byDay[day]
		if !ok {
			agg = &dayAgg{}
			byDay[day] = agg
		}
		agg.sum += entry.MoodLevel
		agg.count++
	}

	analytics.AverageLevel = float64(levelSum) / float64(len(entries))

	// Oldest day first
	for d := 0; d <= days; d++ {
		day := since.AddDate(0, 0, d).Format("2006-01-02")
		if agg, ok := byDay[day]; ok {
			analytics.DailySeries = append(analytics.DailySeries, DailyMood{
				Date:         day,
				AverageLevel: float64(agg.sum) / float64(agg.count),
				EntryCount:   agg.count,
			})
		}
	}

	return analytics, nil
}

func (s *moodService) Today(userID uint) ([]model.MoodEntry, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.moodRepo.FindSince(userID, startOfDay)
}

// Streak counts consecutive days with at least one entry, ending today or
// yesterday (today not yet logged does not break the streak).
func (s *moodService) Streak(userID uint) (int, error) {
	// A year back is plenty for a daily-habit streak
	since := time.Now().AddDate(-1, 0, 0)
	entries, err := s.moodRepo.FindSince(userID, since)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}

	loggedDays := make(map[string]bool)
	for _, entry := range entries {
		loggedDays[entry.CreatedAt.Format("2006-01-02")] = true
	}

	now := time.Now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !loggedDays[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for loggedDays[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak, nil
}
