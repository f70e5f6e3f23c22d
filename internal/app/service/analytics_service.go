package service

import (
	"fmt"
	"time"

	"github.com/edudesk/edudesk-backend/internal/app/repository"
	"github.com/edudesk/edudesk-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// Dashboard is the aggregate view the frontend landing page renders
type Dashboard struct {
	TotalGoals         int64   `json:"total_goals"`
	GoalCompletionRate float64 `json:"goal_completion_rate"`
	TotalStudyMinutes  int     `json:"total_study_minutes"`
	StudyMinutes7d     int     `json:"study_minutes_7d"`
	JournalEntries     int64   `json:"journal_entries"`
	MoodEntries7d      int     `json:"mood_entries_7d"`
	AverageMood7d      float64 `json:"average_mood_7d"`
	UpcomingEvents7d   int     `json:"upcoming_events_7d"`
}

// DailyProductivity is one day in the productivity series
type DailyProductivity struct {
	Date         string  `json:"date"` // YYYY-MM-DD
	StudyMinutes int     `json:"study_minutes"`
	AverageMood  float64 `json:"average_mood"` // 0 when no entries
	MoodEntries  int     `json:"mood_entries"`
}

type AnalyticsService interface {
	Dashboard(userID uint) (*Dashboard, error)
	Productivity(userID uint, days int) ([]DailyProductivity, error)
	Export(userID uint) (*excelize.File, error)
}

type analyticsService struct {
	goalService  GoalService
	studyService StudyService
	journalRepo  repository.JournalRepository
	moodRepo     repository.MoodRepository
	studyRepo    repository.StudyRepository
	calendarRepo repository.CalendarRepository
}

func NewAnalyticsService(
	goalService GoalService,
	studyService StudyService,
	journalRepo repository.JournalRepository,
	moodRepo repository.MoodRepository,
	studyRepo repository.StudyRepository,
	calendarRepo repository.CalendarRepository,
) AnalyticsService {
	return &analyticsService{
		goalService:  goalService,
		studyService: studyService,
		journalRepo:  journalRepo,
		moodRepo:     moodRepo,
		studyRepo:    studyRepo,
		calendarRepo: calendarRepo,
	}
}

func (s *analyticsService) Dashboard(userID uint) (*Dashboard, error) {
	goalStats, err := s.goalService.Stats(userID)
	if err != nil {
		return nil, err
	}
	studyStats, err := s.studyService.Stats(userID)
	if err != nil {
		return nil, err
	}
	journalCount, err := s.journalRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)

	moods, err := s.moodRepo.FindSince(userID, weekAgo)
	if err != nil {
		return nil, err
	}
	moodSum := 0
	for _, entry := range moods {
		moodSum += entry.MoodLevel
	}
	averageMood := 0.0
	if len(moods) > 0 {
		averageMood = float64(moodSum) / float64(len(moods))
	}

	weekAhead := now.AddDate(0, 0, 7)
	events, err := s.calendarRepo.FindByDateRange(userID, now, weekAhead)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		TotalGoals:         goalStats.Total,
		GoalCompletionRate: goalStats.CompletionRate,
		TotalStudyMinutes:  studyStats.TotalMinutes,
		StudyMinutes7d:     studyStats.Last7DaysMinutes,
		JournalEntries:     journalCount,
		MoodEntries7d:      len(moods),
		AverageMood7d:      averageMood,
		UpcomingEvents7d:   len(events),
	}, nil
}

// Productivity builds a day-by-day series of study minutes and mood over a
// trailing window. Every day appears, including empty ones.
func (s *analyticsService) Productivity(userID uint, days int) ([]DailyProductivity, error) {
	if days <= 0 {
		days = 30
	}

	now := time.Now()
	since := now.AddDate(0, 0, -(days - 1))
	startOfWindow := time.Date(since.Year(), since.Month(), since.Day(), 0, 0, 0, 0, since.Location())

	sessions, err := s.studyRepo.FindSince(userID, startOfWindow)
	if err != nil {
		return nil, err
	}
	moods, err := s.moodRepo.FindSince(userID, startOfWindow)
	if err != nil {
		return nil, err
	}

	minutesByDay := make(map[string]int)
	for _, session := range sessions {
		minutesByDay[session.CreatedAt.Format("2006-01-02")] += session.DurationMinutes
	}

	type moodAgg struct {
		sum   int
		count int
	}
	moodByDay := make(map[string]*moodAgg)
	for _, entry := range moods {
		day := entry.CreatedAt.Format("2006-01-02")
		agg, ok := moodByDay[day]
		if !ok {
			agg = &moodAgg{}
			moodByDay[day] = agg
		}
		agg.sum += entry.MoodLevel
		agg.count++
	}

	series := make([]DailyProductivity, 0, days)
	for d := 0; d < days; d++ {
		day := startOfWindow.AddDate(0, 0, d).Format("2006-01-02")
		point := DailyProductivity{
			Date:         day,
			StudyMinutes: minutesByDay[day],
		}
		if agg, ok := moodByDay[day]; ok {
			point.AverageMood = float64(agg.sum) / float64(agg.count)
			point.MoodEntries = agg.count
		}
		series = append(series, point)
	}
	return series, nil
}

// Export builds an xlsx workbook with the user's study sessions and mood
// entries. The caller streams the file to the client.
func (s *analyticsService) Export(userID uint) (*excelize.File, error) {
	f := excelize.NewFile()

	sessions, err := s.studyRepo.FindByUser(userID, 0, 0)
	if err != nil {
		return nil, err
	}

	studySheet := "Study Sessions"
	f.SetSheetName(f.GetSheetName(0), studySheet)
	studyHeaders := []string{"Date", "Subject", "Duration (min)", "Type", "Notes"}
	for i, header := range studyHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(studySheet, cell, header)
	}
	for row, session := range sessions {
		values := []interface{}{
			session.CreatedAt.Format("2006-01-02 15:04"),
			session.Subject,
			session.DurationMinutes,
			session.SessionType,
			session.Notes,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(studySheet, cell, value)
		}
	}

	moods, err := s.moodRepo.FindByUser(userID, 0, 0)
	if err != nil {
		return nil, err
	}

	moodSheet := "Mood Entries"
	if _, err := f.NewSheet(moodSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	moodHeaders := []string{"Date", "Mood", "Level", "Notes"}
	for i, header := range moodHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(moodSheet, cell, header)
	}
	for row, entry := range moods {
		values := []interface{}{
			entry.CreatedAt.Format("2006-01-02 15:04"),
			entry.Mood,
			entry.MoodLevel,
			entry.Notes,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(moodSheet, cell, value)
		}
	}

	logger.Info("Analytics export generated", map[string]interface{}{
		"user_id":    userID,
		"study_rows": len(sessions),
		"mood_rows":  len(moods),
	})
	return f, nil
}
