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
	ErrSessionNotFound = errors.New("study session not found")
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")
)

type StudyStats struct {
	TotalMinutes     int            `json:"total_minutes"`
	SessionCount     int            `json:"session_count"`
	MinutesBySubject map[string]int `json:"minutes_by_subject"`
	Last7DaysMinutes int            `json:"last_7_days_minutes"`
}

type UpdateSessionInput struct {
	Subject         *string
	DurationMinutes *int
	SessionType     *string
	Notes           *string
}

type StudyService interface {
	CreateSession(userID uint, session *model.StudySession) error
	GetSession(id, userID uint) (*model.StudySession, error)
	ListSessions(userID uint, limit, offset int) ([]model.StudySession, error)
	UpdateSession(id, userID uint, input UpdateSessionInput) (*model.StudySession, error)
	DeleteSession(id, userID uint) error
	Stats(userID uint) (*StudyStats, error)
}

type studyService struct {
	studyRepo repository.StudyRepository
}

func NewStudyService(studyRepo repository.StudyRepository) StudyService {
	return &studyService{studyRepo: studyRepo}
}

func (s *studyService) CreateSession(userID uint, session *model.StudySession) error {
	if session.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}

	session.UserID = userID
	if err := s.studyRepo.Create(session); err != nil {
		return err
	}

	logger.Info("Study session created", map[string]interface{}{
		"user_id":    userID,
		"session_id": session.ID,
		"subject":    session.Subject,
		"minutes":    session.DurationMinutes,
	})
	return nil
}

func (s *studyService) GetSession(id, userID uint) (*model.StudySession, error) {
	session, err := s.studyRepo.FindByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *studyService) ListSessions(userID uint, limit, offset int) ([]model.StudySession, error) {
	return s.studyRepo.FindByUser(userID, limit, offset)
}

func (s *studyService) UpdateSession(id, userID uint, input UpdateSessionInput) (*model.StudySession, error) {
	session, err := s.studyRepo.FindByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if input.Subject != nil {
		session.Subject = *input.Subject
	}
	if input.DurationMinutes != nil {
		if *input.DurationMinutes <= 0 {
			return nil, ErrInvalidDuration
		}
		session.DurationMinutes = *input.DurationMinutes
	}
	if input.SessionType != nil {
		session.SessionType = *input.SessionType
	}
	if input.Notes != nil {
		session.Notes = *input.Notes
	}

	if err := s.studyRepo.Update(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *studyService) DeleteSession(id, userID uint) error {
	if err := s.studyRepo.Delete(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	return nil
}

func (s *studyService) Stats(userID uint) (*StudyStats, error) {
	sessions, err := s.studyRepo.FindByUser(userID, 0, 0)
	if err != nil {
		return nil, err
	}

	stats := &StudyStats{
		SessionCount:     len(sessions),
		MinutesBySubject: make(map[string]int),
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	for _, session := range sessions {
		stats.TotalMinutes += session.DurationMinutes
		stats.MinutesBySubject[session.Subject] += session.DurationMinutes
		if session.CreatedAt.After(weekAgo) {
			stats.Last7DaysMinutes += session.DurationMinutes
		}
	}
	return stats, nil
}
