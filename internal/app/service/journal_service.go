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
	ErrJournalNotFound = errors.New("journal entry not found")
	ErrEmptyContent    = errors.New("content is required")
)

type JournalStats struct {
	TotalEntries    int64 `json:"total_entries"`
	EntriesThisWeek int64 `json:"entries_this_week"`
	TotalWords      int   `json:"total_words"`
}

type UpdateJournalInput struct {
	Content *string
	Mood    *string
}

type JournalService interface {
	CreateEntry(userID uint, entry *model.JournalEntry) error
	GetEntry(id, userID uint) (*model.JournalEntry, error)
	ListEntries(userID uint, limit, offset int) ([]model.JournalEntry, error)
	SearchEntries(userID uint, query string) ([]model.JournalEntry, error)
	UpdateEntry(id, userID uint, input UpdateJournalInput) (*model.JournalEntry, error)
	DeleteEntry(id, userID uint) error
	Stats(userID uint) (*JournalStats, error)
}

type journalService struct {
	journalRepo repository.JournalRepository
}

func NewJournalService(journalRepo repository.JournalRepository) JournalService {
	return &journalService{journalRepo: journalRepo}
}

func (s *journalService) CreateEntry(userID uint, entry *model.JournalEntry) error {
	if strings.TrimSpace(entry.Content) == "" {
		return ErrEmptyContent
	}

	entry.UserID = userID
	if err := s.journalRepo.Create(entry); err != nil {
		return err
	}

	logger.Info("Journal entry created", map[string]interface{}{
		"user_id":  userID,
		"entry_id": entry.ID,
	})
	return nil
}

func (s *journalService) GetEntry(id, userID uint) (*model.JournalEntry, error) {
	entry, err := s.journalRepo.FindByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJournalNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (s *journalService) ListEntries(userID uint, limit, offset int) ([]model.JournalEntry, error) {
	return s.journalRepo.FindByUser(userID, limit, offset)
}

func (s *journalService) SearchEntries(userID uint, query string) ([]model.JournalEntry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.JournalEntry{}, nil
	}
	return s.journalRepo.Search(userID, query)
}

func (s *journalService) UpdateEntry(id, userID uint, input UpdateJournalInput) (*model.JournalEntry, error) {
	entry, err := s.journalRepo.FindByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJournalNotFound
		}
		return nil, err
	}

	if input.Content != nil {
		if strings.TrimSpace(*input.Content) == "" {
			return nil, ErrEmptyContent
		}
		entry.Content = *input.Content
	}
	if input.Mood != nil {
		entry.Mood = *input.Mood
	}

	if err := s.journalRepo.Update(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *journalService) DeleteEntry(id, userID uint) error {
	if err := s.journalRepo.Delete(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJournalNotFound
		}
		return err
	}
	return nil
}

func (s *journalService) Stats(userID uint) (*JournalStats, error) {
	total, err := s.journalRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	thisWeek, err := s.journalRepo.CountSince(userID, weekAgo)
	if err != nil {
		return nil, err
	}

	// Word total needs the content itself
	entries, err := s.journalRepo.FindByUser(userID, 0, 0)
	if err != nil {
		return nil, err
	}
	totalWords := 0
	for _, entry := range entries {
		totalWords += len(strings.Fields(entry.Content))
	}

	return &JournalStats{
		TotalEntries:    total,
		EntriesThisWeek: thisWeek,
		TotalWords:      totalWords,
	}, nil
}
