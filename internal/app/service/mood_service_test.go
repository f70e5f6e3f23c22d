package service

import (
	"testing"
	"time"

	"github.com/edudesk/edudesk-backend/internal/app/model"
	"github.com/edudesk/edudesk-backend/internal/app/repository"
	"github.com/edudesk/edudesk-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupMoodServiceTest(t *testing.T) (MoodService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return NewMoodService(repository.NewMoodRepository(testDB)), testDB
}

// backdateEntry rewrites an entry's timestamp, bypassing gorm hooks
func backdateEntry(t *testing.T, testDB *gorm.DB, id uint, at time.Time) {
	t.Helper()
	require.NoError(t, testDB.Model(&model.MoodEntry{}).
		Where("id = ?", id).
		UpdateColumn("created_at", at).Error)
}

func TestMoodCreateEntry(t *testing.T) {
	svc, _ := setupMoodServiceTest(t)

	tests := []struct {
		name    string
		level   int
		wantErr error
	}{
		{name: "Lowest valid level", level: 1, wantErr: nil},
		{name: "Highest valid level", level: 10, wantErr: nil},
		{name: "Level zero", level: 0, wantErr: ErrInvalidMoodLevel},
		{name: "Level above range", level: 11, wantErr: ErrInvalidMoodLevel},
		{name: "Negative level", level: -3, wantErr: ErrInvalidMoodLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &model.MoodEntry{Mood: "ok", MoodLevel: tt.level}
			err := svc.CreateEntry(1, entry)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, uint(1), entry.UserID)
			}
		})
	}
}

func TestMoodAnalytics(t *testing.T) {
	svc, _ := setupMoodServiceTest(t)

	require.NoError(t, svc.CreateEntry(1, &model.MoodEntry{Mood: "happy", MoodLevel: 8}))
	require.NoError(t, svc.CreateEntry(1, &model.MoodEntry{Mood: "happy", MoodLevel: 6}))
	require.NoError(t, svc.CreateEntry(1, &model.MoodEntry{Mood: "tired", MoodLevel: 4}))

	// Another user's entries stay out of the aggregate
	require.NoError(t, svc.CreateEntry(2, &model.MoodEntry{Mood: "angry", MoodLevel: 2}))

	analytics, err := svc.Analytics(1, 30)
	require.NoError(t, err)
	assert.Equal(t, 30, analytics.Days)
	assert.Equal(t, 3, analytics.EntryCount)
	assert.InDelta(t, 6.0, analytics.AverageLevel, 0.001)
	assert.Equal(t, 2, analytics.Distribution["happy"])
	assert.Equal(t, 1, analytics.Distribution["tired"])
	require.Len(t, analytics.DailySeries, 1)
	assert.Equal(t, 3, analytics.DailySeries[0].EntryCount)
}

func TestMoodAnalyticsDefaultsWindow(t *testing.T) {
	svc, _ := setupMoodServiceTest(t)

	analytics, err := svc.Analytics(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, analytics.Days)
	assert.Equal(t, 0, analytics.EntryCount)
	assert.Empty(t, analytics.DailySeries)
}

func TestMoodToday(t *testing.T) {
	svc, testDB := setupMoodServiceTest(t)

	entry := &model.MoodEntry{Mood: "happy", MoodLevel: 7}
	require.NoError(t, svc.CreateEntry(1, entry))

	old := &model.MoodEntry{Mood: "tired", MoodLevel: 3}
	require.NoError(t, svc.CreateEntry(1, old))
	backdateEntry(t, testDB, old.ID, time.Now().AddDate(0, 0, -2))

	today, err := svc.Today(1)
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, entry.ID, today[0].ID)
}

func TestMoodStreak(t *testing.T) {
	svc, testDB := setupMoodServiceTest(t)

	t.Run("No entries", func(t *testing.T) {
		streak, err := svc.Streak(1)
		require.NoError(t, err)
		assert.Equal(t, 0, streak)
	})

	// Entries today, yesterday, and two days ago, then a gap
	for _, daysAgo := range []int{0, 1, 2, 5} {
		entry := &model.MoodEntry{Mood: "ok", MoodLevel: 5}
		require.NoError(t, svc.CreateEntry(1, entry))
		if daysAgo > 0 {
			backdateEntry(t, testDB, entry.ID, time.Now().AddDate(0, 0, -daysAgo))
		}
	}

	streak, err := svc.Streak(1)
	require.NoError(t, err)
	assert.Equal(t, 3, streak)
}

func TestMoodStreakSurvivesUnloggedToday(t *testing.T) {
	svc, testDB := setupMoodServiceTest(t)

	// Yesterday and the day before, nothing today
	for _, daysAgo := range []int{1, 2} {
		entry := &model.MoodEntry{Mood: "ok", MoodLevel: 5}
		require.NoError(t, svc.CreateEntry(1, entry))
		backdateEntry(t, testDB, entry.ID, time.Now().AddDate(0, 0, -daysAgo))
	}

	streak, err := svc.Streak(1)
	require.NoError(t, err)
	assert.Equal(t, 2, streak)
}

func TestMoodUpdateAndDelete(t *testing.T) {
	svc, _ := setupMoodServiceTest(t)

	entry := &model.MoodEntry{Mood: "ok", MoodLevel: 5}
	require.NoError(t, svc.CreateEntry(1, entry))

	newLevel := 9
	updated, err := svc.UpdateEntry(entry.ID, 1, UpdateMoodInput{MoodLevel: &newLevel})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.MoodLevel)

	badLevel := 42
	_, err = svc.UpdateEntry(entry.ID, 1, UpdateMoodInput{MoodLevel: &badLevel})
	assert.ErrorIs(t, err, ErrInvalidMoodLevel)

	// Wrong owner
	_, err = svc.UpdateEntry(entry.ID, 2, UpdateMoodInput{MoodLevel: &newLevel})
	assert.ErrorIs(t, err, ErrMoodNotFound)

	require.NoError(t, svc.DeleteEntry(entry.ID, 1))
	assert.ErrorIs(t, svc.DeleteEntry(entry.ID, 1), ErrMoodNotFound)
}
