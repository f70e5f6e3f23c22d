package service

import (
	"testing"

	"github.com/edudesk/edudesk-backend/internal/app/model"
	"github.com/edudesk/edudesk-backend/internal/app/repository"
	"github.com/edudesk/edudesk-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGoalServiceTest(t *testing.T) GoalService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return NewGoalService(repository.NewGoalRepository(testDB))
}

func TestGoalLifecycle(t *testing.T) {
	svc := setupGoalServiceTest(t)

	goal := &model.Goal{Title: "Learn Go", Category: "school"}
	require.NoError(t, svc.CreateGoal(1, goal))
	assert.Equal(t, model.GoalActive, goal.Status)
	assert.Equal(t, uint(1), goal.UserID)

	found, err := svc.GetGoal(goal.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Learn Go", found.Title)

	// Another user cannot see it
	_, err = svc.GetGoal(goal.ID, 2)
	assert.ErrorIs(t, err, ErrGoalNotFound)

	require.NoError(t, svc.DeleteGoal(goal.ID, 1))
	_, err = svc.GetGoal(goal.ID, 1)
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestGoalUpdateProgress(t *testing.T) {
	svc := setupGoalServiceTest(t)

	goal := &model.Goal{Title: "Read 12 books"}
	require.NoError(t, svc.CreateGoal(1, goal))

	tests := []struct {
		name       string
		progress   int
		wantValue  int
		wantStatus model.GoalStatus
	}{
		{
			name:       "Partial progress",
			progress:   40,
			wantValue:  40,
			wantStatus: model.GoalActive,
		},
		{
			name:       "Clamped above 100",
			progress:   150,
			wantValue:  100,
			wantStatus: model.GoalCompleted,
		},
		{
			name:       "Dropping back reactivates",
			progress:   80,
			wantValue:  80,
			wantStatus: model.GoalActive,
		},
		{
			name:       "Clamped below zero",
			progress:   -10,
			wantValue:  0,
			wantStatus: model.GoalActive,
		},
		{
			name:       "Exactly 100 completes",
			progress:   100,
			wantValue:  100,
			wantStatus: model.GoalCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, err := svc.UpdateProgress(goal.ID, 1, tt.progress)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValue, updated.Progress)
			assert.Equal(t, tt.wantStatus, updated.Status)
		})
	}

	_, err := svc.UpdateProgress(goal.ID, 2, 50)
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestGoalListFilters(t *testing.T) {
	svc := setupGoalServiceTest(t)

	require.NoError(t, svc.CreateGoal(1, &model.Goal{Title: "A", Category: "school"}))
	require.NoError(t, svc.CreateGoal(1, &model.Goal{Title: "B", Category: "health", Status: model.GoalPaused}))
	require.NoError(t, svc.CreateGoal(2, &model.Goal{Title: "C", Category: "school"}))

	all, err := svc.ListGoals(1, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	paused, err := svc.ListGoals(1, string(model.GoalPaused), "")
	require.NoError(t, err)
	require.Len(t, paused, 1)
	assert.Equal(t, "B", paused[0].Title)

	school, err := svc.ListGoals(1, "", "school")
	require.NoError(t, err)
	require.Len(t, school, 1)
	assert.Equal(t, "A", school[0].Title)
}

func TestGoalStats(t *testing.T) {
	svc := setupGoalServiceTest(t)

	require.NoError(t, svc.CreateGoal(1, &model.Goal{Title: "A"}))
	require.NoError(t, svc.CreateGoal(1, &model.Goal{Title: "B"}))
	b, err := svc.ListGoals(1, "", "")
	require.NoError(t, err)
	_, err = svc.UpdateProgress(b[0].ID, 1, 100)
	require.NoError(t, err)

	stats, err := svc.Stats(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Active)
	assert.Equal(t, int64(1), stats.Completed)
	assert.Equal(t, 50.0, stats.CompletionRate)

	// Empty state
	empty, err := svc.Stats(99)
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.Total)
	assert.Equal(t, 0.0, empty.CompletionRate)
}
