package repository

import (
	"testing"
	"time"

	"github.com/artpromedia/aivo-v5-sub004/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRegulationSession(t *testing.T, repo *RegulationSessionRepository, learnerID uint, activityType model.ActivityType, startedAt time.Time) *model.RegulationSession {
	t.Helper()
	session := &model.RegulationSession{
		LearnerID:    learnerID,
		ActivityID:   "box-breathing",
		ActivityType: activityType,
		TriggeredBy:  "manual",
		StartedAt:    startedAt,
	}
	require.NoError(t, repo.Create(session))
	return session
}

func TestRegulationUpdateFieldsStampsCompletion(t *testing.T) {
	repo := NewRegulationSessionRepository(setupTestDB(t))
	session := createRegulationSession(t, repo, 1, model.ActivityBreathing, time.Now())

	require.NoError(t, repo.UpdateFields(session.ID, map[string]interface{}{
		"completed":           true,
		"emotion_after":       "calm",
		"emotion_level_after": 2,
	}))

	got, err := repo.FindByID(session.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	require.NotNil(t, got.CompletedAt)
	first := *got.CompletedAt

	// A second completion update keeps the original stamp.
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.UpdateFields(session.ID, map[string]interface{}{"completed": true}))

	got, err = repo.FindByID(session.ID)
	require.NoError(t, err)
	assert.True(t, got.CompletedAt.Equal(first))
}

func TestRegulationUpdateFieldsCompletedFalseDoesNotStamp(t *testing.T) {
	repo := NewRegulationSessionRepository(setupTestDB(t))
	session := createRegulationSession(t, repo, 1, model.ActivityMovement, time.Now())

	require.NoError(t, repo.UpdateFields(session.ID, map[string]interface{}{
		"completed": false,
		"notes":     "stopped halfway",
	}))

	got, err := repo.FindByID(session.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)
	assert.Nil(t, got.CompletedAt)
}

func TestRegulationListFilters(t *testing.T) {
	repo := NewRegulationSessionRepository(setupTestDB(t))
	now := time.Now()

	createRegulationSession(t, repo, 1, model.ActivityBreathing, now.Add(-48*time.Hour))
	s2 := createRegulationSession(t, repo, 1, model.ActivityMovement, now.Add(-24*time.Hour))
	s3 := createRegulationSession(t, repo, 1, model.ActivityBreathing, now)
	require.NoError(t, repo.UpdateFields(s3.ID, map[string]interface{}{"completed": true}))
	createRegulationSession(t, repo, 2, model.ActivityBreathing, now)

	sessions, total, err := repo.List(1, RegulationSessionFilter{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, sessions, 3)
	assert.Equal(t, s3.ID, sessions[0].ID, "newest start first")

	activityType := model.ActivityMovement
	sessions, total, err = repo.List(1, RegulationSessionFilter{ActivityType: &activityType, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, sessions, 1)
	assert.Equal(t, s2.ID, sessions[0].ID)

	completed := true
	sessions, _, err = repo.List(1, RegulationSessionFilter{Completed: &completed, Limit: 10})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, s3.ID, sessions[0].ID)

	from := now.Add(-30 * time.Hour)
	sessions, total, err = repo.List(1, RegulationSessionFilter{From: &from, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, sessions, 2)
}

func TestCompletedStartTimes(t *testing.T) {
	repo := NewRegulationSessionRepository(setupTestDB(t))
	now := time.Now()

	done := createRegulationSession(t, repo, 1, model.ActivityBreathing, now.Add(-24*time.Hour))
	require.NoError(t, repo.UpdateFields(done.ID, map[string]interface{}{"completed": true}))
	createRegulationSession(t, repo, 1, model.ActivitySensory, now)

	times, err := repo.CompletedStartTimes(1)
	require.NoError(t, err)
	require.Len(t, times, 1, "incomplete sessions never feed the streak")
	assert.WithinDuration(t, now.Add(-24*time.Hour), times[0], time.Second)
}
