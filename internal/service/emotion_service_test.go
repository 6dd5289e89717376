package service

import (
	"testing"
	"time"

	"github.com/artpromedia/aivo-v5-sub004/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func TestLogEmotionNotifyParentPolicy(t *testing.T) {
	tests := []struct {
		name     string
		emotion  string
		level    int
		override *bool
		want     bool
	}{
		{"distress emotion at threshold", "anxious", 4, nil, true},
		{"distress emotion above threshold", "overwhelmed", 5, nil, true},
		{"distress emotion below threshold", "anxious", 3, nil, false},
		{"non-distress emotion at high level", "happy", 5, nil, false},
		{"tired is negative but not distress", "tired", 5, nil, false},
		{"caller override suppresses policy", "angry", 5, boolPtr(false), false},
		{"caller override forces notification", "happy", 1, boolPtr(true), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewEmotionService(repository.NewEmotionHistoryRepository(setupTestDB(t)), nil)

			entry, err := svc.LogEmotion(LogEmotionInput{
				LearnerID:    1,
				Emotion:      tt.emotion,
				Level:        tt.level,
				NotifyParent: tt.override,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, entry.NotifyParent)
		})
	}
}

func TestLogEmotionDefaultsSource(t *testing.T) {
	svc := NewEmotionService(repository.NewEmotionHistoryRepository(setupTestDB(t)), nil)

	entry, err := svc.LogEmotion(LogEmotionInput{LearnerID: 1, Emotion: "calm", Level: 2})
	require.NoError(t, err)
	assert.Equal(t, "manual", entry.Source)

	entry, err = svc.LogEmotion(LogEmotionInput{LearnerID: 1, Emotion: "calm", Level: 2, Source: "check-in-widget"})
	require.NoError(t, err)
	assert.Equal(t, "check-in-widget", entry.Source)
}

func TestGetByIDMissingReturnsNil(t *testing.T) {
	svc := NewEmotionService(repository.NewEmotionHistoryRepository(setupTestDB(t)), nil)

	entry, err := svc.GetByID("no-such-id")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestGetUnreadDistressAlertsWindow(t *testing.T) {
	repo := repository.NewEmotionHistoryRepository(setupTestDB(t))
	svc := NewEmotionService(repo, nil)

	inWindow, err := svc.LogEmotion(LogEmotionInput{LearnerID: 1, Emotion: "sad", Level: 5})
	require.NoError(t, err)

	stale, err := svc.LogEmotion(LogEmotionInput{LearnerID: 1, Emotion: "angry", Level: 5})
	require.NoError(t, err)
	require.NoError(t, repo.DB.Model(stale).Update("created_at", time.Now().Add(-25*time.Hour)).Error)

	_, err = svc.LogEmotion(LogEmotionInput{LearnerID: 1, Emotion: "happy", Level: 2})
	require.NoError(t, err)

	alerts, err := svc.GetUnreadDistressAlerts(1)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, inWindow.ID, alerts[0].ID)
}
