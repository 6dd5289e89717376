package repository

import (
	"testing"
	"time"

	"github.com/artpromedia/aivo-v5-sub004/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createSession(t *testing.T, repo *HomeworkSessionRepository, learnerID uint) *model.HomeworkSession {
	t.Helper()
	session := &model.HomeworkSession{
		LearnerID:       learnerID,
		Title:           "Fractions worksheet",
		Subject:         "math",
		GradeLevel:      "4",
		DifficultyMode:  model.ModeScaffolded,
		Status:          model.StatusUnderstand,
		MaxHintsPerStep: 3,
	}
	require.NoError(t, repo.Create(session))
	return session
}

func TestUpdateFieldsStatusResetsStepHints(t *testing.T) {
	repo := NewHomeworkSessionRepository(setupTestDB(t))
	session := createSession(t, repo, 1)

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.IncrementHints(session.ID))
	}

	require.NoError(t, repo.UpdateFields(session.ID, map[string]interface{}{
		"status": model.StatusPlan,
	}))

	got, err := repo.FindByID(session.ID, false)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPlan, got.Status)
	assert.Equal(t, 0, got.CurrentStepHints)
	assert.Equal(t, 2, got.HintsUsed, "lifetime total survives the step change")
}

func TestUpdateFieldsWithoutStatusKeepsStepHints(t *testing.T) {
	repo := NewHomeworkSessionRepository(setupTestDB(t))
	session := createSession(t, repo, 1)

	require.NoError(t, repo.IncrementHints(session.ID))
	require.NoError(t, repo.UpdateFields(session.ID, map[string]interface{}{
		"title": "Fractions worksheet, page 2",
	}))

	got, err := repo.FindByID(session.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "Fractions worksheet, page 2", got.Title)
	assert.Equal(t, 1, got.CurrentStepHints)
}

func TestUpdateFieldsCompleteStampsOnce(t *testing.T) {
	repo := NewHomeworkSessionRepository(setupTestDB(t))
	session := createSession(t, repo, 1)

	require.NoError(t, repo.UpdateFields(session.ID, map[string]interface{}{
		"status": model.StatusComplete,
	}))

	got, err := repo.FindByID(session.ID, false)
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)
	first := *got.CompletedAt

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.UpdateFields(session.ID, map[string]interface{}{
		"status": model.StatusComplete,
	}))

	got, err = repo.FindByID(session.ID, false)
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(first), "completed_at is not overwritten on re-completion")
}

func TestUpdateFieldsAbandonedDoesNotStamp(t *testing.T) {
	repo := NewHomeworkSessionRepository(setupTestDB(t))
	session := createSession(t, repo, 1)

	require.NoError(t, repo.UpdateFields(session.ID, map[string]interface{}{
		"status": model.StatusAbandoned,
	}))

	got, err := repo.FindByID(session.ID, false)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAbandoned, got.Status)
	assert.Nil(t, got.CompletedAt)
}

func TestUpdateFieldsStatusAsString(t *testing.T) {
	repo := NewHomeworkSessionRepository(setupTestDB(t))
	session := createSession(t, repo, 1)

	require.NoError(t, repo.UpdateFields(session.ID, map[string]interface{}{
		"status": "COMPLETE",
	}))

	got, err := repo.FindByID(session.ID, false)
	require.NoError(t, err)
	assert.Equal(t, model.StatusComplete, got.Status)
	assert.NotNil(t, got.CompletedAt)
}

func TestIncrementHintsBumpsBothCounters(t *testing.T) {
	repo := NewHomeworkSessionRepository(setupTestDB(t))
	session := createSession(t, repo, 1)

	// The store itself is permissive: going past max_hints_per_step (3)
	// is the caller's problem, not a constraint.
	for i := 0; i < 4; i++ {
		require.NoError(t, repo.IncrementHints(session.ID))
	}

	got, err := repo.FindByID(session.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 4, got.HintsUsed)
	assert.Equal(t, 4, got.CurrentStepHints)
}

func TestDeleteCascadesToChildren(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHomeworkSessionRepository(db)
	session := createSession(t, repo, 1)

	require.NoError(t, db.Create(&model.HomeworkFile{SessionID: session.ID, Filename: "scan.jpg"}).Error)
	require.NoError(t, db.Create(&model.HomeworkWorkProduct{SessionID: session.ID, Step: model.StatusUnderstand}).Error)
	require.NoError(t, db.Create(&model.HomeworkHint{SessionID: session.ID, Step: model.StatusUnderstand, HintNumber: 1, Content: "Read the problem twice"}).Error)

	require.NoError(t, repo.Delete(session.ID))

	_, err := repo.FindByID(session.ID, false)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var files, products, hints int64
	db.Model(&model.HomeworkFile{}).Where("session_id = ?", session.ID).Count(&files)
	db.Model(&model.HomeworkWorkProduct{}).Where("session_id = ?", session.ID).Count(&products)
	db.Model(&model.HomeworkHint{}).Where("session_id = ?", session.ID).Count(&hints)
	assert.Zero(t, files)
	assert.Zero(t, products)
	assert.Zero(t, hints)
}

func TestListFiltersByStatusAndPaginates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHomeworkSessionRepository(db)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		session := createSession(t, repo, 1)
		require.NoError(t, db.Model(session).Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}
	done := createSession(t, repo, 1)
	require.NoError(t, repo.UpdateFields(done.ID, map[string]interface{}{"status": model.StatusComplete}))
	createSession(t, repo, 2)

	sessions, total, err := repo.List(1, nil, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, sessions, 4)

	status := model.StatusComplete
	sessions, total, err = repo.List(1, &status, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, sessions, 1)
	assert.Equal(t, done.ID, sessions[0].ID)

	sessions, total, err = repo.List(1, nil, 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, sessions, 2)
}

func TestFindByIDPreloadsChildren(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHomeworkSessionRepository(db)
	session := createSession(t, repo, 1)

	require.NoError(t, db.Create(&model.HomeworkHint{SessionID: session.ID, Step: model.StatusUnderstand, HintNumber: 1, Content: "Underline what is asked"}).Error)

	got, err := repo.FindByID(session.ID, true)
	require.NoError(t, err)
	assert.Len(t, got.Hints, 1)

	got, err = repo.FindByID(session.ID, false)
	require.NoError(t, err)
	assert.Empty(t, got.Hints)
}
