package service

import (
	"testing"

	"github.com/artpromedia/aivo-v5-sub004/internal/model"
	"github.com/artpromedia/aivo-v5-sub004/internal/repository"
	"github.com/artpromedia/aivo-v5-sub004/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newHomeworkService(db *gorm.DB) *HomeworkService {
	return NewHomeworkService(
		repository.NewHomeworkSessionRepository(db),
		repository.NewHomeworkFileRepository(db),
		repository.NewHomeworkWorkProductRepository(db),
		repository.NewHomeworkHintRepository(db),
	)
}

func TestCreateSessionDefaults(t *testing.T) {
	svc := newHomeworkService(setupTestDB(t))

	session, err := svc.CreateSession(CreateSessionInput{
		LearnerID: 1,
		Title:     "Long division practice",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusUnderstand, session.Status)
	assert.Equal(t, model.ModeScaffolded, session.DifficultyMode)
	assert.Equal(t, model.DefaultMaxHintsPerStep, session.MaxHintsPerStep)
	assert.NotEmpty(t, session.ID)
}

func TestGetSessionMissingReturnsNil(t *testing.T) {
	svc := newHomeworkService(setupTestDB(t))

	session, err := svc.GetSession("no-such-id", false)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestDispenseHintNumbersAndBudget(t *testing.T) {
	svc := newHomeworkService(setupTestDB(t))
	session, err := svc.CreateSession(CreateSessionInput{LearnerID: 1, Title: "Word problem"})
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		hint, err := svc.DispenseHint(session.ID, "strategy", "Try drawing a picture")
		require.NoError(t, err)
		assert.Equal(t, i, hint.HintNumber)
		assert.Equal(t, model.StatusUnderstand, hint.Step)
	}

	_, err = svc.DispenseHint(session.ID, "strategy", "One too many")
	assert.ErrorIs(t, err, util.ErrHintLimitReached)

	got, err := svc.GetSession(session.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 3, got.HintsUsed)
	assert.Equal(t, 3, got.CurrentStepHints)
}

func TestDispenseHintBudgetResetsWithStep(t *testing.T) {
	svc := newHomeworkService(setupTestDB(t))
	session, err := svc.CreateSession(CreateSessionInput{LearnerID: 1, Title: "Word problem"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := svc.DispenseHint(session.ID, "strategy", "hint")
		require.NoError(t, err)
	}

	status := model.StatusPlan
	updated, err := svc.UpdateSession(session.ID, UpdateSessionInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.CurrentStepHints)

	hint, err := svc.DispenseHint(session.ID, "strategy", "Fresh budget on the new step")
	require.NoError(t, err)
	assert.Equal(t, 1, hint.HintNumber)
	assert.Equal(t, model.StatusPlan, hint.Step)

	got, err := svc.GetSession(session.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 4, got.HintsUsed)
	assert.Equal(t, 1, got.CurrentStepHints)
}

func TestDispenseHintMissingSession(t *testing.T) {
	svc := newHomeworkService(setupTestDB(t))

	hint, err := svc.DispenseHint("no-such-id", "strategy", "hint")
	require.NoError(t, err)
	assert.Nil(t, hint)
}

func TestUpdateSessionPartial(t *testing.T) {
	svc := newHomeworkService(setupTestDB(t))
	session, err := svc.CreateSession(CreateSessionInput{LearnerID: 1, Title: "Essay outline", Subject: "english"})
	require.NoError(t, err)

	analysis := "Three paragraphs about the water cycle"
	updated, err := svc.UpdateSession(session.ID, UpdateSessionInput{ProblemAnalysis: &analysis})
	require.NoError(t, err)
	assert.Equal(t, analysis, updated.ProblemAnalysis)
	assert.Equal(t, "english", updated.Subject)
	assert.Equal(t, model.StatusUnderstand, updated.Status)
}

func TestUpdateSessionCompleteStamps(t *testing.T) {
	svc := newHomeworkService(setupTestDB(t))
	session, err := svc.CreateSession(CreateSessionInput{LearnerID: 1, Title: "Quiz prep"})
	require.NoError(t, err)

	status := model.StatusComplete
	updated, err := svc.UpdateSession(session.ID, UpdateSessionInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, model.StatusComplete, updated.Status)
	assert.NotNil(t, updated.CompletedAt)
}

func TestUpdateFileOcrMissingReturnsNil(t *testing.T) {
	svc := newHomeworkService(setupTestDB(t))

	status := model.OcrCompleted
	file, err := svc.UpdateFileOcr("no-such-id", UpdateFileOcrInput{OcrStatus: &status})
	require.NoError(t, err)
	assert.Nil(t, file)
}

func TestUpdateFileOcrPartial(t *testing.T) {
	svc := newHomeworkService(setupTestDB(t))
	session, err := svc.CreateSession(CreateSessionInput{LearnerID: 1, Title: "Scanned worksheet"})
	require.NoError(t, err)

	file := &model.HomeworkFile{SessionID: session.ID, Filename: "page1.jpg", OcrStatus: model.OcrPending}
	require.NoError(t, svc.AddFile(file))

	text := "3 birds plus 4 birds"
	status := model.OcrCompleted
	got, err := svc.UpdateFileOcr(file.ID, UpdateFileOcrInput{OcrStatus: &status, ExtractedText: &text})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.OcrCompleted, got.OcrStatus)
	require.NotNil(t, got.ExtractedText)
	assert.Equal(t, text, *got.ExtractedText)
}

func TestGetLatestWorkProductMissingReturnsNil(t *testing.T) {
	svc := newHomeworkService(setupTestDB(t))

	product, err := svc.GetLatestWorkProduct("no-such-id", model.StatusSolve)
	require.NoError(t, err)
	assert.Nil(t, product)
}
