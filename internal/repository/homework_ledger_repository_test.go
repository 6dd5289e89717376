package repository

import (
	"testing"
	"time"

	"github.com/artpromedia/aivo-v5-sub004/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestUpdateOcrPartialWriteBack(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHomeworkFileRepository(db)

	file := &model.HomeworkFile{
		SessionID: model.GenerateUUID(),
		Filename:  "problem.jpg",
		MimeType:  "image/jpeg",
		OcrStatus: model.OcrPending,
	}
	require.NoError(t, repo.Create(file))

	require.NoError(t, repo.UpdateOcr(file.ID, map[string]interface{}{
		"ocr_status": model.OcrProcessing,
	}))

	got, err := repo.FindByID(file.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OcrProcessing, got.OcrStatus)
	assert.Nil(t, got.ExtractedText, "untouched columns stay untouched")

	confidence := 0.92
	require.NoError(t, repo.UpdateOcr(file.ID, map[string]interface{}{
		"ocr_status":     model.OcrCompleted,
		"extracted_text": "Solve for x: 2x + 4 = 10",
		"ocr_confidence": confidence,
		"ocr_metadata":   datatypes.JSON(`{"engine":"tesseract","pages":1}`),
	}))

	got, err = repo.FindByID(file.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OcrCompleted, got.OcrStatus)
	require.NotNil(t, got.ExtractedText)
	assert.Equal(t, "Solve for x: 2x + 4 = 10", *got.ExtractedText)
	require.NotNil(t, got.OcrConfidence)
	assert.InDelta(t, 0.92, *got.OcrConfidence, 0.001)
}

func TestLatestForStepPrefersNewest(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHomeworkWorkProductRepository(db)
	sessionID := model.GenerateUUID()

	base := time.Now().Add(-time.Hour)
	var ids []string
	for i := 0; i < 3; i++ {
		product := &model.HomeworkWorkProduct{
			SessionID: sessionID,
			Step:      model.StatusSolve,
			InputType: "text",
		}
		require.NoError(t, repo.Create(product))
		require.NoError(t, db.Model(product).Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
		ids = append(ids, product.ID)
	}

	got, err := repo.LatestForStep(sessionID, model.StatusSolve)
	require.NoError(t, err)
	assert.Equal(t, ids[2], got.ID)

	// Older products are history, not garbage.
	products, err := repo.ListBySession(sessionID)
	require.NoError(t, err)
	assert.Len(t, products, 3)

	_, err = repo.LatestForStep(sessionID, model.StatusVerify)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCountForStepScopedToSessionAndStep(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHomeworkHintRepository(db)
	sessionID := model.GenerateUUID()
	otherID := model.GenerateUUID()

	for i := 1; i <= 2; i++ {
		require.NoError(t, repo.Create(&model.HomeworkHint{
			SessionID: sessionID, Step: model.StatusPlan, HintNumber: i, Content: "hint",
		}))
	}
	require.NoError(t, repo.Create(&model.HomeworkHint{
		SessionID: sessionID, Step: model.StatusSolve, HintNumber: 1, Content: "hint",
	}))
	require.NoError(t, repo.Create(&model.HomeworkHint{
		SessionID: otherID, Step: model.StatusPlan, HintNumber: 1, Content: "hint",
	}))

	count, err := repo.CountForStep(sessionID, model.StatusPlan)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = repo.CountForStep(sessionID, model.StatusVerify)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMarkHelpful(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHomeworkHintRepository(db)

	hint := &model.HomeworkHint{
		SessionID: model.GenerateUUID(), Step: model.StatusUnderstand, HintNumber: 1, Content: "hint",
	}
	require.NoError(t, repo.Create(hint))
	assert.Nil(t, hint.WasHelpful)

	require.NoError(t, repo.MarkHelpful(hint.ID, true))

	got, err := repo.FindByID(hint.ID)
	require.NoError(t, err)
	require.NotNil(t, got.WasHelpful)
	assert.True(t, *got.WasHelpful)
}
