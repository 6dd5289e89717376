package service

import (
	"errors"
	"time"

	"github.com/artpromedia/aivo-v5-sub004/internal/model"
	"github.com/artpromedia/aivo-v5-sub004/internal/repository"
	"github.com/artpromedia/aivo-v5-sub004/internal/util"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateSessionInput struct {
	LearnerID        uint
	Title            string
	Subject          string
	GradeLevel       string
	DifficultyMode   model.DifficultyMode
	ParentAssistMode bool
	MaxHintsPerStep  int
}

// UpdateSessionInput carries partial session updates; nil fields are left
// untouched. A non-nil Status implies the hint-budget reset in the store.
type UpdateSessionInput struct {
	Title              *string
	Subject            *string
	GradeLevel         *string
	DifficultyMode     *model.DifficultyMode
	ParentAssistMode   *bool
	Status             *model.SessionStatus
	ProblemAnalysis    *string
	SolutionPlan       *string
	FinalAnswer        *string
	VerificationResult *string
	CompletedAt        *time.Time
}

type UpdateFileOcrInput struct {
	OcrStatus     *model.OcrStatus
	ExtractedText *string
	OcrConfidence *float64
	OcrMetadata   datatypes.JSON
}

type CreateWorkProductInput struct {
	SessionID  string
	Step       model.SessionStatus
	InputType  string
	InputData  datatypes.JSON
	OutputData datatypes.JSON
	Confidence *float64
}

type HomeworkService struct {
	SessionRepo     *repository.HomeworkSessionRepository
	FileRepo        *repository.HomeworkFileRepository
	WorkProductRepo *repository.HomeworkWorkProductRepository
	HintRepo        *repository.HomeworkHintRepository
}

func NewHomeworkService(
	sessionRepo *repository.HomeworkSessionRepository,
	fileRepo *repository.HomeworkFileRepository,
	workProductRepo *repository.HomeworkWorkProductRepository,
	hintRepo *repository.HomeworkHintRepository,
) *HomeworkService {
	return &HomeworkService{
		SessionRepo:     sessionRepo,
		FileRepo:        fileRepo,
		WorkProductRepo: workProductRepo,
		HintRepo:        hintRepo,
	}
}

func (s *HomeworkService) CreateSession(input CreateSessionInput) (*model.HomeworkSession, error) {
	if input.DifficultyMode == "" {
		input.DifficultyMode = model.ModeScaffolded
	}
	if input.MaxHintsPerStep <= 0 {
		input.MaxHintsPerStep = model.DefaultMaxHintsPerStep
	}

	session := &model.HomeworkSession{
		LearnerID:        input.LearnerID,
		Title:            input.Title,
		Subject:          input.Subject,
		GradeLevel:       input.GradeLevel,
		DifficultyMode:   input.DifficultyMode,
		ParentAssistMode: input.ParentAssistMode,
		Status:           model.StatusUnderstand,
		MaxHintsPerStep:  input.MaxHintsPerStep,
	}
	if err := s.SessionRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession returns (nil, nil) when the session does not exist; callers
// check for nil rather than catching an error.
func (s *HomeworkService) GetSession(id string, includeChildren bool) (*model.HomeworkSession, error) {
	session, err := s.SessionRepo.FindByID(id, includeChildren)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return session, err
}

func (s *HomeworkService) ListSessions(learnerID uint, status *model.SessionStatus, limit, offset int) ([]model.HomeworkSession, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.SessionRepo.List(learnerID, status, limit, offset)
}

func (s *HomeworkService) UpdateSession(id string, input UpdateSessionInput) (*model.HomeworkSession, error) {
	fields := make(map[string]interface{})
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Subject != nil {
		fields["subject"] = *input.Subject
	}
	if input.GradeLevel != nil {
		fields["grade_level"] = *input.GradeLevel
	}
	if input.DifficultyMode != nil {
		fields["difficulty_mode"] = *input.DifficultyMode
	}
	if input.ParentAssistMode != nil {
		fields["parent_assist_mode"] = *input.ParentAssistMode
	}
	if input.Status != nil {
		fields["status"] = *input.Status
	}
	if input.ProblemAnalysis != nil {
		fields["problem_analysis"] = *input.ProblemAnalysis
	}
	if input.SolutionPlan != nil {
		fields["solution_plan"] = *input.SolutionPlan
	}
	if input.FinalAnswer != nil {
		fields["final_answer"] = *input.FinalAnswer
	}
	if input.VerificationResult != nil {
		fields["verification_result"] = *input.VerificationResult
	}
	if input.CompletedAt != nil {
		fields["completed_at"] = *input.CompletedAt
	}

	if len(fields) > 0 {
		if err := s.SessionRepo.UpdateFields(id, fields); err != nil {
			return nil, err
		}
	}
	return s.GetSession(id, false)
}

func (s *HomeworkService) DeleteSession(id string) error {
	return s.SessionRepo.Delete(id)
}

// DispenseHint creates the next hint for the session's current step and
// bumps both hint counters. The per-step budget is enforced here, not in
// the store: the store itself stays permissive.
func (s *HomeworkService) DispenseHint(sessionID, hintType, content string) (*model.HomeworkHint, error) {
	session, err := s.GetSession(sessionID, false)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	count, err := s.HintRepo.CountForStep(sessionID, session.Status)
	if err != nil {
		return nil, err
	}
	if session.MaxHintsPerStep > 0 && count >= int64(session.MaxHintsPerStep) {
		return nil, util.ErrHintLimitReached
	}

	hint := &model.HomeworkHint{
		SessionID:  sessionID,
		Step:       session.Status,
		HintNumber: int(count) + 1,
		HintType:   hintType,
		Content:    content,
	}
	if err := s.HintRepo.Create(hint); err != nil {
		return nil, err
	}
	if err := s.SessionRepo.IncrementHints(sessionID); err != nil {
		return nil, err
	}
	return hint, nil
}

func (s *HomeworkService) MarkHintHelpful(id string, wasHelpful bool) error {
	return s.HintRepo.MarkHelpful(id, wasHelpful)
}

func (s *HomeworkService) CountHintsForStep(sessionID string, step model.SessionStatus) (int64, error) {
	return s.HintRepo.CountForStep(sessionID, step)
}

func (s *HomeworkService) AddFile(file *model.HomeworkFile) error {
	return s.FileRepo.Create(file)
}

func (s *HomeworkService) ListFiles(sessionID string) ([]model.HomeworkFile, error) {
	return s.FileRepo.ListBySession(sessionID)
}

// UpdateFileOcr is the write-back entry point for the external OCR
// pipeline. Partial updates are allowed; only non-nil fields change.
func (s *HomeworkService) UpdateFileOcr(id string, input UpdateFileOcrInput) (*model.HomeworkFile, error) {
	fields := make(map[string]interface{})
	if input.OcrStatus != nil {
		fields["ocr_status"] = *input.OcrStatus
	}
	if input.ExtractedText != nil {
		fields["extracted_text"] = *input.ExtractedText
	}
	if input.OcrConfidence != nil {
		fields["ocr_confidence"] = *input.OcrConfidence
	}
	if input.OcrMetadata != nil {
		fields["ocr_metadata"] = input.OcrMetadata
	}

	if len(fields) > 0 {
		if err := s.FileRepo.UpdateOcr(id, fields); err != nil {
			return nil, err
		}
	}

	file, err := s.FileRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return file, err
}

func (s *HomeworkService) CreateWorkProduct(input CreateWorkProductInput) (*model.HomeworkWorkProduct, error) {
	product := &model.HomeworkWorkProduct{
		SessionID:  input.SessionID,
		Step:       input.Step,
		InputType:  input.InputType,
		InputData:  input.InputData,
		OutputData: input.OutputData,
		Confidence: input.Confidence,
	}
	if err := s.WorkProductRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *HomeworkService) UpdateWorkProductCompletion(id string, isComplete bool) error {
	return s.WorkProductRepo.UpdateCompletion(id, isComplete)
}

// GetLatestWorkProduct returns (nil, nil) when no product exists for the
// step yet.
func (s *HomeworkService) GetLatestWorkProduct(sessionID string, step model.SessionStatus) (*model.HomeworkWorkProduct, error) {
	product, err := s.WorkProductRepo.LatestForStep(sessionID, step)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return product, err
}
