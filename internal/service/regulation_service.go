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

type StartRegulationInput struct {
	LearnerID          uint
	ActivityID         string
	ActivityType       model.ActivityType
	EmotionBefore      *string
	EmotionLevelBefore *int
	TriggeredBy        string
	Context            datatypes.JSON
}

// UpdateRegulationInput carries the one completion-time update; nil
// fields are left untouched.
type UpdateRegulationInput struct {
	EmotionAfter      *string
	EmotionLevelAfter *int
	DurationSeconds   *int
	Completed         *bool
	Effectiveness     *int
	Notes             *string
	CompletedAt       *time.Time
}

type RegulationService struct {
	SessionRepo  *repository.RegulationSessionRepository
	ActivityRepo *repository.RegulationActivityRepository
}

func NewRegulationService(sessionRepo *repository.RegulationSessionRepository, activityRepo *repository.RegulationActivityRepository) *RegulationService {
	return &RegulationService{
		SessionRepo:  sessionRepo,
		ActivityRepo: activityRepo,
	}
}

func (s *RegulationService) StartSession(input StartRegulationInput) (*model.RegulationSession, error) {
	if input.TriggeredBy == "" {
		input.TriggeredBy = "manual"
	}

	// Callers may send just the activity code; the type then comes from
	// the catalog.
	if input.ActivityType == "" {
		activity, err := s.ActivityRepo.FindByCode(input.ActivityID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrActivityNotFound
		}
		if err != nil {
			return nil, err
		}
		input.ActivityType = activity.ActivityType
	}

	session := &model.RegulationSession{
		LearnerID:          input.LearnerID,
		ActivityID:         input.ActivityID,
		ActivityType:       input.ActivityType,
		EmotionBefore:      input.EmotionBefore,
		EmotionLevelBefore: input.EmotionLevelBefore,
		TriggeredBy:        input.TriggeredBy,
		Context:            input.Context,
		StartedAt:          time.Now(),
	}
	if err := s.SessionRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *RegulationService) UpdateSession(id string, input UpdateRegulationInput) (*model.RegulationSession, error) {
	fields := make(map[string]interface{})
	if input.EmotionAfter != nil {
		fields["emotion_after"] = *input.EmotionAfter
	}
	if input.EmotionLevelAfter != nil {
		fields["emotion_level_after"] = *input.EmotionLevelAfter
	}
	if input.DurationSeconds != nil {
		fields["duration_seconds"] = *input.DurationSeconds
	}
	if input.Completed != nil {
		fields["completed"] = *input.Completed
	}
	if input.Effectiveness != nil {
		fields["effectiveness"] = *input.Effectiveness
	}
	if input.Notes != nil {
		fields["notes"] = *input.Notes
	}
	if input.CompletedAt != nil {
		fields["completed_at"] = *input.CompletedAt
	}

	if len(fields) > 0 {
		if err := s.SessionRepo.UpdateFields(id, fields); err != nil {
			return nil, err
		}
	}
	return s.GetByID(id)
}

func (s *RegulationService) ListSessions(learnerID uint, filter repository.RegulationSessionFilter) ([]model.RegulationSession, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	return s.SessionRepo.List(learnerID, filter)
}

func (s *RegulationService) GetRecent(learnerID uint, limit int) ([]model.RegulationSession, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.SessionRepo.Recent(learnerID, limit)
}

func (s *RegulationService) GetByID(id string) (*model.RegulationSession, error) {
	session, err := s.SessionRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return session, err
}

func (s *RegulationService) ListActivities() ([]model.RegulationActivity, error) {
	return s.ActivityRepo.ListEnabled()
}
