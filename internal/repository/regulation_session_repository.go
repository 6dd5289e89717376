package repository

import (
	"time"

	"github.com/artpromedia/aivo-v5-sub004/internal/model"

	"gorm.io/gorm"
)

// RegulationSessionFilter narrows List queries. Nil fields are ignored.
type RegulationSessionFilter struct {
	ActivityType *model.ActivityType
	Completed    *bool
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

type RegulationSessionRepository struct {
	DB *gorm.DB
}

func NewRegulationSessionRepository(db *gorm.DB) *RegulationSessionRepository {
	return &RegulationSessionRepository{DB: db}
}

func (r *RegulationSessionRepository) Create(session *model.RegulationSession) error {
	return r.DB.Create(session).Error
}

func (r *RegulationSessionRepository) FindByID(id string) (*model.RegulationSession, error) {
	var session model.RegulationSession
	if err := r.DB.First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// UpdateFields applies only the given columns. Marking a session
// completed stamps completed_at unless the caller supplied one.
func (r *RegulationSessionRepository) UpdateFields(id string, fields map[string]interface{}) error {
	if raw, ok := fields["completed"]; ok {
		if done, isBool := raw.(bool); isBool && done {
			if _, set := fields["completed_at"]; !set {
				fields["completed_at"] = gorm.Expr("COALESCE(completed_at, ?)", time.Now())
			}
		}
	}
	return r.DB.Model(&model.RegulationSession{}).Where("id = ?", id).Updates(fields).Error
}

func (r *RegulationSessionRepository) List(learnerID uint, filter RegulationSessionFilter) ([]model.RegulationSession, int64, error) {
	var sessions []model.RegulationSession
	var total int64

	query := r.DB.Model(&model.RegulationSession{}).Where("learner_id = ?", learnerID)
	if filter.ActivityType != nil {
		query = query.Where("activity_type = ?", *filter.ActivityType)
	}
	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}
	if filter.From != nil {
		query = query.Where("started_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("started_at <= ?", *filter.To)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("started_at DESC").Limit(filter.Limit).Offset(filter.Offset).Find(&sessions).Error
	if err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

func (r *RegulationSessionRepository) Recent(learnerID uint, limit int) ([]model.RegulationSession, error) {
	var sessions []model.RegulationSession
	err := r.DB.Where("learner_id = ?", learnerID).
		Order("started_at DESC").
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}

// FindForRange returns every matching session, oldest first. Stats are
// computed over this snapshot in the service layer.
func (r *RegulationSessionRepository) FindForRange(learnerID uint, from, to *time.Time) ([]model.RegulationSession, error) {
	var sessions []model.RegulationSession
	query := r.DB.Where("learner_id = ?", learnerID)
	if from != nil {
		query = query.Where("started_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("started_at <= ?", *to)
	}
	err := query.Order("started_at ASC").Find(&sessions).Error
	return sessions, err
}

// CompletedStartTimes returns the start times of all completed sessions,
// newest first. Used for streak walking.
func (r *RegulationSessionRepository) CompletedStartTimes(learnerID uint) ([]time.Time, error) {
	var times []time.Time
	err := r.DB.Model(&model.RegulationSession{}).
		Where("learner_id = ? AND completed = ?", learnerID, true).
		Order("started_at DESC").
		Pluck("started_at", &times).Error
	return times, err
}
