package repository

import (
	"time"

	"github.com/artpromedia/aivo-v5-sub004/internal/model"

	"gorm.io/gorm"
)

type HomeworkSessionRepository struct {
	DB *gorm.DB
}

func NewHomeworkSessionRepository(db *gorm.DB) *HomeworkSessionRepository {
	return &HomeworkSessionRepository{DB: db}
}

func (r *HomeworkSessionRepository) Create(session *model.HomeworkSession) error {
	return r.DB.Create(session).Error
}

func (r *HomeworkSessionRepository) FindByID(id string, includeChildren bool) (*model.HomeworkSession, error) {
	var session model.HomeworkSession
	query := r.DB
	if includeChildren {
		query = query.
			Preload("Files").
			Preload("WorkProducts").
			Preload("Hints")
	}
	if err := query.First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *HomeworkSessionRepository) List(learnerID uint, status *model.SessionStatus, limit, offset int) ([]model.HomeworkSession, int64, error) {
	var sessions []model.HomeworkSession
	var total int64

	query := r.DB.Model(&model.HomeworkSession{}).Where("learner_id = ?", learnerID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&sessions).Error
	if err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

// UpdateFields applies only the given columns. A status change always
// resets current_step_hints, and moving to COMPLETE stamps completed_at
// unless the caller supplied one.
func (r *HomeworkSessionRepository) UpdateFields(id string, fields map[string]interface{}) error {
	if raw, ok := fields["status"]; ok {
		fields["current_step_hints"] = 0

		status, _ := raw.(model.SessionStatus)
		if s, isString := raw.(string); isString {
			status = model.SessionStatus(s)
		}
		if status == model.StatusComplete {
			if _, set := fields["completed_at"]; !set {
				fields["completed_at"] = gorm.Expr("COALESCE(completed_at, ?)", time.Now())
			}
		}
	}
	return r.DB.Model(&model.HomeworkSession{}).Where("id = ?", id).Updates(fields).Error
}

// IncrementHints bumps hints_used and current_step_hints in a single
// statement so concurrent dispenses never lose an update.
func (r *HomeworkSessionRepository) IncrementHints(id string) error {
	return r.DB.Model(&model.HomeworkSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"hints_used":         gorm.Expr("hints_used + ?", 1),
			"current_step_hints": gorm.Expr("current_step_hints + ?", 1),
		}).Error
}

// Delete removes a session and everything it owns.
func (r *HomeworkSessionRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&model.HomeworkHint{}).Error; err != nil {
			return err
		}
		if err := tx.Where("session_id = ?", id).Delete(&model.HomeworkWorkProduct{}).Error; err != nil {
			return err
		}
		if err := tx.Where("session_id = ?", id).Delete(&model.HomeworkFile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.HomeworkSession{}, "id = ?", id).Error
	})
}
