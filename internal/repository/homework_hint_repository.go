package repository

import (
	"github.com/artpromedia/aivo-v5-sub004/internal/model"

	"gorm.io/gorm"
)

type HomeworkHintRepository struct {
	DB *gorm.DB
}

func NewHomeworkHintRepository(db *gorm.DB) *HomeworkHintRepository {
	return &HomeworkHintRepository{DB: db}
}

func (r *HomeworkHintRepository) Create(hint *model.HomeworkHint) error {
	return r.DB.Create(hint).Error
}

func (r *HomeworkHintRepository) FindByID(id string) (*model.HomeworkHint, error) {
	var hint model.HomeworkHint
	if err := r.DB.First(&hint, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &hint, nil
}

func (r *HomeworkHintRepository) MarkHelpful(id string, wasHelpful bool) error {
	return r.DB.Model(&model.HomeworkHint{}).
		Where("id = ?", id).
		Update("was_helpful", wasHelpful).Error
}

// CountForStep feeds hint numbering and the per-step budget check, both
// of which live with the caller.
func (r *HomeworkHintRepository) CountForStep(sessionID string, step model.SessionStatus) (int64, error) {
	var count int64
	err := r.DB.Model(&model.HomeworkHint{}).
		Where("session_id = ? AND step = ?", sessionID, step).
		Count(&count).Error
	return count, err
}

func (r *HomeworkHintRepository) ListBySession(sessionID string) ([]model.HomeworkHint, error) {
	var hints []model.HomeworkHint
	err := r.DB.Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&hints).Error
	return hints, err
}
