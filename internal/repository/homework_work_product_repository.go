package repository

import (
	"github.com/artpromedia/aivo-v5-sub004/internal/model"

	"gorm.io/gorm"
)

type HomeworkWorkProductRepository struct {
	DB *gorm.DB
}

func NewHomeworkWorkProductRepository(db *gorm.DB) *HomeworkWorkProductRepository {
	return &HomeworkWorkProductRepository{DB: db}
}

func (r *HomeworkWorkProductRepository) Create(product *model.HomeworkWorkProduct) error {
	return r.DB.Create(product).Error
}

func (r *HomeworkWorkProductRepository) FindByID(id string) (*model.HomeworkWorkProduct, error) {
	var product model.HomeworkWorkProduct
	if err := r.DB.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *HomeworkWorkProductRepository) UpdateCompletion(id string, isComplete bool) error {
	return r.DB.Model(&model.HomeworkWorkProduct{}).
		Where("id = ?", id).
		Update("is_complete", isComplete).Error
}

// LatestForStep returns the most recently created product for the
// (session, step) pair. History is preserved; older rows stay put.
func (r *HomeworkWorkProductRepository) LatestForStep(sessionID string, step model.SessionStatus) (*model.HomeworkWorkProduct, error) {
	var product model.HomeworkWorkProduct
	err := r.DB.Where("session_id = ? AND step = ?", sessionID, step).
		Order("created_at DESC").
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *HomeworkWorkProductRepository) ListBySession(sessionID string) ([]model.HomeworkWorkProduct, error) {
	var products []model.HomeworkWorkProduct
	err := r.DB.Where("session_id = ?", sessionID).Order("created_at ASC").Find(&products).Error
	return products, err
}
