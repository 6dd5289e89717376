package repository

import (
	"github.com/artpromedia/aivo-v5-sub004/internal/model"

	"gorm.io/gorm"
)

type HomeworkFileRepository struct {
	DB *gorm.DB
}

func NewHomeworkFileRepository(db *gorm.DB) *HomeworkFileRepository {
	return &HomeworkFileRepository{DB: db}
}

func (r *HomeworkFileRepository) Create(file *model.HomeworkFile) error {
	return r.DB.Create(file).Error
}

func (r *HomeworkFileRepository) FindByID(id string) (*model.HomeworkFile, error) {
	var file model.HomeworkFile
	if err := r.DB.First(&file, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// UpdateOcr is the single write-back the OCR pipeline performs. Partial
// maps are fine; only the given columns change.
func (r *HomeworkFileRepository) UpdateOcr(id string, fields map[string]interface{}) error {
	return r.DB.Model(&model.HomeworkFile{}).Where("id = ?", id).Updates(fields).Error
}

func (r *HomeworkFileRepository) ListBySession(sessionID string) ([]model.HomeworkFile, error) {
	var files []model.HomeworkFile
	err := r.DB.Where("session_id = ?", sessionID).Order("created_at ASC").Find(&files).Error
	return files, err
}
