package repository

import (
	"github.com/artpromedia/aivo-v5-sub004/internal/model"

	"gorm.io/gorm"
)

type RegulationActivityRepository struct {
	DB *gorm.DB
}

func NewRegulationActivityRepository(db *gorm.DB) *RegulationActivityRepository {
	return &RegulationActivityRepository{DB: db}
}

func (r *RegulationActivityRepository) ListEnabled() ([]model.RegulationActivity, error) {
	var activities []model.RegulationActivity
	err := r.DB.Where("enabled = ?", true).Order("id ASC").Find(&activities).Error
	return activities, err
}

func (r *RegulationActivityRepository) FindByCode(code string) (*model.RegulationActivity, error) {
	var activity model.RegulationActivity
	if err := r.DB.Where("code = ?", code).First(&activity).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}
