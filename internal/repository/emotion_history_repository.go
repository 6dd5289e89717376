package repository

import (
	"time"

	"github.com/artpromedia/aivo-v5-sub004/internal/model"

	"gorm.io/gorm"
)

// EmotionHistoryFilter narrows List queries. Nil fields are ignored.
type EmotionHistoryFilter struct {
	Emotion *string
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

type EmotionHistoryRepository struct {
	DB *gorm.DB
}

func NewEmotionHistoryRepository(db *gorm.DB) *EmotionHistoryRepository {
	return &EmotionHistoryRepository{DB: db}
}

func (r *EmotionHistoryRepository) Create(entry *model.EmotionHistory) error {
	return r.DB.Create(entry).Error
}

func (r *EmotionHistoryRepository) FindByID(id string) (*model.EmotionHistory, error) {
	var entry model.EmotionHistory
	if err := r.DB.First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *EmotionHistoryRepository) List(learnerID uint, filter EmotionHistoryFilter) ([]model.EmotionHistory, int64, error) {
	var entries []model.EmotionHistory
	var total int64

	query := r.DB.Model(&model.EmotionHistory{}).Where("learner_id = ?", learnerID)
	if filter.Emotion != nil {
		query = query.Where("emotion = ?", *filter.Emotion)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(filter.Limit).Offset(filter.Offset).Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *EmotionHistoryRepository) Recent(learnerID uint, limit int) ([]model.EmotionHistory, error) {
	var entries []model.EmotionHistory
	err := r.DB.Where("learner_id = ?", learnerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// DistressAlertsSince returns the notify-parent entries created after the
// cutoff, newest first.
func (r *EmotionHistoryRepository) DistressAlertsSince(learnerID uint, since time.Time) ([]model.EmotionHistory, error) {
	var entries []model.EmotionHistory
	err := r.DB.Where("learner_id = ? AND notify_parent = ? AND created_at >= ?", learnerID, true, since).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// FindForRange returns every matching entry, oldest first, for summary
// computation.
func (r *EmotionHistoryRepository) FindForRange(learnerID uint, from, to *time.Time) ([]model.EmotionHistory, error) {
	var entries []model.EmotionHistory
	query := r.DB.Where("learner_id = ?", learnerID)
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at <= ?", *to)
	}
	err := query.Order("created_at ASC").Find(&entries).Error
	return entries, err
}
