package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/artpromedia/aivo-v5-sub004/internal/model"
	"github.com/artpromedia/aivo-v5-sub004/internal/repository"
	"github.com/artpromedia/aivo-v5-sub004/pkg/logger"
	"github.com/artpromedia/aivo-v5-sub004/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// distressEmotions is the notify-parent set. Narrower than the trend set
// in the analytics service: "tired" is negative for trend purposes but
// not a distress signal.
var distressEmotions = map[string]bool{
	"angry":       true,
	"anxious":     true,
	"frustrated":  true,
	"overwhelmed": true,
	"sad":         true,
}

// distressLevelThreshold is the minimum intensity for a parent
// notification.
const distressLevelThreshold = 4

// distressAlertWindow is the fixed rolling window for unread alerts.
const distressAlertWindow = 24 * time.Hour

const distressAlertChannel = "distress:alerts"

type LogEmotionInput struct {
	LearnerID    uint
	Emotion      string
	Level        int
	Trigger      string
	Strategy     string
	Context      datatypes.JSON
	Source       string
	NotifyParent *bool // nil means apply the policy
}

type EmotionService struct {
	Repo  *repository.EmotionHistoryRepository
	Redis *redis.Client
}

func NewEmotionService(repo *repository.EmotionHistoryRepository, rdb *redis.Client) *EmotionService {
	return &EmotionService{Repo: repo, Redis: rdb}
}

// LogEmotion persists a check-in. notifyParent is evaluated exactly once,
// here, and is immutable afterwards; an explicit caller value always
// wins over the policy.
func (s *EmotionService) LogEmotion(input LogEmotionInput) (*model.EmotionHistory, error) {
	notify := input.Level >= distressLevelThreshold && distressEmotions[input.Emotion]
	if input.NotifyParent != nil {
		notify = *input.NotifyParent
	}

	source := input.Source
	if source == "" {
		source = "manual"
	}

	entry := &model.EmotionHistory{
		LearnerID:    input.LearnerID,
		Emotion:      input.Emotion,
		Level:        input.Level,
		Trigger:      input.Trigger,
		Strategy:     input.Strategy,
		Context:      input.Context,
		Source:       source,
		NotifyParent: notify,
	}
	if err := s.Repo.Create(entry); err != nil {
		return nil, err
	}

	if notify {
		monitoring.DistressAlertCounter.Inc()
		s.publishDistressAlert(entry)
	}
	return entry, nil
}

// publishDistressAlert fans the alert out on redis. Best effort: a
// publish failure is logged and never fails the write.
func (s *EmotionService) publishDistressAlert(entry *model.EmotionHistory) {
	if s.Redis == nil {
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"entryId":   entry.ID,
		"learnerId": entry.LearnerID,
		"emotion":   entry.Emotion,
		"level":     entry.Level,
		"at":        entry.CreatedAt,
	})
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Redis.Publish(ctx, distressAlertChannel, payload).Err(); err != nil {
		logger.Log.Warn("distress alert publish failed",
			zap.Uint("learnerId", entry.LearnerID),
			zap.Error(err))
	}
}

func (s *EmotionService) GetHistory(learnerID uint, filter repository.EmotionHistoryFilter) ([]model.EmotionHistory, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.Repo.List(learnerID, filter)
}

func (s *EmotionService) GetRecent(learnerID uint, limit int) ([]model.EmotionHistory, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.Repo.Recent(learnerID, limit)
}

func (s *EmotionService) GetByID(id string) (*model.EmotionHistory, error) {
	entry, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return entry, err
}

// GetUnreadDistressAlerts returns notify-parent entries from the last 24
// hours. The window is fixed, not configurable.
func (s *EmotionService) GetUnreadDistressAlerts(learnerID uint) ([]model.EmotionHistory, error) {
	since := time.Now().Add(-distressAlertWindow)
	return s.Repo.DistressAlertsSince(learnerID, since)
}
