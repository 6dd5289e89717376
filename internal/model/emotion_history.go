package model

import (
	"gorm.io/datatypes"
)

// EmotionHistory is an atomic emotion check-in, independent of any
// session. NotifyParent is computed once at creation and never changes.
type EmotionHistory struct {
	UUIDBase
	LearnerID    uint           `gorm:"index;not null" json:"learnerId"`
	Emotion      string         `gorm:"size:50;index;not null" json:"emotion"`
	Level        int            `gorm:"not null" json:"level"` // 1-5 intensity
	Trigger      string         `gorm:"size:255" json:"trigger"`
	Strategy     string         `gorm:"size:255" json:"strategy"`
	Context      datatypes.JSON `json:"context,omitempty"`
	Source       string         `gorm:"size:50;default:'manual'" json:"source"`
	NotifyParent bool           `gorm:"default:false;index" json:"notifyParent"`
}

func (EmotionHistory) TableName() string {
	return "emotion_history"
}
