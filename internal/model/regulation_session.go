package model

import (
	"time"

	"gorm.io/datatypes"
)

type ActivityType string

const (
	ActivityBreathing   ActivityType = "BREATHING"
	ActivityMovement    ActivityType = "MOVEMENT"
	ActivitySensory     ActivityType = "SENSORY"
	ActivityMindfulness ActivityType = "MINDFULNESS"
	ActivityCreative    ActivityType = "CREATIVE"
)

// RegulationSession is one learner attempt at a self-regulation activity.
// Created when the activity starts, updated once at completion.
type RegulationSession struct {
	UUIDBase
	LearnerID          uint           `gorm:"index;not null" json:"learnerId"`
	ActivityID         string         `gorm:"size:50;not null" json:"activityId"`
	ActivityType       ActivityType   `gorm:"size:20;index;not null" json:"activityType"`
	EmotionBefore      *string        `gorm:"size:50" json:"emotionBefore,omitempty"`
	EmotionAfter       *string        `gorm:"size:50" json:"emotionAfter,omitempty"`
	EmotionLevelBefore *int           `json:"emotionLevelBefore,omitempty"`
	EmotionLevelAfter  *int           `json:"emotionLevelAfter,omitempty"`
	TriggeredBy        string         `gorm:"size:50;default:'manual'" json:"triggeredBy"`
	DurationSeconds    *int           `json:"durationSeconds,omitempty"`
	Completed          bool           `gorm:"default:false;index" json:"completed"`
	Effectiveness      *int           `json:"effectiveness,omitempty"` // 1-5, learner-rated
	Notes              string         `gorm:"type:text" json:"notes"`
	Context            datatypes.JSON `json:"context,omitempty"`
	StartedAt          time.Time      `gorm:"index" json:"startedAt"`
	CompletedAt        *time.Time     `json:"completedAt,omitempty"`
}

func (RegulationSession) TableName() string {
	return "regulation_sessions"
}

// RegulationActivity is a catalog entry for a coping activity. Seeded at
// migration time.
type RegulationActivity struct {
	BaseModel
	Code            string       `gorm:"size:50;unique;not null" json:"code"`
	Name            string       `gorm:"size:100;not null" json:"name"`
	ActivityType    ActivityType `gorm:"size:20;not null" json:"activityType"`
	Description     string       `gorm:"type:text" json:"description"`
	DurationSeconds int          `json:"durationSeconds"` // suggested duration
	MinGrade        string       `gorm:"size:10" json:"minGrade"`
	Enabled         bool         `gorm:"default:true" json:"enabled"`
}

func (RegulationActivity) TableName() string {
	return "regulation_activities"
}
