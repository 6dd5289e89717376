package model

import (
	"gorm.io/datatypes"
)

// HomeworkWorkProduct is a snapshot of learner input/output captured at one
// step of a session. Multiple products may exist per step; "latest for
// step" is derived by creation time.
type HomeworkWorkProduct struct {
	UUIDBase
	SessionID  string         `gorm:"index;type:varchar(36);not null" json:"sessionId"`
	Step       SessionStatus  `gorm:"size:20;index;not null" json:"step"`
	InputType  string         `gorm:"size:50" json:"inputType"`
	InputData  datatypes.JSON `json:"inputData,omitempty"`
	OutputData datatypes.JSON `json:"outputData,omitempty"`
	Confidence *float64       `json:"confidence,omitempty"`
	IsComplete bool           `gorm:"default:false" json:"isComplete"`
}

func (HomeworkWorkProduct) TableName() string {
	return "homework_work_products"
}
