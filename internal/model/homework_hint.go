package model

// HomeworkHint is one hint surfaced to the learner at a given step.
// HintNumber is the sequence within (session, step); callers read the
// current count to pick the next number.
type HomeworkHint struct {
	UUIDBase
	SessionID  string        `gorm:"index;type:varchar(36);not null" json:"sessionId"`
	Step       SessionStatus `gorm:"size:20;index;not null" json:"step"`
	HintNumber int           `gorm:"not null" json:"hintNumber"`
	HintType   string        `gorm:"size:50" json:"hintType"`
	Content    string        `gorm:"type:text;not null" json:"content"`
	WasHelpful *bool         `json:"wasHelpful,omitempty"`
}

func (HomeworkHint) TableName() string {
	return "homework_hints"
}
