package model

import (
	"time"
)

// SessionStatus is the homework problem-solving phase. Transitions are
// asserted by the caller; the store persists whatever value it is given.
type SessionStatus string

const (
	StatusUnderstand SessionStatus = "UNDERSTAND"
	StatusPlan       SessionStatus = "PLAN"
	StatusSolve      SessionStatus = "SOLVE"
	StatusVerify     SessionStatus = "VERIFY"
	StatusComplete   SessionStatus = "COMPLETE"
	StatusAbandoned  SessionStatus = "ABANDONED"
)

type DifficultyMode string

const (
	ModeScaffolded  DifficultyMode = "SCAFFOLDED"
	ModeGuided      DifficultyMode = "GUIDED"
	ModeIndependent DifficultyMode = "INDEPENDENT"
)

const DefaultMaxHintsPerStep = 3

// HomeworkSession is one learner's end-to-end attempt at a single
// homework problem. CurrentStepHints resets to 0 whenever Status changes.
type HomeworkSession struct {
	UUIDBase
	LearnerID          uint           `gorm:"index;not null" json:"learnerId"`
	Title              string         `gorm:"size:255;not null" json:"title"`
	Subject            string         `gorm:"size:100" json:"subject"`
	GradeLevel         string         `gorm:"size:10" json:"gradeLevel"`
	DifficultyMode     DifficultyMode `gorm:"size:20;default:'SCAFFOLDED'" json:"difficultyMode"`
	ParentAssistMode   bool           `gorm:"default:false" json:"parentAssistMode"`
	Status             SessionStatus  `gorm:"size:20;index;default:'UNDERSTAND'" json:"status"`
	HintsUsed          int            `gorm:"default:0" json:"hintsUsed"`
	CurrentStepHints   int            `gorm:"default:0" json:"currentStepHints"`
	MaxHintsPerStep    int            `gorm:"default:3" json:"maxHintsPerStep"`
	ProblemAnalysis    string         `gorm:"type:text" json:"problemAnalysis"`
	SolutionPlan       string         `gorm:"type:text" json:"solutionPlan"`
	FinalAnswer        string         `gorm:"type:text" json:"finalAnswer"`
	VerificationResult string         `gorm:"type:text" json:"verificationResult"`
	CompletedAt        *time.Time     `json:"completedAt,omitempty"`

	Files        []HomeworkFile        `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"files,omitempty"`
	WorkProducts []HomeworkWorkProduct `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"workProducts,omitempty"`
	Hints        []HomeworkHint        `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"hints,omitempty"`
}

func (HomeworkSession) TableName() string {
	return "homework_sessions"
}
