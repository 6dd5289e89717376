package model

import (
	"time"
)

type UserRole string

const (
	Learner  UserRole = "learner"
	Guardian UserRole = "guardian"
	Admin    UserRole = "admin"
)

type User struct {
	BaseModel
	Name       string    `gorm:"size:100;not null" json:"name"`
	Email      string    `gorm:"size:100;unique;not null" json:"email"`
	Password   string    `gorm:"size:100;not null" json:"-"`
	Role       UserRole  `gorm:"type:enum('learner','guardian','admin');default:'learner'" json:"role"`
	GradeLevel string    `gorm:"size:10" json:"gradeLevel"`
	GuardianID *uint     `gorm:"index" json:"guardianId,omitempty"` // set for learners linked to a guardian account
	Disabled   bool      `gorm:"default:false" json:"disabled"`
	LastLogin  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen   time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
