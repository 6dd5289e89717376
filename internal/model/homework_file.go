package model

import (
	"gorm.io/datatypes"
)

type OcrStatus string

const (
	OcrPending    OcrStatus = "PENDING"
	OcrProcessing OcrStatus = "PROCESSING"
	OcrCompleted  OcrStatus = "COMPLETED"
	OcrFailed     OcrStatus = "FAILED"
)

// HomeworkFile is an uploaded artifact (photo/PDF) attached to a session.
// The OCR pipeline writes back status/text once via UpdateOcr; the row is
// never deleted on its own, only with its session.
type HomeworkFile struct {
	UUIDBase
	SessionID     string         `gorm:"index;type:varchar(36);not null" json:"sessionId"`
	Filename      string         `gorm:"size:255;not null" json:"filename"`
	MimeType      string         `gorm:"size:100" json:"mimeType"`
	FileURL       string         `gorm:"size:512" json:"fileUrl"`
	FileSize      int64          `json:"fileSize"`
	InputType     string         `gorm:"size:50" json:"inputType"`
	ExtractedText *string        `gorm:"type:text" json:"extractedText,omitempty"`
	OcrStatus     OcrStatus      `gorm:"size:20;default:'PENDING'" json:"ocrStatus"`
	OcrConfidence *float64       `json:"ocrConfidence,omitempty"`
	OcrMetadata   datatypes.JSON `json:"ocrMetadata,omitempty"`
}

func (HomeworkFile) TableName() string {
	return "homework_files"
}
