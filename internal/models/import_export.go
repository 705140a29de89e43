package models

import (
	"time"

	"gorm.io/datatypes"
)

type ImportJobStatus string

const (
	ImportPending          ImportJobStatus = "pending"
	ImportProcessing       ImportJobStatus = "processing"
	ImportCompleted        ImportJobStatus = "completed"
	ImportFailed           ImportJobStatus = "failed"
	ImportValidationFailed ImportJobStatus = "validation_failed"
)

type ImportJob struct {
	ID     string `json:"id" gorm:"primaryKey;size:36"` // UUID
	UserID string `json:"user_id" gorm:"not null;index;size:255"`

	// File info
	FileName string `json:"file_name" gorm:"not null;size:255"`
	FileType string `json:"file_type" gorm:"not null;size:20"` // csv, xlsx
	FileSize int64  `json:"file_size" gorm:"not null"`

	// Job status
	Status ImportJobStatus `json:"status" gorm:"default:pending;index"`

	// Processing info
	TotalRows    int `json:"total_rows"`
	ValidCount   int `json:"valid_count"`
	InvalidCount int `json:"invalid_count"`
	Imported     int `json:"imported"`
	Skipped      int `json:"skipped"`

	// Results
	Errors       datatypes.JSON `json:"errors" gorm:"type:jsonb"` // []ImportValidationError
	Summary      datatypes.JSON `json:"summary" gorm:"type:jsonb"`
	FailureCause *string        `json:"failure_cause" gorm:"type:text"`

	// Timestamps
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (ImportJob) TableName() string {
	return "import_jobs"
}

type ImportValidationError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
	Code    string `json:"code,omitempty"`
}

type ImportSummary struct {
	TotalRows      int           `json:"total_rows"`
	ValidCount     int           `json:"valid_count"`
	InvalidCount   int           `json:"invalid_count"`
	Imported       int           `json:"imported"`
	Skipped        int           `json:"skipped"`
	ProcessingTime time.Duration `json:"processing_time"`
}

type ExportRequest struct {
	Format     string           `json:"format" validate:"oneof=xlsx csv"`
	Type       *QuestionType    `json:"type"`
	Difficulty *DifficultyLevel `json:"difficulty"`
	Subject    string           `json:"subject"`
	Tag        string           `json:"tag"`
	Search     string           `json:"search"`
}
