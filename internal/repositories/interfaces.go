package repositories

import (
	"context"

	"github.com/SAP-F-2025/question-import-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type QuestionFilters struct {
	Type       *models.QuestionType    `json:"type"`
	Difficulty *models.DifficultyLevel `json:"difficulty"`
	Subject    string                  `json:"subject"`
	Tag        string                  `json:"tag"`
	Search     string                  `json:"search"`
	CreatedBy  string                  `json:"created_by"`
	Limit      int                     `json:"limit"`
	Offset     int                     `json:"offset"`
	SortBy     string                  `json:"sort_by"`    // "created_at", "title", "difficulty"
	SortOrder  string                  `json:"sort_order"` // "asc", "desc"
}

type ImportJobFilters struct {
	Status *models.ImportJobStatus `json:"status"`
	Limit  int                     `json:"limit"`
	Offset int                     `json:"offset"`
}

// ===== REPOSITORY AGGREGATE =====

// Repository groups the repositories used by the service layer
type Repository interface {
	Question() QuestionRepository
	ImportJob() ImportJobRepository

	// WithTransaction runs fn against repositories bound to a single transaction
	WithTransaction(ctx context.Context, fn func(tx Repository) error) error
	AutoMigrate() error
}
