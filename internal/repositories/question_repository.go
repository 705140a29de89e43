package repositories

import (
	"context"

	"github.com/SAP-F-2025/question-import-service/internal/models"
)

// QuestionRepository interface for question-specific operations
type QuestionRepository interface {
	// CreateBatch stores all questions or none
	CreateBatch(ctx context.Context, questions []*models.Question) error

	// Query operations
	List(ctx context.Context, filters QuestionFilters) ([]*models.Question, int64, error)

	// FindExistingTitles returns the subset of titles already stored, keyed by title
	FindExistingTitles(ctx context.Context, titles []string) (map[string]bool, error)
}

// ImportJobRepository stores the audit record of each submitted import
type ImportJobRepository interface {
	Create(ctx context.Context, job *models.ImportJob) error
	Update(ctx context.Context, job *models.ImportJob) error
	GetByID(ctx context.Context, id string) (*models.ImportJob, error)
	ListByUser(ctx context.Context, userID string, filters ImportJobFilters) ([]*models.ImportJob, int64, error)
}
