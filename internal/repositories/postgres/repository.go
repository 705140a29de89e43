package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/question-import-service/internal/models"
	"github.com/SAP-F-2025/question-import-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	db        *gorm.DB
	question  repositories.QuestionRepository
	importJob repositories.ImportJobRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		db:        db,
		question:  NewQuestionPostgreSQL(db),
		importJob: NewImportJobPostgreSQL(db),
	}
}

func (r *repository) Question() repositories.QuestionRepository   { return r.question }
func (r *repository) ImportJob() repositories.ImportJobRepository { return r.importJob }

func (r *repository) WithTransaction(ctx context.Context, fn func(tx repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

func (r *repository) AutoMigrate() error {
	if err := r.db.AutoMigrate(&models.Question{}, &models.ImportJob{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
