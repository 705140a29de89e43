package postgres

import (
	"context"

	"github.com/SAP-F-2025/question-import-service/internal/models"
	"github.com/SAP-F-2025/question-import-service/internal/repositories"
	"gorm.io/gorm"
)

var importJobSortColumns = map[string]bool{"created_at": true}

type ImportJobPostgreSQL struct {
	db *gorm.DB
}

func NewImportJobPostgreSQL(db *gorm.DB) repositories.ImportJobRepository {
	return &ImportJobPostgreSQL{db: db}
}

func (r *ImportJobPostgreSQL) Create(ctx context.Context, job *models.ImportJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *ImportJobPostgreSQL) Update(ctx context.Context, job *models.ImportJob) error {
	return r.db.WithContext(ctx).Save(job).Error
}

// GetByID returns gorm.ErrRecordNotFound when the job does not exist
func (r *ImportJobPostgreSQL) GetByID(ctx context.Context, id string) (*models.ImportJob, error) {
	var job models.ImportJob
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *ImportJobPostgreSQL) ListByUser(ctx context.Context, userID string, filters repositories.ImportJobFilters) ([]*models.ImportJob, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ImportJob{}).Where("user_id = ?", userID)
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []*models.ImportJob
	query = applyPaginationAndSort(query, "created_at", "desc", importJobSortColumns, filters.Limit, filters.Offset)
	if err := query.Find(&jobs).Error; err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}
