package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SAP-F-2025/question-import-service/internal/models"
	"github.com/SAP-F-2025/question-import-service/internal/repositories"
	"gorm.io/gorm"
)

var questionSortColumns = map[string]bool{
	"created_at": true,
	"title":      true,
	"difficulty": true,
	"type":       true,
}

type QuestionPostgreSQL struct {
	db *gorm.DB
}

func NewQuestionPostgreSQL(db *gorm.DB) repositories.QuestionRepository {
	return &QuestionPostgreSQL{db: db}
}

// CreateBatch inserts every question in one transaction; either all rows land or none do
func (q *QuestionPostgreSQL) CreateBatch(ctx context.Context, questions []*models.Question) error {
	if len(questions) == 0 {
		return nil
	}

	return q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(questions, batchSize).Error; err != nil {
			return fmt.Errorf("failed to create questions: %w", err)
		}
		return nil
	})
}

// List retrieves questions with filters and pagination
func (q *QuestionPostgreSQL) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	query := q.applyFilters(q.db.WithContext(ctx).Model(&models.Question{}), filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPaginationAndSort(query, filters.SortBy, filters.SortOrder, questionSortColumns, filters.Limit, filters.Offset)

	var questions []*models.Question
	if err := query.Find(&questions).Error; err != nil {
		return nil, 0, err
	}

	return questions, total, nil
}

func (q *QuestionPostgreSQL) FindExistingTitles(ctx context.Context, titles []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(titles) == 0 {
		return existing, nil
	}

	var found []string
	err := q.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("title IN ?", titles).
		Distinct().
		Pluck("title", &found).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up existing titles: %w", err)
	}

	for _, title := range found {
		existing[title] = true
	}
	return existing, nil
}

func (q *QuestionPostgreSQL) applyFilters(query *gorm.DB, filters repositories.QuestionFilters) *gorm.DB {
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.Difficulty != nil {
		query = query.Where("difficulty = ?", *filters.Difficulty)
	}
	if filters.Subject != "" {
		query = query.Where("subject = ?", filters.Subject)
	}
	if filters.CreatedBy != "" {
		query = query.Where("created_by = ?", filters.CreatedBy)
	}
	if filters.Tag != "" {
		tag, _ := json.Marshal([]string{filters.Tag})
		query = query.Where("tags @> ?::jsonb", string(tag))
	}
	if filters.Search != "" {
		searchQuery := fmt.Sprintf("%%%s%%", filters.Search)
		query = query.Where("title ILIKE ?", searchQuery)
	}
	return query
}
