package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/SAP-F-2025/question-import-service/internal/models"
	"github.com/SAP-F-2025/question-import-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockQuestionRepository is a mock implementation of QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) CreateBatch(ctx context.Context, questions []*models.Question) error {
	args := m.Called(ctx, questions)
	return args.Error(0)
}

func (m *MockQuestionRepository) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Question), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuestionRepository) FindExistingTitles(ctx context.Context, titles []string) (map[string]bool, error) {
	args := m.Called(ctx, titles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

// MockImportJobRepository is a mock implementation of ImportJobRepository
type MockImportJobRepository struct {
	mock.Mock
}

func (m *MockImportJobRepository) Create(ctx context.Context, job *models.ImportJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockImportJobRepository) Update(ctx context.Context, job *models.ImportJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockImportJobRepository) GetByID(ctx context.Context, id string) (*models.ImportJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImportJob), args.Error(1)
}

func (m *MockImportJobRepository) ListByUser(ctx context.Context, userID string, filters repositories.ImportJobFilters) ([]*models.ImportJob, int64, error) {
	args := m.Called(ctx, userID, filters)
	return args.Get(0).([]*models.ImportJob), args.Get(1).(int64), args.Error(2)
}

// mockRepository wires the mocks into the Repository aggregate
type mockRepository struct {
	questions    *MockQuestionRepository
	jobs         *MockImportJobRepository
	transactions int
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		questions: &MockQuestionRepository{},
		jobs:      &MockImportJobRepository{},
	}
}

func (r *mockRepository) Question() repositories.QuestionRepository   { return r.questions }
func (r *mockRepository) ImportJob() repositories.ImportJobRepository { return r.jobs }
func (r *mockRepository) AutoMigrate() error                          { return nil }

func (r *mockRepository) WithTransaction(ctx context.Context, fn func(tx repositories.Repository) error) error {
	r.transactions++
	return fn(r)
}

// MockBatchCreator records the requests handed to the creation boundary
type MockBatchCreator struct {
	mock.Mock
}

func (m *MockBatchCreator) CreateMany(ctx context.Context, req *models.CreateManyRequest, userID string) (*models.ImportOutcome, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImportOutcome), args.Error(1)
}
