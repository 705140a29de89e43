package services

import (
	"log/slog"

	"github.com/SAP-F-2025/question-import-service/internal/cache"
	"github.com/SAP-F-2025/question-import-service/internal/events"
	"github.com/SAP-F-2025/question-import-service/internal/repositories"
	"github.com/SAP-F-2025/question-import-service/internal/validator"
)

// ServiceManager aggregates the services exposed to the HTTP layer
type ServiceManager interface {
	Import() ImportService
	Question() QuestionService
}

type serviceManager struct {
	importService   ImportService
	questionService QuestionService
}

func NewServiceManager(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
	opts ImportOptions,
) ServiceManager {
	questionService := NewQuestionService(repo, logger, validator)

	return &serviceManager{
		importService:   NewImportService(repo, questionService, cacheService, publisher, logger, opts),
		questionService: questionService,
	}
}

func (sm *serviceManager) Import() ImportService     { return sm.importService }
func (sm *serviceManager) Question() QuestionService { return sm.questionService }
