package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/question-import-service/internal/importer"
	"github.com/SAP-F-2025/question-import-service/internal/models"
	"github.com/SAP-F-2025/question-import-service/internal/repositories"
	"github.com/SAP-F-2025/question-import-service/internal/validator"
)

const (
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"
)

// BatchCreator is the creation boundary an import submits to
type BatchCreator interface {
	CreateMany(ctx context.Context, req *models.CreateManyRequest, userID string) (*models.ImportOutcome, error)
}

type QuestionService interface {
	BatchCreator
	List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error)
	Export(ctx context.Context, req *models.ExportRequest) ([]byte, error)
}

type questionService struct {
	repo      repositories.Repository
	validator *validator.Validator
	log       *ServiceLogger
}

func NewQuestionService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) QuestionService {
	return &questionService{
		repo:      repo,
		validator: validator,
		log:       NewServiceLogger(logger, "question"),
	}
}

// CreateMany validates the whole batch, then looks up duplicates and stores the
// rest in one transaction. With SkipDuplicates, titles already stored or
// repeated earlier in the batch are skipped and counted.
func (s *questionService) CreateMany(ctx context.Context, req *models.CreateManyRequest, userID string) (outcome *models.ImportOutcome, err error) {
	start := time.Now()
	defer func() {
		s.log.LogOperation(ctx, "create_many", userID, "", time.Since(start), err)
	}()

	if err := s.validator.Question().ValidateBatch(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	outcome = &models.ImportOutcome{}
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		existing := map[string]bool{}
		if req.SkipDuplicates {
			titles := make([]string, 0, len(req.Questions))
			for i := range req.Questions {
				titles = append(titles, req.Questions[i].Title)
			}
			found, err := tx.Question().FindExistingTitles(ctx, titles)
			if err != nil {
				return err
			}
			for title, stored := range found {
				existing[title] = stored
			}
		}

		questions := make([]*models.Question, 0, len(req.Questions))
		for i := range req.Questions {
			title := req.Questions[i].Title
			if req.SkipDuplicates && existing[title] {
				outcome.Skipped++
				continue
			}
			question, err := toQuestion(&req.Questions[i], userID)
			if err != nil {
				return err
			}
			questions = append(questions, question)
			existing[title] = true
		}

		if err := tx.Question().CreateBatch(ctx, questions); err != nil {
			return fmt.Errorf("failed to store questions: %w", err)
		}
		outcome.Imported = len(questions)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Logger().InfoContext(ctx, "Questions created",
		"user_id", userID,
		"imported", outcome.Imported,
		"skipped", outcome.Skipped)

	return outcome, nil
}

func (s *questionService) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	return s.repo.Question().List(ctx, filters)
}

// Export renders the filtered questions in the import template layout, so the
// output can be uploaded again as is.
func (s *questionService) Export(ctx context.Context, req *models.ExportRequest) ([]byte, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}

	questions, _, err := s.repo.Question().List(ctx, repositories.QuestionFilters{
		Type:       req.Type,
		Difficulty: req.Difficulty,
		Subject:    req.Subject,
		Tag:        req.Tag,
		Search:     req.Search,
		SortBy:     "created_at",
		SortOrder:  "asc",
		Limit:      -1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load questions for export: %w", err)
	}

	records := make([][]string, 0, len(questions))
	for _, question := range questions {
		records = append(records, importer.QuestionRecord(question))
	}

	s.log.Logger().InfoContext(ctx, "Exporting questions", "format", req.Format, "count", len(records))

	if req.Format == ExportFormatXLSX {
		return writeWorkbook("Questions", importer.TemplateHeader, records)
	}
	return renderCSV(importer.TemplateHeader, records), nil
}

func renderCSV(header []string, records [][]string) []byte {
	var buf strings.Builder
	buf.WriteString(importer.FormatLine(header))
	for _, record := range records {
		buf.WriteString("\n")
		buf.WriteString(importer.FormatLine(record))
	}
	buf.WriteString("\n")
	return []byte(buf.String())
}

func toQuestion(req *models.CreateQuestionRequest, userID string) (*models.Question, error) {
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}

	return &models.Question{
		Title:              req.Title,
		Type:               req.Type,
		Difficulty:         req.Difficulty,
		Points:             req.Points,
		NegativePoints:     req.NegativePoints,
		Subject:            req.Subject,
		CorrectExplanation: req.CorrectExplanation,
		WrongExplanation:   req.WrongExplanation,
		Tags:               tagsJSON,
		Year:               req.Year,
		Source:             req.Source,
		AnswerA:            req.AnswerA,
		AnswerB:            req.AnswerB,
		AnswerC:            req.AnswerC,
		AnswerD:            req.AnswerD,
		AnswerE:            req.AnswerE,
		CorrectAnswers:     req.CorrectAnswers,
		CreatedBy:          userID,
	}, nil
}
