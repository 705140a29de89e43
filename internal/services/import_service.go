package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/SAP-F-2025/question-import-service/internal/cache"
	"github.com/SAP-F-2025/question-import-service/internal/events"
	"github.com/SAP-F-2025/question-import-service/internal/importer"
	"github.com/SAP-F-2025/question-import-service/internal/models"
	"github.com/SAP-F-2025/question-import-service/internal/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	previewKeyPrefix     = "import:preview:"
	userPreviewKeyPrefix = "import:user-preview:"

	FileTypeCSV  = "csv"
	FileTypeXLSX = "xlsx"

	utf8BOM = "\ufeff"
)

type ImportOptions struct {
	MaxFileBytes  int64
	PreviewTTL    time.Duration
	StrictNumeric bool
}

// ImportService drives the upload, review and submit flow of a question file
type ImportService interface {
	ValidateFile(ctx context.Context, reader io.Reader, filename, userID string) (*ImportPreview, error)
	GetPreview(ctx context.Context, previewID, userID string) (*ImportPreview, error)
	Submit(ctx context.Context, previewID, userID string) (*SubmitResult, error)
	GetJob(ctx context.Context, jobID, userID string) (*models.ImportJob, error)
	ListJobs(ctx context.Context, userID string, filters repositories.ImportJobFilters) ([]*models.ImportJob, int64, error)
	Template(format string) ([]byte, error)
}

// ImportPreview is the validated file held for the review screen
type ImportPreview struct {
	PreviewID string           `json:"previewId"`
	UserID    string           `json:"-"`
	FileName  string           `json:"fileName"`
	FileType  string           `json:"fileType"`
	FileSize  int64            `json:"fileSize"`
	ExpiresAt time.Time        `json:"expiresAt"`
	Report    *importer.Report `json:"report"`
}

// cachedPreview keeps UserID in the serialized form, unlike the API shape
type cachedPreview struct {
	ImportPreview
	Owner string `json:"owner"`
}

type SubmitResult struct {
	JobID    string `json:"jobId"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	Invalid  int    `json:"invalid"`
}

type importService struct {
	repo      repositories.Repository
	creator   BatchCreator
	cache     cache.CacheService
	publisher events.EventPublisher
	validator *importer.Validator
	opts      ImportOptions
	log       *ServiceLogger
}

func NewImportService(
	repo repositories.Repository,
	creator BatchCreator,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	opts ImportOptions,
) ImportService {
	return &importService{
		repo:      repo,
		creator:   creator,
		cache:     cacheService,
		publisher: publisher,
		validator: importer.NewValidator(importer.Options{StrictNumeric: opts.StrictNumeric}),
		opts:      opts,
		log:       NewServiceLogger(logger, "import"),
	}
}

// ===== VALIDATION =====

// ValidateFile parses and validates an uploaded file and stores the report
// for review. A new upload replaces the previous preview of the same user.
func (s *importService) ValidateFile(ctx context.Context, reader io.Reader, filename, userID string) (preview *ImportPreview, err error) {
	start := time.Now()
	defer func() {
		previewID := ""
		if preview != nil {
			previewID = preview.PreviewID
		}
		s.log.LogOperation(ctx, "validate_file", userID, previewID, time.Since(start), err)
	}()

	fileType, err := detectFileType(filename)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(reader, s.opts.MaxFileBytes+1))
	if err != nil {
		return nil, NewFileError(filename, err)
	}
	if int64(len(data)) > s.opts.MaxFileBytes {
		return nil, fmt.Errorf("%w (%d bytes)", ErrFileTooLarge, s.opts.MaxFileBytes)
	}

	parsed, err := parseFile(fileType, data)
	if err != nil {
		return nil, NewFileError(filename, err)
	}

	report := s.validator.ValidateAll(parsed)
	s.log.LogReport(ctx, filename, report)

	preview = &ImportPreview{
		PreviewID: uuid.NewString(),
		UserID:    userID,
		FileName:  filename,
		FileType:  fileType,
		FileSize:  int64(len(data)),
		ExpiresAt: time.Now().Add(s.opts.PreviewTTL).UTC(),
		Report:    report,
	}
	if err := s.storePreview(ctx, preview); err != nil {
		return nil, err
	}

	return preview, nil
}

func (s *importService) GetPreview(ctx context.Context, previewID, userID string) (*ImportPreview, error) {
	return s.loadPreview(ctx, previewID, userID)
}

func detectFileType(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv", ".txt":
		return FileTypeCSV, nil
	case ".xlsx":
		return FileTypeXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func parseFile(fileType string, data []byte) (*importer.ParsedFile, error) {
	if fileType == FileTypeXLSX {
		rows, err := readWorkbook(data)
		if err != nil {
			return nil, err
		}
		return importer.ParseRecords(rows)
	}
	return importer.Parse(strings.TrimPrefix(string(data), utf8BOM))
}

// ===== SUBMISSION =====

// Submit sends every valid row of a preview to the creation boundary in a
// single call. Invalid rows never reach it. The preview is claimed before the
// call, so a repeated submit of the same preview gets ErrPreviewNotFound; it is
// put back when the submission fails.
func (s *importService) Submit(ctx context.Context, previewID, userID string) (result *SubmitResult, err error) {
	start := time.Now()
	defer func() {
		s.log.LogOperation(ctx, "submit_import", userID, previewID, time.Since(start), err)
	}()

	preview, err := s.loadPreview(ctx, previewID, userID)
	if err != nil {
		return nil, err
	}

	report := preview.Report
	if report == nil || !report.HasValidRows() {
		return nil, ErrNoValidRows
	}

	if err := s.claimPreview(ctx, preview); err != nil {
		return nil, err
	}

	job, err := s.startJob(ctx, preview)
	if err != nil {
		s.restorePreview(ctx, preview)
		return nil, err
	}

	outcome, err := s.creator.CreateMany(ctx, &models.CreateManyRequest{
		Questions:      importer.TransformAll(report.ValidRows()),
		SkipDuplicates: true,
	}, userID)
	if err != nil {
		s.failJob(ctx, job, err)
		s.restorePreview(ctx, preview)
		return nil, fmt.Errorf("%w: %w", ErrImportSubmitFailed, err)
	}

	s.completeJob(ctx, job, report, outcome, time.Since(start))

	s.publish(ctx, events.NewQuestionsImportedEvent(events.QuestionsImportedEvent{
		JobID:    job.ID,
		UserID:   userID,
		FileName: preview.FileName,
		Imported: outcome.Imported,
		Skipped:  outcome.Skipped,
		Invalid:  report.InvalidCount,
	}))

	s.dropPreview(ctx, preview)

	return &SubmitResult{
		JobID:    job.ID,
		Imported: outcome.Imported,
		Skipped:  outcome.Skipped,
		Invalid:  report.InvalidCount,
	}, nil
}

func (s *importService) startJob(ctx context.Context, preview *ImportPreview) (*models.ImportJob, error) {
	report := preview.Report
	rowErrors, err := json.Marshal(collectRowErrors(report))
	if err != nil {
		return nil, fmt.Errorf("failed to encode row errors: %w", err)
	}

	now := time.Now()
	job := &models.ImportJob{
		ID:           uuid.NewString(),
		UserID:       preview.UserID,
		FileName:     preview.FileName,
		FileType:     preview.FileType,
		FileSize:     preview.FileSize,
		Status:       models.ImportProcessing,
		TotalRows:    report.TotalRows,
		ValidCount:   report.ValidCount,
		InvalidCount: report.InvalidCount,
		Errors:       rowErrors,
		StartedAt:    &now,
	}
	if err := s.repo.ImportJob().Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create import job: %w", err)
	}
	return job, nil
}

func (s *importService) completeJob(ctx context.Context, job *models.ImportJob, report *importer.Report, outcome *models.ImportOutcome, elapsed time.Duration) {
	summary, _ := json.Marshal(models.ImportSummary{
		TotalRows:      report.TotalRows,
		ValidCount:     report.ValidCount,
		InvalidCount:   report.InvalidCount,
		Imported:       outcome.Imported,
		Skipped:        outcome.Skipped,
		ProcessingTime: elapsed,
	})

	now := time.Now()
	job.Status = models.ImportCompleted
	job.Imported = outcome.Imported
	job.Skipped = outcome.Skipped
	job.Summary = summary
	job.CompletedAt = &now

	// the questions are already stored, so a failed audit update is only logged
	if err := s.repo.ImportJob().Update(ctx, job); err != nil {
		s.log.Logger().ErrorContext(ctx, "Failed to update import job", "job_id", job.ID, "error", err)
	}
}

func (s *importService) failJob(ctx context.Context, job *models.ImportJob, cause error) {
	reason := cause.Error()
	now := time.Now()
	job.Status = models.ImportFailed
	job.FailureCause = &reason
	job.CompletedAt = &now

	if err := s.repo.ImportJob().Update(ctx, job); err != nil {
		s.log.Logger().ErrorContext(ctx, "Failed to update import job", "job_id", job.ID, "error", err)
	}

	s.publish(ctx, events.NewQuestionsImportFailedEvent(events.QuestionsImportFailedEvent{
		JobID:    job.ID,
		UserID:   job.UserID,
		FileName: job.FileName,
		Reason:   reason,
	}))
}

func (s *importService) publish(ctx context.Context, event *events.ImportEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishImportEvent(ctx, event); err != nil {
		s.log.Logger().WarnContext(ctx, "Failed to publish import event",
			"event_type", event.Type,
			"error", err)
	}
}

func collectRowErrors(report *importer.Report) []models.ImportValidationError {
	rowErrors := make([]models.ImportValidationError, 0, report.InvalidCount)
	for _, result := range report.Results {
		for _, message := range result.Errors {
			rowErrors = append(rowErrors, models.ImportValidationError{
				Row:     result.RowNumber,
				Message: message,
				Code:    "invalid_row",
			})
		}
	}
	return rowErrors
}

// ===== JOBS =====

func (s *importService) GetJob(ctx context.Context, jobID, userID string) (*models.ImportJob, error) {
	job, err := s.repo.ImportJob().GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImportJobNotFound
		}
		return nil, fmt.Errorf("failed to get import job: %w", err)
	}
	if job.UserID != userID {
		return nil, ErrImportJobNotFound
	}
	return job, nil
}

func (s *importService) ListJobs(ctx context.Context, userID string, filters repositories.ImportJobFilters) ([]*models.ImportJob, int64, error) {
	return s.repo.ImportJob().ListByUser(ctx, userID, filters)
}

// ===== TEMPLATE =====

func (s *importService) Template(format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", FileTypeCSV:
		return importer.TemplateCSV(), nil
	case FileTypeXLSX:
		return writeWorkbook("Template", importer.TemplateHeader, [][]string{importer.TemplateExampleRow()})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ===== PREVIEW CACHE =====

func previewKey(previewID string) string { return previewKeyPrefix + previewID }
func userPreviewKey(userID string) string { return userPreviewKeyPrefix + userID }

func (s *importService) storePreview(ctx context.Context, preview *ImportPreview) error {
	var previousID string
	if err := s.cache.Get(ctx, userPreviewKey(preview.UserID), &previousID); err == nil && previousID != "" {
		if err := s.cache.Delete(ctx, previewKey(previousID)); err != nil {
			s.log.Logger().WarnContext(ctx, "Failed to drop previous preview", "preview_id", previousID, "error", err)
		}
	}

	entry := cachedPreview{ImportPreview: *preview, Owner: preview.UserID}
	if err := s.cache.Set(ctx, previewKey(preview.PreviewID), entry, s.opts.PreviewTTL); err != nil {
		return fmt.Errorf("failed to store import preview: %w", err)
	}
	if err := s.cache.Set(ctx, userPreviewKey(preview.UserID), preview.PreviewID, s.opts.PreviewTTL); err != nil {
		return fmt.Errorf("failed to store import preview: %w", err)
	}
	return nil
}

func (s *importService) loadPreview(ctx context.Context, previewID, userID string) (*ImportPreview, error) {
	var entry cachedPreview
	if err := s.cache.Get(ctx, previewKey(previewID), &entry); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrPreviewNotFound
		}
		return nil, fmt.Errorf("failed to load import preview: %w", err)
	}
	if entry.Owner != userID {
		return nil, ErrPreviewNotFound
	}

	preview := entry.ImportPreview
	preview.UserID = entry.Owner
	return &preview, nil
}

// claimPreview removes the preview atomically; only one submit can own it
func (s *importService) claimPreview(ctx context.Context, preview *ImportPreview) error {
	var entry cachedPreview
	if err := s.cache.Take(ctx, previewKey(preview.PreviewID), &entry); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return ErrPreviewNotFound
		}
		return fmt.Errorf("failed to claim import preview: %w", err)
	}
	return nil
}

// restorePreview puts a claimed preview back for a retry, unless it expired or
// the user uploaded a newer file in the meantime
func (s *importService) restorePreview(ctx context.Context, preview *ImportPreview) {
	ttl := time.Until(preview.ExpiresAt)
	if ttl <= 0 {
		return
	}
	var currentID string
	if err := s.cache.Get(ctx, userPreviewKey(preview.UserID), &currentID); err != nil || currentID != preview.PreviewID {
		return
	}

	entry := cachedPreview{ImportPreview: *preview, Owner: preview.UserID}
	if err := s.cache.Set(ctx, previewKey(preview.PreviewID), entry, ttl); err != nil {
		s.log.Logger().WarnContext(ctx, "Failed to restore import preview", "preview_id", preview.PreviewID, "error", err)
	}
}

func (s *importService) dropPreview(ctx context.Context, preview *ImportPreview) {
	if err := s.cache.Delete(ctx, previewKey(preview.PreviewID)); err != nil {
		s.log.Logger().WarnContext(ctx, "Failed to drop import preview", "preview_id", preview.PreviewID, "error", err)
	}
	var currentID string
	if err := s.cache.Get(ctx, userPreviewKey(preview.UserID), &currentID); err == nil && currentID == preview.PreviewID {
		_ = s.cache.Delete(ctx, userPreviewKey(preview.UserID))
	}
}
