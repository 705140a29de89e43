package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/question-import-service/internal/importer"
)

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger *slog.Logger
}

func NewServiceLogger(logger *slog.Logger, service string) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("service", service),
	}
}

func (l *ServiceLogger) Logger() *slog.Logger {
	return l.logger
}

// LogOperation logs the outcome of an operation, picking the level from the error kind
func (l *ServiceLogger) LogOperation(ctx context.Context, operation, userID, resourceID string, duration time.Duration, err error) {
	level := slog.LevelInfo
	status := "success"

	if err != nil {
		level = slog.LevelError
		status = "error"

		switch {
		case IsValidation(err):
			level = slog.LevelWarn
			status = "validation_error"
		case IsBadFile(err) || IsTooLarge(err):
			level = slog.LevelWarn
			status = "bad_file"
		case IsNotFound(err):
			level = slog.LevelInfo
			status = "not_found"
		}
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("user_id", userID),
		slog.String("resource_id", resourceID),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		if verrs, ok := err.(ValidationErrors); ok {
			attrs = append(attrs, slog.Int("validation_errors_count", len(verrs)))
		}
	}

	l.logger.LogAttrs(ctx, level, fmt.Sprintf("%s operation %s", operation, status), attrs...)
}

// LogReport logs the row counters of a validated file
func (l *ServiceLogger) LogReport(ctx context.Context, fileName string, report *importer.Report) {
	l.logger.LogAttrs(ctx, slog.LevelInfo, "Import file validated",
		slog.String("file_name", fileName),
		slog.Int("total_rows", report.TotalRows),
		slog.Int("valid_count", report.ValidCount),
		slog.Int("invalid_count", report.InvalidCount),
		slog.Int("warning_count", report.WarningCount),
	)
}
