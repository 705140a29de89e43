package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/question-import-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	ErrValidationFailed = errors.New("validation failed")

	// Import specific errors
	ErrNoValidRows        = errors.New("no valid rows to import")
	ErrPreviewNotFound    = errors.New("import preview not found or expired")
	ErrImportJobNotFound  = errors.New("import job not found")
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrFileUnreadable     = errors.New("file could not be read")
	ErrFileTooLarge       = errors.New("file exceeds the maximum allowed size")
	ErrImportSubmitFailed = errors.New("import submission failed")
)

// ===== CUSTOM ERROR TYPES =====

type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// FileError is a file-level failure: nothing was parsed from the upload
type FileError struct {
	FileName string
	Cause    error
}

func (fe *FileError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrFileUnreadable, fe.FileName, fe.Cause)
}

func (fe *FileError) Unwrap() []error {
	return []error{ErrFileUnreadable, fe.Cause}
}

func NewFileError(fileName string, cause error) *FileError {
	return &FileError{FileName: fileName, Cause: cause}
}

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPreviewNotFound) ||
		errors.Is(err, ErrImportJobNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) || errors.Is(err, ErrNoValidRows) {
		return true
	}
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *apperrors.ValidationError
	return errors.As(err, &single)
}

// IsBadFile checks if error is a file-level failure
func IsBadFile(err error) bool {
	return errors.Is(err, ErrFileUnreadable) ||
		errors.Is(err, ErrUnsupportedFormat)
}

func IsTooLarge(err error) bool {
	return errors.Is(err, ErrFileTooLarge)
}
