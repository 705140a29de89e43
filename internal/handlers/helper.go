package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/SAP-F-2025/question-import-service/internal/services"
	"github.com/gin-gonic/gin"
)

func ParseStringIDParam(c *gin.Context, param string) string {
	idStr := strings.TrimSpace(c.Param(param))
	if idStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
		})
		return ""
	}
	return idStr
}

// currentUserID returns the authenticated user or writes a 401
func currentUserID(c *gin.Context) (string, bool) {
	if value, exists := c.Get("user_id"); exists {
		if userID, ok := value.(string); ok && userID != "" {
			return userID, true
		}
	}
	c.JSON(http.StatusUnauthorized, ErrorResponse{
		Message: "User not authenticated",
	})
	return "", false
}

// handleServiceError maps service errors to HTTP responses
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err, validationErrors)
		return
	}

	switch {
	case errors.Is(err, services.ErrNoValidRows):
		h.RespondWithError(c, http.StatusUnprocessableEntity, "No valid rows to import", err)
	case errors.Is(err, services.ErrPreviewNotFound):
		h.RespondWithError(c, http.StatusNotFound, "Import preview not found or expired", err)
	case errors.Is(err, services.ErrImportJobNotFound):
		h.RespondWithError(c, http.StatusNotFound, "Import job not found", err)
	case services.IsTooLarge(err):
		h.RespondWithError(c, http.StatusRequestEntityTooLarge, "File too large", err, err.Error())
	case errors.Is(err, services.ErrUnsupportedFormat):
		h.RespondWithError(c, http.StatusUnsupportedMediaType, "Unsupported file format", err, err.Error())
	case services.IsBadFile(err):
		h.RespondWithError(c, http.StatusBadRequest, "File could not be read", err, err.Error())
	case services.IsValidation(err):
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err, err.Error())
	case errors.Is(err, services.ErrImportSubmitFailed):
		h.RespondWithError(c, http.StatusInternalServerError, "Import submission failed", err, err.Error())
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

// HealthCheck reports liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "question-import-service",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
