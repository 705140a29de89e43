package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/question-import-service/internal/models"
	"github.com/SAP-F-2025/question-import-service/internal/repositories"
	"github.com/SAP-F-2025/question-import-service/internal/services"
	"github.com/SAP-F-2025/question-import-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ImportHandler struct {
	BaseHandler
	importService services.ImportService
}

func NewImportHandler(importService services.ImportService, logger utils.Logger) *ImportHandler {
	return &ImportHandler{
		BaseHandler:   NewBaseHandler(logger),
		importService: importService,
	}
}

// ValidateFile validates an uploaded question file
// @Summary Validate import file
// @Description Parses and validates a CSV or XLSX file and keeps the report for review
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Question file"
// @Success 200 {object} SuccessResponse{data=services.ImportPreview}
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 415 {object} ErrorResponse
// @Router /questions/import/validate [post]
func (h *ImportHandler) ValidateFile(c *gin.Context) {
	h.LogRequest(c, "Validating import file")

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "File is required", err, err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "File could not be read", err)
		return
	}
	defer file.Close()

	preview, err := h.importService.ValidateFile(c.Request.Context(), file, fileHeader.Filename, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "File validated", preview,
		"preview_id", preview.PreviewID,
		"valid_count", preview.Report.ValidCount,
		"invalid_count", preview.Report.InvalidCount)
}

// GetPreview returns a stored validation report
// @Summary Get import preview
// @Tags import
// @Produce json
// @Param preview_id path string true "Preview ID"
// @Success 200 {object} SuccessResponse{data=services.ImportPreview}
// @Failure 404 {object} ErrorResponse
// @Router /questions/import/{preview_id} [get]
func (h *ImportHandler) GetPreview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	previewID := ParseStringIDParam(c, "preview_id")
	if previewID == "" {
		return
	}

	preview, err := h.importService.GetPreview(c.Request.Context(), previewID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Import preview", Data: preview})
}

// Submit imports the valid rows of a preview
// @Summary Submit import
// @Description Sends every valid row of the preview to the question store in one batch
// @Tags import
// @Produce json
// @Param preview_id path string true "Preview ID"
// @Success 201 {object} SuccessResponse{data=services.SubmitResult}
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /questions/import/{preview_id}/submit [post]
func (h *ImportHandler) Submit(c *gin.Context) {
	h.LogRequest(c, "Submitting import")

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	previewID := ParseStringIDParam(c, "preview_id")
	if previewID == "" {
		return
	}

	result, err := h.importService.Submit(c.Request.Context(), previewID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Questions imported", result,
		"job_id", result.JobID,
		"imported", result.Imported,
		"skipped", result.Skipped)
}

// Template downloads the import template
// @Summary Download import template
// @Tags import
// @Produce octet-stream
// @Param format query string false "csv or xlsx"
// @Success 200 {file} file
// @Failure 415 {object} ErrorResponse
// @Router /questions/import/template [get]
func (h *ImportHandler) Template(c *gin.Context) {
	format := requestedFormat(c)

	data, err := h.importService.Template(format)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	sendAttachment(c, "questions_template", format, data)
}

// GetJob returns an import job
// @Summary Get import job
// @Tags import
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} SuccessResponse{data=models.ImportJob}
// @Failure 404 {object} ErrorResponse
// @Router /questions/import/jobs/{id} [get]
func (h *ImportHandler) GetJob(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	jobID := ParseStringIDParam(c, "id")
	if jobID == "" {
		return
	}

	job, err := h.importService.GetJob(c.Request.Context(), jobID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Import job", Data: job})
}

// ListJobs lists the caller's import jobs
// @Summary List import jobs
// @Tags import
// @Produce json
// @Param status query string false "Job status"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} SuccessResponse
// @Router /questions/import/jobs [get]
func (h *ImportHandler) ListJobs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filters := repositories.ImportJobFilters{}
	filters.Limit, _ = strconv.Atoi(c.Query("limit"))
	filters.Offset, _ = strconv.Atoi(c.Query("offset"))
	if status := c.Query("status"); status != "" {
		s := models.ImportJobStatus(status)
		filters.Status = &s
	}

	jobs, total, err := h.importService.ListJobs(c.Request.Context(), userID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Import jobs",
		Data: gin.H{
			"jobs":  jobs,
			"total": total,
		},
	})
}

func requestedFormat(c *gin.Context) string {
	if format := strings.ToLower(strings.TrimSpace(c.Query("format"))); format != "" {
		return format
	}
	return services.FileTypeCSV
}

func sendAttachment(c *gin.Context, baseName, format string, data []byte) {
	contentType := contentTypeCSV
	if format == services.FileTypeXLSX {
		contentType = contentTypeXLSX
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.%s", baseName, format))
	c.Data(http.StatusOK, contentType, data)
}
