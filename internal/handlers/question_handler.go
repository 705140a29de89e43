package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/SAP-F-2025/question-import-service/internal/models"
	"github.com/SAP-F-2025/question-import-service/internal/repositories"
	"github.com/SAP-F-2025/question-import-service/internal/services"
	"github.com/SAP-F-2025/question-import-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	BaseHandler
	questionService services.QuestionService
}

func NewQuestionHandler(questionService services.QuestionService, logger utils.Logger) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler:     NewBaseHandler(logger),
		questionService: questionService,
	}
}

// CreateQuestionsBatch creates multiple questions in one transaction
// @Summary Create questions batch
// @Description Validates and stores a batch of questions, optionally skipping duplicates by title
// @Tags questions
// @Accept json
// @Produce json
// @Param request body models.CreateManyRequest true "Questions data"
// @Success 201 {object} SuccessResponse{data=models.ImportOutcome}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /questions/batch [post]
func (h *QuestionHandler) CreateQuestionsBatch(c *gin.Context) {
	h.LogRequest(c, "Creating questions batch")

	var req models.CreateManyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	outcome, err := h.questionService.CreateMany(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Questions created", outcome,
		"imported", outcome.Imported,
		"skipped", outcome.Skipped)
}

// ListQuestions lists stored questions
// @Summary List questions
// @Tags questions
// @Produce json
// @Param type query string false "Question type"
// @Param difficulty query string false "Difficulty"
// @Param subject query string false "Subject"
// @Param tag query string false "Tag"
// @Param search query string false "Title search"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} SuccessResponse
// @Router /questions [get]
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	filters := parseQuestionFilters(c)
	filters.Limit, _ = strconv.Atoi(c.Query("limit"))
	filters.Offset, _ = strconv.Atoi(c.Query("offset"))
	filters.SortBy = c.Query("sort_by")
	filters.SortOrder = c.Query("sort_order")
	if filters.Limit < 0 {
		filters.Limit = 0
	}

	questions, total, err := h.questionService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Questions",
		Data: gin.H{
			"questions": questions,
			"total":     total,
		},
	})
}

// ExportQuestions downloads questions in the import template layout
// @Summary Export questions
// @Tags questions
// @Produce octet-stream
// @Param format query string false "csv or xlsx"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Router /questions/export [get]
func (h *QuestionHandler) ExportQuestions(c *gin.Context) {
	h.LogRequest(c, "Exporting questions")

	filters := parseQuestionFilters(c)
	req := models.ExportRequest{
		Format:     requestedFormat(c),
		Type:       filters.Type,
		Difficulty: filters.Difficulty,
		Subject:    filters.Subject,
		Tag:        filters.Tag,
		Search:     filters.Search,
	}

	data, err := h.questionService.Export(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	sendAttachment(c, "questions_"+time.Now().Format("20060102"), req.Format, data)
}

func parseQuestionFilters(c *gin.Context) repositories.QuestionFilters {
	filters := repositories.QuestionFilters{
		Subject: c.Query("subject"),
		Tag:     c.Query("tag"),
		Search:  c.Query("search"),
	}
	if value := c.Query("type"); value != "" {
		t := models.QuestionType(value)
		filters.Type = &t
	}
	if value := c.Query("difficulty"); value != "" {
		d := models.DifficultyLevel(value)
		filters.Difficulty = &d
	}
	return filters
}
