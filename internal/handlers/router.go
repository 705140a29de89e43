package handlers

import (
	"github.com/SAP-F-2025/question-import-service/internal/services"
	"github.com/SAP-F-2025/question-import-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	importHandler   *ImportHandler
	questionHandler *QuestionHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		importHandler:   NewImportHandler(serviceManager.Import(), logger),
		questionHandler: NewQuestionHandler(serviceManager.Question(), logger),
	}
}

// SetupRoutes sets up all API routes; authMiddleware guards everything under /api/v1
func (hm *HandlerManager) SetupRoutes(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware)
	{
		questions := v1.Group("/questions")
		{
			questions.GET("", hm.questionHandler.ListQuestions)
			questions.POST("/batch", hm.questionHandler.CreateQuestionsBatch)
			questions.GET("/export", hm.questionHandler.ExportQuestions)

			imports := questions.Group("/import")
			{
				imports.GET("/template", hm.importHandler.Template)
				imports.POST("/validate", hm.importHandler.ValidateFile)
				imports.GET("/jobs", hm.importHandler.ListJobs)
				imports.GET("/jobs/:id", hm.importHandler.GetJob)
				imports.GET("/:preview_id", hm.importHandler.GetPreview)
				imports.POST("/:preview_id/submit", hm.importHandler.Submit)
			}
		}
	}
}
