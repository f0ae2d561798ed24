package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/scorecard-service/internal/services"
	"github.com/SAP-F-2025/scorecard-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	scoreHandler     *ScoreHandler
	answerKeyHandler *AnswerKeyHandler
	logger           utils.Logger
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		scoreHandler:     NewScoreHandler(serviceManager.Scoring(), serviceManager.Export(), logger),
		answerKeyHandler: NewAnswerKeyHandler(serviceManager.AnswerKeys(), logger),
		logger:           logger,
	}
}

// NewRouter builds a gin engine with logging and recovery middleware and
// every route registered.
func (hm *HandlerManager) NewRouter() *gin.Engine {
	router := gin.New()
	router.Use(utils.ContextLogger(hm.logger), utils.LoggerMiddleware(hm.logger), gin.Recovery())
	hm.SetupRoutes(router)
	return router
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "Live"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "scorecard-service",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		scores := v1.Group("/scores")
		{
			scores.POST("/calculate", hm.scoreHandler.CalculateScore)
			scores.POST("/evaluate", hm.scoreHandler.EvaluateScore)
			scores.GET("", hm.scoreHandler.ListSubmissions)
			scores.GET("/export", hm.scoreHandler.ExportMaster)
			scores.GET("/:phone", hm.scoreHandler.GetSubmission)
			scores.DELETE("/:phone", hm.scoreHandler.DeleteSubmission)
			scores.GET("/:phone/export", hm.scoreHandler.ExportSubmission)
		}

		answerKeys := v1.Group("/answer-keys")
		{
			answerKeys.POST("/import", hm.answerKeyHandler.ImportAnswerKey)
			answerKeys.GET("", hm.answerKeyHandler.ListAnswerKey)
			answerKeys.GET("/status", hm.answerKeyHandler.AnswerKeyStatus)
			answerKeys.DELETE("", hm.answerKeyHandler.ClearAnswerKey)
		}

		v1.GET("/estimates", hm.scoreHandler.Estimate)
	}
}
