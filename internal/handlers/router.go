package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/quiz-service/internal/middleware"
	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	authHandler   *AuthHandler
	quizHandler   *QuizHandler
	health        services.HealthService
	authenticator middleware.Authenticator
	limiter       middleware.RateLimiter
	logger        utils.Logger
}

// NewHandlerManager builds every handler over the service manager. A nil
// limiter leaves the API unthrottled.
func NewHandlerManager(
	serviceManager *services.ServiceManager,
	limiter middleware.RateLimiter,
	logger utils.Logger,
	production bool,
) *HandlerManager {
	return &HandlerManager{
		authHandler:   NewAuthHandler(serviceManager.Auth, logger, production),
		quizHandler:   NewQuizHandler(serviceManager.Quiz, serviceManager.Result, serviceManager.Export, logger, production),
		health:        serviceManager.Health,
		authenticator: serviceManager.Auth,
		limiter:       limiter,
		logger:        logger,
	}
}

// HealthCheck reports that the API is running and the database answers
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	if err := hm.health.Check(c.Request.Context()); err != nil {
		utils.GetLoggerFromContext(c, hm.logger).LogError(err, "Health check failed")
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:  "ERROR",
			Message: "Database unavailable",
			Error:   "Database unavailable",
		})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "OK",
		Message: "Quiz App API is running",
	})
}

// NotFound answers unknown routes
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not Found"})
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	requireAuth := middleware.RequireAuth(hm.authenticator, hm.logger)

	api := router.Group("/api")
	if hm.limiter != nil {
		api.Use(middleware.RateLimit(hm.limiter, hm.logger))
	}
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", hm.authHandler.Register)
			auth.POST("/login", hm.authHandler.Login)
		}

		quizzes := api.Group("/quiz")
		{
			quizzes.GET("", hm.quizHandler.ListQuizzes)

			protected := quizzes.Group("", requireAuth)
			protected.POST("", hm.quizHandler.CreateQuiz)
			protected.GET("/my-quizzes", hm.quizHandler.MyQuizzes)
			protected.GET("/my-results", hm.quizHandler.MyResults)
			protected.GET("/my-results/export", hm.quizHandler.ExportMyResults)
			protected.GET("/:id", hm.quizHandler.GetQuiz)
			protected.POST("/:id/submit", hm.quizHandler.SubmitQuiz)
			protected.DELETE("/:id", hm.quizHandler.DeleteQuiz)
		}

		api.GET("/health", hm.HealthCheck)
	}

	router.NoRoute(NotFound)
}
