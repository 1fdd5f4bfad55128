package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type QuizHandler struct {
	BaseHandler
	quizService   services.QuizService
	resultService services.ResultService
	exportService services.ExportService
}

func NewQuizHandler(
	quizService services.QuizService,
	resultService services.ResultService,
	exportService services.ExportService,
	logger utils.Logger,
	production bool,
) *QuizHandler {
	return &QuizHandler{
		BaseHandler:   NewBaseHandler(logger, production),
		quizService:   quizService,
		resultService: resultService,
		exportService: exportService,
	}
}

// ListQuizzes lists every quiz with its creator and question count
// @Summary List quizzes
// @Tags quizzes
// @Produce json
// @Success 200 {array} repositories.QuizSummary
// @Failure 500 {object} ErrorResponse
// @Router /quiz [get]
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quizzes)
}

// GetQuiz returns a quiz and its questions without the correct answers
// @Summary Get quiz
// @Tags quizzes
// @Produce json
// @Param id path uint true "Quiz ID"
// @Success 200 {object} services.QuizDetail
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /quiz/{id} [get]
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	id := ParseUintIDParam(c, "id")
	if id == 0 {
		return
	}

	quiz, err := h.quizService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// CreateQuiz stores a quiz with its questions
// @Summary Create quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Param quiz body services.CreateQuizRequest true "Quiz data"
// @Success 201 {object} CreateQuizResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /quiz [post]
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}

	var req services.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	quiz, err := h.quizService.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateQuizResponse{
		Quiz:    quiz,
		Message: "Quiz created successfully",
	})
}

// SubmitQuiz scores the caller's answers and records the result
// @Summary Submit answers
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path uint true "Quiz ID"
// @Param answers body services.SubmitQuizRequest true "Answers keyed by question id"
// @Success 200 {object} services.SubmissionResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /quiz/{id}/submit [post]
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}
	id := ParseUintIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	result, err := h.resultService.Submit(c.Request.Context(), id, userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteQuiz removes a quiz owned by the caller
// @Summary Delete quiz
// @Tags quizzes
// @Produce json
// @Param id path uint true "Quiz ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /quiz/{id} [delete]
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}
	id := ParseUintIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.quizService.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogInfo(c, "Quiz deleted", "quiz_id", id)
	c.JSON(http.StatusOK, MessageResponse{Message: "Quiz deleted successfully"})
}

// MyQuizzes lists the quizzes the caller created
// @Summary My quizzes
// @Tags quizzes
// @Produce json
// @Success 200 {array} repositories.QuizSummary
// @Router /quiz/my-quizzes [get]
func (h *QuizHandler) MyQuizzes(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}

	quizzes, err := h.quizService.ListByCreator(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quizzes)
}

// MyResults lists the caller's results, newest first
// @Summary My results
// @Tags results
// @Produce json
// @Success 200 {array} services.ResultSummary
// @Router /quiz/my-results [get]
func (h *QuizHandler) MyResults(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}

	results, err := h.resultService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// ExportMyResults downloads the caller's results as a spreadsheet
// @Summary Export my results
// @Tags results
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /quiz/my-results/export [get]
func (h *QuizHandler) ExportMyResults(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}

	data, err := h.exportService.ExportUserResults(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("quiz-results-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
