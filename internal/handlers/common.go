package handlers

import (
	"errors"
	"net/http"

	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse is the body of every failed request; clients read the "error" key.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// MessageResponse carries a bare confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateQuizResponse is returned after a quiz and its questions were stored
type CreateQuizResponse struct {
	Quiz    interface{} `json:"quiz"`
	Message string      `json:"message"`
}

// HealthResponse reports whether the API and its database are up
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging and error rendering for all handlers
type BaseHandler struct {
	logger     utils.Logger
	production bool
}

// NewBaseHandler creates a new base handler with logging capability
func NewBaseHandler(logger utils.Logger, production bool) BaseHandler {
	return BaseHandler{
		logger:     logger,
		production: production,
	}
}

func (h *BaseHandler) log(c *gin.Context) utils.Logger {
	return utils.GetLoggerFromContext(c, h.logger)
}

// LogError logs error details with context information
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	fields := append([]interface{}{"user_id", h.extractUserID(c)}, additionalFields...)
	h.log(c).LogError(err, message, fields...)
}

// LogWarn logs warning messages with context
func (h *BaseHandler) LogWarn(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := append([]interface{}{"user_id", h.extractUserID(c)}, additionalFields...)
	h.log(c).Warn(message, fields...)
}

// LogInfo logs informational messages with context
func (h *BaseHandler) LogInfo(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := append([]interface{}{"user_id", h.extractUserID(c)}, additionalFields...)
	h.log(c).Info(message, fields...)
}

func (h *BaseHandler) extractUserID(c *gin.Context) interface{} {
	if userID, exists := c.Get(utils.ContextKeyUserID); exists {
		return userID
	}
	return nil
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error, details ...interface{}) {
	errorResp := ErrorResponse{
		Error: message,
	}

	if len(details) > 0 {
		errorResp.Details = details[0]
	}

	if err != nil && statusCode >= http.StatusInternalServerError {
		h.LogError(c, err, message, "status_code", statusCode)
	} else {
		h.LogWarn(c, message, "status_code", statusCode)
	}

	c.JSON(statusCode, errorResp)
}

// respondBindError rejects an undecodable body; decoder details stay out of production responses.
func (h *BaseHandler) respondBindError(c *gin.Context, err error) {
	if h.production {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}
	h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
}

// handleServiceError maps service errors onto HTTP statuses and client messages.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var inputErr *services.InputError
	if errors.As(err, &inputErr) {
		if len(inputErr.Fields) > 0 {
			h.RespondWithError(c, http.StatusBadRequest, inputErr.Message, err, inputErr.Fields)
		} else {
			h.RespondWithError(c, http.StatusBadRequest, inputErr.Message, err)
		}
		return
	}

	var permissionErr *services.PermissionError
	if errors.As(err, &permissionErr) {
		h.RespondWithError(c, http.StatusForbidden, "Unauthorized", err)
		return
	}

	switch {
	case errors.Is(err, services.ErrUserAlreadyExists):
		h.RespondWithError(c, http.StatusBadRequest, "Username or email already exists", err)
	case errors.Is(err, services.ErrInvalidCredentials):
		h.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials", err)
	case errors.Is(err, services.ErrInvalidToken):
		h.RespondWithError(c, http.StatusUnauthorized, "Invalid token", err)
	case errors.Is(err, services.ErrQuizNotFound):
		h.RespondWithError(c, http.StatusNotFound, "Quiz not found", err)
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, "Not Found", err)
	default:
		if h.production {
			h.RespondWithError(c, http.StatusInternalServerError, "Server error", err)
		} else {
			h.RespondWithError(c, http.StatusInternalServerError, "Server error", err, err.Error())
		}
	}
}
