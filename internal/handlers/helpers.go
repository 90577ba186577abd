package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskflow/internal/logger"
	"taskflow/internal/models"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// MessageResponse answers deletes and clears.
type MessageResponse struct {
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}

func mapError(err error) int {
	switch models.CodeOf(err) {
	case models.ErrCodeInvalid, models.ErrCodeDuplicate:
		return http.StatusBadRequest
	case models.ErrCodeNotFound:
		return http.StatusNotFound
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// respondError writes the error body. Unclassified errors are logged and
// answered with a generic message.
func respondError(c *gin.Context, log *zap.Logger, tag string, err error) {
	status := mapError(err)
	code := models.CodeOf(err)
	msg := err.Error()
	var dErr *models.Error
	if errors.As(err, &dErr) {
		msg = dErr.Message
	}
	if status == http.StatusInternalServerError {
		reqLog(c, log).Error(tag+"[err]", zap.Error(err))
		msg = "Internal server error"
	} else {
		reqLog(c, log).Info(tag+"[reject]", zap.Int("status", status), zap.String("reason", err.Error()))
	}
	c.JSON(status, ErrorResponse{Message: msg, Code: string(code)})
}

// badRequest answers malformed payloads that never reached a service.
func badRequest(c *gin.Context, log *zap.Logger, tag string, err error) {
	reqLog(c, log).Info(tag+"[bind][err]", zap.Error(err))
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error(), Code: string(models.ErrCodeInvalid)})
}

func reqLog(c *gin.Context, base *zap.Logger) *zap.Logger {
	return logger.WithRequestID(c.Request.Context(), base)
}
