package middleware

import (
	"net/http"

	"travelagency/internal/domain"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// AbortError writes the error envelope and stops the handler chain.
func AbortError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: GetRequestID(c),
	})
}

// AbortDomainError maps domain errors to HTTP responses.
func AbortDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		AbortError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsUnauthorized(err):
		AbortError(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	case domain.IsForbidden(err):
		AbortError(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	case domain.IsNotFound(err):
		AbortError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		AbortError(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		log.WithError(err).WithFields(log.Fields{
			"request_id": GetRequestID(c),
			"path":       c.Request.URL.Path,
		}).Error("request failed")
		AbortError(c, http.StatusInternalServerError, "internal_error", "terjadi kesalahan", nil)
	}
}
