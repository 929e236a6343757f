package handlers

import (
	"travelagency/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the envelope every error response uses.
type ErrorResponse = middleware.ErrorResponse

func respondError(c *gin.Context, status int, code, message string, details any) {
	middleware.AbortError(c, status, code, message, details)
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	middleware.AbortDomainError(c, err)
}
