package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"travelagency/internal/domain"

	"github.com/gin-gonic/gin"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "body kosong", nil)
		return false
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "payload tidak valid", err.Error())
		return false
	}
	return true
}

// readBody returns the raw request body, bounded by maxBodyBytes.
func readBody(c *gin.Context) ([]byte, bool) {
	if c.Request.Body == nil {
		return nil, true
	}
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, http.StatusRequestEntityTooLarge, "payload_too_large", "payload terlalu besar", nil)
			return nil, false
		}
		respondError(c, http.StatusBadRequest, "validation_error", "gagal membaca body", nil)
		return nil, false
	}
	return body, true
}

// paramInt64 parses a positive integer path parameter.
func paramInt64(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: name, Msg: "id tidak valid"})
		return 0, false
	}
	return id, true
}

// queryInt reads an optional integer query parameter.
func queryInt(c *gin.Context, name string, fallback int) int {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func pagination(c *gin.Context) domain.Pagination {
	return domain.Pagination{
		Limit:  queryInt(c, "limit", domain.DefaultPageLimit),
		Offset: queryInt(c, "offset", 0),
	}.Normalize()
}
