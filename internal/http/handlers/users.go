package handlers

import (
	"net/http"
	"strings"

	"travelagency/internal/domain"
	"travelagency/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type setAdminRequest struct {
	IsAdmin *bool `json:"is_admin"`
}

// GET /api/users/me
func (h *Handler) Me(c *gin.Context) {
	u, err := h.Users.Get(c.Request.Context(), middleware.Caller(c).UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// GET /api/users
func (h *Handler) ListUsers(c *gin.Context) {
	out, err := h.Users.List(c.Request.Context(), pagination(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PUT /api/users/:id/admin
func (h *Handler) SetUserAdmin(c *gin.Context) {
	var req setAdminRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.IsAdmin == nil {
		RespondDomainError(c, domain.ValidationError{Field: "is_admin", Msg: "wajib diisi"})
		return
	}
	svc := h.Users.WithRequestID(middleware.GetRequestID(c))
	u, err := svc.SetAdmin(c.Request.Context(), middleware.Caller(c).UserID, strings.TrimSpace(c.Param("id")), *req.IsAdmin)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
