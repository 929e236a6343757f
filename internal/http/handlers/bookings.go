package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"travelagency/internal/domain"
	"travelagency/internal/http/middleware"
	"travelagency/internal/services"

	"github.com/gin-gonic/gin"
)

const bookingsPath = "/bookings"

// GET /api/bookings
func (h *Handler) ListBookings(c *gin.Context) {
	resp, ok := h.callUpstream(c, http.MethodGet, bookingsPath, nil)
	if !ok {
		return
	}
	relay(c, resp)
}

// POST /api/bookings
func (h *Handler) CreateBooking(c *gin.Context) {
	h.sendBooking(c, http.MethodPost, bookingsPath, services.BookingCreate)
}

// GET /api/bookings/:id
func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	resp, ok := h.callUpstream(c, http.MethodGet, resourcePath(bookingsPath, id), nil)
	if !ok {
		return
	}
	relay(c, resp)
}

// PUT /api/bookings/:id
func (h *Handler) UpdateBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	h.sendBooking(c, http.MethodPut, resourcePath(bookingsPath, id), services.BookingUpdate)
}

// DELETE /api/bookings/:id
func (h *Handler) DeleteBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	resp, ok := h.callUpstream(c, http.MethodDelete, resourcePath(bookingsPath, id), nil)
	if !ok {
		return
	}
	relay(c, resp)
}

// GET /api/bookings/:id/confirmation
func (h *Handler) BookingConfirmation(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	resp, ok := h.callUpstream(c, http.MethodGet, resourcePath(bookingsPath, id), nil)
	if !ok {
		return
	}
	if !resp.OK() {
		relay(c, resp)
		return
	}

	booking, err := services.DecodeBooking(resp.Body)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	docs := h.Docs
	docs.RequestID = middleware.GetRequestID(c)
	pdf, filename, err := docs.Confirmation(booking)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "gagal membuat PDF", Err: err})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// sendBooking sanitizes the request body and forwards it upstream.
func (h *Handler) sendBooking(c *gin.Context, method, path string, mode services.BookingMode) {
	raw, ok := readBody(c)
	if !ok {
		return
	}
	payload, err := services.SanitizeBooking(raw, mode)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}
	c.Request.Header.Set("Content-Type", "application/json")

	resp, ok := h.callUpstream(c, method, path, body)
	if !ok {
		return
	}
	relay(c, resp)
}

func bookingID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" || len(id) > 64 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "id tidak valid"})
		return "", false
	}
	return id, true
}
