package handlers

import (
	"net/http"
	"strings"

	"travelagency/internal/domain/models"
	"travelagency/internal/http/middleware"
	"travelagency/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) trips(c *gin.Context) services.TripService {
	return h.Trips.WithRequestID(middleware.GetRequestID(c))
}

// GET /api/trips
func (h *Handler) ListTrips(c *gin.Context) {
	page := pagination(c)
	caller := middleware.Caller(c)
	out, err := h.trips(c).List(c.Request.Context(), models.TripFilter{
		Destination:        strings.TrimSpace(c.Query("destination")),
		IncludeUnpublished: caller.IsAdmin,
		Limit:              page.Limit,
		Offset:             page.Offset,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/trips/:id
func (h *Handler) GetTrip(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		return
	}
	trip, err := h.trips(c).Get(c.Request.Context(), id, middleware.Caller(c).IsAdmin)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// POST /api/trips
func (h *Handler) CreateTrip(c *gin.Context) {
	var in models.TripInput
	if !BindJSONOrError(c, &in) {
		return
	}
	trip, err := h.trips(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

// PUT /api/trips/:id
func (h *Handler) UpdateTrip(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		return
	}
	var in models.TripInput
	if !BindJSONOrError(c, &in) {
		return
	}
	trip, err := h.trips(c).Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// DELETE /api/trips/:id
func (h *Handler) DeleteTrip(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		return
	}
	if err := h.trips(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/trips/:id/tickets
func (h *Handler) ListTripTickets(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		return
	}
	tickets, err := h.trips(c).ListTickets(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}
