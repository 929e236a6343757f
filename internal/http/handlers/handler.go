package handlers

import (
	"travelagency/internal/media"
	"travelagency/internal/services"
	"travelagency/internal/upstream"
)

// Handler serves the /api routes.
type Handler struct {
	Upstream *upstream.Client
	Media    *media.Client
	Trips    services.TripService
	Users    services.UserService
	Docs     services.BookingDocsService
}
