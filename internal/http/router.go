package api

import (
	stdhttp "net/http"

	intconfig "travelagency/internal/config"
	h "travelagency/internal/http/handlers"
	"travelagency/internal/http/middleware"
	"travelagency/internal/repositories"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Handler *h.Handler
	Auth    middleware.Auth
	Limiter *middleware.RateLimiter
}

// NewDeps builds the default dependencies from env against the shared DB.
func NewDeps(env intconfig.Env, handler *h.Handler) Deps {
	return Deps{
		Handler: handler,
		Auth: middleware.Auth{
			Secret: env.AuthJWTSecret,
			Admins: repositories.UserRepository{DB: intconfig.DB},
		},
		Limiter: middleware.NewRateLimiter(env.RateLimitRPS, env.RateLimitBurst),
	}
}

func NewRouter(env intconfig.Env, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warnf("failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	hd := deps.Handler
	auth := deps.Auth
	limit := func(c *gin.Context) { c.Next() }
	if deps.Limiter != nil {
		limit = deps.Limiter.Limit()
	}

	api := r.Group("/api")
	{
		api.GET("/health", hd.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Bookings (proxied to the booking backend)
		bookings := api.Group("/bookings", middleware.RequireAuthorization())
		bookings.GET("", hd.ListBookings)
		bookings.POST("", limit, hd.CreateBooking)
		bookings.GET("/:id", hd.GetBooking)
		bookings.PUT("/:id", hd.UpdateBooking)
		bookings.DELETE("/:id", hd.DeleteBooking)
		bookings.GET("/:id/confirmation", hd.BookingConfirmation)

		// Destinations (proxied, reads are public)
		destinations := api.Group("/destinations")
		destinations.GET("", hd.Passthrough("/destinations"))
		destinations.GET("/:id", hd.Passthrough("/destinations"))
		destinations.POST("", middleware.RequireAuthorization(), hd.Passthrough("/destinations"))
		destinations.PUT("/:id", middleware.RequireAuthorization(), hd.Passthrough("/destinations"))
		destinations.DELETE("/:id", middleware.RequireAuthorization(), hd.Passthrough("/destinations"))

		// Trips (events table)
		trips := api.Group("/trips")
		trips.GET("", auth.Optional(), hd.ListTrips)
		trips.GET("/:id", auth.Optional(), hd.GetTrip)
		trips.POST("", auth.RequireAdmin(), hd.CreateTrip)
		trips.PUT("/:id", auth.RequireAdmin(), hd.UpdateTrip)
		trips.DELETE("/:id", auth.RequireAdmin(), hd.DeleteTrip)
		trips.GET("/:id/tickets", auth.RequireAdmin(), hd.ListTripTickets)

		// Users
		users := api.Group("/users")
		users.GET("/me", auth.Required(), hd.Me)
		users.GET("", auth.RequireAdmin(), hd.ListUsers)
		users.PUT("/:id/admin", auth.RequireAdmin(), hd.SetUserAdmin)

		// Gallery
		gallery := api.Group("/gallery", limit)
		gallery.GET("", hd.ListGallery)
		gallery.POST("", hd.SearchGallery)
	}

	h.SetRouter(r)
	return r
}
