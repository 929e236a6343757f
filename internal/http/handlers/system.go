package handlers

import (
	"net/http"
	"sync"

	intconfig "travelagency/internal/config"
	"travelagency/internal/http/middleware"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

// Health reports liveness and which outbound integrations are configured.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"integrations": gin.H{
			"booking_backend": h.Upstream != nil && h.Upstream.BaseURL != "",
			"media_api":       h.Media != nil && h.Media.BaseURL != "",
			"database":        intconfig.DB != nil,
		},
	})
}

// DBCheck pings the managed database.
func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(c.Request.Context()); err != nil {
		log.WithError(err).WithField("request_id", middleware.GetRequestID(c)).Warn("db check failed")
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database tidak tersedia", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "koneksi database OK"})
}

// Routes lists the registered method/path pairs.
func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router belum siap"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method": rt.Method,
			"path":   rt.Path,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
