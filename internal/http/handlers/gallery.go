package handlers

import (
	"errors"
	"net/http"

	"travelagency/internal/http/middleware"
	"travelagency/internal/media"
	"travelagency/internal/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// GET /api/gallery?folder=&tag=&limit=&cursor=
func (h *Handler) ListGallery(c *gin.Context) {
	q := media.Query{
		Folder: c.Query("folder"),
		Tags:   utils.SplitList(c.Query("tag")),
		Limit:  queryInt(c, "limit", 0),
		Cursor: c.Query("cursor"),
	}
	h.searchGallery(c, q)
}

// POST /api/gallery
func (h *Handler) SearchGallery(c *gin.Context) {
	var q media.Query
	if c.Request.ContentLength != 0 {
		if !BindJSONOrError(c, &q) {
			return
		}
	}
	h.searchGallery(c, q)
}

func (h *Handler) searchGallery(c *gin.Context, q media.Query) {
	page, err := h.Media.Search(c.Request.Context(), q)
	if err == nil {
		c.JSON(http.StatusOK, page)
		return
	}

	fields := log.Fields{"request_id": middleware.GetRequestID(c)}
	var apiErr *media.APIError
	switch {
	case errors.Is(err, media.ErrNotConfigured):
		respondError(c, http.StatusServiceUnavailable, "gallery_unavailable", "galeri belum dikonfigurasi", nil)
	case errors.As(err, &apiErr):
		log.WithFields(fields).WithField("status", apiErr.Status).Warn("media api rejected gallery search")
		respondError(c, http.StatusBadGateway, "media_api_error", "gagal memuat galeri", gin.H{"status": apiErr.Status})
	default:
		log.WithFields(fields).WithError(err).Error("gallery search failed")
		respondError(c, http.StatusInternalServerError, "internal_error", "gagal memuat galeri", nil)
	}
}
