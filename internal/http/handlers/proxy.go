package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"travelagency/internal/http/middleware"
	"travelagency/internal/upstream"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// relayedHeaders are copied from the upstream response to the client.
var relayedHeaders = []string{"Location", "Cache-Control", "ETag", "Content-Disposition"}

// callUpstream sends the current request to path on the booking backend.
// Transport failures are answered with 500 and ok=false.
func (h *Handler) callUpstream(c *gin.Context, method, path string, body []byte) (*upstream.Response, bool) {
	resp, err := h.Upstream.Do(c.Request.Context(), upstream.Request{
		Method: method,
		Path:   path,
		Query:  c.Request.URL.Query(),
		Header: c.Request.Header,
		Body:   body,
	})
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"request_id": middleware.GetRequestID(c),
			"method":     method,
			"path":       path,
		}).Error("upstream call failed")
		respondError(c, http.StatusInternalServerError, "upstream_unavailable", "gagal menghubungi server booking", nil)
		return nil, false
	}
	return resp, true
}

// relay writes an upstream response back unchanged.
func relay(c *gin.Context, resp *upstream.Response) {
	for _, name := range relayedHeaders {
		if v := resp.Header.Get(name); v != "" {
			c.Header(name, v)
		}
	}
	if len(resp.Body) == 0 || resp.Status == http.StatusNoContent || resp.Status == http.StatusNotModified {
		c.Status(resp.Status)
		return
	}
	c.Data(resp.Status, resp.ContentType(), resp.Body)
}

// resourcePath joins a collection path and an escaped id.
func resourcePath(collection, id string) string {
	if id == "" {
		return collection
	}
	return collection + "/" + url.PathEscape(id)
}

// Passthrough forwards a request under collection verbatim, including the :id
// path parameter when the route declares one.
func (h *Handler) Passthrough(collection string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.Param("id"))
		var body []byte
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodDelete {
			b, ok := readBody(c)
			if !ok {
				return
			}
			body = b
		}
		resp, ok := h.callUpstream(c, c.Request.Method, resourcePath(collection, id), body)
		if !ok {
			return
		}
		relay(c, resp)
	}
}
