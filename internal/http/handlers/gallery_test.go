package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"travelagency/internal/media"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func galleryRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.GET("/api/gallery", h.ListGallery)
	r.POST("/api/gallery", h.SearchGallery)
	return r
}

func TestGalleryListsImages(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"total_count":1,"next_cursor":"n2","resources":[{"public_id":"travel/bali","secure_url":"https://cdn/bali.jpg","width":800,"height":600,"format":"jpg","folder":"travel"}]}`)
	}))
	defer srv.Close()

	r := galleryRouter(&Handler{Media: &media.Client{BaseURL: srv.URL, DefaultFolder: "travel"}})
	w := send(r, http.MethodGet, "/api/gallery?tag=beach,sunset&limit=500", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Images []struct {
			ID  string `json:"id"`
			URL string `json:"url"`
		} `json:"images"`
		NextCursor string `json:"nextCursor"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Images, 1)
	assert.Equal(t, "https://cdn/bali.jpg", page.Images[0].URL)
	assert.Equal(t, "n2", page.NextCursor)

	assert.EqualValues(t, media.MaxLimit, got["max_results"])
	assert.Contains(t, got["expression"], `tags="sunset"`)
}

func TestGallerySearchBody(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &got)
		_, _ = io.WriteString(w, `{"resources":[]}`)
	}))
	defer srv.Close()

	r := galleryRouter(&Handler{Media: &media.Client{BaseURL: srv.URL}})
	w := send(r, http.MethodPost, "/api/gallery", "", `{"folder":"lombok","limit":5,"cursor":"c1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 5, got["max_results"])
	assert.Equal(t, "c1", got["next_cursor"])
	assert.Contains(t, got["expression"], `folder:"lombok/*"`)

	w = send(r, http.MethodPost, "/api/gallery", "", `{"limit":"many"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGalleryErrors(t *testing.T) {
	r := galleryRouter(&Handler{Media: &media.Client{}})
	w := send(r, http.MethodGet, "/api/gallery", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	defer srv.Close()

	r = galleryRouter(&Handler{Media: &media.Client{BaseURL: srv.URL, Retries: 3}})
	w = send(r, http.MethodGet, "/api/gallery", "", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "media_api_error", resp.Code)
	assert.EqualValues(t, http.StatusUnauthorized, resp.Details.(map[string]any)["status"])
}
