// Package media wraps the third-party media API backing the photo gallery.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	log "github.com/sirupsen/logrus"

	"travelagency/internal/domain/models"
)

const (
	DefaultLimit = 30
	MaxLimit     = 100
)

var ErrNotConfigured = errors.New("media: api url not configured")

// APIError is a non-2xx answer from the media API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("media api status %d", e.Status)
}

type Client struct {
	BaseURL       string
	APIKey        string
	APISecret     string
	DefaultFolder string
	HTTP          *http.Client
	Retries       int
	RetryDelay    time.Duration
}

// Query selects gallery images. Empty fields are not filtered on.
type Query struct {
	Folder string   `json:"folder"`
	Tags   []string `json:"tags"`
	Limit  int      `json:"limit"`
	Cursor string   `json:"cursor"`
}

type searchRequest struct {
	Expression string              `json:"expression,omitempty"`
	MaxResults int                 `json:"max_results"`
	NextCursor string              `json:"next_cursor,omitempty"`
	SortBy     []map[string]string `json:"sort_by"`
	WithField  []string            `json:"with_field"`
}

type searchResponse struct {
	TotalCount int        `json:"total_count"`
	NextCursor string     `json:"next_cursor"`
	Resources  []resource `json:"resources"`
}

type resource struct {
	PublicID  string   `json:"public_id"`
	SecureURL string   `json:"secure_url"`
	URL       string   `json:"url"`
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	Format    string   `json:"format"`
	Folder    string   `json:"folder"`
	CreatedAt string   `json:"created_at"`
	Tags      []string `json:"tags"`
}

// Normalize fills defaults and clamps the limit.
func (c *Client) Normalize(q Query) Query {
	q.Folder = strings.Trim(strings.TrimSpace(q.Folder), "/")
	if q.Folder == "" {
		q.Folder = strings.Trim(strings.TrimSpace(c.DefaultFolder), "/")
	}
	tags := make([]string, 0, len(q.Tags))
	for _, t := range q.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	q.Tags = tags
	switch {
	case q.Limit <= 0:
		q.Limit = DefaultLimit
	case q.Limit > MaxLimit:
		q.Limit = MaxLimit
	}
	q.Cursor = strings.TrimSpace(q.Cursor)
	return q
}

// Expression builds the media API search expression for q.
func Expression(q Query) string {
	parts := []string{"resource_type:image"}
	if q.Folder != "" {
		parts = append(parts, fmt.Sprintf("folder:%q", q.Folder+"/*"))
	}
	for _, t := range q.Tags {
		parts = append(parts, fmt.Sprintf("tags=%q", t))
	}
	return strings.Join(parts, " AND ")
}

// Search lists one page of images matching q, newest first.
func (c *Client) Search(ctx context.Context, q Query) (models.GalleryPage, error) {
	var page models.GalleryPage
	if c == nil || strings.TrimSpace(c.BaseURL) == "" {
		return page, ErrNotConfigured
	}
	q = c.Normalize(q)

	payload, err := json.Marshal(searchRequest{
		Expression: Expression(q),
		MaxResults: q.Limit,
		NextCursor: q.Cursor,
		SortBy:     []map[string]string{{"created_at": "desc"}},
		WithField:  []string{"tags"},
	})
	if err != nil {
		return page, err
	}
	target := strings.TrimRight(c.BaseURL, "/") + "/resources/search"

	var body []byte
	err = retry.Do(
		func() error {
			b, err := c.post(ctx, target, payload)
			if err != nil {
				return err
			}
			body = b
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(max(c.Retries, 0))+1),
		retry.Delay(c.RetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var apiErr *APIError
			return !errors.As(err, &apiErr)
		}),
	)
	if err != nil {
		return page, err
	}

	var res searchResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return page, fmt.Errorf("decode media response: %w", err)
	}

	page.Images = make([]models.GalleryImage, 0, len(res.Resources))
	for _, r := range res.Resources {
		u := r.SecureURL
		if u == "" {
			u = r.URL
		}
		tags := r.Tags
		if tags == nil {
			tags = []string{}
		}
		page.Images = append(page.Images, models.GalleryImage{
			ID:        r.PublicID,
			URL:       u,
			Width:     r.Width,
			Height:    r.Height,
			Format:    r.Format,
			Folder:    r.Folder,
			CreatedAt: r.CreatedAt,
			Tags:      tags,
		})
	}
	page.NextCursor = res.NextCursor
	page.TotalCount = res.TotalCount
	return page, nil
}

func (c *Client) post(ctx context.Context, target string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return nil, retry.Unrecoverable(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.SetBasicAuth(c.APIKey, c.APISecret)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		log.WithError(err).WithField("url", target).Warn("media api request failed")
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 5<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	return data, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}
