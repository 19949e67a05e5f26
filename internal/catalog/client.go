// Package catalog provides a client for the remote photo catalog's
// search and management API. The catalog is the source of truth for
// photo records; this service never stores image bytes itself.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ejfox/photos/internal/metrics"
)

// maxResultsPerCall is the upper bound the catalog enforces on a single
// search call. Larger requests are satisfied by cursor paging.
const maxResultsPerCall = 500

// Client handles requests to the photo catalog API.
// It is constructed once at process start and shared by all handlers.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cloudName  string
	apiKey     string
	apiSecret  string
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// Config holds catalog client configuration.
type Config struct {
	BaseURL   string
	CloudName string
	APIKey    string
	APISecret string
	Timeout   time.Duration
}

// New creates a new catalog client. m may be nil.
func New(cfg Config, m *metrics.Metrics, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		cloudName:  cfg.CloudName,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		metrics:    m,
		logger:     logger.With(slog.String("component", "catalog")),
	}
}

// Photo is one image record as returned by the catalog search API.
type Photo struct {
	AssetID   string    `json:"asset_id"`
	PublicID  string    `json:"public_id"`
	SecureURL string    `json:"secure_url"`
	CreatedAt time.Time `json:"created_at"`
	Tags      []string  `json:"tags,omitempty"`
	Width     int       `json:"width,omitempty"`
	Height    int       `json:"height,omitempty"`
	Format    string    `json:"format,omitempty"`
	Bytes     int64     `json:"bytes,omitempty"`
	Context   *Context  `json:"context,omitempty"`
}

// Context carries free-form custom metadata attached to a photo.
type Context struct {
	Custom map[string]string `json:"custom,omitempty"`
}

// SearchOptions controls which photos a search returns.
type SearchOptions struct {
	// MaxResults is the total number of records wanted. Requests above
	// the per-call cap are satisfied by paging.
	MaxResults int

	FilterOutScreenshots bool
	OnlyScreenshots      bool
	OnlyPhotoblog        bool

	IncludeContext bool
	IncludeTags    bool
}

// DefaultSearchOptions returns the options used by most endpoints:
// a modest batch with screenshots filtered out.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		MaxResults:           50,
		FilterOutScreenshots: true,
	}
}

// Expression builds the catalog search expression for the given options.
func Expression(opts SearchOptions) string {
	expr := "resource_type:image"
	if opts.OnlyScreenshots {
		expr += " AND tags=screenshot"
	} else if opts.FilterOutScreenshots {
		expr += " AND -tags=screenshot"
	}
	if opts.OnlyPhotoblog {
		expr += " AND tags=photoblog"
	}
	return expr
}

// searchRequest is the JSON body of a catalog search call.
type searchRequest struct {
	Expression string              `json:"expression"`
	SortBy     []map[string]string `json:"sort_by"`
	MaxResults int                 `json:"max_results"`
	WithField  []string            `json:"with_field,omitempty"`
	NextCursor string              `json:"next_cursor,omitempty"`
}

// searchResponse is the JSON body of a catalog search result.
type searchResponse struct {
	Resources  []Photo `json:"resources"`
	TotalCount int     `json:"total_count"`
	NextCursor string  `json:"next_cursor"`
}

// Search returns photo records matching the options, sorted by creation
// time descending. It pages through results until MaxResults records
// are collected or the catalog runs out.
func (c *Client) Search(ctx context.Context, opts SearchOptions) ([]Photo, error) {
	want := opts.MaxResults
	if want <= 0 {
		want = maxResultsPerCall
	}

	fields := []string{"public_id", "secure_url", "created_at", "width", "height", "format", "bytes"}
	if opts.IncludeContext {
		fields = append(fields, "context")
	}
	if opts.IncludeTags {
		fields = append(fields, "tags")
	}

	var photos []Photo
	cursor := ""
	for len(photos) < want {
		batch := want - len(photos)
		if batch > maxResultsPerCall {
			batch = maxResultsPerCall
		}

		req := searchRequest{
			Expression: Expression(opts),
			SortBy:     []map[string]string{{"created_at": "desc"}},
			MaxResults: batch,
			WithField:  fields,
			NextCursor: cursor,
		}

		var resp searchResponse
		if err := c.post(ctx, c.searchURL(), req, &resp); err != nil {
			c.metrics.IncCatalogSearches("error")
			return nil, fmt.Errorf("catalog search: %w", err)
		}
		c.metrics.IncCatalogSearches("success")

		photos = append(photos, resp.Resources...)
		if resp.NextCursor == "" || len(resp.Resources) == 0 {
			break
		}
		cursor = resp.NextCursor
	}

	c.logger.Debug("catalog search complete",
		slog.Int("returned", len(photos)),
		slog.Int("requested", want),
	)
	return photos, nil
}

// SearchCreatedAfter returns photos created strictly after the given
// instant, newest first. Used by the mirror sync.
func (c *Client) SearchCreatedAfter(ctx context.Context, after time.Time) ([]Photo, error) {
	req := searchRequest{
		Expression: fmt.Sprintf(`resource_type:image AND created_at>"%s"`, after.UTC().Format(time.RFC3339)),
		SortBy:     []map[string]string{{"created_at": "desc"}},
		MaxResults: maxResultsPerCall,
	}

	var resp searchResponse
	if err := c.post(ctx, c.searchURL(), req, &resp); err != nil {
		c.metrics.IncCatalogSearches("error")
		return nil, fmt.Errorf("catalog search: %w", err)
	}
	c.metrics.IncCatalogSearches("success")
	return resp.Resources, nil
}

// AddTag attaches a tag to the given photo.
func (c *Client) AddTag(ctx context.Context, publicID, tag string) error {
	return c.tagCommand(ctx, publicID, tag, "add")
}

// RemoveTag detaches a tag from the given photo.
func (c *Client) RemoveTag(ctx context.Context, publicID, tag string) error {
	return c.tagCommand(ctx, publicID, tag, "remove")
}

func (c *Client) tagCommand(ctx context.Context, publicID, tag, command string) error {
	form := url.Values{}
	form.Set("tag", tag)
	form.Set("command", command)
	form.Add("public_ids[]", publicID)

	if err := c.postForm(ctx, c.uploadURL("tags"), form); err != nil {
		return fmt.Errorf("catalog %s tag: %w", command, err)
	}

	c.logger.Info("tag updated",
		slog.String("public_id", publicID),
		slog.String("tag", tag),
		slog.String("command", command),
	)
	return nil
}

// UpdateContext sets custom context key/value pairs on the given photo.
func (c *Client) UpdateContext(ctx context.Context, publicID string, kv map[string]string) error {
	pairs := make([]string, 0, len(kv))
	for k, v := range kv {
		pairs = append(pairs, k+"="+v)
	}

	form := url.Values{}
	form.Set("context", strings.Join(pairs, "|"))
	form.Add("public_ids[]", publicID)

	if err := c.postForm(ctx, c.uploadURL("context"), form); err != nil {
		return fmt.Errorf("catalog update context: %w", err)
	}
	return nil
}

func (c *Client) searchURL() string {
	return fmt.Sprintf("%s/v1_1/%s/resources/search", c.baseURL, c.cloudName)
}

func (c *Client) uploadURL(action string) string {
	return fmt.Sprintf("%s/v1_1/%s/image/%s", c.baseURL, c.cloudName, action)
}

// post sends a JSON request and decodes the JSON response.
func (c *Client) post(ctx context.Context, reqURL string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// postForm sends a form-encoded request, discarding the response body.
func (c *Client) postForm(ctx context.Context, reqURL string, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	return nil
}
