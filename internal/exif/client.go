package exif

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/ejfox/photos/internal/metrics"
)

// ErrNotFound indicates the extractor has no stored metadata for the
// requested identifier.
var ErrNotFound = errors.New("no metadata for resource")

// Client fetches raw EXIF tag bags from the remote metadata extractor.
// The extractor is a shared, rate-limited resource: one limiter guards
// the whole process so concurrent enrichment cannot exceed its quota.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cloudName  string
	apiKey     string
	apiSecret  string
	limiter    *rate.Limiter
	cache      *redis.Client
	cacheTTL   time.Duration
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// ClientConfig holds extractor client configuration.
type ClientConfig struct {
	BaseURL   string
	CloudName string
	APIKey    string
	APISecret string
	Timeout   time.Duration

	// RequestsPerSecond and Burst bound the extractor's global quota.
	RequestsPerSecond float64
	Burst             int

	// CacheTTL controls how long raw payloads stay in the cache.
	CacheTTL time.Duration
}

// NewClient creates a new extractor client.
// cache may be nil, in which case every fetch hits the extractor.
func NewClient(cfg ClientConfig, cache *redis.Client, m *metrics.Metrics, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 20
	}
	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		cloudName:  cfg.CloudName,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		cache:      cache,
		cacheTTL:   ttl,
		metrics:    m,
		logger:     logger.With(slog.String("component", "extractor")),
	}
}

// resourceResponse is the extractor's per-resource payload. Only the
// exif bag is of interest here.
type resourceResponse struct {
	PublicID string `json:"public_id"`
	Exif     Raw    `json:"exif"`
}

// Fetch returns the raw EXIF tag bag for the given photo identifier.
// A cached payload short-circuits the rate limiter. Identifiers the
// extractor has never seen yield ErrNotFound.
func (c *Client) Fetch(ctx context.Context, publicID string) (Raw, error) {
	if raw, ok := c.cacheGet(ctx, publicID); ok {
		c.metrics.IncExtractorCache("hit")
		return raw, nil
	}
	c.metrics.IncExtractorCache("miss")

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v1_1/%s/resources/image/upload/%s?exif=true",
		c.baseURL, c.cloudName, url.PathEscape(publicID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.IncExtractorRequests("error")
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.metrics.IncExtractorRequests("not_found")
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		c.metrics.IncExtractorRequests("error")
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result resourceResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.metrics.IncExtractorRequests("error")
		return nil, fmt.Errorf("decode response: %w", err)
	}
	c.metrics.IncExtractorRequests("success")

	// Empty bag is valid: the photo simply has no camera metadata.
	raw := result.Exif
	if raw == nil {
		raw = Raw{}
	}

	c.cacheSet(ctx, publicID, raw)
	return raw, nil
}

func (c *Client) cacheKey(publicID string) string {
	return "exif:" + publicID
}

func (c *Client) cacheGet(ctx context.Context, publicID string) (Raw, bool) {
	if c.cache == nil {
		return nil, false
	}
	data, err := c.cache.Get(ctx, c.cacheKey(publicID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Debug("cache read failed", slog.Any("error", err))
		}
		return nil, false
	}
	var raw Raw
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false
	}
	return raw, true
}

func (c *Client) cacheSet(ctx context.Context, publicID string, raw Raw) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, c.cacheKey(publicID), data, c.cacheTTL).Err(); err != nil {
		c.logger.Debug("cache write failed", slog.Any("error", err))
	}
}
