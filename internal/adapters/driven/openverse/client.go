package openverse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/khareeta/internal/core/domain"
	"github.com/custodia-labs/khareeta/internal/core/ports/driven"
	"github.com/custodia-labs/khareeta/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.ImageSearcher = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL  = "https://api.openverse.org/v1"
	DefaultPageSize = 6
	DefaultTimeout  = 10 * time.Second
	userAgent       = "khareeta/1.0"
)

// ErrRateLimited is returned when Openverse answers 429.
var ErrRateLimited = errors.New("openverse rate limit exceeded")

// blockedWords reject an item when found in its lowercased title.
var blockedWords = []string{
	"nude", "nudity", "sex", "sexy", "porn", "erotic",
	"explicit", "violence", "gore", "bloody", "drug", "weapon",
}

// Config holds configuration for the Openverse client.
type Config struct {
	// BaseURL is the API root (default: https://api.openverse.org/v1).
	BaseURL string

	// PageSize is the number of results requested (default: 6).
	PageSize int

	// Timeout is the request timeout (default: 10s).
	Timeout time.Duration

	// RateLimit throttles outgoing requests.
	RateLimit RateLimitConfig
}

// Client searches Openverse for images.
type Client struct {
	client   *http.Client
	baseURL  string
	pageSize int
	limiter  *RateLimiter
}

// imageResponse is the /images/ response format.
type imageResponse struct {
	ResultCount int           `json:"result_count"`
	Results     []imageResult `json:"results"`
}

type imageResult struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	URL               string `json:"url"`
	Thumbnail         string `json:"thumbnail"`
	Creator           string `json:"creator"`
	License           string `json:"license"`
	ForeignLandingURL string `json:"foreign_landing_url"`
	Mature            bool   `json:"mature"`
}

// NewClient creates a new Openverse client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		pageSize: cfg.PageSize,
		limiter:  NewRateLimiter(cfg.RateLimit),
	}
}

// SearchImages returns at most limit unique, child-safe images for query.
// A limit <= 0 keeps every usable result of the page.
func (c *Client) SearchImages(ctx context.Context, query string, limit int) ([]domain.Image, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Image{}, nil
	}

	if !c.limiter.Allow() {
		logger.Debug("Openverse rate limit reached, waiting")
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for rate limit: %w", err)
		}
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("page_size", strconv.Itoa(c.pageSize))
	endpoint := c.baseURL + "/images/?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	logger.Debug("Openverse search: %s", endpoint)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		c.limiter.Backoff(retryAfter(resp.Header.Get("Retry-After")))
		return nil, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
		if err != nil {
			return nil, fmt.Errorf("openverse error (status %d): failed to read response", resp.StatusCode)
		}
		return nil, fmt.Errorf("openverse error (status %d): %s", resp.StatusCode, string(body))
	}

	var payload imageResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	images := collect(payload.Results, limit)
	logger.Debug("Openverse %q: %d results, %d kept", query, len(payload.Results), len(images))
	return images, nil
}

// collect maps results to images, dropping unsafe items, items without a
// usable src and duplicate srcs.
func collect(results []imageResult, limit int) []domain.Image {
	images := make([]domain.Image, 0, len(results))
	seen := make(map[string]struct{}, len(results))
	for _, r := range results {
		if !kidSafe(r) {
			continue
		}
		img := toImage(r)
		if img.Src == "" {
			continue
		}
		if _, dup := seen[img.Src]; dup {
			continue
		}
		seen[img.Src] = struct{}{}
		images = append(images, img)
		if limit > 0 && len(images) >= limit {
			break
		}
	}
	return images
}

func toImage(r imageResult) domain.Image {
	return domain.Image{
		Src:     firstNonEmpty(r.Thumbnail, r.URL),
		Source:  firstNonEmpty(r.ForeignLandingURL, r.URL),
		Title:   r.Title,
		Creator: r.Creator,
		License: r.License,
		Mature:  r.Mature,
	}
}

func kidSafe(r imageResult) bool {
	if r.Mature {
		return false
	}
	title := strings.ToLower(r.Title)
	for _, w := range blockedWords {
		if strings.Contains(title, w) {
			return false
		}
	}
	return true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(header string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
