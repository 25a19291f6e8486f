// Package source fetches recent posts for a handle from the third-party
// social-data API, with a redis cache in front to keep API calls down.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"replyloop.app/engine/common/logger"
	"replyloop.app/engine/internal/model"
)

// ErrMissingAPIKey indicates a deployment defect: constructed without
// credentials. Fatal at startup, never retried.
var ErrMissingAPIKey = errors.New("social API key is required")

const cacheWriteTimeout = 5 * time.Second

// Fetcher is the adapter contract the ranker consumes. A fetch error means
// "skip this account, continue with the others" — never a run-level failure.
type Fetcher interface {
	RecentPosts(ctx context.Context, handle string, count int) ([]model.Post, error)
}

type Config struct {
	APIKey  string
	BaseURL string
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cache      PostCache
}

// NewClient creates a social-data API client. The cache is optional; pass nil
// to fetch straight from the API every time.
func NewClient(cfg Config, cache PostCache) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		cache:      cache,
	}, nil
}

type postsResponse struct {
	Posts []model.Post `json:"posts"`
}

// RecentPosts returns up to count recent posts for the handle. A cache hit
// returns immediately. On a miss the API is called and, on success, the
// result is written back to the cache off the request path: the write is a
// detached task whose failures are logged, never surfaced.
func (c *Client) RecentPosts(ctx context.Context, handle string, count int) ([]model.Post, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Handle:    logger.Ptr(handle),
		Component: "engine.source",
	})

	if c.cache != nil {
		posts, err := c.cache.Get(ctx, handle)
		if err == nil {
			slog.DebugContext(ctx, "post cache hit", "count", len(posts))
			return posts, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			// Cache trouble degrades to a miss; the fetch path must not block on it.
			slog.WarnContext(ctx, "post cache read failed, fetching from API", "error", err)
		}
	}

	posts, err := c.fetch(ctx, handle, count)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.writeBack(ctx, handle, posts)
	}

	return posts, nil
}

func (c *Client) fetch(ctx context.Context, handle string, count int) ([]model.Post, error) {
	endpoint := fmt.Sprintf("%s/v1/posts?handle=%s&count=%s",
		c.baseURL, url.QueryEscape(handle), strconv.Itoa(count))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request (handle=%s): %w", handle, err)
	}
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching posts (handle=%s): %w", handle, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response (handle=%s): %w", handle, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("social API status %d (handle=%s): %s",
			resp.StatusCode, handle, logger.Truncate(string(body), 500))
	}

	var parsed postsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding posts response (handle=%s): %w", handle, err)
	}

	slog.DebugContext(ctx, "fetched posts from API", "count", len(parsed.Posts))
	return parsed.Posts, nil
}

// writeBack populates the cache without blocking the caller. The detached
// context survives the request's cancellation but carries its log fields.
func (c *Client) writeBack(ctx context.Context, handle string, posts []model.Post) {
	detached := context.WithoutCancel(ctx)

	go func() {
		writeCtx, cancel := context.WithTimeout(detached, cacheWriteTimeout)
		defer cancel()

		if err := c.cache.Set(writeCtx, handle, posts); err != nil {
			slog.WarnContext(writeCtx, "post cache write failed", "error", err)
		}
	}()
}
