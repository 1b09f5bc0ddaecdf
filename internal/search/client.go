// Package search implements the Google Custom Search gateway: capped web
// results, deduplicated image results, and graceful degradation on failure.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/hackterm/chat-backend/internal"
	"github.com/hackterm/chat-backend/internal/config"
)

// Client handles communication with the Custom Search API.
type Client struct {
	cfg        config.SearchConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a search client with a bounded per-call timeout.
func NewClient(cfg config.SearchConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// apiItem is one raw result from the Custom Search API.
type apiItem struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
	Image   *struct {
		ThumbnailLink string `json:"thumbnailLink"`
	} `json:"image,omitempty"`
}

type apiResponse struct {
	Items []apiItem `json:"items"`
}

// Fetch issues a web search for query and, when includeImages is set, a
// second image search with the query augmented by quality terms. Web
// results are capped to the configured limit; images are deduplicated by
// absolute URL and truncated. A failure of the web call returns (nil, err);
// a failure of the image call is best-effort and only yields empty images.
func (c *Client) Fetch(ctx context.Context, query string, includeImages bool) (*internal.SearchResult, error) {
	items, err := c.query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	result := &internal.SearchResult{
		Web:    make([]internal.WebResult, 0, c.cfg.WebLimit),
		Images: []internal.ImageResult{},
	}
	for _, item := range items {
		if len(result.Web) >= c.cfg.WebLimit {
			break
		}
		result.Web = append(result.Web, internal.WebResult{
			Title:   item.Title,
			Snippet: item.Snippet,
			Link:    item.Link,
		})
	}

	if includeImages {
		qualityQuery := query + " " + c.cfg.QualityTerms
		imageItems, err := c.query(ctx, qualityQuery, url.Values{
			"searchType": {"image"},
			"imgSize":    {"huge"},
			"imgType":    {"photo"},
			"num":        {"10"},
		})
		if err != nil {
			c.logger.Warn("image search failed", zap.Error(err))
		} else {
			result.Images = dedupeImages(imageItems, c.cfg.ImageLimit)
		}
	}

	return result, nil
}

func (c *Client) query(ctx context.Context, q string, extra url.Values) ([]apiItem, error) {
	params := url.Values{}
	params.Set("key", c.cfg.APIKey)
	params.Set("cx", c.cfg.EngineID)
	params.Set("q", q)
	params.Set("num", "5")
	for k, vs := range extra {
		for _, v := range vs {
			params.Set(k, v)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned status %d", resp.StatusCode)
	}

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}
	return out.Items, nil
}

// dedupeImages keeps the first occurrence of each image URL in order and
// truncates to limit entries.
func dedupeImages(items []apiItem, limit int) []internal.ImageResult {
	seen := make(map[string]struct{}, len(items))
	out := make([]internal.ImageResult, 0, limit)
	for _, item := range items {
		if _, ok := seen[item.Link]; ok {
			continue
		}
		seen[item.Link] = struct{}{}
		img := internal.ImageResult{Title: item.Title, Link: item.Link}
		if item.Image != nil {
			img.Thumbnail = item.Image.ThumbnailLink
		}
		out = append(out, img)
		if len(out) >= limit {
			break
		}
	}
	return out
}
