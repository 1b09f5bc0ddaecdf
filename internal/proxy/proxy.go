// Package proxy fetches search-result images server-side so the browser
// can download them without tripping cross-origin or hotlink protections.
package proxy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// Some image hosts reject requests without a browser user agent.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

type ImageFetcher struct {
	httpClient *http.Client
	maxBytes   int64
	logger     *zap.Logger
}

func NewImageFetcher(maxBytes int64, logger *zap.Logger) *ImageFetcher {
	return &ImageFetcher{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxBytes:   maxBytes,
		logger:     logger,
	}
}

// Fetch downloads the image at imageURL and returns its bytes and content
// type. The body is capped at maxBytes.
func (f *ImageFetcher) Fetch(ctx context.Context, imageURL string) ([]byte, string, error) {
	u, err := url.Parse(imageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, "", fmt.Errorf("invalid image URL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to fetch image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	f.logger.Debug("fetched image", zap.String("url", imageURL), zap.Int("bytes", len(data)))
	return data, contentType, nil
}
