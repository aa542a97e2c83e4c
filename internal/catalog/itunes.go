// Package catalog implements the audio-catalog search client used to find
// playable song previews (iTunes Search API).
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://itunes.apple.com"
	userAgent      = "trackclash/1.0 (+https://github.com/trackclash/trackclash)"
)

// Track is one catalog search result. PreviewURL and ArtworkURL may be empty.
type Track struct {
	Title      string `json:"trackName"`
	Artist     string `json:"artistName"`
	PreviewURL string `json:"previewUrl"`
	ArtworkURL string `json:"artworkUrl100"`
}

type searchResponse struct {
	ResultCount int     `json:"resultCount"`
	Results     []Track `json:"results"`
}

// Client talks to the catalog search endpoint. The catalog throttles
// aggressively (roughly 20 calls per minute), so every request goes through
// a shared rate limiter.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// NewClient creates a catalog client. An empty baseURL selects the public
// catalog endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		// 20 requests per minute
		limiter: rate.NewLimiter(rate.Every(3*time.Second), 1),
		baseURL: baseURL,
	}
}

// Search queries the catalog for tracks matching term in the given
// storefront country, returning at most limit results.
func (c *Client) Search(ctx context.Context, term, country string, limit int) ([]Track, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("term", term)
	params.Set("country", country)
	params.Set("media", "music")
	params.Set("entity", "song")
	params.Set("limit", strconv.Itoa(limit))

	searchURL := c.baseURL + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog search: status %d", resp.StatusCode)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("catalog search: decode response: %w", err)
	}

	return result.Results, nil
}
