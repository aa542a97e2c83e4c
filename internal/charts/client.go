// Package charts implements the chart-data client: listing the valid weeks
// for a chart and fetching one week's full entry list.
package charts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"trackclash/internal/models"
)

const userAgent = "trackclash/1.0"

// Chart slugs served by the chart-data source.
var KnownCharts = []string{
	"hot-100",
	"alternative-airplay",
	"country-songs",
	"hot-mainstream-rock-tracks",
	"latin-airplay",
	"r-and-b-songs",
	"rap-song",
}

// IsKnownChart reports whether slug is one of the served charts.
func IsKnownChart(slug string) bool {
	for _, s := range KnownCharts {
		if s == slug {
			return true
		}
	}
	return false
}

// weekPayload is the standardized chart-week export format.
type weekPayload struct {
	Date string      `json:"date"`
	Data []weekEntry `json:"data"`
}

type weekEntry struct {
	Song         string `json:"song"`
	Artist       string `json:"artist"`
	ThisWeek     int    `json:"this_week"`
	LastWeek     *int   `json:"last_week"`
	PeakPosition int    `json:"peak_position"`
	WeeksOnChart int    `json:"weeks_on_chart"`
	New          bool   `json:"new"`
}

// Client fetches chart-week JSON documents from the chart-data source.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// NewClient creates a chart client rooted at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 25 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
		baseURL:    baseURL,
	}
}

// ValidWeeks lists the weeks available for a chart, newest first.
func (c *Client) ValidWeeks(ctx context.Context, chart string) ([]string, error) {
	var weeks []string
	url := fmt.Sprintf("%s/charts/%s/weeks.json", c.baseURL, chart)
	if err := c.getJSON(ctx, url, &weeks); err != nil {
		return nil, fmt.Errorf("list weeks for %s: %w", chart, err)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(weeks)))
	return weeks, nil
}

// FetchWeek retrieves the full entry list for one chart-week. The returned
// entries carry the chart date and are not yet deduplicated.
func (c *Client) FetchWeek(ctx context.Context, chart, date string) ([]models.ChartEntry, error) {
	url := fmt.Sprintf("%s/charts/%s/%s-%s.json", c.baseURL, chart, chart, date)

	var payload weekPayload
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("fetch %s week %s: %w", chart, date, err)
	}
	if len(payload.Data) == 0 {
		return nil, fmt.Errorf("fetch %s week %s: empty chart", chart, date)
	}

	chartDate, err := time.Parse("2006-01-02", payload.Date)
	if err != nil {
		return nil, fmt.Errorf("fetch %s week %s: bad date %q: %w", chart, date, payload.Date, err)
	}

	entries := make([]models.ChartEntry, 0, len(payload.Data))
	for _, e := range payload.Data {
		lastWeek := e.LastWeek
		if e.New {
			lastWeek = nil
		}
		entries = append(entries, models.ChartEntry{
			Song:         e.Song,
			Artist:       e.Artist,
			RankThisWeek: e.ThisWeek,
			RankLastWeek: lastWeek,
			PeakRank:     e.PeakPosition,
			WeeksOnChart: e.WeeksOnChart,
			ChartDate:    &chartDate,
		})
	}
	return entries, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
