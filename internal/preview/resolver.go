// Package preview locates a playable audio preview for a chart entry by
// searching the external catalog and ranking the loosely-matching results.
package preview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trackclash/internal/catalog"
	"trackclash/internal/match"
	"trackclash/internal/models"
)

// ErrNoPreview is returned when the catalog has no usable preview for a
// track: no results, or no ranked candidate with a preview URL.
var ErrNoPreview = errors.New("no preview available")

const searchLimit = 10

// Preview is a resolved, playable clip for one round.
type Preview struct {
	URL        string
	Label      string // "title — artist" of the catalog match
	ArtworkURL string // empty when the catalog has no artwork
}

// Searcher is the catalog capability the resolver needs.
type Searcher interface {
	Search(ctx context.Context, term, country string, limit int) ([]catalog.Track, error)
}

// Resolver turns a nominal chart entry into a playable preview.
type Resolver struct {
	searcher  Searcher
	scorer    *match.Scorer
	country   string
	overrides map[string]Override
}

// NewResolver creates a resolver searching the given storefront country.
func NewResolver(searcher Searcher, country string) *Resolver {
	return &Resolver{
		searcher:  searcher,
		scorer:    match.NewScorer(match.DefaultWeights()),
		country:   country,
		overrides: defaultOverrides(),
	}
}

// Resolve finds a preview for the entry, or fails with ErrNoPreview (or a
// network error) so the caller can substitute another track.
func (r *Resolver) Resolve(ctx context.Context, entry models.ChartEntry) (*Preview, error) {
	query := entry.Artist + " " + entry.Song

	if o, ok := r.overrides[overrideKey(entry.Song, entry.Artist)]; ok {
		if o.Unavailable {
			return nil, fmt.Errorf("%q by %q: %w", entry.Song, entry.Artist, ErrNoPreview)
		}
		query = o.Query
	}

	results, err := r.searcher.Search(ctx, query, r.country, searchLimit)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no catalog results for %q: %w", query, ErrNoPreview)
	}

	candidates := make([]match.Candidate, len(results))
	for i, t := range results {
		candidates[i] = match.Candidate{
			Title:      t.Title,
			Artist:     t.Artist,
			PreviewURL: t.PreviewURL,
			ArtworkURL: t.ArtworkURL,
		}
	}

	for _, c := range r.scorer.Rank(entry.Song, entry.Artist, candidates) {
		if c.PreviewURL == "" {
			continue
		}
		return &Preview{
			URL:        c.PreviewURL,
			Label:      c.Title + " — " + c.Artist,
			ArtworkURL: upsizeArtwork(c.ArtworkURL),
		}, nil
	}

	return nil, fmt.Errorf("no candidate with a preview for %q: %w", query, ErrNoPreview)
}

// upsizeArtwork swaps the catalog's thumbnail size token for a larger one.
func upsizeArtwork(url string) string {
	return strings.Replace(url, "100x100", "300x300", 1)
}
