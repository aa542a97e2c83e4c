package preview

import (
	"context"
	"errors"
	"testing"

	"trackclash/internal/catalog"
	"trackclash/internal/models"
)

// fakeSearcher returns canned results and records the queries it saw.
type fakeSearcher struct {
	results []catalog.Track
	err     error
	queries []string
}

func (f *fakeSearcher) Search(ctx context.Context, term, country string, limit int) ([]catalog.Track, error) {
	f.queries = append(f.queries, term)
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func TestResolvePicksBestWithPreview(t *testing.T) {
	searcher := &fakeSearcher{
		results: []catalog.Track{
			// Best textual match but no playable clip.
			{Title: "Hello", Artist: "Adele"},
			{Title: "Hello (Live)", Artist: "Adele", PreviewURL: "https://cdn/live.m4a"},
			{Title: "Hello", Artist: "Adele", PreviewURL: "https://cdn/studio.m4a", ArtworkURL: "https://cdn/100x100bb.jpg"},
		},
	}

	r := NewResolver(searcher, "US")
	p, err := r.Resolve(context.Background(), models.ChartEntry{Song: "Hello", Artist: "Adele"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if p.URL != "https://cdn/studio.m4a" {
		t.Errorf("chose %q, want the studio preview", p.URL)
	}
	if p.Label != "Hello — Adele" {
		t.Errorf("label = %q, want %q", p.Label, "Hello — Adele")
	}
	if p.ArtworkURL != "https://cdn/300x300bb.jpg" {
		t.Errorf("artwork = %q, want upsized 300x300", p.ArtworkURL)
	}

	if len(searcher.queries) != 1 || searcher.queries[0] != "Adele Hello" {
		t.Errorf("queries = %v, want single %q", searcher.queries, "Adele Hello")
	}
}

func TestResolveNoCandidateWithPreview(t *testing.T) {
	searcher := &fakeSearcher{
		results: []catalog.Track{
			{Title: "Hello", Artist: "Adele"},
			{Title: "Hello", Artist: "Adele Tribute Band"},
		},
	}

	r := NewResolver(searcher, "US")
	_, err := r.Resolve(context.Background(), models.ChartEntry{Song: "Hello", Artist: "Adele"})
	if !errors.Is(err, ErrNoPreview) {
		t.Fatalf("expected ErrNoPreview, got %v", err)
	}
}

func TestResolveEmptyResults(t *testing.T) {
	r := NewResolver(&fakeSearcher{}, "US")
	_, err := r.Resolve(context.Background(), models.ChartEntry{Song: "Obscure", Artist: "Nobody"})
	if !errors.Is(err, ErrNoPreview) {
		t.Fatalf("expected ErrNoPreview, got %v", err)
	}
}

func TestResolveNetworkError(t *testing.T) {
	netErr := errors.New("connection refused")
	r := NewResolver(&fakeSearcher{err: netErr}, "US")

	_, err := r.Resolve(context.Background(), models.ChartEntry{Song: "Hello", Artist: "Adele"})
	if !errors.Is(err, netErr) {
		t.Fatalf("expected network error passed through, got %v", err)
	}
	if errors.Is(err, ErrNoPreview) {
		t.Error("network failure should not be reported as a missing preview")
	}
}

func TestResolveOverrideUnavailable(t *testing.T) {
	searcher := &fakeSearcher{
		results: []catalog.Track{{Title: "More Than a Memory", Artist: "Garth Tribute", PreviewURL: "x"}},
	}

	r := NewResolver(searcher, "US")
	_, err := r.Resolve(context.Background(), models.ChartEntry{Song: "More Than a Memory", Artist: "Garth Brooks"})
	if !errors.Is(err, ErrNoPreview) {
		t.Fatalf("expected ErrNoPreview for overridden pair, got %v", err)
	}
	if len(searcher.queries) != 0 {
		t.Error("unavailable override must not hit the catalog at all")
	}
}

func TestResolveOverrideFixedQuery(t *testing.T) {
	searcher := &fakeSearcher{
		results: []catalog.Track{
			{Title: "Gangnam Style (Gangnamseutail)", Artist: "PSY", PreviewURL: "https://cdn/gangnam.m4a"},
		},
	}

	r := NewResolver(searcher, "US")
	p, err := r.Resolve(context.Background(), models.ChartEntry{Song: "Gangnam Style", Artist: "PSY"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if p.URL != "https://cdn/gangnam.m4a" {
		t.Errorf("unexpected preview %q", p.URL)
	}

	if len(searcher.queries) != 1 || searcher.queries[0] != "PSY Gangnam Style (Gangnamseutail)" {
		t.Errorf("override query not used, got %v", searcher.queries)
	}
}

func TestUpsizeArtwork(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "thumbnail token upgraded",
			input:    "https://cdn/abc/100x100bb.jpg",
			expected: "https://cdn/abc/300x300bb.jpg",
		},
		{
			name:     "no token untouched",
			input:    "https://cdn/abc/cover.jpg",
			expected: "https://cdn/abc/cover.jpg",
		},
		{
			name:     "empty stays empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := upsizeArtwork(tt.input); got != tt.expected {
				t.Errorf("upsizeArtwork(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
