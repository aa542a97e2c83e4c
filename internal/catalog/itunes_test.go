package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("term") != "Adele Hello" {
			t.Errorf("term = %q, want %q", q.Get("term"), "Adele Hello")
		}
		if q.Get("country") != "US" {
			t.Errorf("country = %q, want US", q.Get("country"))
		}
		if q.Get("entity") != "song" {
			t.Errorf("entity = %q, want song", q.Get("entity"))
		}
		if q.Get("limit") != "10" {
			t.Errorf("limit = %q, want 10", q.Get("limit"))
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"resultCount": 2,
			"results": []map[string]string{
				{
					"trackName":     "Hello",
					"artistName":    "Adele",
					"previewUrl":    "https://example.com/preview.m4a",
					"artworkUrl100": "https://example.com/100x100bb.jpg",
				},
				{
					"trackName":  "Hello (Live)",
					"artistName": "Adele",
				},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	tracks, err := client.Search(context.Background(), "Adele Hello", "US", 10)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	if tracks[0].Title != "Hello" || tracks[0].Artist != "Adele" {
		t.Errorf("unexpected first track: %+v", tracks[0])
	}
	if tracks[0].PreviewURL == "" {
		t.Error("expected first track to have a preview URL")
	}
	if tracks[1].PreviewURL != "" {
		t.Error("expected second track to have no preview URL")
	}
}

func TestSearchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.Search(context.Background(), "anything", "US", 10); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}
