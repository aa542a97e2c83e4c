package charts

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestValidWeeks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/charts/hot-100/weeks.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		fmt.Fprint(w, `["2016-01-02", "2016-01-16", "2016-01-09"]`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	weeks, err := client.ValidWeeks(context.Background(), "hot-100")
	if err != nil {
		t.Fatalf("ValidWeeks returned error: %v", err)
	}

	want := []string{"2016-01-16", "2016-01-09", "2016-01-02"}
	if len(weeks) != len(want) {
		t.Fatalf("expected %d weeks, got %d", len(want), len(weeks))
	}
	for i := range want {
		if weeks[i] != want[i] {
			t.Errorf("week[%d] = %q, want %q (newest first)", i, weeks[i], want[i])
		}
	}
}

func TestFetchWeek(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/charts/hot-100/hot-100-2016-01-09.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		fmt.Fprint(w, `{
			"date": "2016-01-09",
			"data": [
				{"song": "Hello", "artist": "Adele", "this_week": 1, "last_week": 1, "peak_position": 1, "weeks_on_chart": 10, "new": false},
				{"song": "Sorry", "artist": "Justin Bieber", "this_week": 2, "last_week": null, "peak_position": 2, "weeks_on_chart": 1, "new": true}
			]
		}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	entries, err := client.FetchWeek(context.Background(), "hot-100", "2016-01-09")
	if err != nil {
		t.Fatalf("FetchWeek returned error: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	first := entries[0]
	if first.Song != "Hello" || first.Artist != "Adele" || first.RankThisWeek != 1 {
		t.Errorf("unexpected first entry: %+v", first)
	}
	if first.RankLastWeek == nil || *first.RankLastWeek != 1 {
		t.Error("expected first entry to carry last week's rank")
	}
	if first.ChartDate == nil || first.ChartDate.Format("2006-01-02") != "2016-01-09" {
		t.Error("expected chart date on entries")
	}

	if entries[1].RankLastWeek != nil {
		t.Error("expected new entry to have nil last-week rank")
	}
}

func TestFetchWeekEmptyChart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"date": "2016-01-09", "data": []}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.FetchWeek(context.Background(), "hot-100", "2016-01-09"); err == nil {
		t.Fatal("expected error for empty chart")
	}
}

func TestIsKnownChart(t *testing.T) {
	if !IsKnownChart("hot-100") {
		t.Error("hot-100 should be known")
	}
	if IsKnownChart("definitely-not-a-chart") {
		t.Error("unknown slug accepted")
	}
}
