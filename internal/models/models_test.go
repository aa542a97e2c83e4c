package models

import (
	"testing"
	"time"
)

func TestSessionIsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{
			name:      "future expiration",
			expiresAt: time.Now().Add(1 * time.Hour),
			want:      false,
		},
		{
			name:      "just expired",
			expiresAt: time.Now().Add(-1 * time.Second),
			want:      true,
		},
		{
			name:      "expired yesterday",
			expiresAt: time.Now().Add(-24 * time.Hour),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := Session{
				ID:        "test-session",
				UserID:    1,
				ExpiresAt: tt.expiresAt,
				CreatedAt: time.Now().Add(-1 * time.Hour),
			}
			result := session.IsExpired()
			if result != tt.want {
				t.Errorf("Session.IsExpired() = %v, want %v", result, tt.want)
			}
		})
	}
}

func TestChartEntryKey(t *testing.T) {
	tests := []struct {
		name  string
		a     ChartEntry
		b     ChartEntry
		equal bool
	}{
		{
			name:  "identical entries",
			a:     ChartEntry{Song: "Hello", Artist: "Adele"},
			b:     ChartEntry{Song: "Hello", Artist: "Adele"},
			equal: true,
		},
		{
			name:  "case and punctuation differences",
			a:     ChartEntry{Song: "HUMBLE.", Artist: "Kendrick Lamar"},
			b:     ChartEntry{Song: "Humble", Artist: "kendrick lamar"},
			equal: true,
		},
		{
			name:  "same song different artist",
			a:     ChartEntry{Song: "Hello", Artist: "Adele"},
			b:     ChartEntry{Song: "Hello", Artist: "Lionel Richie"},
			equal: false,
		},
		{
			name:  "featuring clause is part of the identity",
			a:     ChartEntry{Song: "Work", Artist: "Rihanna"},
			b:     ChartEntry{Song: "Work", Artist: "Rihanna featuring Drake"},
			equal: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Key() == tt.b.Key(); got != tt.equal {
				t.Errorf("keys %q and %q: equal = %v, want %v", tt.a.Key(), tt.b.Key(), got, tt.equal)
			}
		})
	}
}

func TestDedupeEntries(t *testing.T) {
	entries := []ChartEntry{
		{Song: "Hello", Artist: "Adele", RankThisWeek: 1},
		{Song: "Sorry", Artist: "Justin Bieber", RankThisWeek: 2},
		{Song: "HELLO", Artist: "adele", RankThisWeek: 47},
		{Song: "Hotline Bling", Artist: "Drake", RankThisWeek: 3},
	}

	deduped := DedupeEntries(entries)
	if len(deduped) != 3 {
		t.Fatalf("expected 3 unique entries, got %d", len(deduped))
	}
	// First occurrence wins.
	if deduped[0].RankThisWeek != 1 {
		t.Errorf("expected best-ranked duplicate kept, got rank %d", deduped[0].RankThisWeek)
	}
}

func TestChartEntryLabel(t *testing.T) {
	e := ChartEntry{Song: "One Dance", Artist: "Drake featuring WizKid & Kyla"}
	want := "One Dance — Drake featuring WizKid & Kyla"
	if e.Label() != want {
		t.Errorf("Label() = %q, want %q", e.Label(), want)
	}
}
