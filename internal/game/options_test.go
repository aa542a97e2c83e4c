package game

import (
	"fmt"
	"math/rand"
	"testing"

	"trackclash/internal/models"
)

func testPool(n int) []models.ChartEntry {
	pool := make([]models.ChartEntry, n)
	for i := range pool {
		pool[i] = models.ChartEntry{
			Song:         fmt.Sprintf("Song %d", i),
			Artist:       fmt.Sprintf("Artist %d", i),
			RankThisWeek: i + 1,
		}
	}
	return pool
}

func TestBuildOptions(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pool := testPool(50)
	correct := pool[7]

	options := BuildOptions(correct, pool, rng)

	if len(options) != OptionCount {
		t.Fatalf("expected %d options, got %d", OptionCount, len(options))
	}

	seen := make(map[string]int)
	for _, o := range options {
		seen[o.Key()]++
	}
	if seen[correct.Key()] != 1 {
		t.Errorf("correct track appears %d times, want exactly 1", seen[correct.Key()])
	}
	for key, count := range seen {
		if count > 1 {
			t.Errorf("duplicate option key %q", key)
		}
	}
}

func TestBuildOptionsPositionVaries(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	pool := testPool(50)
	correct := pool[0]

	positions := make(map[int]bool)
	for i := 0; i < 200; i++ {
		options := BuildOptions(correct, pool, rng)
		for idx, o := range options {
			if o.Key() == correct.Key() {
				positions[idx] = true
			}
		}
	}

	if len(positions) < OptionCount {
		t.Errorf("correct track only appeared at positions %v over 200 runs", positions)
	}
}

func TestBuildOptionsDegradedPool(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	tests := []struct {
		name     string
		poolSize int
		expected int
	}{
		{
			name:     "pool of two gives two options",
			poolSize: 2,
			expected: 2,
		},
		{
			name:     "pool of three gives three options",
			poolSize: 3,
			expected: 3,
		},
		{
			name:     "pool of one gives only the correct track",
			poolSize: 1,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := testPool(tt.poolSize)
			options := BuildOptions(pool[0], pool, rng)
			if len(options) != tt.expected {
				t.Errorf("expected %d options, got %d", tt.expected, len(options))
			}
			found := false
			for _, o := range options {
				if o.Key() == pool[0].Key() {
					found = true
				}
			}
			if !found {
				t.Error("correct track missing from degraded option set")
			}
		})
	}
}

func TestBuildOptionsDeduplicatesPool(t *testing.T) {
	rng := rand.New(rand.NewSource(4))

	// The same track listed twice must not produce duplicate distractors.
	pool := []models.ChartEntry{
		{Song: "A", Artist: "X"},
		{Song: "B", Artist: "Y"},
		{Song: "B", Artist: "Y"},
		{Song: "C", Artist: "Z"},
	}
	correct := models.ChartEntry{Song: "D", Artist: "W"}

	options := BuildOptions(correct, pool, rng)
	if len(options) != OptionCount {
		t.Fatalf("expected %d options, got %d", OptionCount, len(options))
	}
	seen := make(map[string]bool)
	for _, o := range options {
		if seen[o.Key()] {
			t.Fatalf("duplicate key %q in options", o.Key())
		}
		seen[o.Key()] = true
	}
}
