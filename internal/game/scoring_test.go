package game

import (
	"testing"
	"time"
)

func TestBasePoints(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  time.Duration
		expected int
	}{
		{
			name:     "instant answer",
			elapsed:  0,
			expected: 100,
		},
		{
			name:     "midpoint of the window",
			elapsed:  15 * time.Second,
			expected: 51,
		},
		{
			name:     "exactly at the boundary",
			elapsed:  30 * time.Second,
			expected: 1,
		},
		{
			name:     "past the boundary is capped",
			elapsed:  45 * time.Second,
			expected: 1,
		},
		{
			name:     "one second in",
			elapsed:  time.Second,
			expected: 97,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BasePoints(tt.elapsed); got != tt.expected {
				t.Errorf("BasePoints(%v) = %d, want %d", tt.elapsed, got, tt.expected)
			}
		})
	}
}

func TestRoundPoints(t *testing.T) {
	tests := []struct {
		name       string
		elapsed    time.Duration
		multiplier float64
		expected   int
	}{
		{
			name:       "easy keeps base points",
			elapsed:    0,
			multiplier: DifficultyEasy.Multiplier(),
			expected:   100,
		},
		{
			name:       "medium scales and rounds",
			elapsed:    15 * time.Second, // base 51
			multiplier: DifficultyMedium.Multiplier(),
			expected:   77, // round(51 * 1.5) = round(76.5)
		},
		{
			name:       "hard instant answer",
			elapsed:    0,
			multiplier: DifficultyHard.Multiplier(),
			expected:   250,
		},
		{
			name:       "hard at the boundary",
			elapsed:    30 * time.Second,
			multiplier: DifficultyHard.Multiplier(),
			expected:   3, // round(1 * 2.5)
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundPoints(tt.elapsed, tt.multiplier); got != tt.expected {
				t.Errorf("RoundPoints(%v, %v) = %d, want %d", tt.elapsed, tt.multiplier, got, tt.expected)
			}
		})
	}
}

func TestDifficultyMultiplier(t *testing.T) {
	if DifficultyEasy.Multiplier() != 1.0 {
		t.Error("easy multiplier should be 1.0")
	}
	if DifficultyMedium.Multiplier() != 1.5 {
		t.Error("medium multiplier should be 1.5")
	}
	if DifficultyHard.Multiplier() != 2.5 {
		t.Error("hard multiplier should be 2.5")
	}
	if Difficulty("").Multiplier() != 1.0 {
		t.Error("classic games play at 1.0")
	}
	if Difficulty("nightmare").Valid() {
		t.Error("unknown difficulty accepted")
	}
}
