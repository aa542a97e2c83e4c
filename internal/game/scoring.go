package game

import (
	"math"
	"time"
)

// Difficulty selects the quick-play score multiplier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Multiplier returns the score multiplier for the difficulty. Classic games
// and unknown values play at 1.0.
func (d Difficulty) Multiplier() float64 {
	switch d {
	case DifficultyMedium:
		return 1.5
	case DifficultyHard:
		return 2.5
	default:
		return 1.0
	}
}

// Valid reports whether d is one of the recognized difficulty tiers.
func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// BasePoints maps answer latency to points: an instant answer earns 100, an
// answer at the 30-second boundary earns 1, linear in between with a floor
// of 1. Time past the boundary is capped.
func BasePoints(elapsed time.Duration) int {
	capped := math.Min(elapsed.Seconds(), RoundDuration.Seconds())
	points := math.Round(100 - (capped/RoundDuration.Seconds())*99)
	if points < 1 {
		points = 1
	}
	return int(points)
}

// RoundPoints applies the difficulty multiplier to the base points and
// rounds to the nearest integer. Only correct answers score; callers award 0
// for wrong answers and timeouts.
func RoundPoints(elapsed time.Duration, multiplier float64) int {
	return int(math.Round(float64(BasePoints(elapsed)) * multiplier))
}
