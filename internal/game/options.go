package game

import (
	"math/rand"

	"trackclash/internal/models"
)

// OptionCount is the size of the multiple-choice set shown each round.
const OptionCount = 4

// BuildOptions assembles the multiple-choice set for a round: the correct
// track plus three distractors drawn uniformly at random from the pool
// (excluding the correct track by identity key, no duplicates), shuffled so
// the correct track's position is unpredictable.
//
// Degraded pools are tolerated rather than rejected: with fewer than three
// unique distractors available the set is simply smaller, and an empty pool
// yields just the correct track. The set always contains the correct track
// exactly once.
func BuildOptions(correct models.ChartEntry, pool []models.ChartEntry, rng *rand.Rand) []models.ChartEntry {
	correctKey := correct.Key()

	seen := map[string]bool{correctKey: true}
	distractors := make([]models.ChartEntry, 0, len(pool))
	for _, e := range pool {
		key := e.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		distractors = append(distractors, e)
	}

	rng.Shuffle(len(distractors), func(i, j int) {
		distractors[i], distractors[j] = distractors[j], distractors[i]
	})

	n := OptionCount - 1
	if n > len(distractors) {
		n = len(distractors)
	}

	options := append(distractors[:n:n], correct)
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}
