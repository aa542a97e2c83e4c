package match

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Candidate is one search result from the audio catalog. Empty PreviewURL
// means the catalog has no playable clip for it.
type Candidate struct {
	Title      string
	Artist     string
	PreviewURL string
	ArtworkURL string
}

// Weights holds every tunable constant of the scoring heuristic so the
// ranking can be tested and adjusted without touching the orchestration.
type Weights struct {
	TitleExact    int // normalized titles identical
	TitleStripped int // identical after stripping featuring clauses
	ArtistScale   int // artist similarity [0,1] scales to [0,ArtistScale]

	SubstringSimilarity float64 // one artist string contains the other
	ContainmentWeight   float64 // target tokens found in candidate
	JaccardWeight       float64 // token set overlap
	FirstTokenBonus     float64 // primary artist heuristic

	CleanBonus        int // title advertises a clean edit
	AltVersionPenalty int // live / instrumental / karaoke / remix
	PreviewBonus      int // candidate actually has a playable clip
	VariousPenalty    int // compilation credited to "Various Artists"
}

// DefaultWeights returns the tuned constants used in production.
func DefaultWeights() Weights {
	return Weights{
		TitleExact:          4,
		TitleStripped:       3,
		ArtistScale:         7,
		SubstringSimilarity: 0.92,
		ContainmentWeight:   0.7,
		JaccardWeight:       0.3,
		FirstTokenBonus:     0.08,
		CleanBonus:          1,
		AltVersionPenalty:   -2,
		PreviewBonus:        2,
		VariousPenalty:      -3,
	}
}

var (
	cleanTitle      = regexp.MustCompile(`(?i)clean`)
	altVersionTitle = regexp.MustCompile(`(?i)live|instrumental|karaoke|remix`)
)

// Scorer ranks catalog candidates against a target song/artist pair.
type Scorer struct {
	weights     Weights
	jaroWinkler *metrics.JaroWinkler
}

// NewScorer creates a scorer with the given weights.
func NewScorer(w Weights) *Scorer {
	return &Scorer{
		weights:     w,
		jaroWinkler: metrics.NewJaroWinkler(),
	}
}

// Score rates how well a candidate matches the target. Higher is better.
// The score only orders candidates; acceptance is decided by whoever picks
// from the ranked list.
func (s *Scorer) Score(targetSong, targetArtist string, c Candidate) int {
	score := 0

	targetTitle := Normalize(targetSong)
	candTitle := Normalize(c.Title)
	if targetTitle == candTitle {
		score += s.weights.TitleExact
	} else if Normalize(StripFeaturing(targetSong)) == Normalize(StripFeaturing(c.Title)) {
		score += s.weights.TitleStripped
	}

	sim := s.ArtistSimilarity(targetArtist, c.Artist)
	score += int(math.Round(float64(s.weights.ArtistScale) * sim))

	if cleanTitle.MatchString(c.Title) {
		score += s.weights.CleanBonus
	}
	if altVersionTitle.MatchString(c.Title) {
		score += s.weights.AltVersionPenalty
	}
	if c.PreviewURL != "" {
		score += s.weights.PreviewBonus
	}
	if strings.EqualFold(c.Artist, "Various Artists") {
		score += s.weights.VariousPenalty
	}

	return score
}

// ArtistSimilarity estimates how likely two artist credits name the same act,
// in [0,1]. It is deliberately asymmetric: the first argument is the target
// whose tokens we expect to find in the candidate.
func (s *Scorer) ArtistSimilarity(target, candidate string) float64 {
	a := Normalize(StripFeaturing(target))
	b := Normalize(StripFeaturing(candidate))

	if a == b {
		return 1.0
	}
	if a != "" && b != "" && (strings.Contains(a, b) || strings.Contains(b, a)) {
		return s.weights.SubstringSimilarity
	}

	targetTokens := Tokens(target)
	candTokens := Tokens(candidate)
	if len(targetTokens) == 0 || len(candTokens) == 0 {
		return 0
	}

	candSet := make(map[string]bool, len(candTokens))
	for _, t := range candTokens {
		candSet[t] = true
	}
	targetSet := make(map[string]bool, len(targetTokens))
	for _, t := range targetTokens {
		targetSet[t] = true
	}

	shared := 0
	for t := range targetSet {
		if candSet[t] {
			shared++
		}
	}
	union := len(targetSet) + len(candSet) - shared

	containment := float64(shared) / float64(len(targetSet))
	jaccard := float64(shared) / float64(union)

	sim := s.weights.ContainmentWeight*containment + s.weights.JaccardWeight*jaccard
	if targetTokens[0] == candTokens[0] {
		sim += s.weights.FirstTokenBonus
	}

	return math.Max(0, math.Min(1, sim))
}

// Rank returns the candidates sorted best-first. Equal integer scores are
// broken by Jaro-Winkler similarity of the full "artist title" strings, then
// by original catalog order, so the result is deterministic.
func (s *Scorer) Rank(targetSong, targetArtist string, candidates []Candidate) []Candidate {
	type scored struct {
		cand  Candidate
		score int
		sim   float64
		pos   int
	}

	target := Normalize(targetArtist + " " + targetSong)
	ranked := make([]scored, len(candidates))
	for i, c := range candidates {
		ranked[i] = scored{
			cand:  c,
			score: s.Score(targetSong, targetArtist, c),
			sim:   strutil.Similarity(target, Normalize(c.Artist+" "+c.Title), s.jaroWinkler),
			pos:   i,
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		if ranked[i].sim != ranked[j].sim {
			return ranked[i].sim > ranked[j].sim
		}
		return ranked[i].pos < ranked[j].pos
	})

	out := make([]Candidate, len(ranked))
	for i, r := range ranked {
		out[i] = r.cand
	}
	return out
}
