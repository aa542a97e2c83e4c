package match

import (
	"testing"
)

func TestArtistSimilarityIdentity(t *testing.T) {
	s := NewScorer(DefaultWeights())

	artists := []string{"Adele", "Fetty Wap", "twenty one pilots", "AC/DC"}
	for _, a := range artists {
		if sim := s.ArtistSimilarity(a, a); sim != 1.0 {
			t.Errorf("ArtistSimilarity(%q, %q) = %v, want 1.0", a, a, sim)
		}
	}
}

func TestArtistSimilarityFeaturing(t *testing.T) {
	s := NewScorer(DefaultWeights())

	// The featuring clause is stripped on both sides, so both directions
	// resolve to the same primary artist.
	forward := s.ArtistSimilarity("Fetty Wap", "Fetty Wap featuring Monty")
	reverse := s.ArtistSimilarity("Fetty Wap featuring Monty", "Fetty Wap")

	if forward <= 0.9 {
		t.Errorf("forward similarity = %v, want > 0.9", forward)
	}
	if reverse <= 0.9 {
		t.Errorf("reverse similarity = %v, want > 0.9", reverse)
	}
}

func TestArtistSimilaritySubstring(t *testing.T) {
	s := NewScorer(DefaultWeights())

	sim := s.ArtistSimilarity("Beyonce", "Beyonce & JAY-Z")
	if sim != DefaultWeights().SubstringSimilarity {
		t.Errorf("substring similarity = %v, want %v", sim, DefaultWeights().SubstringSimilarity)
	}
}

func TestArtistSimilarityTokenBlend(t *testing.T) {
	s := NewScorer(DefaultWeights())

	tests := []struct {
		name      string
		target    string
		candidate string
		min, max  float64
	}{
		{
			name:      "shared primary artist different collaborators",
			target:    "Silk Sonic Bruno Mars",
			candidate: "Bruno Mars Anderson Paak Silk Sonic",
			min:       0.8,
			max:       1.0,
		},
		{
			name:      "unrelated artists",
			target:    "Adele",
			candidate: "Drake",
			min:       0,
			max:       0.1,
		},
		{
			name:      "empty candidate",
			target:    "Adele",
			candidate: "",
			min:       0,
			max:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := s.ArtistSimilarity(tt.target, tt.candidate)
			if sim < tt.min || sim > tt.max {
				t.Errorf("ArtistSimilarity(%q, %q) = %v, want in [%v, %v]",
					tt.target, tt.candidate, sim, tt.min, tt.max)
			}
		})
	}
}

func TestScorePrefersStudioVersion(t *testing.T) {
	s := NewScorer(DefaultWeights())

	studio := Candidate{Title: "Hello", Artist: "Adele", PreviewURL: "x"}
	live := Candidate{Title: "Hello (Live)", Artist: "Adele", PreviewURL: "y"}

	studioScore := s.Score("Hello", "Adele", studio)
	liveScore := s.Score("Hello", "Adele", live)

	if studioScore <= liveScore {
		t.Errorf("studio score %d not strictly greater than live score %d", studioScore, liveScore)
	}

	ranked := s.Rank("Hello", "Adele", []Candidate{live, studio})
	if ranked[0].Title != "Hello" {
		t.Errorf("expected studio version ranked first, got %q", ranked[0].Title)
	}
}

func TestScoreModifiers(t *testing.T) {
	w := DefaultWeights()
	s := NewScorer(w)

	tests := []struct {
		name      string
		candidate Candidate
		expected  int
	}{
		{
			name:      "exact match with preview",
			candidate: Candidate{Title: "Closer", Artist: "The Chainsmokers", PreviewURL: "p"},
			expected:  w.TitleExact + w.ArtistScale + w.PreviewBonus,
		},
		{
			name:      "exact match without preview",
			candidate: Candidate{Title: "Closer", Artist: "The Chainsmokers"},
			expected:  w.TitleExact + w.ArtistScale,
		},
		{
			name:      "karaoke version penalized",
			candidate: Candidate{Title: "Closer (Karaoke Version)", Artist: "The Chainsmokers", PreviewURL: "p"},
			expected:  w.ArtistScale + w.AltVersionPenalty + w.PreviewBonus,
		},
		{
			name:      "various artists compilation penalized",
			candidate: Candidate{Title: "Closer", Artist: "Various Artists", PreviewURL: "p"},
			expected:  w.TitleExact + w.PreviewBonus + w.VariousPenalty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := s.Score("Closer", "The Chainsmokers", tt.candidate)
			if score != tt.expected {
				t.Errorf("Score = %d, want %d", score, tt.expected)
			}
		})
	}
}

func TestRankDeterministic(t *testing.T) {
	s := NewScorer(DefaultWeights())

	candidates := []Candidate{
		{Title: "Shape of You", Artist: "Ed Sheeran", PreviewURL: "a"},
		{Title: "Shape of You", Artist: "Ed Sheeran", PreviewURL: "b"},
	}

	first := s.Rank("Shape of You", "Ed Sheeran", candidates)
	second := s.Rank("Shape of You", "Ed Sheeran", candidates)

	for i := range first {
		if first[i].PreviewURL != second[i].PreviewURL {
			t.Fatalf("ranking not deterministic at index %d", i)
		}
	}
	if first[0].PreviewURL != "a" {
		t.Errorf("equal scores should preserve catalog order, got %q first", first[0].PreviewURL)
	}
}
