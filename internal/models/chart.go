package models

import (
	"time"

	"trackclash/internal/match"
)

// ChartEntry represents one song's position on a chart for a given week.
// Entries are immutable once fetched; they live for the duration of one game.
type ChartEntry struct {
	Song         string
	Artist       string
	RankThisWeek int
	RankLastWeek *int // nil means the song is new on the chart
	PeakRank     int
	WeeksOnChart int
	ChartDate    *time.Time // nil in quick-play mode
	ImageURL     string
}

// Key returns the identity key used for exact deduplication: the normalized
// (song, artist) pair. Two entries are the same track iff their keys match.
// This is deliberately distinct from the fuzzy matching used for preview
// search.
func (e ChartEntry) Key() string {
	return TrackKey(e.Song, e.Artist)
}

// TrackKey builds an identity key from a raw song/artist pair.
func TrackKey(song, artist string) string {
	return match.Normalize(song) + "|" + match.Normalize(artist)
}

// Label returns the human-readable "song — artist" form of the entry.
func (e ChartEntry) Label() string {
	return e.Song + " — " + e.Artist
}

// DedupeEntries removes entries whose identity key has already been seen,
// keeping the first (best-ranked) occurrence.
func DedupeEntries(entries []ChartEntry) []ChartEntry {
	seen := make(map[string]bool, len(entries))
	out := make([]ChartEntry, 0, len(entries))
	for _, e := range entries {
		key := e.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}
