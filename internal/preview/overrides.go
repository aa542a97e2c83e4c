package preview

import "trackclash/internal/models"

// Override pins the lookup behavior for a song/artist pair the generic
// search path gets wrong. Either a fixed catalog query replaces the
// generated one, or the pair is marked permanently unavailable. New catalog
// anomalies go here, not in the resolver.
type Override struct {
	Query       string
	Unavailable bool
}

func overrideKey(song, artist string) string {
	return models.TrackKey(song, artist)
}

func defaultOverrides() map[string]Override {
	return map[string]Override{
		// Garth Brooks' catalog is absent from the store; searching only
		// surfaces tribute-band covers that score well enough to win.
		overrideKey("More Than a Memory", "Garth Brooks"): {
			Unavailable: true,
		},
		// The store lists the track under its romanized + Hangul title, so
		// the generated "artist song" query misses it.
		overrideKey("Gangnam Style", "PSY"): {
			Query: "PSY Gangnam Style (Gangnamseutail)",
		},
	}
}
