package match

import (
	"regexp"
	"strings"
)

var (
	nonWordChars = regexp.MustCompile(`[^\w\s]`)
	multiSpace   = regexp.MustCompile(`\s+`)

	// Matches a trailing featuring clause: the marker must be preceded by
	// whitespace or an opening bracket so tokens like "Xtreme" or a leading
	// "X Ambassadors" are left alone.
	featClause = regexp.MustCompile(`(?i)[\s(\[](?:feat\.?|featuring|ft\.?|with|x)\s+[^)\]]*[)\]]?\s*$`)
)

// Normalize lowercases a string, strips punctuation, collapses runs of
// whitespace and trims the ends. It never fails; empty input yields "".
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = nonWordChars.ReplaceAllString(s, "")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// StripFeaturing removes a trailing featuring clause ("feat.", "featuring",
// "ft.", "with" or a collaboration "x") along with any brackets around it.
// "Empire State of Mind (feat. Alicia Keys)" becomes "Empire State of Mind".
func StripFeaturing(s string) string {
	loc := featClause.FindStringIndex(s)
	if loc == nil {
		return strings.TrimSpace(s)
	}
	out := s[:loc[0]]
	out = strings.TrimRight(out, " ([")
	return strings.TrimSpace(out)
}

// Tokens returns the normalized, feature-stripped words of s.
func Tokens(s string) []string {
	return strings.Fields(Normalize(StripFeaturing(s)))
}
