package classifier

import (
	"regexp"
	"strings"
)

var (
	// separatorReplacer maps the alternate separator conventions onto the
	// canonical dash-separated form. Slashes become dashes, commas become
	// set boundaries.
	separatorReplacer = strings.NewReplacer(
		"–", "-", // en dash
		"—", "-", // em dash
		"/", "-",
		",", " ",
	)

	noiseRegex      = regexp.MustCompile(`[^0-9\-()\s]`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// Normalize reduces a raw score string to the alphabet {0-9, -, (, ), space}.
// Anything outside that alphabet becomes a single space so that stray letters
// ("ret.", "W/O", "def") still act as token boundaries.
func Normalize(score string) string {
	s := separatorReplacer.Replace(score)
	s = noiseRegex.ReplaceAllString(s, " ")
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
