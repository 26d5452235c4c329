package classifier

import (
	"math"
	"regexp"
	"strconv"
)

// setRegex matches one set: "6-4", "7 - 6", "7-6(5)", "7-6 ( 5 )".
var setRegex = regexp.MustCompile(`(\d+)\s*-\s*(\d+)(?:\s*\(\s*(\d+)\s*\))?`)

// SetToken is one set parsed out of a score string. Games1 and Games2 keep the
// order they had in the text, which is not necessarily winner first.
type SetToken struct {
	Games1   int    `json:"games1" yaml:"games1"`
	Games2   int    `json:"games2" yaml:"games2"`
	TieBreak *int   `json:"tie_break,omitempty" yaml:"tie_break,omitempty"`
	Raw      string `json:"raw" yaml:"raw"`

	games1Text string
	games2Text string
}

// BaseKey returns the set without its tie-break annotation and without the
// spacing around the dash, e.g. "7 - 6 (5)" -> "7-6". Digits are kept as
// written so "06-4" and "6-4" stay distinct.
func (t SetToken) BaseKey() string {
	return t.games1Text + "-" + t.games2Text
}

// HasTieBreak reports whether the set carried a parenthesized annotation.
func (t SetToken) HasTieBreak() bool {
	return t.TieBreak != nil
}

// ExtractSets returns every non-overlapping set match in a normalized string,
// left to right.
func ExtractSets(normalized string) []SetToken {
	matches := setRegex.FindAllStringSubmatch(normalized, -1)
	if len(matches) == 0 {
		return nil
	}

	tokens := make([]SetToken, 0, len(matches))
	for _, m := range matches {
		token := SetToken{
			Games1:     parseGames(m[1]),
			Games2:     parseGames(m[2]),
			Raw:        m[0],
			games1Text: m[1],
			games2Text: m[2],
		}
		if m[3] != "" {
			points := parseGames(m[3])
			token.TieBreak = &points
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// parseGames converts a run of ASCII digits. Absurdly long runs saturate
// instead of failing; the token still counts as a set.
func parseGames(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return math.MaxInt
	}
	return n
}
