package classifier

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// grandSlamRegistry lists the best-of-5 tournaments, in canonical order.
var grandSlamRegistry = [...]string{
	"Australian Open",
	"Roland Garros",
	"Wimbledon",
	"US Open",
}

var lowerGrandSlams = func() []string {
	lower := cases.Lower(language.Und)
	lowered := make([]string, len(grandSlamRegistry))
	for i, name := range grandSlamRegistry {
		lowered[i] = lower.String(name)
	}
	return lowered
}()

// GrandSlams returns a copy of the Grand Slam registry.
func GrandSlams() []string {
	names := make([]string, len(grandSlamRegistry))
	copy(names, grandSlamRegistry[:])
	return names
}

// IsGrandSlam reports whether the tournament name contains one of the Grand
// Slam names, ignoring case. A nil name is never a Grand Slam.
func IsGrandSlam(tournament *string) bool {
	if tournament == nil {
		return false
	}
	return IsGrandSlamName(*tournament)
}

// IsGrandSlamName is IsGrandSlam for a plain string. "2023 Wimbledon
// Championships" matches, "AO" does not.
func IsGrandSlamName(tournament string) bool {
	if tournament == "" {
		return false
	}
	// cases.Caser is stateful, so each call gets its own.
	name := cases.Lower(language.Und).String(tournament)
	for _, slam := range lowerGrandSlams {
		if strings.Contains(name, slam) {
			return true
		}
	}
	return false
}
