// Package classifier labels tennis match scores as straight-sets or
// decider-set results.
//
// The pipeline is normalize -> extract sets -> dedupe -> count -> format
// table. Every failure degrades to Unclassified; nothing in this package
// returns an error or keeps state between calls, so it is safe to call from
// any number of goroutines.
package classifier

// Reason explains how a label was reached.
type Reason string

const (
	ReasonMissingScore   Reason = "missing_score"
	ReasonEmptyScore     Reason = "empty_score"
	ReasonNoSets         Reason = "no_sets"
	ReasonAmbiguousCount Reason = "ambiguous_count"
	ReasonClassified     Reason = "classified"
)

// Result is the full trace of one classification.
type Result struct {
	Normalized string     `json:"normalized" yaml:"normalized"`
	Sets       []SetToken `json:"sets" yaml:"sets"`
	UniqueSets []string   `json:"unique_sets" yaml:"unique_sets"`
	GrandSlam  bool       `json:"grand_slam" yaml:"grand_slam"`
	BestOf     int        `json:"best_of" yaml:"best_of"`
	Label      Label      `json:"label" yaml:"label"`
	Reason     Reason     `json:"reason" yaml:"reason"`
}

// SetsCount is the number of distinct sets that drove the label.
func (r Result) SetsCount() int {
	return len(r.UniqueSets)
}

// Classify labels a score. A nil score is missing; a nil tournament means the
// match is treated as best-of-3.
func Classify(score, tournament *string) Label {
	return Explain(score, tournament).Label
}

// ClassifyText is Classify for callers holding plain strings. An empty
// tournament counts as absent.
func ClassifyText(score, tournament string) Label {
	var t *string
	if tournament != "" {
		t = &tournament
	}
	return Classify(&score, t)
}

// Explain runs the same pipeline as Classify and returns every intermediate
// step.
func Explain(score, tournament *string) Result {
	grandSlam := IsGrandSlam(tournament)
	result := Result{
		GrandSlam: grandSlam,
		BestOf:    BestOf(grandSlam),
		Label:     Unclassified,
	}

	if score == nil {
		result.Reason = ReasonMissingScore
		return result
	}

	result.Normalized = Normalize(*score)
	if result.Normalized == "" {
		result.Reason = ReasonEmptyScore
		return result
	}

	result.Sets = ExtractSets(result.Normalized)
	if len(result.Sets) == 0 {
		result.Reason = ReasonNoSets
		return result
	}

	result.UniqueSets = UniqueSets(result.Sets)
	result.Label = ClassifyFormat(len(result.UniqueSets), grandSlam)
	if result.Label == Unclassified {
		result.Reason = ReasonAmbiguousCount
	} else {
		result.Reason = ReasonClassified
	}
	return result
}

// CountSets returns the number of distinct sets in a score, 0 when the score
// is missing or has no recognizable sets.
func CountSets(score *string) int {
	if score == nil {
		return 0
	}
	return len(UniqueSets(ExtractSets(Normalize(*score))))
}
