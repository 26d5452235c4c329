package classifier

// Label is the outcome of classifying one match.
type Label int

const (
	Unclassified Label = -1
	Straight     Label = 0
	Decider      Label = 1
)

func (l Label) String() string {
	switch l {
	case Straight:
		return "straight"
	case Decider:
		return "decider"
	default:
		return "unclassified"
	}
}

// BestOf returns the maximum number of sets for the match format.
func BestOf(grandSlam bool) int {
	if grandSlam {
		return 5
	}
	return 3
}

// ClassifyFormat maps a unique set count to a label.
//
// Best-of-5: 3 or 4 sets is straight, 5 is a decider.
// Best-of-3: 2 sets is straight, 3 is a decider.
// Any other count is unclassified.
func ClassifyFormat(uniqueSets int, grandSlam bool) Label {
	if grandSlam {
		switch uniqueSets {
		case 3, 4:
			return Straight
		case 5:
			return Decider
		}
		return Unclassified
	}

	switch uniqueSets {
	case 2:
		return Straight
	case 3:
		return Decider
	}
	return Unclassified
}
