package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ajharbinger/tennis-decider/internal/classifier"
)

// LabelColumn is the name of the column added to exported tables
const LabelColumn = "Straight_Decider"

// SetsCountColumn is the diagnostic column shown in previews
const SetsCountColumn = "Sets_Count"

// MatchInput is one score/tournament pair to classify
type MatchInput struct {
	Score      *string `json:"score" yaml:"score"`
	Tournament *string `json:"tournament" yaml:"tournament"`
}

// ColumnSelection names the table columns a run used
type ColumnSelection struct {
	Score      string `json:"score_column" yaml:"score_column"`
	Tournament string `json:"tournament_column,omitempty" yaml:"tournament_column,omitempty"`
}

// HasTournament returns true if a tournament column was found
func (c ColumnSelection) HasTournament() bool {
	return c.Tournament != ""
}

// ClassifiedRow is one table row after classification
type ClassifiedRow struct {
	Index      int              `json:"index" yaml:"index"`
	Score      *string          `json:"score" yaml:"score"`
	Tournament *string          `json:"tournament,omitempty" yaml:"tournament,omitempty"`
	SetsCount  int              `json:"sets_count" yaml:"sets_count"`
	Label      classifier.Label `json:"straight_decider" yaml:"straight_decider"`
}

// Summary holds the label counts of a run. Percentages are of Total.
type Summary struct {
	Total           int     `json:"total" yaml:"total"`
	Straight        int     `json:"straight" yaml:"straight"`
	Decider         int     `json:"decider" yaml:"decider"`
	Unclassified    int     `json:"unclassified" yaml:"unclassified"`
	StraightPct     float64 `json:"straight_pct" yaml:"straight_pct"`
	DeciderPct      float64 `json:"decider_pct" yaml:"decider_pct"`
	UnclassifiedPct float64 `json:"unclassified_pct" yaml:"unclassified_pct"`
}

// Summarize counts labels
func Summarize(labels []classifier.Label) Summary {
	s := Summary{Total: len(labels)}
	for _, l := range labels {
		switch l {
		case classifier.Straight:
			s.Straight++
		case classifier.Decider:
			s.Decider++
		default:
			s.Unclassified++
		}
	}
	if s.Total > 0 {
		total := float64(s.Total)
		s.StraightPct = float64(s.Straight) / total * 100
		s.DeciderPct = float64(s.Decider) / total * 100
		s.UnclassifiedPct = float64(s.Unclassified) / total * 100
	}
	return s
}

// ClassificationRun is the result of classifying a whole table
type ClassificationRun struct {
	ID        uuid.UUID       `json:"run_id" yaml:"run_id"`
	Columns   ColumnSelection `json:"columns" yaml:"columns"`
	Rows      []ClassifiedRow `json:"rows" yaml:"rows"`
	Summary   Summary         `json:"summary" yaml:"summary"`
	StartedAt time.Time       `json:"started_at" yaml:"started_at"`
	Duration  time.Duration   `json:"duration" yaml:"duration"`
}

// Labels returns the label of every row, in table order
func (r *ClassificationRun) Labels() []classifier.Label {
	labels := make([]classifier.Label, len(r.Rows))
	for i, row := range r.Rows {
		labels[i] = row.Label
	}
	return labels
}

// LabelsText renders one label per line, ready to paste into a spreadsheet
func (r *ClassificationRun) LabelsText() string {
	var b strings.Builder
	for i, row := range r.Rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strconv.Itoa(int(row.Label)))
	}
	return b.String()
}

// Preview returns at most n rows from the start of the run
func (r *ClassificationRun) Preview(n int) []ClassifiedRow {
	if n < 0 || n >= len(r.Rows) {
		return r.Rows
	}
	return r.Rows[:n]
}
