package table

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	apperrors "github.com/ajharbinger/tennis-decider/internal/errors"
	"github.com/ajharbinger/tennis-decider/internal/models"
)

// ScoreKeywords identify the score column, in English and French.
var ScoreKeywords = []string{"score", "resultat", "résultat", "result"}

// TournamentKeywords identify the tournament column.
var TournamentKeywords = []string{"tournament", "event", "tournoi"}

// DetectColumns picks the first header matching each keyword list. A missing
// score column is an error; a missing tournament column is not.
func DetectColumns(columns []string) (models.ColumnSelection, error) {
	var sel models.ColumnSelection

	sel.Score = firstMatching(columns, ScoreKeywords)
	if sel.Score == "" {
		return sel, apperrors.ColumnNotFound("score column not found", nil).
			WithDetails("looked for headers containing: " + strings.Join(ScoreKeywords, ", ")).
			WithOperation("detect_columns")
	}
	sel.Tournament = firstMatching(columns, TournamentKeywords)
	return sel, nil
}

// SelectColumns applies explicit column names, detecting whatever was left
// empty.
func SelectColumns(columns []string, scoreColumn, tournamentColumn string) (models.ColumnSelection, error) {
	sel, detectErr := DetectColumns(columns)

	if scoreColumn != "" {
		if !contains(columns, scoreColumn) {
			return sel, apperrors.InvalidInput("unknown score column "+scoreColumn, nil).WithOperation("select_columns")
		}
		sel.Score = scoreColumn
		detectErr = nil
	}
	if detectErr != nil {
		return sel, detectErr
	}

	if tournamentColumn != "" {
		if !contains(columns, tournamentColumn) {
			return sel, apperrors.InvalidInput("unknown tournament column "+tournamentColumn, nil).WithOperation("select_columns")
		}
		sel.Tournament = tournamentColumn
	}
	return sel, nil
}

func firstMatching(columns []string, keywords []string) string {
	for _, col := range columns {
		key := headerKey(col)
		for _, word := range keywords {
			if strings.Contains(key, word) {
				return col
			}
		}
	}
	return ""
}

// headerKey lower-cases a header and composes accents so that "Résultat"
// typed with a combining acute still matches.
func headerKey(header string) string {
	return norm.NFC.String(cases.Lower(language.Und).String(header))
}

func contains(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}
