package table

import (
	"html"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	apperrors "github.com/ajharbinger/tennis-decider/internal/errors"
)

// ParseHTML returns every <table> in the document that has a header row and
// at least one data row, in document order.
func ParseHTML(r io.Reader) ([]*Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, apperrors.ParseError("failed to parse HTML", err).WithOperation("parse_html")
	}

	// Set scores are often split with <br>; keep them apart.
	doc.Find("br").ReplaceWithHtml(" ")
	doc.Find("sup").Each(func(i int, s *goquery.Selection) {
		s.ReplaceWithHtml(tieBreakText(s.Text()))
	})

	var tables []*Table
	doc.Find("table").Each(func(i int, s *goquery.Selection) {
		if t := parseTable(s); t != nil {
			tables = append(tables, t)
		}
	})

	if len(tables) == 0 {
		return nil, apperrors.ParseError("no results table found in HTML", nil).WithOperation("parse_html")
	}
	return tables, nil
}

// ParseHTMLFirst returns the first table whose headers include a score column.
func ParseHTMLFirst(r io.Reader) (*Table, error) {
	tables, err := ParseHTML(r)
	if err != nil {
		return nil, err
	}
	for _, t := range tables {
		if _, err := DetectColumns(t.Columns); err == nil {
			return t, nil
		}
	}
	return nil, apperrors.ColumnNotFound("no table with a score column", nil).WithOperation("parse_html")
}

func parseTable(s *goquery.Selection) *Table {
	// Only rows belonging to this table, not to nested ones.
	rows := s.Find("tr").FilterFunction(func(i int, tr *goquery.Selection) bool {
		return tr.Closest("table").IsSelection(s)
	})
	if rows.Length() < 2 {
		return nil
	}

	headerIdx := 0
	rows.EachWithBreak(func(i int, tr *goquery.Selection) bool {
		if tr.Children().Filter("th").Length() > 0 {
			headerIdx = i
			return false
		}
		return true
	})

	var header []string
	var data [][]*string
	rows.Each(func(i int, tr *goquery.Selection) {
		if i < headerIdx {
			return
		}
		cells := tr.Children().Filter("th, td")
		if i == headerIdx {
			cells.Each(func(_ int, c *goquery.Selection) {
				header = append(header, cellText(c))
			})
			return
		}
		if cells.Length() == 0 {
			return
		}
		row := make([]*string, 0, cells.Length())
		cells.Each(func(_ int, c *goquery.Selection) {
			row = append(row, Cell(cellText(c)))
		})
		data = append(data, row)
	})

	if len(header) == 0 || len(data) == 0 {
		return nil
	}
	return New(header, data)
}

func cellText(c *goquery.Selection) string {
	return strings.Join(strings.Fields(c.Text()), " ")
}

// tieBreakText rewrites superscript tie-break points ("7-6<sup>5</sup>") into
// the parenthesized form. Anything that is not a plain number is dropped.
func tieBreakText(sup string) string {
	points := strings.Trim(strings.TrimSpace(sup), "()")
	if points == "" {
		return ""
	}
	for _, r := range points {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return " (" + html.EscapeString(points) + ")"
}
