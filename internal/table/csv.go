package table

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	apperrors "github.com/ajharbinger/tennis-decider/internal/errors"
)

const utf8BOM = "\ufeff"

// ParseCSV reads a comma separated table whose first record is the header.
func ParseCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.ParseError("CSV input is empty", nil).WithOperation("parse_csv")
	}
	if err != nil {
		return nil, apperrors.ParseError("failed to read CSV header", err).WithOperation("parse_csv")
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	var rows [][]*string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.ParseError("failed to read CSV row", err).WithOperation("parse_csv")
		}

		row := make([]*string, len(record))
		for i, field := range record {
			row[i] = Cell(field)
		}
		rows = append(rows, row)
	}

	return New(header, rows), nil
}

// ParseCSVString parses pasted CSV text.
func ParseCSVString(data string) (*Table, error) {
	return ParseCSV(strings.NewReader(data))
}
