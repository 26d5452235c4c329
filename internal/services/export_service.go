package services

import (
	"encoding/csv"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/ajharbinger/tennis-decider/internal/errors"
	"github.com/ajharbinger/tennis-decider/internal/models"
)

// ExportFormat specifies the format for exporting classified tables
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
	FormatYAML ExportFormat = "yaml"
)

// ExportBaseName is the file name, without extension, of downloaded exports
const ExportBaseName = "tennis_results_classified"

// ParseExportFormat validates a format name. Empty means CSV.
func ParseExportFormat(name string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", apperrors.UnsupportedFormat("unsupported export format: "+name, nil).
			WithDetails("use csv, json or yaml").
			WithOperation("ParseExportFormat")
	}
}

// ContentType returns the MIME type of the format
func (f ExportFormat) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	default:
		return "text/csv"
	}
}

// Filename returns the attachment name for the format
func (f ExportFormat) Filename() string {
	return ExportBaseName + "." + string(f)
}

// exportDocument is the JSON and YAML shape of an export
type exportDocument struct {
	RunID      string                 `json:"run_id" yaml:"run_id"`
	Columns    models.ColumnSelection `json:"columns" yaml:"columns"`
	Summary    models.Summary         `json:"summary" yaml:"summary"`
	Rows       []exportRow            `json:"rows" yaml:"rows"`
	ExportedAt time.Time              `json:"exported_at" yaml:"exported_at"`
}

type exportRow struct {
	Score           *string `json:"score" yaml:"score"`
	Tournament      *string `json:"tournament,omitempty" yaml:"tournament,omitempty"`
	StraightDecider int     `json:"straight_decider" yaml:"straight_decider"`
}

// exportServiceImpl implements ExportService
type exportServiceImpl struct {
	now func() time.Time
}

// NewExportService creates a new export service
func NewExportService() ExportService {
	return &exportServiceImpl{now: time.Now}
}

// Export renders the run in the requested format
func (s *exportServiceImpl) Export(run *models.ClassificationRun, format ExportFormat) ([]byte, error) {
	if run == nil {
		return nil, apperrors.InvalidInput("nothing to export", nil).WithOperation("Export")
	}

	switch format {
	case FormatCSV, "":
		return s.exportToCSV(run)
	case FormatJSON:
		data, err := json.MarshalIndent(s.document(run), "", "  ")
		if err != nil {
			return nil, apperrors.InternalError("failed to encode JSON export", err).WithOperation("Export")
		}
		return data, nil
	case FormatYAML:
		data, err := yaml.Marshal(s.document(run))
		if err != nil {
			return nil, apperrors.InternalError("failed to encode YAML export", err).WithOperation("Export")
		}
		return data, nil
	default:
		return nil, apperrors.UnsupportedFormat("unsupported export format: "+string(format), nil).WithOperation("Export")
	}
}

// exportToCSV writes the score column, the tournament column when one was
// detected, and the label column. Missing cells are written empty.
func (s *exportServiceImpl) exportToCSV(run *models.ClassificationRun) ([]byte, error) {
	var output strings.Builder
	writer := csv.NewWriter(&output)

	headers := []string{run.Columns.Score}
	if run.Columns.HasTournament() {
		headers = append(headers, run.Columns.Tournament)
	}
	headers = append(headers, models.LabelColumn)

	if err := writer.Write(headers); err != nil {
		return nil, apperrors.InternalError("failed to write CSV header", err).WithOperation("exportToCSV")
	}

	for _, r := range run.Rows {
		row := []string{formatNullString(r.Score)}
		if run.Columns.HasTournament() {
			row = append(row, formatNullString(r.Tournament))
		}
		row = append(row, strconv.Itoa(int(r.Label)))

		if err := writer.Write(row); err != nil {
			return nil, apperrors.InternalError("failed to write CSV row", err).WithOperation("exportToCSV")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, apperrors.InternalError("failed to flush CSV export", err).WithOperation("exportToCSV")
	}
	return []byte(output.String()), nil
}

func (s *exportServiceImpl) document(run *models.ClassificationRun) exportDocument {
	rows := make([]exportRow, len(run.Rows))
	for i, r := range run.Rows {
		rows[i] = exportRow{
			Score:           r.Score,
			Tournament:      r.Tournament,
			StraightDecider: int(r.Label),
		}
	}
	return exportDocument{
		RunID:      run.ID.String(),
		Columns:    run.Columns,
		Summary:    run.Summary,
		Rows:       rows,
		ExportedAt: s.now().UTC(),
	}
}

func formatNullString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
