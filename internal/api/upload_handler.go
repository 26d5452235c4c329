package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/tennis-decider/internal/classifier"
	apperrors "github.com/ajharbinger/tennis-decider/internal/errors"
	"github.com/ajharbinger/tennis-decider/internal/models"
	"github.com/ajharbinger/tennis-decider/internal/services"
	"github.com/ajharbinger/tennis-decider/internal/table"
)

// UploadHandler classifies uploaded results tables and exports them
type UploadHandler struct {
	classificationService services.ClassificationService
	exportService         services.ExportService
	previewRows           int
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(classificationService services.ClassificationService, exportService services.ExportService, previewRows int) *UploadHandler {
	return &UploadHandler{
		classificationService: classificationService,
		exportService:         exportService,
		previewRows:           previewRows,
	}
}

// tableSource is one way a table can be sent: a multipart file field with
// accepted extensions and the parser for it
type tableSource struct {
	field      string
	extensions []string
	parse      func(io.Reader) (*table.Table, error)
}

var (
	csvSource  = tableSource{field: "csv_file", extensions: []string{".csv"}, parse: table.ParseCSV}
	htmlSource = tableSource{field: "html_file", extensions: []string{".html", ".htm"}, parse: table.ParseHTMLFirst}
)

// UploadResponse is the summary of a classified upload
type UploadResponse struct {
	RunID      string                 `json:"run_id"`
	Filename   string                 `json:"filename,omitempty"`
	Columns    models.ColumnSelection `json:"columns"`
	Summary    models.Summary         `json:"summary"`
	Preview    []models.ClassifiedRow `json:"preview"`
	Labels     []classifier.Label     `json:"labels"`
	LabelsText string                 `json:"labels_text"`
	DurationMS int64                  `json:"duration_ms"`
}

// UploadCSV classifies a CSV file or pasted CSV text
func (h *UploadHandler) UploadCSV(c *gin.Context) {
	h.classifyUpload(c, csvSource)
}

// UploadHTML classifies the first results table of an HTML page
func (h *UploadHandler) UploadHTML(c *gin.Context) {
	h.classifyUpload(c, htmlSource)
}

// Export classifies an uploaded table and returns it as a download
func (h *UploadHandler) Export(c *gin.Context) {
	format, err := services.ParseExportFormat(c.Query("format"))
	if err != nil {
		respondError(c, err)
		return
	}

	run, _, err := h.runUpload(c, csvSource, htmlSource)
	if err != nil {
		respondError(c, err)
		return
	}

	data, err := h.exportService.Export(run, format)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+format.Filename()+`"`)
	c.Data(http.StatusOK, format.ContentType(), data)
}

func (h *UploadHandler) classifyUpload(c *gin.Context, source tableSource) {
	run, filename, err := h.runUpload(c, source)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, UploadResponse{
		RunID:      run.ID.String(),
		Filename:   filename,
		Columns:    run.Columns,
		Summary:    run.Summary,
		Preview:    run.Preview(h.previewRows),
		Labels:     run.Labels(),
		LabelsText: run.LabelsText(),
		DurationMS: run.Duration.Milliseconds(),
	})
}

// runUpload reads the table from the first source present, falling back to
// the "data" form field parsed with the first source's parser, and classifies
// it with the requested column overrides.
func (h *UploadHandler) runUpload(c *gin.Context, sources ...tableSource) (*models.ClassificationRun, string, error) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	tbl, filename, err := readTable(c, sources)
	if err != nil {
		h.classificationService.RecordFailure("ReadTable", err)
		return nil, "", err
	}

	columns := models.ColumnSelection{
		Score:      formValue(c, "score_column"),
		Tournament: formValue(c, "tournament_column"),
	}

	run, err := h.classificationService.ClassifyTable(ctx, tbl, columns)
	if err != nil {
		return nil, "", err
	}
	return run, filename, nil
}

func readTable(c *gin.Context, sources []tableSource) (*table.Table, string, error) {
	for _, source := range sources {
		file, header, err := c.Request.FormFile(source.field)
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
				continue
			}
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return nil, "", apperrors.TooLarge("request body too large", err).WithOperation("readTable")
			}
			return nil, "", apperrors.InvalidInput("Failed to read upload", err).WithOperation("readTable")
		}
		defer file.Close()

		if !hasExtension(header.Filename, source.extensions) {
			return nil, "", apperrors.UnsupportedFormat("File must be one of: "+strings.Join(source.extensions, ", "), nil).
				WithOperation("readTable")
		}

		tbl, err := source.parse(file)
		if err != nil {
			return nil, "", err
		}
		return tbl, header.Filename, nil
	}

	data := c.PostForm("data")
	if strings.TrimSpace(data) == "" {
		fields := make([]string, 0, len(sources)+1)
		for _, source := range sources {
			fields = append(fields, source.field)
		}
		return nil, "", apperrors.InvalidInput("No table provided", nil).
			WithDetails("send a file in " + strings.Join(fields, " or ") + " or the text in data")
	}

	tbl, err := sources[0].parse(strings.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	return tbl, "", nil
}

func hasExtension(filename string, extensions []string) bool {
	name := strings.ToLower(filename)
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func formValue(c *gin.Context, key string) string {
	if v := strings.TrimSpace(c.PostForm(key)); v != "" {
		return v
	}
	return strings.TrimSpace(c.Query(key))
}
