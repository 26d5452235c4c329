package services

import (
	"context"

	"github.com/ajharbinger/tennis-decider/internal/classifier"
	"github.com/ajharbinger/tennis-decider/internal/logger"
	"github.com/ajharbinger/tennis-decider/internal/models"
	"github.com/ajharbinger/tennis-decider/internal/table"
	"github.com/ajharbinger/tennis-decider/pkg/config"
)

// Services contains all application services
type Services struct {
	Classification ClassificationService
	Export         ExportService
}

// ClassificationService defines the interface for classifying scores and tables
type ClassificationService interface {
	// Single scores
	ClassifyOne(input models.MatchInput) classifier.Result
	ClassifyBatch(ctx context.Context, inputs []models.MatchInput) ([]models.ClassifiedRow, error)

	// Tables. Empty fields of columns are detected from the headers.
	ClassifyTable(ctx context.Context, t *table.Table, columns models.ColumnSelection) (*models.ClassificationRun, error)

	// Quick-test scenarios
	Samples() []classifier.ScenarioResult

	// Run monitoring. RecordFailure counts a run that failed before
	// classification started, such as an unreadable upload.
	RecordFailure(operation string, err error)
	Stats() MonitorStatus
}

// ExportService defines the interface for rendering classified tables
type ExportService interface {
	Export(run *models.ClassificationRun, format ExportFormat) ([]byte, error)
}

// NewServices creates a new Services instance with all dependencies
func NewServices(cfg *config.Config, log logger.Logger) *Services {
	return &Services{
		Classification: NewClassificationService(cfg, log),
		Export:         NewExportService(),
	}
}
