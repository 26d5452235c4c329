package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ajharbinger/tennis-decider/internal/classifier"
	apperrors "github.com/ajharbinger/tennis-decider/internal/errors"
	"github.com/ajharbinger/tennis-decider/internal/logger"
	"github.com/ajharbinger/tennis-decider/internal/models"
	"github.com/ajharbinger/tennis-decider/internal/table"
	"github.com/ajharbinger/tennis-decider/pkg/config"
)

// rowBatchSize is the number of rows a worker classifies per semaphore slot
const rowBatchSize = 256

// classificationServiceImpl implements ClassificationService
type classificationServiceImpl struct {
	workers      int
	maxBatchRows int
	monitor      *RunMonitor
	logger       logger.Logger
}

// NewClassificationService creates a classification service from configuration
func NewClassificationService(cfg *config.Config, log logger.Logger) ClassificationService {
	if log == nil {
		log = logger.Nop()
	}
	workers := cfg.ClassifyWorkers
	if workers < 1 {
		workers = 1
	}
	return &classificationServiceImpl{
		workers:      workers,
		maxBatchRows: cfg.MaxBatchRows,
		monitor:      NewRunMonitor(),
		logger:       log,
	}
}

// ClassifyOne returns the full trace for a single score
func (s *classificationServiceImpl) ClassifyOne(input models.MatchInput) classifier.Result {
	return classifier.Explain(input.Score, input.Tournament)
}

// ClassifyBatch labels a list of score/tournament pairs, keeping their order
func (s *classificationServiceImpl) ClassifyBatch(ctx context.Context, inputs []models.MatchInput) ([]models.ClassifiedRow, error) {
	if s.maxBatchRows > 0 && len(inputs) > s.maxBatchRows {
		err := apperrors.TooLarge("too many items in batch", nil).
			WithDetails("maximum is " + strconv.Itoa(s.maxBatchRows)).
			WithOperation("ClassifyBatch")
		s.monitor.RecordFailure("ClassifyBatch", err)
		return nil, err
	}

	rows, err := s.classifyAll(ctx, inputs)
	if err != nil {
		s.monitor.RecordFailure("ClassifyBatch", err)
		return nil, err
	}

	labels := make([]classifier.Label, len(rows))
	for i, row := range rows {
		labels[i] = row.Label
	}
	s.monitor.RecordRun(models.Summarize(labels))
	return rows, nil
}

// ClassifyTable detects columns, classifies every row and summarizes the run
func (s *classificationServiceImpl) ClassifyTable(ctx context.Context, t *table.Table, columns models.ColumnSelection) (*models.ClassificationRun, error) {
	if t == nil {
		return nil, apperrors.InvalidInput("no table to classify", nil).WithOperation("ClassifyTable")
	}

	sel, err := table.SelectColumns(t.Columns, columns.Score, columns.Tournament)
	if err != nil {
		s.monitor.RecordFailure("ClassifyTable", err)
		return nil, err
	}

	scoreIdx := t.ColumnIndex(sel.Score)
	tournamentIdx := -1
	if sel.HasTournament() {
		tournamentIdx = t.ColumnIndex(sel.Tournament)
	}

	inputs := make([]models.MatchInput, t.Len())
	for i := range inputs {
		inputs[i].Score = t.Value(i, scoreIdx)
		if tournamentIdx >= 0 {
			inputs[i].Tournament = t.Value(i, tournamentIdx)
		}
	}

	run := &models.ClassificationRun{
		ID:        uuid.New(),
		Columns:   sel,
		StartedAt: time.Now(),
	}

	rows, err := s.classifyAll(ctx, inputs)
	if err != nil {
		s.logger.Warn("Classification run aborted", "run_id", run.ID, "error", err)
		s.monitor.RecordFailure("ClassifyTable", err)
		return nil, err
	}

	run.Rows = rows
	run.Summary = models.Summarize(run.Labels())
	run.Duration = time.Since(run.StartedAt)
	s.monitor.RecordRun(run.Summary)

	s.logger.Info("Classified table",
		"run_id", run.ID,
		"score_column", sel.Score,
		"tournament_column", sel.Tournament,
		"rows", run.Summary.Total,
		"straight", run.Summary.Straight,
		"decider", run.Summary.Decider,
		"unclassified", run.Summary.Unclassified,
		"duration", run.Duration,
	)

	return run, nil
}

// Samples runs the quick-test scenarios
func (s *classificationServiceImpl) Samples() []classifier.ScenarioResult {
	return classifier.RunScenarios(classifier.SampleScenarios())
}

// RecordFailure records a failed run in the monitor
func (s *classificationServiceImpl) RecordFailure(operation string, err error) {
	if err == nil {
		return
	}
	s.monitor.RecordFailure(operation, err)
}

// Stats returns the run monitor snapshot
func (s *classificationServiceImpl) Stats() MonitorStatus {
	return s.monitor.Status()
}

// classifyAll fans rows out over the worker pool. Each row is written at its
// own index so the output order equals the input order.
func (s *classificationServiceImpl) classifyAll(ctx context.Context, inputs []models.MatchInput) ([]models.ClassifiedRow, error) {
	out := make([]models.ClassifiedRow, len(inputs))

	if s.workers <= 1 || len(inputs) <= rowBatchSize {
		for i, input := range inputs {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("classification cancelled: %w", err)
			}
			out[i] = classifyRow(i, input)
		}
		return out, nil
	}

	semaphore := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

	for start := 0; start < len(inputs); start += rowBatchSize {
		end := start + rowBatchSize
		if end > len(inputs) {
			end = len(inputs)
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			for i := start; i < end; i++ {
				if ctx.Err() != nil {
					return
				}
				out[i] = classifyRow(i, inputs[i])
			}
		}(start, end)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("classification cancelled: %w", err)
	}
	return out, nil
}

func classifyRow(index int, input models.MatchInput) models.ClassifiedRow {
	result := classifier.Explain(input.Score, input.Tournament)
	return models.ClassifiedRow{
		Index:      index,
		Score:      input.Score,
		Tournament: input.Tournament,
		SetsCount:  result.SetsCount(),
		Label:      result.Label,
	}
}
