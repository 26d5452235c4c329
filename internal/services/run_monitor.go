package services

import (
	"sync"
	"time"

	apperrors "github.com/ajharbinger/tennis-decider/internal/errors"
	"github.com/ajharbinger/tennis-decider/internal/models"
)

// RunMonitor tracks classification runs, their failure rate and how many
// rows end up unclassified
type RunMonitor struct {
	mu                    sync.RWMutex
	totalRuns             int64
	failedRuns            int64
	consecutiveFailures   int64
	rowsClassified        int64
	rowsUnclassified      int64
	lastFailureTime       time.Time
	lastSuccessTime       time.Time
	recentFailures        []FailureRecord
	maxRecentFailures     int
	unclassifiedThreshold float64 // Share of unclassified rows that raises an issue
	consecutiveThreshold  int64   // Max consecutive failures before alerting
	now                   func() time.Time
}

// FailureRecord represents a single failed run
type FailureRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Operation string    `json:"operation"`
	Code      string    `json:"code"`
	Error     string    `json:"error"`
}

// MonitorStatus is a snapshot of the monitor
type MonitorStatus struct {
	IsHealthy           bool            `json:"is_healthy"`
	TotalRuns           int64           `json:"total_runs"`
	FailedRuns          int64           `json:"failed_runs"`
	ConsecutiveFailures int64           `json:"consecutive_failures"`
	RowsClassified      int64           `json:"rows_classified"`
	RowsUnclassified    int64           `json:"rows_unclassified"`
	UnclassifiedRate    float64         `json:"unclassified_rate"`
	LastFailureTime     *time.Time      `json:"last_failure_time,omitempty"`
	LastSuccessTime     *time.Time      `json:"last_success_time,omitempty"`
	RecentFailures      []FailureRecord `json:"recent_failures"`
	Issues              []string        `json:"issues"`
	RecommendedActions  []string        `json:"recommended_actions"`
}

// NewRunMonitor creates a new run monitor
func NewRunMonitor() *RunMonitor {
	return &RunMonitor{
		maxRecentFailures:     50,
		unclassifiedThreshold: 0.2,
		consecutiveThreshold:  5,
		recentFailures:        make([]FailureRecord, 0, 50),
		now:                   time.Now,
	}
}

// RecordRun records a successful run and its label counts
func (m *RunMonitor) RecordRun(summary models.Summary) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalRuns++
	m.consecutiveFailures = 0
	m.rowsClassified += int64(summary.Total)
	m.rowsUnclassified += int64(summary.Unclassified)
	m.lastSuccessTime = m.now()
}

// RecordFailure records a run that returned an error
func (m *RunMonitor) RecordFailure(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalRuns++
	m.failedRuns++
	m.consecutiveFailures++
	m.lastFailureTime = m.now()

	code := apperrors.ErrCodeInternalError
	if appErr, ok := apperrors.As(err); ok {
		code = appErr.Code
	}

	m.recentFailures = append(m.recentFailures, FailureRecord{
		Timestamp: m.lastFailureTime,
		Operation: operation,
		Code:      code,
		Error:     err.Error(),
	})
	if len(m.recentFailures) > m.maxRecentFailures {
		m.recentFailures = m.recentFailures[1:]
	}
}

// Status returns the current state of the monitor
func (m *RunMonitor) Status() MonitorStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	status := MonitorStatus{
		TotalRuns:           m.totalRuns,
		FailedRuns:          m.failedRuns,
		ConsecutiveFailures: m.consecutiveFailures,
		RowsClassified:      m.rowsClassified,
		RowsUnclassified:    m.rowsUnclassified,
		RecentFailures:      make([]FailureRecord, len(m.recentFailures)),
		Issues:              []string{},
		RecommendedActions:  []string{},
		IsHealthy:           true,
	}
	copy(status.RecentFailures, m.recentFailures)

	if m.rowsClassified > 0 {
		status.UnclassifiedRate = float64(m.rowsUnclassified) / float64(m.rowsClassified)
	}
	if !m.lastFailureTime.IsZero() {
		t := m.lastFailureTime
		status.LastFailureTime = &t
	}
	if !m.lastSuccessTime.IsZero() {
		t := m.lastSuccessTime
		status.LastSuccessTime = &t
	}

	if m.rowsClassified >= 50 && status.UnclassifiedRate > m.unclassifiedThreshold {
		status.IsHealthy = false
		status.Issues = append(status.Issues,
			"High share of unclassified scores (>20%)")
		status.RecommendedActions = append(status.RecommendedActions,
			"Check the detected score and tournament columns; five-set scores outside Grand Slams are never classified")
	}

	if m.consecutiveFailures >= m.consecutiveThreshold {
		status.IsHealthy = false
		status.Issues = append(status.Issues,
			"Multiple consecutive failed runs")
		status.RecommendedActions = append(status.RecommendedActions,
			"Inspect recent failures for malformed uploads")
	}

	m.analyzeFailurePatterns(&status)

	return status
}

// analyzeFailurePatterns reports an error code behind most recent failures
func (m *RunMonitor) analyzeFailurePatterns(status *MonitorStatus) {
	if len(m.recentFailures) < 3 {
		return
	}

	codeCounts := make(map[string]int)
	for _, failure := range m.recentFailures {
		codeCounts[failure.Code]++
	}

	total := len(m.recentFailures)
	for _, code := range []string{
		apperrors.ErrCodeColumnNotFound,
		apperrors.ErrCodeParseError,
		apperrors.ErrCodeTooLarge,
	} {
		if float64(codeCounts[code])/float64(total) <= 0.5 {
			continue
		}
		switch code {
		case apperrors.ErrCodeColumnNotFound:
			status.Issues = append(status.Issues,
				"Uploads often have no recognizable score column")
			status.RecommendedActions = append(status.RecommendedActions,
				"Pass score_column explicitly or rename the header to Score or Résultat")
		case apperrors.ErrCodeParseError:
			status.Issues = append(status.Issues,
				"Uploads often fail to parse")
			status.RecommendedActions = append(status.RecommendedActions,
				"Check the file encoding and that HTML pages contain a <table>")
		case apperrors.ErrCodeTooLarge:
			status.Issues = append(status.Issues,
				"Requests often exceed size limits")
			status.RecommendedActions = append(status.RecommendedActions,
				"Split large tables or raise MAX_REQUEST_SIZE and MAX_BATCH_ROWS")
		}
	}
}

// Reset clears all monitoring data
func (m *RunMonitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalRuns = 0
	m.failedRuns = 0
	m.consecutiveFailures = 0
	m.rowsClassified = 0
	m.rowsUnclassified = 0
	m.lastFailureTime = time.Time{}
	m.lastSuccessTime = time.Time{}
	m.recentFailures = m.recentFailures[:0]
}
