// pkg/model/run.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus is the outcome of an ingestion run
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// DroppedLabel counts rows removed because of their sentiment value
type DroppedLabel struct {
	Value string // Original sentiment value (verbatim)
	Count int    // Rows carrying this value
}

// RunRecord is the audit trail of a single ingestion run
type RunRecord struct {
	RunID          string     // Unique run identifier
	Environment    string     // Raw ENVIRONMENT value, may be empty
	SourceKind     SourceKind // local or remote
	SourceLocation string     // URL or s3:// address
	RowsRead       int        // Rows in the acquired dataset
	RowsKept       int        // Rows after label filtering
	RowsDropped    int        // Rows removed by label filtering
	TrainRows      int
	TestRows       int
	OutputDir      string // <data_path>/raw
	Status         RunStatus
	FailedStage    string
	ErrorKind      string
	ErrorMessage   string
	StartedAt      time.Time
	FinishedAt     time.Time
}

// NewRunRecord creates a running RunRecord with a fresh ID
func NewRunRecord(environment string) *RunRecord {
	return &RunRecord{
		RunID:       uuid.New().String(),
		Environment: environment,
		Status:      RunStatusRunning,
		StartedAt:   time.Now(),
	}
}

// Succeed marks the run as completed successfully
func (r *RunRecord) Succeed() {
	r.Status = RunStatusSucceeded
	r.FinishedAt = time.Now()
}

// Fail marks the run as failed and records the error classification
func (r *RunRecord) Fail(err error) {
	r.Status = RunStatusFailed
	r.FinishedAt = time.Now()
	if err == nil {
		return
	}
	r.ErrorMessage = err.Error()
	r.ErrorKind = KindOf(err).String()
	r.FailedStage = StageOf(err)
}

// Duration returns the run duration, or the elapsed time if still running
func (r *RunRecord) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
