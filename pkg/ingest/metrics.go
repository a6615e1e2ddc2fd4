// pkg/ingest/metrics.go
package ingest

import (
	"time"

	"go.uber.org/zap"
)

// Stage names used in logs, errors and metrics
const (
	StageResolve   = "resolve"
	StageAcquire   = "acquire"
	StageTransform = "transform"
	StagePartition = "partition"
	StageVerify    = "verify"
	StagePersist   = "persist"
)

// StageMetrics tracks timing for a single stage
type StageMetrics struct {
	Name      string
	StartTime time.Time
	EndTime   time.Time
	Failed    bool
}

// Duration returns the stage duration
func (sm *StageMetrics) Duration() time.Duration {
	if sm.EndTime.IsZero() {
		return time.Since(sm.StartTime)
	}
	return sm.EndTime.Sub(sm.StartTime)
}

// IngestionMetrics tracks metrics for one ingestion run
type IngestionMetrics struct {
	logger      *zap.Logger
	StartTime   time.Time
	EndTime     time.Time
	Stages      []*StageMetrics
	RowsRead    int
	RowsKept    int
	RowsDropped int
	TrainRows   int
	TestRows    int
}

// NewIngestionMetrics creates a new IngestionMetrics instance
func NewIngestionMetrics(logger *zap.Logger) *IngestionMetrics {
	return &IngestionMetrics{
		StartTime: time.Now(),
		Stages:    make([]*StageMetrics, 0, 6),
		logger:    logger,
	}
}

// StartStage begins tracking a stage
func (m *IngestionMetrics) StartStage(name string) *StageMetrics {
	sm := &StageMetrics{Name: name, StartTime: time.Now()}
	m.Stages = append(m.Stages, sm)

	if m.logger != nil {
		m.logger.Debug("Started stage", zap.String("stage", name))
	}
	return sm
}

// EndStage completes tracking for a stage
func (m *IngestionMetrics) EndStage(sm *StageMetrics, err error) {
	sm.EndTime = time.Now()
	sm.Failed = err != nil

	if m.logger != nil {
		m.logger.Debug("Completed stage",
			zap.String("stage", sm.Name),
			zap.Duration("duration", sm.Duration()),
			zap.Bool("failed", sm.Failed))
	}
}

// Finish marks the end of the run
func (m *IngestionMetrics) Finish() {
	m.EndTime = time.Now()
}

// Duration returns the total run duration
func (m *IngestionMetrics) Duration() time.Duration {
	if m.EndTime.IsZero() {
		return time.Since(m.StartTime)
	}
	return m.EndTime.Sub(m.StartTime)
}

// LogSummary logs a summary of the run
func (m *IngestionMetrics) LogSummary() {
	if m.logger == nil {
		return
	}

	fields := []zap.Field{
		zap.Duration("duration", m.Duration()),
		zap.Int("rows_read", m.RowsRead),
		zap.Int("rows_kept", m.RowsKept),
		zap.Int("rows_dropped", m.RowsDropped),
		zap.Int("train_rows", m.TrainRows),
		zap.Int("test_rows", m.TestRows),
	}
	for _, sm := range m.Stages {
		fields = append(fields, zap.Duration(sm.Name+"_duration", sm.Duration()))
	}

	m.logger.Info("Ingestion summary", fields...)
}
