// pkg/ingest/pipeline.go
package ingest

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/David-Botos/sentiment-ingress/pkg/cleaner"
	"github.com/David-Botos/sentiment-ingress/pkg/config"
	"github.com/David-Botos/sentiment-ingress/pkg/connector"
	"github.com/David-Botos/sentiment-ingress/pkg/ledger"
	"github.com/David-Botos/sentiment-ingress/pkg/model"
	"github.com/David-Botos/sentiment-ingress/pkg/splitter"
	"github.com/David-Botos/sentiment-ingress/pkg/writer"
)

// Settings are the configuration values the pipeline needs
type Settings struct {
	Source   connector.SourceSettings
	TestSize float64
	Seed     int64
	DataPath string
}

// SettingsFromConfig extracts pipeline settings from the loaded config
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Source:   connector.SourceSettingsFromConfig(cfg),
		TestSize: cfg.Params.TestSize(),
		Seed:     cfg.Params.RandomState(),
		DataPath: cfg.DataPath,
	}
}

// Pipeline runs acquire, transform, partition and persist in sequence
type Pipeline struct {
	settings Settings
	acquirer connector.Acquirer
	cleaner  *cleaner.SentimentCleaner
	writer   *writer.CSVWriter
	ledger   ledger.Recorder
	logger   *zap.Logger
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithLedger records every run with rec
func WithLedger(rec ledger.Recorder) Option {
	return func(p *Pipeline) {
		p.ledger = rec
	}
}

// NewPipeline creates a new pipeline
func NewPipeline(
	settings Settings,
	acquirer connector.Acquirer,
	dataCleaner *cleaner.SentimentCleaner,
	csvWriter *writer.CSVWriter,
	logger *zap.Logger,
	opts ...Option,
) *Pipeline {
	p := &Pipeline{
		settings: settings,
		acquirer: acquirer,
		cleaner:  dataCleaner,
		writer:   csvWriter,
		logger:   logger.Named("pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one ingestion run. Any stage failure stops the run; nothing
// is retried and no output is written for a run that fails before persisting.
func (p *Pipeline) Run(ctx context.Context) (*model.RunRecord, error) {
	run := model.NewRunRecord(p.settings.Source.Environment)
	metrics := NewIngestionMetrics(p.logger)

	p.logger.Info("Starting data ingestion", zap.String("run_id", run.RunID))

	err := p.run(ctx, run, metrics)
	metrics.Finish()

	if err != nil {
		run.Fail(err)
		p.logger.Error("Failed to complete the data ingestion process",
			zap.String("run_id", run.RunID),
			zap.String("stage", model.StageOf(err)),
			zap.String("kind", model.KindOf(err).String()),
			zap.Duration("duration", run.Duration()),
			zap.Error(err))
	} else {
		run.Succeed()
		metrics.LogSummary()
	}

	p.record(ctx, run)
	return run, err
}

func (p *Pipeline) run(ctx context.Context, run *model.RunRecord, metrics *IngestionMetrics) error {
	// Resolve
	sm := metrics.StartStage(StageResolve)
	source := connector.ResolveSource(p.settings.Source, p.logger)
	run.SourceKind = source.Kind()
	run.SourceLocation = source.Location()
	metrics.EndStage(sm, nil)

	// Acquire
	sm = metrics.StartStage(StageAcquire)
	ds, err := p.acquirer.Acquire(ctx, source)
	metrics.EndStage(sm, err)
	if err != nil {
		return classify(StageAcquire, model.KindAcquisition, err)
	}
	run.RowsRead = ds.Len()
	metrics.RowsRead = ds.Len()

	// Transform
	sm = metrics.StartStage(StageTransform)
	filtered, report, err := p.cleaner.Clean(ds)
	metrics.EndStage(sm, err)
	if err != nil {
		return classify(StageTransform, model.KindTransform, err)
	}
	run.RowsKept = report.RowsKept
	run.RowsDropped = report.RowsDropped()
	metrics.RowsKept = report.RowsKept
	metrics.RowsDropped = report.RowsDropped()

	// Partition
	sm = metrics.StartStage(StagePartition)
	partition, err := splitter.Split(filtered, p.settings.TestSize, p.settings.Seed)
	metrics.EndStage(sm, err)
	if err != nil {
		p.logger.Error("Failed to split dataset",
			zap.Int("rows", filtered.Len()),
			zap.Float64("test_size", p.settings.TestSize),
			zap.Error(err))
		return classify(StagePartition, model.KindTransform, err)
	}

	sm = metrics.StartStage(StageVerify)
	err = splitter.Verify(filtered, partition)
	metrics.EndStage(sm, err)
	if err != nil {
		p.logger.Error("Partition verification failed", zap.Error(err))
		return classify(StageVerify, model.KindTransform, err)
	}
	run.TrainRows = partition.Train.Len()
	run.TestRows = partition.Test.Len()
	metrics.TrainRows = run.TrainRows
	metrics.TestRows = run.TestRows

	// Persist
	sm = metrics.StartStage(StagePersist)
	result, err := p.writer.WritePartition(p.settings.DataPath, partition)
	metrics.EndStage(sm, err)
	if err != nil {
		return classify(StagePersist, model.KindPersistence, err)
	}
	run.OutputDir = result.Dir

	p.logger.Info("Data ingestion completed",
		zap.String("run_id", run.RunID),
		zap.String("train", result.TrainPath),
		zap.String("test", result.TestPath),
		zap.Int("train_rows", result.TrainRows),
		zap.Int("test_rows", result.TestRows))

	return nil
}

// classify makes sure every error leaving a stage carries a kind
func classify(stage string, fallback model.ErrorKind, err error) error {
	var se *model.StageError
	if errors.As(err, &se) {
		return err
	}
	return model.NewStageError(fallback, stage, err)
}

// record writes the run to the ledger. Ledger failures never fail the run.
func (p *Pipeline) record(ctx context.Context, run *model.RunRecord) {
	if p.ledger == nil {
		return
	}
	if err := p.ledger.Record(ctx, run); err != nil {
		p.logger.Warn("Failed to record run in ledger",
			zap.String("run_id", run.RunID),
			zap.Error(err))
	}
}
