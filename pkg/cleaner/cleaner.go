// pkg/cleaner/cleaner.go
package cleaner

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/David-Botos/sentiment-ingress/pkg/converter"
	"github.com/David-Botos/sentiment-ingress/pkg/model"
)

// SentimentCleaner filters a raw dataset down to binary sentiment labels
type SentimentCleaner struct {
	encoder *converter.LabelEncoder
	logger  *zap.Logger
}

// NewSentimentCleaner creates a new SentimentCleaner instance
func NewSentimentCleaner(encoder *converter.LabelEncoder, logger *zap.Logger) (*SentimentCleaner, error) {
	if encoder == nil {
		return nil, errors.New("label encoder cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &SentimentCleaner{
		encoder: encoder,
		logger:  logger.Named("cleaner"),
	}, nil
}

// Clean keeps rows whose sentiment is exactly "positive" or "negative" and
// recodes them to 1/0. Other rows are dropped and counted in the report.
func (c *SentimentCleaner) Clean(ds *model.Dataset) (*model.FilteredDataset, *CleaningReport, error) {
	c.logger.Info("pre-processing...")

	if ds == nil {
		err := model.NewStageError(model.KindTransform, "transform", errors.New("dataset cannot be nil"))
		c.logger.Error("Unexpected error during preprocessing", zap.Error(err))
		return nil, nil, err
	}

	labelIdx := ds.ColumnIndex(model.SentimentColumn)
	if labelIdx < 0 {
		err := model.NewStageError(model.KindSchema, "transform",
			fmt.Errorf("missing column %q in the dataframe", model.SentimentColumn))
		c.logger.Error("Missing column in the dataframe",
			zap.String("column", model.SentimentColumn),
			zap.Strings("columns", ds.Header))
		return nil, nil, err
	}

	report := NewCleaningReport(ds.Len())
	filtered := &model.FilteredDataset{
		Header:     ds.Header,
		LabelIndex: labelIdx,
		Rows:       make([]model.LabeledRow, 0, ds.Len()),
	}

	for i, row := range ds.Rows {
		if len(row) != len(ds.Header) {
			err := model.NewStageError(model.KindTransform, "transform",
				fmt.Errorf("row %d has %d values, expected %d", i+1, len(row), len(ds.Header)))
			c.logger.Error("Unexpected error during preprocessing", zap.Error(err))
			return nil, nil, err
		}

		op := recodeLabel(c.encoder, row[labelIdx])
		if !op.Kept {
			report.recordDrop(op.Original)
			continue
		}

		filtered.Rows = append(filtered.Rows, model.LabeledRow{Values: row, Label: op.Code})
		report.RowsKept++
	}

	c.logger.Info("Data preprocessing completed",
		zap.Int("rows_in", report.RowsIn),
		zap.Int("rows_kept", report.RowsKept),
		zap.Int("rows_dropped", report.RowsDropped()))

	if report.RowsDropped() > 0 {
		c.logger.Debug("Dropped rows by sentiment value", zap.Any("dropped", report.Dropped()))
	}

	return filtered, report, nil
}
