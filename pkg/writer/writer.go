// pkg/writer/writer.go
package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/David-Botos/sentiment-ingress/pkg/converter"
	"github.com/David-Botos/sentiment-ingress/pkg/model"
)

const (
	// RawDir is the subdirectory of the data path partitions are written to
	RawDir = "raw"

	TrainFile = "train.csv"
	TestFile  = "test.csv"
)

// WriteResult describes the files written for a partition
type WriteResult struct {
	Dir       string
	TrainPath string
	TestPath  string
	TrainRows int
	TestRows  int
}

// CSVWriter persists partitions as comma-delimited files
type CSVWriter struct {
	logger *zap.Logger
}

// NewCSVWriter creates a new CSVWriter
func NewCSVWriter(logger *zap.Logger) *CSVWriter {
	return &CSVWriter{logger: logger.Named("writer")}
}

// RawPath returns <dataPath>/raw
func RawPath(dataPath string) string {
	return filepath.Join(dataPath, RawDir)
}

// WritePartition writes train.csv and test.csv under <dataPath>/raw. The
// directory is created if needed. Existing files are replaced.
func (w *CSVWriter) WritePartition(dataPath string, p *model.Partition) (*WriteResult, error) {
	dir := RawPath(dataPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, w.fail(dir, fmt.Errorf("failed to create output directory: %w", err))
	}

	result := &WriteResult{
		Dir:       dir,
		TrainPath: filepath.Join(dir, TrainFile),
		TestPath:  filepath.Join(dir, TestFile),
		TrainRows: p.Train.Len(),
		TestRows:  p.Test.Len(),
	}

	if err := writeFileAtomic(result.TrainPath, p.Train); err != nil {
		return nil, w.fail(result.TrainPath, err)
	}
	if err := writeFileAtomic(result.TestPath, p.Test); err != nil {
		return nil, w.fail(result.TestPath, err)
	}

	w.logger.Debug("Train and test data saved",
		zap.String("dir", dir),
		zap.Int("train_rows", result.TrainRows),
		zap.Int("test_rows", result.TestRows))

	return result, nil
}

func (w *CSVWriter) fail(path string, err error) error {
	se := model.NewStageError(model.KindPersistence, "persist", err).WithInput(path)
	w.logger.Error("Unexpected error occurred while saving the data", zap.String("path", path), zap.Error(err))
	return se
}

// writeFileAtomic writes ds to a temp file next to path and renames it into
// place, so path is either fully replaced or left untouched.
func writeFileAtomic(path string, ds *model.FilteredDataset) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if err = encodeCSV(tmp, ds); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}

func encodeCSV(f *os.File, ds *model.FilteredDataset) error {
	cw := csv.NewWriter(f)
	if err := cw.Write(ds.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range ds.Rows {
		record, err := converter.RenderRow(row, ds.LabelIndex)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
