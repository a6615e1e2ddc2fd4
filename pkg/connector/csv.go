// pkg/connector/csv.go
package connector

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/David-Botos/sentiment-ingress/pkg/model"
)

const utf8BOM = "\ufeff"

// DecodeCSV parses comma-delimited text with a header row into a Dataset.
// Rows shorter than the header are padded with empty values. Malformed
// records (bad quoting, more fields than the header) are reported as
// ParseError; empty input or a blank header is an AcquisitionError.
func DecodeCSV(r io.Reader) (*model.Dataset, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, model.NewStageError(model.KindAcquisition, "acquire", errors.New("no columns to parse from input"))
	}
	if err != nil {
		return nil, parseError(err)
	}

	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	if len(header) == 1 && header[0] == "" {
		return nil, model.NewStageError(model.KindAcquisition, "acquire", errors.New("header row is empty"))
	}

	ds := &model.Dataset{Header: header}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, parseError(err)
		}
		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, model.NewStageError(model.KindParse, "acquire",
				fmt.Errorf("failed to parse CSV at line %d: expected %d fields, saw %d", line, len(header), len(record)))
		}
		ds.Rows = append(ds.Rows, padRecord(record, len(header)))
	}

	return ds, nil
}

// padRecord extends a short record with empty values up to width
func padRecord(record []string, width int) []string {
	for len(record) < width {
		record = append(record, "")
	}
	return record
}

func parseError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return model.NewStageError(model.KindParse, "acquire",
			fmt.Errorf("failed to parse CSV at line %d: %w", pe.Line, err))
	}
	// Reader failures (connection reset mid-body, etc.)
	return model.NewStageError(model.KindAcquisition, "acquire", fmt.Errorf("failed to read CSV: %w", err))
}
