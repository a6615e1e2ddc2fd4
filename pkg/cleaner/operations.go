// pkg/cleaner/operations.go
package cleaner

import (
	"sort"

	"github.com/David-Botos/sentiment-ingress/pkg/converter"
	"github.com/David-Botos/sentiment-ingress/pkg/model"
)

// labelOperation is the outcome of recoding a single sentiment cell
type labelOperation struct {
	Original string
	Code     int
	Kept     bool
}

func recodeLabel(encoder *converter.LabelEncoder, value string) labelOperation {
	code, ok := encoder.Encode(value)
	return labelOperation{Original: value, Code: code, Kept: ok}
}

// CleaningReport summarizes what Clean kept and dropped
type CleaningReport struct {
	RowsIn   int
	RowsKept int
	dropped  map[string]int
}

// NewCleaningReport creates an empty report for rowsIn input rows
func NewCleaningReport(rowsIn int) *CleaningReport {
	return &CleaningReport{
		RowsIn:  rowsIn,
		dropped: make(map[string]int),
	}
}

func (r *CleaningReport) recordDrop(value string) {
	r.dropped[value]++
}

// RowsDropped returns the number of rows removed by the label filter
func (r *CleaningReport) RowsDropped() int {
	return r.RowsIn - r.RowsKept
}

// Dropped returns dropped counts per sentiment value, most frequent first
func (r *CleaningReport) Dropped() []model.DroppedLabel {
	out := make([]model.DroppedLabel, 0, len(r.dropped))
	for value, count := range r.dropped {
		out = append(out, model.DroppedLabel{Value: value, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}
