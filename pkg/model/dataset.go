// pkg/model/dataset.go
package model

// SentimentColumn is the only column the ingestion stage requires
const SentimentColumn = "sentiment"

// Dataset is a raw table as read from a source, header first
type Dataset struct {
	Header []string   // Column names in source order
	Rows   [][]string // Cell values, one slice per row
}

// Len returns the number of data rows (header excluded)
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// ColumnIndex returns the position of the named column or -1.
// Column names are matched exactly; the source header is not normalized.
func (d *Dataset) ColumnIndex(name string) int {
	if d == nil {
		return -1
	}
	for i, col := range d.Header {
		if col == name {
			return i
		}
	}
	return -1
}

// LabeledRow is a kept row whose sentiment cell has been recoded
type LabeledRow struct {
	Values []string // Original cell values; the label column is rendered from Label
	Label  int      // 1 for positive, 0 for negative
}

// FilteredDataset is a Dataset restricted to binary labels
type FilteredDataset struct {
	Header     []string
	LabelIndex int // Position of the sentiment column in Header
	Rows       []LabeledRow
}

// Len returns the number of labeled rows
func (f *FilteredDataset) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Rows)
}

// Subset returns a new FilteredDataset holding the rows at the given indices,
// in the order given
func (f *FilteredDataset) Subset(indices []int) *FilteredDataset {
	rows := make([]LabeledRow, 0, len(indices))
	for _, idx := range indices {
		rows = append(rows, f.Rows[idx])
	}
	return &FilteredDataset{
		Header:     f.Header,
		LabelIndex: f.LabelIndex,
		Rows:       rows,
	}
}

// Partition is the result of splitting a FilteredDataset
type Partition struct {
	Train *FilteredDataset
	Test  *FilteredDataset

	// Indices into the source FilteredDataset, kept for verification
	TrainIndices []int
	TestIndices  []int
}
