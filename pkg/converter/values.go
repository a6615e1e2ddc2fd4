// pkg/converter/values.go
package converter

import (
	"fmt"
	"strconv"

	"github.com/David-Botos/sentiment-ingress/pkg/model"
)

// FormatLabel renders a binary label as a plain integer ("1"/"0", never "1.0")
func FormatLabel(label int) string {
	return strconv.Itoa(label)
}

// RenderRow returns the cell values written for a labeled row, with the
// label column rendered from the recoded label
func RenderRow(row model.LabeledRow, labelIndex int) ([]string, error) {
	if labelIndex < 0 || labelIndex >= len(row.Values) {
		return nil, fmt.Errorf("label column %d out of range for row with %d values", labelIndex, len(row.Values))
	}
	if row.Label != 0 && row.Label != 1 {
		return nil, fmt.Errorf("label %d is not binary", row.Label)
	}

	out := make([]string, len(row.Values))
	copy(out, row.Values)
	out[labelIndex] = FormatLabel(row.Label)
	return out, nil
}
