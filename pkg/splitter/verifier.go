// pkg/splitter/verifier.go
package splitter

import (
	"fmt"

	"github.com/David-Botos/sentiment-ingress/pkg/model"
)

// Verify checks that p is an exact partition of source: every source row
// appears in exactly one of train or test, and both sides hold the rows
// their indices point to.
func Verify(source *model.FilteredDataset, p *model.Partition) error {
	if p == nil || p.Train == nil || p.Test == nil {
		return verifyError("partition is incomplete")
	}

	n := source.Len()
	if got := len(p.TrainIndices) + len(p.TestIndices); got != n {
		return verifyError("partition covers %d rows, source has %d", got, n)
	}
	if p.Train.Len() != len(p.TrainIndices) || p.Test.Len() != len(p.TestIndices) {
		return verifyError("partition rows do not match their indices")
	}

	seen := make([]bool, n)
	check := func(side string, indices []int, rows []model.LabeledRow) error {
		for i, idx := range indices {
			if idx < 0 || idx >= n {
				return verifyError("%s index %d out of range", side, idx)
			}
			if seen[idx] {
				return verifyError("row %d assigned more than once", idx)
			}
			seen[idx] = true

			if !sameRow(source.Rows[idx], rows[i]) {
				return verifyError("%s row %d does not match source row %d", side, i, idx)
			}
			if rows[i].Label != 0 && rows[i].Label != 1 {
				return verifyError("%s row %d has non-binary label %d", side, i, rows[i].Label)
			}
		}
		return nil
	}

	if err := check("train", p.TrainIndices, p.Train.Rows); err != nil {
		return err
	}
	if err := check("test", p.TestIndices, p.Test.Rows); err != nil {
		return err
	}

	return nil
}

func sameRow(a, b model.LabeledRow) bool {
	if a.Label != b.Label || len(a.Values) != len(b.Values) {
		return false
	}
	for i := range a.Values {
		if a.Values[i] != b.Values[i] {
			return false
		}
	}
	return true
}

func verifyError(format string, args ...any) error {
	return model.NewStageError(model.KindTransform, "verify", fmt.Errorf(format, args...))
}
