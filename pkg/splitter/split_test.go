package splitter

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/David-Botos/sentiment-ingress/pkg/model"
)

func makeDataset(n int) *model.FilteredDataset {
	ds := &model.FilteredDataset{Header: []string{"text", "sentiment"}, LabelIndex: 1}
	for i := 0; i < n; i++ {
		label := i % 2
		sentiment := "negative"
		if label == 1 {
			sentiment = "positive"
		}
		ds.Rows = append(ds.Rows, model.LabeledRow{
			Values: []string{fmt.Sprintf("row-%d", i), sentiment},
			Label:  label,
		})
	}
	return ds
}

func texts(ds *model.FilteredDataset) []string {
	out := make([]string, 0, ds.Len())
	for _, r := range ds.Rows {
		out = append(out, r.Values[0])
	}
	return out
}

func TestSplit_Deterministic(t *testing.T) {
	ds := makeDataset(100)

	first, err := Split(ds, 0.2, 42)
	require.NoError(t, err)
	second, err := Split(ds, 0.2, 42)
	require.NoError(t, err)

	assert.Equal(t, first.TrainIndices, second.TrainIndices)
	assert.Equal(t, first.TestIndices, second.TestIndices)
	assert.Equal(t, first.Train.Rows, second.Train.Rows)
	assert.Equal(t, first.Test.Rows, second.Test.Rows)

	other, err := Split(ds, 0.2, 7)
	require.NoError(t, err)
	assert.NotEqual(t, first.TestIndices, other.TestIndices, "different seeds should shuffle differently")
}

func TestSplit_Sizes(t *testing.T) {
	tests := []struct {
		n         int
		testSize  float64
		wantTest  int
		wantTrain int
	}{
		{2, 0.33, 1, 1},
		{3, 0.33, 1, 2},
		{10, 0.2, 2, 8},
		{10, 0.25, 3, 7},
		{100, 0.2, 20, 80},
		{7, 0.5, 4, 3},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d/f=%v", tt.n, tt.testSize), func(t *testing.T) {
			p, err := Split(makeDataset(tt.n), tt.testSize, 42)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTest, p.Test.Len())
			assert.Equal(t, tt.wantTrain, p.Train.Len())
		})
	}
}

func TestSplit_DisjointAndCovering(t *testing.T) {
	for _, n := range []int{2, 3, 17, 250} {
		for _, seed := range []int64{0, 1, 42, 1234} {
			ds := makeDataset(n)
			p, err := Split(ds, 0.3, seed)
			require.NoError(t, err)
			require.NoError(t, Verify(ds, p))

			all := append(texts(p.Train), texts(p.Test)...)
			assert.ElementsMatch(t, texts(ds), all)
		}
	}
}

func TestSplit_InvalidInput(t *testing.T) {
	_, err := Split(makeDataset(10), 0, 42)
	assert.ErrorIs(t, err, model.ErrConfiguration)

	_, err = Split(makeDataset(10), 1, 42)
	assert.ErrorIs(t, err, model.ErrConfiguration)

	_, err = Split(makeDataset(0), 0.2, 42)
	assert.ErrorIs(t, err, model.ErrTransform)

	// a single row cannot be split into two non-empty sets
	_, err = Split(makeDataset(1), 0.2, 42)
	assert.ErrorIs(t, err, model.ErrTransform)
}

func TestVerify_DetectsBadPartitions(t *testing.T) {
	ds := makeDataset(6)

	t.Run("duplicate row", func(t *testing.T) {
		p := &model.Partition{
			TrainIndices: []int{0, 1, 2, 3},
			TestIndices:  []int{3, 5},
		}
		p.Train = ds.Subset(p.TrainIndices)
		p.Test = ds.Subset(p.TestIndices)
		assert.ErrorIs(t, Verify(ds, p), model.ErrTransform)
	})

	t.Run("missing row", func(t *testing.T) {
		p := &model.Partition{
			TrainIndices: []int{0, 1, 2},
			TestIndices:  []int{3, 4},
		}
		p.Train = ds.Subset(p.TrainIndices)
		p.Test = ds.Subset(p.TestIndices)
		assert.ErrorIs(t, Verify(ds, p), model.ErrTransform)
	})

	t.Run("row content mismatch", func(t *testing.T) {
		p := &model.Partition{
			TrainIndices: []int{0, 1, 2, 3},
			TestIndices:  []int{4, 5},
		}
		p.Train = ds.Subset([]int{0, 1, 2, 3})
		p.Test = ds.Subset([]int{5, 4})
		assert.ErrorIs(t, Verify(ds, p), model.ErrTransform)
	})

	t.Run("nil partition", func(t *testing.T) {
		assert.ErrorIs(t, Verify(ds, nil), model.ErrTransform)
	})
}
