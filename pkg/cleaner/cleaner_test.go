package cleaner

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/David-Botos/sentiment-ingress/pkg/converter"
	"github.com/David-Botos/sentiment-ingress/pkg/model"
)

func newTestCleaner(t *testing.T) *SentimentCleaner {
	t.Helper()
	c, err := NewSentimentCleaner(converter.NewLabelEncoder(), zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestNewSentimentCleaner_Validation(t *testing.T) {
	_, err := NewSentimentCleaner(nil, zap.NewNop())
	assert.Error(t, err)

	_, err = NewSentimentCleaner(converter.NewLabelEncoder(), nil)
	assert.Error(t, err)
}

func TestClean_FiltersAndRecodes(t *testing.T) {
	ds := &model.Dataset{
		Header: []string{"text", "sentiment"},
		Rows: [][]string{
			{"a", "positive"},
			{"b", "negative"},
			{"c", "neutral"},
			{"d", "Positive"},
			{"e", "negative "},
			{"f", ""},
			{"g", "positive"},
		},
	}

	filtered, report, err := newTestCleaner(t).Clean(ds)
	require.NoError(t, err)

	require.Equal(t, 3, filtered.Len())
	assert.Equal(t, []string{"text", "sentiment"}, filtered.Header)
	assert.Equal(t, 1, filtered.LabelIndex)

	texts := make([]string, 0, filtered.Len())
	labels := make([]int, 0, filtered.Len())
	for _, row := range filtered.Rows {
		texts = append(texts, row.Values[0])
		labels = append(labels, row.Label)
	}
	assert.Equal(t, []string{"a", "b", "g"}, texts)
	assert.Equal(t, []int{1, 0, 1}, labels)

	assert.Equal(t, 7, report.RowsIn)
	assert.Equal(t, 3, report.RowsKept)
	assert.Equal(t, 4, report.RowsDropped())
	assert.Equal(t, []model.DroppedLabel{
		{Value: "", Count: 1},
		{Value: "Positive", Count: 1},
		{Value: "negative ", Count: 1},
		{Value: "neutral", Count: 1},
	}, report.Dropped())
}

func TestClean_SentimentColumnAnywhere(t *testing.T) {
	ds := &model.Dataset{
		Header: []string{"tweet_id", "sentiment", "content"},
		Rows: [][]string{
			{"1", "negative", "bad"},
			{"2", "worry", "hmm"},
		},
	}

	filtered, _, err := newTestCleaner(t).Clean(ds)
	require.NoError(t, err)
	require.Equal(t, 1, filtered.Len())
	assert.Equal(t, 1, filtered.LabelIndex)
	assert.Equal(t, 0, filtered.Rows[0].Label)
	assert.Equal(t, "bad", filtered.Rows[0].Values[2])
}

func TestClean_MissingSentimentColumn(t *testing.T) {
	ds := &model.Dataset{
		Header: []string{"text", "label"},
		Rows:   [][]string{{"a", "positive"}},
	}

	_, _, err := newTestCleaner(t).Clean(ds)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrSchema)
}

func TestClean_MalformedTable(t *testing.T) {
	_, _, err := newTestCleaner(t).Clean(nil)
	assert.ErrorIs(t, err, model.ErrTransform)

	ds := &model.Dataset{
		Header: []string{"text", "sentiment"},
		Rows:   [][]string{{"a", "positive"}, {"b"}},
	}
	_, _, err = newTestCleaner(t).Clean(ds)
	assert.ErrorIs(t, err, model.ErrTransform)
}

func TestClean_EmptyDataset(t *testing.T) {
	filtered, report, err := newTestCleaner(t).Clean(&model.Dataset{Header: []string{"text", "sentiment"}})
	require.NoError(t, err)
	assert.Equal(t, 0, filtered.Len())
	assert.Equal(t, 0, report.RowsDropped())
}

// Property: labels are always binary and the kept count equals the number of
// rows with an exact positive/negative value.
func TestClean_RandomDatasets(t *testing.T) {
	values := []string{"positive", "negative", "neutral", "Positive", "worry", "", "negative\t", "love"}
	rng := rand.New(rand.NewSource(7))
	c := newTestCleaner(t)

	for iter := 0; iter < 50; iter++ {
		n := rng.Intn(200)
		ds := &model.Dataset{Header: []string{"text", "sentiment"}}
		expected := 0
		for i := 0; i < n; i++ {
			v := values[rng.Intn(len(values))]
			if v == "positive" || v == "negative" {
				expected++
			}
			ds.Rows = append(ds.Rows, []string{fmt.Sprintf("row-%d", i), v})
		}

		filtered, report, err := c.Clean(ds)
		require.NoError(t, err)
		assert.Equal(t, expected, filtered.Len())
		assert.Equal(t, n-expected, report.RowsDropped())
		for _, row := range filtered.Rows {
			assert.Contains(t, []int{0, 1}, row.Label)
		}
	}
}
