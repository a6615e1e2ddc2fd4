// pkg/converter/converter.go
package converter

// Label values as they appear in the source data
const (
	LabelPositive = "positive"
	LabelNegative = "negative"
)

// LabelEncoder recodes string sentiment labels to binary integers
type LabelEncoder struct {
	mapping map[string]int
}

// NewLabelEncoder creates the fixed positive=1 / negative=0 encoder
func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{
		mapping: map[string]int{
			LabelPositive: 1,
			LabelNegative: 0,
		},
	}
}

// Encode returns the code for value. Matching is exact: no case folding or
// whitespace trimming, so near-matches are not encoded.
func (e *LabelEncoder) Encode(value string) (int, bool) {
	code, ok := e.mapping[value]
	return code, ok
}

