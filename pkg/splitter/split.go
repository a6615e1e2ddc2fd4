// pkg/splitter/split.go
package splitter

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/David-Botos/sentiment-ingress/pkg/model"
)

// Split shuffles ds with a permutation determined by seed and assigns the
// first ceil(testSize*n) shuffled rows to the test set, the rest to train.
// The same seed, input and fraction always give the same partition.
func Split(ds *model.FilteredDataset, testSize float64, seed int64) (*model.Partition, error) {
	if testSize <= 0 || testSize >= 1 || math.IsNaN(testSize) {
		return nil, model.NewStageError(model.KindConfiguration, "partition",
			fmt.Errorf("test size must be between 0 and 1 exclusive, got %v", testSize))
	}

	n := ds.Len()
	if n == 0 {
		return nil, model.NewStageError(model.KindTransform, "partition",
			fmt.Errorf("cannot split an empty dataset"))
	}

	nTest, nTrain := splitSizes(n, testSize)
	if nTest == 0 || nTrain == 0 {
		return nil, model.NewStageError(model.KindTransform, "partition",
			fmt.Errorf("with %d rows and test size %v the resulting train set would be empty", n, testSize))
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	testIdx := perm[:nTest]
	trainIdx := perm[nTest:]

	return &model.Partition{
		Train:        ds.Subset(trainIdx),
		Test:         ds.Subset(testIdx),
		TrainIndices: trainIdx,
		TestIndices:  testIdx,
	}, nil
}

// splitSizes rounds the test share up and gives the remainder to train
func splitSizes(n int, testSize float64) (nTest, nTrain int) {
	nTest = int(math.Ceil(testSize * float64(n)))
	nTrain = n - nTest
	return nTest, nTrain
}
