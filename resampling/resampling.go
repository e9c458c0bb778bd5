// Package resampling provides the two row-reindexing primitives under both
// evaluators: with-replacement bootstrap resampling and disjoint random
// train/test splitting. Both take an explicit random source so a run is
// reproducible for a fixed seed.
package resampling

import (
	"math"
	"math/rand/v2"

	"github.com/YuminosukeSato/restat/dataset"
	"github.com/YuminosukeSato/restat/pkg/errors"
)

// Resample is a bootstrap resample of a source table: same size, rows drawn
// independently and uniformly with replacement. Duplicate rows are expected.
type Resample struct {
	Table   *dataset.Table
	Indices []int // drawn source-row indices, in draw order
}

// Bootstrap draws len(tbl) row indices uniformly with replacement and
// returns the table reindexed accordingly.
func Bootstrap(tbl *dataset.Table, rng *rand.Rand) (*Resample, error) {
	if tbl == nil || tbl.NumRows() == 0 {
		return nil, errors.NewInvalidInputError("resampling.Bootstrap", "table", "empty table", 0)
	}

	n := tbl.NumRows()
	indices := make([]int, n)
	for i := range indices {
		indices[i] = rng.IntN(n)
	}

	resampled, err := tbl.Select(indices)
	if err != nil {
		return nil, err
	}
	return &Resample{Table: resampled, Indices: indices}, nil
}

// Split is a disjoint partition of a source table's rows. Train and test
// together cover every source row exactly once.
type Split struct {
	Train        *dataset.Table
	Test         *dataset.Table
	TrainIndices []int
	TestIndices  []int
}

// RandomSplit shuffles the row indices and takes the first
// round(trainFraction*n) as the train partition, the remainder as test.
// trainFraction must lie strictly between 0 and 1; a fraction that would
// leave either partition empty is rejected the same way.
func RandomSplit(tbl *dataset.Table, trainFraction float64, rng *rand.Rand) (*Split, error) {
	if tbl == nil || tbl.NumRows() == 0 {
		return nil, errors.NewInvalidInputError("resampling.RandomSplit", "table", "empty table", 0)
	}
	if trainFraction <= 0 || trainFraction >= 1 {
		return nil, errors.NewInvalidInputError("resampling.RandomSplit", "trainFraction",
			"must be in (0, 1)", trainFraction)
	}

	n := tbl.NumRows()
	indices := rng.Perm(n)

	nTrain := int(math.Round(trainFraction * float64(n)))
	if nTrain == 0 || nTrain == n {
		return nil, errors.NewInvalidInputError("resampling.RandomSplit", "trainFraction",
			"fraction leaves an empty partition for this table size", trainFraction)
	}

	trainIdx := make([]int, nTrain)
	testIdx := make([]int, n-nTrain)
	copy(trainIdx, indices[:nTrain])
	copy(testIdx, indices[nTrain:])

	train, err := tbl.Select(trainIdx)
	if err != nil {
		return nil, err
	}
	test, err := tbl.Select(testIdx)
	if err != nil {
		return nil, err
	}

	return &Split{
		Train:        train,
		Test:         test,
		TrainIndices: trainIdx,
		TestIndices:  testIdx,
	}, nil
}
