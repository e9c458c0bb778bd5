package errors

import (
	"math"
)

// CheckFinite returns a FitError when values contain NaN or Inf.
// It is used after a least-squares solve to reject numerically unstable
// coefficient vectors before they reach an aggregate.
func CheckFinite(model string, values []float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewFitError(model, "non-finite result", ErrSingularMatrix)
		}
	}
	return nil
}

// CheckFiniteScalar checks a single scalar value.
func CheckFiniteScalar(model string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewFitError(model, "non-finite result", ErrSingularMatrix)
	}
	return nil
}
