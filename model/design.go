package model

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/restat/dataset"
	"github.com/YuminosukeSato/restat/pkg/errors"
)

// InterceptTerm is the term name of the intercept column.
const InterceptTerm = "(intercept)"

// predictorBasis is the frozen encoding of one predictor: the categorical
// level set or the knot locations observed at training time. Freezing it on
// the fitted model keeps predictions on new tables consistent with the
// design matrix the coefficients were estimated on.
type predictorBasis struct {
	name   string
	kind   dataset.Kind
	levels []string  // categorical: levels seen at training, reference first
	knots  []float64 // piecewise hinges or natural spline knots
}

// buildBases derives the per-predictor bases from the training table.
func buildBases(tbl *dataset.Table, spec Spec) ([]predictorBasis, error) {
	bases := make([]predictorBasis, 0, len(spec.Predictors))
	for _, name := range spec.Predictors {
		kind, err := tbl.Kind(name)
		if err != nil {
			return nil, err
		}

		basis := predictorBasis{name: name, kind: kind}
		switch kind {
		case dataset.KindCategorical:
			levels, err := tbl.Levels(name)
			if err != nil {
				return nil, err
			}
			if len(levels) < 2 {
				return nil, errors.NewFitError(spec.ID(), "categorical predictor "+name+" has a single level", nil)
			}
			sorted := append([]string(nil), levels...)
			sort.Strings(sorted)
			basis.levels = sorted

		case dataset.KindNumeric:
			xs, err := tbl.Floats(name)
			if err != nil {
				return nil, err
			}
			switch spec.Family {
			case FamilyPiecewise:
				if len(spec.Knots) > 0 {
					basis.knots = append([]float64(nil), spec.Knots...)
					sort.Float64s(basis.knots)
				} else {
					basis.knots = []float64{quantile(xs, 0.5)}
				}
			case FamilySmooth:
				knots, err := splineKnots(xs, spec.df()+1)
				if err != nil {
					return nil, errors.NewFitError(spec.ID(), "cannot place spline knots for "+name, err)
				}
				basis.knots = knots
			}
		}
		bases = append(bases, basis)
	}
	return bases, nil
}

// termNames lists the design matrix columns for a basis set, intercept first.
func termNames(spec Spec, bases []predictorBasis) []string {
	terms := []string{InterceptTerm}
	for _, b := range bases {
		switch b.kind {
		case dataset.KindCategorical:
			for _, level := range b.levels[1:] {
				terms = append(terms, fmt.Sprintf("%s[%s]", b.name, level))
			}
		case dataset.KindNumeric:
			switch spec.Family {
			case FamilyLinear:
				terms = append(terms, b.name)
			case FamilyPiecewise:
				terms = append(terms, b.name)
				for i := range b.knots {
					terms = append(terms, fmt.Sprintf("hinge(%s,%d)", b.name, i+1))
				}
			case FamilySmooth:
				for i := 0; i < len(b.knots)-1; i++ {
					terms = append(terms, fmt.Sprintf("ns(%s,%d)", b.name, i+1))
				}
			}
		}
	}
	return terms
}

// designMatrix materializes the design matrix of tbl under a frozen basis
// set. The column order matches termNames.
func designMatrix(tbl *dataset.Table, spec Spec, bases []predictorBasis) (*mat.Dense, error) {
	n := tbl.NumRows()
	terms := termNames(spec, bases)
	X := mat.NewDense(n, len(terms), nil)

	for i := 0; i < n; i++ {
		X.Set(i, 0, 1.0)
	}

	col := 1
	for _, b := range bases {
		switch b.kind {
		case dataset.KindCategorical:
			labels, err := tbl.Labels(b.name)
			if err != nil {
				return nil, err
			}
			known := make(map[string]int, len(b.levels))
			for j, level := range b.levels {
				known[level] = j
			}
			for i, label := range labels {
				j, ok := known[label]
				if !ok {
					return nil, errors.NewInvalidInputError("model.Predict", b.name,
						"level not seen at training time", label)
				}
				if j > 0 {
					X.Set(i, col+j-1, 1.0)
				}
			}
			col += len(b.levels) - 1

		case dataset.KindNumeric:
			xs, err := tbl.Floats(b.name)
			if err != nil {
				return nil, err
			}
			switch spec.Family {
			case FamilyLinear:
				for i, x := range xs {
					X.Set(i, col, x)
				}
				col++
			case FamilyPiecewise:
				for i, x := range xs {
					X.Set(i, col, x)
					for k, knot := range b.knots {
						X.Set(i, col+1+k, math.Max(0, x-knot))
					}
				}
				col += 1 + len(b.knots)
			case FamilySmooth:
				for i, x := range xs {
					for k, v := range naturalSplineRow(x, b.knots) {
						X.Set(i, col+k, v)
					}
				}
				col += len(b.knots) - 1
			}
		}
	}

	return X, nil
}

// naturalSplineRow evaluates the natural cubic spline basis at x for knots
// xi_1 < ... < xi_K. The basis is x followed by K-2 terms
// d_k(x) - d_{K-1}(x) with d_k(x) = ((x-xi_k)+^3 - (x-xi_K)+^3)/(xi_K - xi_k),
// which is linear beyond the boundary knots.
func naturalSplineRow(x float64, knots []float64) []float64 {
	K := len(knots)
	row := make([]float64, K-1)
	row[0] = x

	dLast := truncCubic(x, knots[K-2], knots[K-1])
	for k := 0; k < K-2; k++ {
		row[k+1] = truncCubic(x, knots[k], knots[K-1]) - dLast
	}
	return row
}

func truncCubic(x, knot, boundary float64) float64 {
	num := cubePlus(x-knot) - cubePlus(x-boundary)
	return num / (boundary - knot)
}

func cubePlus(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return v * v * v
}

// splineKnots places k knots at evenly spaced empirical quantiles of xs,
// boundary knots at the extremes. Fails when the data cannot support k
// distinct knots.
func splineKnots(xs []float64, k int) ([]float64, error) {
	if len(xs) < k {
		return nil, errors.Newf("%d rows cannot support %d knots", len(xs), k)
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	knots := make([]float64, k)
	for i := 0; i < k; i++ {
		p := float64(i) / float64(k-1)
		knots[i] = stat.Quantile(p, stat.Empirical, sorted, nil)
	}
	for i := 1; i < k; i++ {
		if knots[i] <= knots[i-1] {
			return nil, errors.Newf("knots are not strictly increasing: %v", knots)
		}
	}
	return knots, nil
}

// quantile returns the p-th empirical quantile of xs.
func quantile(xs []float64, p float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}
