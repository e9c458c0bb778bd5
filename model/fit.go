package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/restat/core/parallel"
	"github.com/YuminosukeSato/restat/dataset"
	"github.com/YuminosukeSato/restat/pkg/errors"
)

// LeastSquares fits every family by ordinary least squares on the family's
// basis expansion, solving the normal equations w = (X^T X)^{-1} X^T y.
// It is the default Fitter.
type LeastSquares struct{}

var _ Fitter = LeastSquares{}

// Fit estimates the spec's coefficients on tbl. The returned model is
// immutable and owns frozen copies of the bases observed at training time.
func (LeastSquares) Fit(tbl *dataset.Table, spec Spec) (Fitted, error) {
	if tbl == nil || tbl.NumRows() == 0 {
		return nil, errors.NewInvalidInputError("model.Fit", "table", "empty table", 0)
	}
	if err := spec.Validate(tbl); err != nil {
		return nil, err
	}

	bases, err := buildBases(tbl, spec)
	if err != nil {
		return nil, err
	}
	terms := termNames(spec, bases)

	X, err := designMatrix(tbl, spec, bases)
	if err != nil {
		return nil, err
	}

	n := tbl.NumRows()
	p := len(terms)
	if n < p {
		return nil, errors.NewFitError(spec.ID(), "fewer rows than design terms", errors.ErrSingularMatrix)
	}

	ys, err := tbl.Floats(spec.Response)
	if err != nil {
		return nil, err
	}
	y := mat.NewVecDense(n, ys)

	var XT mat.Dense
	XT.CloneFrom(X.T())

	var XTX mat.Dense
	XTX.Mul(&XT, X)

	var XTXInv mat.Dense
	if err := XTXInv.Inverse(&XTX); err != nil {
		return nil, errors.NewFitError(spec.ID(), "singular design matrix", errors.ErrSingularMatrix)
	}

	var XTy mat.VecDense
	XTy.MulVec(&XT, y)

	weights := mat.NewVecDense(p, nil)
	weights.MulVec(&XTXInv, &XTy)

	coefs := make([]float64, p)
	for i := range coefs {
		coefs[i] = weights.AtVec(i)
	}
	if err := errors.CheckFinite(spec.ID(), coefs); err != nil {
		return nil, err
	}

	return &FittedModel{spec: spec, terms: terms, coefs: coefs, bases: bases}, nil
}

// FittedModel is the opaque result of a least-squares fit. It is owned by
// the repetition that created it and never mutated afterwards.
type FittedModel struct {
	spec  Spec
	terms []string
	coefs []float64
	bases []predictorBasis
}

var _ Fitted = (*FittedModel)(nil)

// Spec returns the descriptor the model was fit with.
func (m *FittedModel) Spec() Spec { return m.spec }

// Terms returns the design matrix term names, intercept first.
func (m *FittedModel) Terms() []string {
	return append([]string(nil), m.terms...)
}

// Coefficients maps each term name to its estimate.
func (m *FittedModel) Coefficients() map[string]float64 {
	out := make(map[string]float64, len(m.terms))
	for i, term := range m.terms {
		out[term] = m.coefs[i]
	}
	return out
}

// Predict returns one prediction per row of tbl, materializing the design
// matrix under the bases frozen at training time.
func (m *FittedModel) Predict(tbl *dataset.Table) ([]float64, error) {
	if tbl == nil || tbl.NumRows() == 0 {
		return nil, errors.NewInvalidInputError("FittedModel.Predict", "table", "empty table", 0)
	}

	X, err := designMatrix(tbl, m.spec, m.bases)
	if err != nil {
		return nil, err
	}

	n := tbl.NumRows()
	preds := make([]float64, n)

	// Row-wise dot products are independent, so large tables are predicted
	// in parallel chunks.
	const parallelThreshold = 1000
	parallel.ParallelizeWithThreshold(n, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			var sum float64
			for j, c := range m.coefs {
				sum += X.At(i, j) * c
			}
			preds[i] = sum
		}
	})

	return preds, nil
}

// Score returns the coefficient of determination R^2 on tbl.
func (m *FittedModel) Score(tbl *dataset.Table) (float64, error) {
	preds, err := m.Predict(tbl)
	if err != nil {
		return 0, err
	}
	ys, err := tbl.Floats(m.spec.Response)
	if err != nil {
		return 0, err
	}

	var mean float64
	for _, y := range ys {
		mean += y
	}
	mean /= float64(len(ys))

	var tss, rss float64
	for i, y := range ys {
		tss += (y - mean) * (y - mean)
		rss += (y - preds[i]) * (y - preds[i])
	}
	if tss == 0 {
		return 0, errors.NewMetricError("R2", "response has zero variance")
	}
	return 1 - rss/tss, nil
}
