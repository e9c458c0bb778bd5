// Package model provides the model-fit-and-predict adapter used by the
// evaluators: an explicit model descriptor (response, predictors, family)
// and a least-squares fitter producing an immutable fitted model. The
// evaluators depend only on the narrow Fitter/Fitted interfaces, so a
// different fitting collaborator can be swapped in.
package model

import (
	"fmt"

	"github.com/YuminosukeSato/restat/dataset"
	"github.com/YuminosukeSato/restat/pkg/errors"
)

// Family selects the functional form a spec is fit with. Every family
// reduces to ordinary least squares on a family-specific basis expansion.
type Family int

const (
	// FamilyLinear fits each numeric predictor as a single linear term.
	FamilyLinear Family = iota
	// FamilyPiecewise adds hinge terms max(0, x-knot) at each knot, giving
	// a continuous piecewise-linear fit.
	FamilyPiecewise
	// FamilySmooth expands each numeric predictor into a natural cubic
	// spline basis with DF columns.
	FamilySmooth
)

// String returns the family name.
func (f Family) String() string {
	switch f {
	case FamilyLinear:
		return "linear"
	case FamilyPiecewise:
		return "piecewise"
	case FamilySmooth:
		return "smooth"
	default:
		return "unknown"
	}
}

// Spec is an explicit model descriptor: which column is the response, which
// columns are predictors, and the family. It replaces string formulas like
// "y ~ x" with a tagged structure.
type Spec struct {
	// Name identifies the model in evaluator output. Empty defaults to a
	// generated identifier.
	Name string

	// Response is the numeric column to predict.
	Response string

	// Predictors are the covariate columns. Numeric predictors enter the
	// basis expansion of the family; categorical predictors are always
	// dummy-coded against their first level.
	Predictors []string

	// Family selects the basis expansion.
	Family Family

	// Knots are the hinge locations for FamilyPiecewise. Empty means one
	// knot at the training median of each numeric predictor.
	Knots []float64

	// DF is the spline basis size per numeric predictor for FamilySmooth.
	// Zero means 4.
	DF int
}

// ID returns the spec's identifier for tagging metric samples.
func (s Spec) ID() string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("%s(%s~%v)", s.Family, s.Response, s.Predictors)
}

// Validate checks the descriptor against a table's schema.
func (s Spec) Validate(tbl *dataset.Table) error {
	if s.Response == "" {
		return errors.NewInvalidInputError("model.Spec", "Response", "must not be empty", "")
	}
	if len(s.Predictors) == 0 {
		return errors.NewInvalidInputError("model.Spec", "Predictors", "at least one predictor required", 0)
	}
	if s.Family < FamilyLinear || s.Family > FamilySmooth {
		return errors.NewInvalidInputError("model.Spec", "Family", "unknown family", int(s.Family))
	}
	if s.DF < 0 {
		return errors.NewInvalidInputError("model.Spec", "DF", "must be non-negative", s.DF)
	}
	if s.Family == FamilySmooth && s.DF == 1 {
		return errors.NewInvalidInputError("model.Spec", "DF", "smooth family needs DF >= 2", s.DF)
	}

	if tbl == nil {
		return nil
	}
	if !tbl.Has(s.Response) {
		return errors.NewInvalidInputError("model.Spec", "Response", "no such column", s.Response)
	}
	if kind, err := tbl.Kind(s.Response); err != nil || kind != dataset.KindNumeric {
		return errors.NewInvalidInputError("model.Spec", "Response", "must be numeric", s.Response)
	}
	for _, p := range s.Predictors {
		if p == s.Response {
			return errors.NewInvalidInputError("model.Spec", "Predictors", "response used as predictor", p)
		}
		if !tbl.Has(p) {
			return errors.NewInvalidInputError("model.Spec", "Predictors", "no such column", p)
		}
	}
	return nil
}

// df returns the effective spline basis size.
func (s Spec) df() int {
	if s.DF == 0 {
		return 4
	}
	return s.DF
}

// Fitted is the narrow interface the evaluators consume: a prediction
// function over covariates and named coefficient estimates.
type Fitted interface {
	// Predict returns one prediction per row of tbl.
	Predict(tbl *dataset.Table) ([]float64, error)

	// Coefficients maps each design matrix term to its estimate.
	Coefficients() map[string]float64
}

// Fitter fits a spec to a table. Implementations may fail with a FitError
// (singular design, non-convergence); evaluators propagate or count such
// failures, never retry.
type Fitter interface {
	Fit(tbl *dataset.Table, spec Spec) (Fitted, error)
}
