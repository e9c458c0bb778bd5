package model

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/YuminosukeSato/restat/dataset"
	"github.com/YuminosukeSato/restat/pkg/errors"
)

func linearTable(t *testing.T, n int, intercept, slope, noiseSD float64, seed uint64) *dataset.Table {
	t.Helper()
	tbl, err := dataset.GenerateLinear(n, intercept, slope, noiseSD, rand.NewPCG(seed, seed))
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

func TestLeastSquaresRecoversLinearCoefficients(t *testing.T) {
	tbl := linearTable(t, 500, 2.0, 3.0, 0.1, 1)

	fitted, err := LeastSquares{}.Fit(tbl, Spec{
		Name:       "linear",
		Response:   "y",
		Predictors: []string{"x"},
		Family:     FamilyLinear,
	})
	if err != nil {
		t.Fatal(err)
	}

	coefs := fitted.Coefficients()
	if got := coefs[InterceptTerm]; math.Abs(got-2.0) > 0.1 {
		t.Errorf("intercept = %v, want ~2.0", got)
	}
	if got := coefs["x"]; math.Abs(got-3.0) > 0.05 {
		t.Errorf("slope = %v, want ~3.0", got)
	}
}

func TestLeastSquaresExactFit(t *testing.T) {
	// Noise-free data: predictions must reproduce the generating line.
	xs := []float64{0, 1, 2, 3, 4}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 1.5 + 0.5*x
	}
	tbl, err := dataset.New(dataset.NumericColumn("x", xs), dataset.NumericColumn("y", ys))
	if err != nil {
		t.Fatal(err)
	}

	fitted, err := LeastSquares{}.Fit(tbl, Spec{Response: "y", Predictors: []string{"x"}})
	if err != nil {
		t.Fatal(err)
	}
	preds, err := fitted.Predict(tbl)
	if err != nil {
		t.Fatal(err)
	}
	for i := range preds {
		if math.Abs(preds[i]-ys[i]) > 1e-8 {
			t.Errorf("pred[%d] = %v, want %v", i, preds[i], ys[i])
		}
	}

	m := fitted.(*FittedModel)
	score, err := m.Score(tbl)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(score-1.0) > 1e-8 {
		t.Errorf("R2 = %v, want 1", score)
	}
}

func TestCategoricalDummyCoding(t *testing.T) {
	// y = 10 + 5*[group=b], exactly.
	groups := []string{"a", "b", "a", "b", "a", "b"}
	ys := []float64{10, 15, 10, 15, 10, 15}
	xs := []float64{1, 1, 2, 2, 3, 3}
	tbl, err := dataset.New(
		dataset.NumericColumn("x", xs),
		dataset.CategoricalColumn("group", groups),
		dataset.NumericColumn("y", ys),
	)
	if err != nil {
		t.Fatal(err)
	}

	fitted, err := LeastSquares{}.Fit(tbl, Spec{
		Response:   "y",
		Predictors: []string{"x", "group"},
		Family:     FamilyLinear,
	})
	if err != nil {
		t.Fatal(err)
	}

	coefs := fitted.Coefficients()
	if got, ok := coefs["group[b]"]; !ok || math.Abs(got-5.0) > 1e-8 {
		t.Errorf("group[b] coefficient = %v (present=%v), want 5", got, ok)
	}
	if got := coefs["x"]; math.Abs(got) > 1e-8 {
		t.Errorf("x coefficient = %v, want 0", got)
	}

	// Predicting a level unseen at training time must fail loudly.
	unseen, err := dataset.New(
		dataset.NumericColumn("x", []float64{1}),
		dataset.CategoricalColumn("group", []string{"c"}),
		dataset.NumericColumn("y", []float64{0}),
	)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fitted.Predict(unseen); err == nil {
		t.Error("unseen level should fail prediction")
	}
}

func TestPiecewiseFitsHinge(t *testing.T) {
	// Slope 1 below x=5, slope 3 above, no noise.
	n := 100
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		x := float64(i) / 10.0
		xs[i] = x
		ys[i] = x + 2.0*math.Max(0, x-5.0)
	}
	tbl, err := dataset.New(dataset.NumericColumn("x", xs), dataset.NumericColumn("y", ys))
	if err != nil {
		t.Fatal(err)
	}

	fitted, err := LeastSquares{}.Fit(tbl, Spec{
		Response:   "y",
		Predictors: []string{"x"},
		Family:     FamilyPiecewise,
		Knots:      []float64{5.0},
	})
	if err != nil {
		t.Fatal(err)
	}

	coefs := fitted.Coefficients()
	if got := coefs["x"]; math.Abs(got-1.0) > 1e-6 {
		t.Errorf("base slope = %v, want 1", got)
	}
	if got := coefs["hinge(x,1)"]; math.Abs(got-2.0) > 1e-6 {
		t.Errorf("hinge slope = %v, want 2", got)
	}
}

func TestSmoothBeatsLinearOnCurvedData(t *testing.T) {
	tbl, err := dataset.GenerateGrowthCurve(400, 1.0, rand.NewPCG(3, 3))
	if err != nil {
		t.Fatal(err)
	}

	linear, err := LeastSquares{}.Fit(tbl, Spec{
		Response:   "height",
		Predictors: []string{"age", "group"},
		Family:     FamilyLinear,
	})
	if err != nil {
		t.Fatal(err)
	}
	smooth, err := LeastSquares{}.Fit(tbl, Spec{
		Response:   "height",
		Predictors: []string{"age", "group"},
		Family:     FamilySmooth,
		DF:         5,
	})
	if err != nil {
		t.Fatal(err)
	}

	linScore, err := linear.(*FittedModel).Score(tbl)
	if err != nil {
		t.Fatal(err)
	}
	smoothScore, err := smooth.(*FittedModel).Score(tbl)
	if err != nil {
		t.Fatal(err)
	}
	if smoothScore <= linScore {
		t.Errorf("smooth R2 %v should exceed linear R2 %v on curved data", smoothScore, linScore)
	}
}

func TestSmoothTermCount(t *testing.T) {
	tbl := linearTable(t, 100, 0, 1, 0.5, 9)
	fitted, err := LeastSquares{}.Fit(tbl, Spec{
		Response:   "y",
		Predictors: []string{"x"},
		Family:     FamilySmooth,
		DF:         4,
	})
	if err != nil {
		t.Fatal(err)
	}
	// Intercept plus DF spline columns.
	if terms := fitted.(*FittedModel).Terms(); len(terms) != 5 {
		t.Errorf("terms = %v, want 5 columns", terms)
	}
}

func TestFitErrors(t *testing.T) {
	tbl := linearTable(t, 30, 0, 1, 0.5, 4)

	t.Run("empty table", func(t *testing.T) {
		empty, _ := tbl.Select(nil)
		_, err := LeastSquares{}.Fit(empty, Spec{Response: "y", Predictors: []string{"x"}})
		var invErr *errors.InvalidInputError
		if !errors.As(err, &invErr) {
			t.Errorf("expected InvalidInputError, got %v", err)
		}
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := LeastSquares{}.Fit(tbl, Spec{Response: "y", Predictors: []string{"nope"}})
		var invErr *errors.InvalidInputError
		if !errors.As(err, &invErr) {
			t.Errorf("expected InvalidInputError, got %v", err)
		}
	})

	t.Run("singular design", func(t *testing.T) {
		// Two identical predictors make X^T X singular.
		xs := []float64{1, 2, 3, 4, 5}
		dup, err := dataset.New(
			dataset.NumericColumn("x1", xs),
			dataset.NumericColumn("x2", xs),
			dataset.NumericColumn("y", []float64{1, 2, 3, 4, 5}),
		)
		if err != nil {
			t.Fatal(err)
		}
		_, err = LeastSquares{}.Fit(dup, Spec{Name: "dup", Response: "y", Predictors: []string{"x1", "x2"}})
		if err == nil {
			t.Fatal("expected error for singular design")
		}
		var fitErr *errors.FitError
		if !errors.As(err, &fitErr) {
			t.Fatalf("expected FitError, got %T: %v", err, err)
		}
		if fitErr.Model != "dup" {
			t.Errorf("FitError.Model = %q, want %q", fitErr.Model, "dup")
		}
	})

	t.Run("fewer rows than terms", func(t *testing.T) {
		small, _ := tbl.Select([]int{0, 1, 2})
		_, err := LeastSquares{}.Fit(small, Spec{
			Response: "y", Predictors: []string{"x"}, Family: FamilySmooth, DF: 6,
		})
		if err == nil {
			t.Error("expected error when rows < terms")
		}
	})
}

func TestSpecValidate(t *testing.T) {
	tbl := linearTable(t, 10, 0, 1, 0.5, 2)

	valid := Spec{Response: "y", Predictors: []string{"x"}}
	if err := valid.Validate(tbl); err != nil {
		t.Errorf("valid spec rejected: %v", err)
	}

	invalid := []Spec{
		{Predictors: []string{"x"}},
		{Response: "y"},
		{Response: "y", Predictors: []string{"y"}},
		{Response: "y", Predictors: []string{"x"}, Family: Family(9)},
		{Response: "y", Predictors: []string{"x"}, Family: FamilySmooth, DF: 1},
	}
	for i, spec := range invalid {
		if err := spec.Validate(tbl); err == nil {
			t.Errorf("spec %d should be invalid", i)
		}
	}
}

func TestSpecID(t *testing.T) {
	named := Spec{Name: "linear", Response: "y", Predictors: []string{"x"}}
	if named.ID() != "linear" {
		t.Errorf("ID = %q", named.ID())
	}
	anon := Spec{Response: "y", Predictors: []string{"x"}, Family: FamilySmooth}
	if anon.ID() == "" {
		t.Error("anonymous spec should generate an identifier")
	}
}
