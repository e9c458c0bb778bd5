package metrics

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/restat/dataset"
	"github.com/YuminosukeSato/restat/model"
	"github.com/YuminosukeSato/restat/pkg/errors"
)

func TestMSE(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     []float64
		yPred     []float64
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     []float64{1, 2, 3, 4, 5},
			yPred:     []float64{1, 2, 3, 4, 5},
			want:      0.0,
			tolerance: 1e-10,
		},
		{
			name:      "simple case",
			yTrue:     []float64{1, 2, 3, 4},
			yPred:     []float64{1.5, 2.5, 2.5, 3.5},
			want:      0.25, // ((0.5)^2 + (0.5)^2 + (-0.5)^2 + (-0.5)^2) / 4
			tolerance: 1e-10,
		},
		{
			name:      "larger errors",
			yTrue:     []float64{10, 20, 30},
			yPred:     []float64{12, 18, 33},
			want:      17.0 / 3.0, // (4 + 4 + 9) / 3
			tolerance: 1e-10,
		},
		{
			name:    "empty input",
			yTrue:   nil,
			yPred:   nil,
			wantErr: true,
		},
		{
			name:    "length mismatch",
			yTrue:   []float64{1, 2},
			yPred:   []float64{1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSE(tt.yTrue, tt.yPred)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				var metricErr *errors.MetricError
				if !errors.As(err, &metricErr) {
					t.Errorf("expected MetricError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("MSE = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRMSE(t *testing.T) {
	got, err := RMSE([]float64{0, 0, 0, 0}, []float64{2, -2, 2, -2})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-2.0) > 1e-10 {
		t.Errorf("RMSE = %v, want 2", got)
	}

	if _, err := RMSE(nil, nil); err == nil {
		t.Error("empty input should fail")
	}
}

func TestMAE(t *testing.T) {
	got, err := MAE([]float64{1, 2, 3}, []float64{2, 2, 1})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-1.0) > 1e-10 {
		t.Errorf("MAE = %v, want 1", got)
	}
}

func TestR2(t *testing.T) {
	yTrue := []float64{1, 2, 3, 4, 5}
	perfect, err := R2(yTrue, yTrue)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(perfect-1.0) > 1e-10 {
		t.Errorf("R2 of perfect prediction = %v, want 1", perfect)
	}

	meanOnly := []float64{3, 3, 3, 3, 3}
	zero, err := R2(yTrue, meanOnly)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(zero) > 1e-10 {
		t.Errorf("R2 of mean prediction = %v, want 0", zero)
	}

	if _, err := R2([]float64{2, 2}, []float64{1, 3}); err == nil {
		t.Error("zero-variance observations should fail")
	}
}

func TestModelRMSE(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4, 5}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 2 + 3*x
	}
	tbl, err := dataset.New(dataset.NumericColumn("x", xs), dataset.NumericColumn("y", ys))
	if err != nil {
		t.Fatal(err)
	}

	fitted, err := model.LeastSquares{}.Fit(tbl, model.Spec{Response: "y", Predictors: []string{"x"}})
	if err != nil {
		t.Fatal(err)
	}

	rmse, err := ModelRMSE(fitted, "y", tbl)
	if err != nil {
		t.Fatal(err)
	}
	if rmse > 1e-8 {
		t.Errorf("RMSE on noise-free training data = %v, want ~0", rmse)
	}

	empty, _ := tbl.Select(nil)
	_, err = ModelRMSE(fitted, "y", empty)
	if err == nil {
		t.Fatal("empty test partition should fail")
	}
	var metricErr *errors.MetricError
	if !errors.As(err, &metricErr) {
		t.Errorf("expected MetricError, got %T", err)
	}
}
