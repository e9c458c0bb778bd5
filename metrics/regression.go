// Package metrics provides prediction-error metrics over paired observation
// and prediction slices, plus the model-level RMSE used by the
// cross-validation evaluator.
package metrics

import (
	"math"

	"github.com/YuminosukeSato/restat/dataset"
	"github.com/YuminosukeSato/restat/model"
	"github.com/YuminosukeSato/restat/pkg/errors"
)

// MSE computes the mean squared error between observations and predictions.
func MSE(yTrue, yPred []float64) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewMetricError("MSE", "empty input")
	}
	if len(yPred) != n {
		return 0, errors.NewMetricError("MSE", "length mismatch between observations and predictions")
	}

	var sum float64
	for i := range yTrue {
		diff := yTrue[i] - yPred[i]
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// RMSE computes the root mean squared error.
func RMSE(yTrue, yPred []float64) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE computes the mean absolute error.
func MAE(yTrue, yPred []float64) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewMetricError("MAE", "empty input")
	}
	if len(yPred) != n {
		return 0, errors.NewMetricError("MAE", "length mismatch between observations and predictions")
	}

	var sum float64
	for i := range yTrue {
		sum += math.Abs(yTrue[i] - yPred[i])
	}
	return sum / float64(n), nil
}

// R2 computes the coefficient of determination.
func R2(yTrue, yPred []float64) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewMetricError("R2", "empty input")
	}
	if len(yPred) != n {
		return 0, errors.NewMetricError("R2", "length mismatch between observations and predictions")
	}

	var mean float64
	for _, y := range yTrue {
		mean += y
	}
	mean /= float64(n)

	var tss, rss float64
	for i := range yTrue {
		tss += (yTrue[i] - mean) * (yTrue[i] - mean)
		rss += (yTrue[i] - yPred[i]) * (yTrue[i] - yPred[i])
	}
	if tss == 0 {
		return 0, errors.NewMetricError("R2", "observations have zero variance")
	}
	return 1 - rss/tss, nil
}

// ModelRMSE predicts on the test table's covariates and compares against its
// response column. The metric is undefined on an empty test partition.
func ModelRMSE(fitted model.Fitted, response string, test *dataset.Table) (float64, error) {
	if test == nil || test.NumRows() == 0 {
		return 0, errors.NewMetricError("RMSE", "empty test partition")
	}

	preds, err := fitted.Predict(test)
	if err != nil {
		return 0, err
	}
	actual, err := test.Floats(response)
	if err != nil {
		return 0, err
	}
	return RMSE(actual, preds)
}
