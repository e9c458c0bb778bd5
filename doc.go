// Package restat provides resampling-based evaluation of regression models:
// bootstrap estimation of coefficient sampling variability and repeated
// train/test cross-validation for comparing candidate models.
//
// The library is organized bottom-up:
//
//   - dataset: the immutable column-oriented Table, a delimited-file loader,
//     and synthetic generators for experimentation.
//   - resampling: with-replacement bootstrap resampling and disjoint random
//     train/test splitting over explicit random sources.
//   - model: an explicit model descriptor (response, predictors, family)
//     and a least-squares fitter covering linear, piecewise-linear, and
//     natural-spline model families.
//   - metrics: prediction-error metrics (RMSE, MSE, MAE, R2).
//   - evaluate: the two evaluators, which compose the packages above into
//     reproducible, optionally parallel evaluation runs.
//
// # Quick start
//
//	tbl, err := dataset.GenerateLinear(100, 2.0, 3.0, 1.0, rand.NewPCG(42, 42))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	spec := model.Spec{
//	    Name:       "line",
//	    Response:   "y",
//	    Predictors: []string{"x"},
//	    Family:     model.FamilyLinear,
//	}
//
//	result, err := evaluate.Bootstrap(tbl, spec, evaluate.Config{
//	    Repetitions: 1000,
//	    Seed:        42,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, row := range result.Summary() {
//	    fmt.Println(row.Term, row.StdErr, row.CILower, row.CIUpper)
//	}
//
// Runs are deterministic for a fixed seed regardless of the worker count:
// every repetition derives its own random generator from (seed, repetition)
// and the aggregation step combines completed samples in repetition order.
package restat
