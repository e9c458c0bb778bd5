package evaluate

import (
	"time"

	"github.com/YuminosukeSato/restat/core/parallel"
	"github.com/YuminosukeSato/restat/dataset"
	"github.com/YuminosukeSato/restat/metrics"
	"github.com/YuminosukeSato/restat/model"
	"github.com/YuminosukeSato/restat/pkg/errors"
	"github.com/YuminosukeSato/restat/pkg/log"
	"github.com/YuminosukeSato/restat/resampling"
)

// CVResult holds one RMSE distribution per candidate model, plus the test
// partition of every repetition so consumers can verify the paired design.
type CVResult struct {
	// Distributions maps each model identifier to its held-out RMSE
	// distribution across the completed repetitions.
	Distributions map[string]*MetricDistribution

	// TestIndexSets records the test-row indices of each repetition's
	// split. Every candidate model of repetition i was scored on exactly
	// TestIndexSets[i]. A skipped repetition holds nil.
	TestIndexSets [][]int

	// Skipped lists repetitions dropped under SkipFailedRepetitions. Empty
	// unless that option is set: the default policy aborts the run instead,
	// since a missing model evaluation would bias the paired comparison.
	Skipped []RepetitionFailure

	// Repetitions is the configured repetition count.
	Repetitions int
}

// SkippedCount returns the number of dropped repetitions.
func (r *CVResult) SkippedCount() int {
	return len(r.Skipped)
}

// cvRepetition is the raw outcome of one repetition before merging.
type cvRepetition struct {
	rmse        []float64 // one value per candidate, in specs order
	testIndices []int
	err         error
	failedModel string
}

// CrossValidate compares the candidate models' predictive accuracy:
// cfg.Repetitions times it draws one random train/test split of tbl and,
// for every spec, fits on the train partition and computes RMSE on the
// held-out test partition. All candidates of a repetition share the same
// split, so per-repetition RMSE differences are a between-model comparison
// not confounded by partition choice.
//
// A fit failure aborts the run with an error naming the repetition and
// model, unless cfg.SkipFailedRepetitions is set, in which case the whole
// repetition is dropped for every candidate and recorded on the result.
func CrossValidate(tbl *dataset.Table, specs []model.Spec, cfg Config) (*CVResult, error) {
	const op = "evaluate.CrossValidate"

	if err := cfg.validate(op, true); err != nil {
		return nil, err
	}
	if tbl == nil || tbl.NumRows() == 0 {
		return nil, errors.NewInvalidInputError(op, "table", "empty table", 0)
	}
	if len(specs) == 0 {
		return nil, errors.NewInvalidInputError(op, "specs", "at least one model spec required", 0)
	}
	ids := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if err := spec.Validate(tbl); err != nil {
			return nil, err
		}
		if ids[spec.ID()] {
			return nil, errors.NewInvalidInputError(op, "specs", "duplicate model identifier", spec.ID())
		}
		ids[spec.ID()] = true
	}

	logger := cfg.logger().With(
		log.ProcedureKey, "cross_validation",
		log.SeedKey, cfg.Seed,
	)
	logger.Info("cross-validation run started",
		log.RowsKey, tbl.NumRows(),
		log.RepetitionsKey, cfg.Repetitions,
		log.TrainFractionKey, cfg.TrainFraction,
		log.WorkersKey, cfg.Workers,
	)
	started := time.Now()

	fitter := cfg.fitter()

	outcomes := make([]cvRepetition, cfg.Repetitions)
	parallel.ParallelizeWithWorkers(cfg.Repetitions, cfg.Workers, func(start, end int) {
		for i := start; i < end; i++ {
			outcomes[i] = crossValidateOnce(tbl, specs, fitter, cfg, i)
		}
	})

	result := &CVResult{
		Distributions: make(map[string]*MetricDistribution, len(specs)),
		TestIndexSets: make([][]int, cfg.Repetitions),
		Repetitions:   cfg.Repetitions,
	}
	for _, spec := range specs {
		result.Distributions[spec.ID()] = &MetricDistribution{}
	}

	// Merge in repetition order: output is identical for any worker count,
	// and under the abort policy the error is always the lowest failing
	// repetition's.
	for i := 0; i < cfg.Repetitions; i++ {
		out := outcomes[i]
		if out.err != nil {
			if !cfg.SkipFailedRepetitions {
				return nil, errors.WithRepetition(out.err, i)
			}
			result.Skipped = append(result.Skipped, RepetitionFailure{
				Repetition: i,
				Model:      out.failedModel,
				Err:        out.err,
			})
			logger.Warn("repetition skipped",
				log.RepetitionKey, i,
				log.ModelKey, out.failedModel,
			)
			continue
		}

		result.TestIndexSets[i] = out.testIndices
		for j, spec := range specs {
			result.Distributions[spec.ID()].add(MetricSample{
				Repetition: i,
				Model:      spec.ID(),
				Value:      out.rmse[j],
			})
		}
	}

	logger.Info("cross-validation run finished",
		log.FailuresKey, result.SkippedCount(),
		log.DurationMsKey, time.Since(started).Milliseconds(),
	)
	return result, nil
}

// crossValidateOnce runs one repetition: a single split shared by every
// candidate model.
func crossValidateOnce(tbl *dataset.Table, specs []model.Spec, fitter model.Fitter, cfg Config, repetition int) (out cvRepetition) {
	rng := cfg.rngFor(repetition)
	split, err := resampling.RandomSplit(tbl, cfg.TrainFraction, rng)
	if err != nil {
		out.err = err
		return out
	}
	out.testIndices = split.TestIndices

	out.rmse = make([]float64, len(specs))
	for j, spec := range specs {
		rmse, err := fitAndScore(split, spec, fitter)
		if err != nil {
			out.err = err
			out.failedModel = spec.ID()
			return out
		}
		out.rmse[j] = rmse
	}
	return out
}

// fitAndScore fits one candidate on the split's train partition and scores
// it on the test partition. A panic inside the fitting collaborator is
// converted to an error.
func fitAndScore(split *resampling.Split, spec model.Spec, fitter model.Fitter) (rmse float64, err error) {
	defer errors.Recover(&err, "evaluate.fitAndScore")

	fitted, err := fitter.Fit(split.Train, spec)
	if err != nil {
		return 0, err
	}
	return metrics.ModelRMSE(fitted, spec.Response, split.Test)
}
