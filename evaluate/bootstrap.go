package evaluate

import (
	"sort"
	"time"

	"github.com/YuminosukeSato/restat/core/parallel"
	"github.com/YuminosukeSato/restat/dataset"
	"github.com/YuminosukeSato/restat/model"
	"github.com/YuminosukeSato/restat/pkg/errors"
	"github.com/YuminosukeSato/restat/pkg/log"
	"github.com/YuminosukeSato/restat/resampling"
)

// BootstrapResult collects the per-term coefficient distributions of a
// bootstrap run, together with every repetition excluded because its fit
// failed.
type BootstrapResult struct {
	// Distributions maps each coefficient term to its distribution across
	// the successful repetitions.
	Distributions map[string]*MetricDistribution

	// Failures lists the repetitions excluded from the aggregates.
	Failures []RepetitionFailure

	// Repetitions is the configured repetition count.
	Repetitions int
}

// FailureCount returns the number of excluded repetitions.
func (r *BootstrapResult) FailureCount() int {
	return len(r.Failures)
}

// TermSummary is one output row of a bootstrap run: the bootstrap standard
// error of a coefficient and its percentile confidence interval.
type TermSummary struct {
	Term    string
	StdErr  float64
	CILower float64
	CIUpper float64
}

// Summary aggregates each term's distribution into its standard error and
// [2.5%, 97.5%] empirical quantiles. Rows are ordered intercept first, then
// alphabetically by term.
func (r *BootstrapResult) Summary() []TermSummary {
	terms := make([]string, 0, len(r.Distributions))
	for term := range r.Distributions {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i] == model.InterceptTerm {
			return true
		}
		if terms[j] == model.InterceptTerm {
			return false
		}
		return terms[i] < terms[j]
	})

	rows := make([]TermSummary, len(terms))
	for i, term := range terms {
		dist := r.Distributions[term]
		rows[i] = TermSummary{
			Term:    term,
			StdErr:  dist.StdDev(),
			CILower: dist.Quantile(0.025),
			CIUpper: dist.Quantile(0.975),
		}
	}
	return rows
}

// Bootstrap estimates the sampling variability of spec's coefficients:
// cfg.Repetitions times it resamples tbl with replacement, refits the model,
// and records every coefficient estimate. A repetition whose fit fails is
// recorded as a failure and excluded from the aggregates; it never aborts
// the run and is never silently dropped.
func Bootstrap(tbl *dataset.Table, spec model.Spec, cfg Config) (*BootstrapResult, error) {
	const op = "evaluate.Bootstrap"

	if err := cfg.validate(op, false); err != nil {
		return nil, err
	}
	if tbl == nil || tbl.NumRows() == 0 {
		return nil, errors.NewInvalidInputError(op, "table", "empty table", 0)
	}
	if err := spec.Validate(tbl); err != nil {
		return nil, err
	}

	logger := cfg.logger().With(
		log.ProcedureKey, "bootstrap",
		log.ModelKey, spec.ID(),
		log.SeedKey, cfg.Seed,
	)
	logger.Info("bootstrap run started",
		log.RowsKey, tbl.NumRows(),
		log.RepetitionsKey, cfg.Repetitions,
		log.WorkersKey, cfg.Workers,
	)
	started := time.Now()

	fitter := cfg.fitter()

	// Per-repetition slots; merged in repetition order afterwards so the
	// result is identical for any worker count.
	coefs := make([]map[string]float64, cfg.Repetitions)
	failures := make([]error, cfg.Repetitions)

	parallel.ParallelizeWithWorkers(cfg.Repetitions, cfg.Workers, func(start, end int) {
		for i := start; i < end; i++ {
			coefs[i], failures[i] = bootstrapOnce(tbl, spec, fitter, cfg, i)
		}
	})

	result := &BootstrapResult{
		Distributions: make(map[string]*MetricDistribution),
		Repetitions:   cfg.Repetitions,
	}
	for i := 0; i < cfg.Repetitions; i++ {
		if failures[i] != nil {
			result.Failures = append(result.Failures, RepetitionFailure{
				Repetition: i,
				Model:      spec.ID(),
				Err:        failures[i],
			})
			continue
		}
		for term, value := range coefs[i] {
			dist, ok := result.Distributions[term]
			if !ok {
				dist = &MetricDistribution{}
				result.Distributions[term] = dist
			}
			dist.add(MetricSample{Repetition: i, Model: spec.ID(), Term: term, Value: value})
		}
	}

	if n := result.FailureCount(); n > 0 {
		logger.Warn("repetitions excluded from aggregates", log.FailuresKey, n)
	}
	logger.Info("bootstrap run finished",
		log.FailuresKey, result.FailureCount(),
		log.DurationMsKey, time.Since(started).Milliseconds(),
	)
	return result, nil
}

// bootstrapOnce runs one repetition. A panic inside the fitting collaborator
// is converted to an error so a single bad resample cannot take down the run.
func bootstrapOnce(tbl *dataset.Table, spec model.Spec, fitter model.Fitter, cfg Config, repetition int) (coefs map[string]float64, err error) {
	defer errors.Recover(&err, "evaluate.bootstrapOnce")

	rng := cfg.rngFor(repetition)
	rs, err := resampling.Bootstrap(tbl, rng)
	if err != nil {
		return nil, errors.WithRepetition(err, repetition)
	}

	fitted, err := fitter.Fit(rs.Table, spec)
	if err != nil {
		return nil, errors.WithRepetition(err, repetition)
	}
	return fitted.Coefficients(), nil
}
