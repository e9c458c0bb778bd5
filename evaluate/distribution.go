// Package evaluate implements the two resampling evaluators: bootstrap
// estimation of coefficient sampling variability and repeated train/test
// cross-validation for comparing candidate models. Each invocation is a
// pure, independent run parameterized by its inputs and a seed; repetitions
// share no mutable state, so they execute in parallel when configured to.
package evaluate

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// MetricSample is one scalar observation: a coefficient estimate or an
// error metric, tagged with the repetition that produced it and, where
// applicable, the candidate model and coefficient term.
type MetricSample struct {
	Repetition int
	Model      string
	Term       string
	Value      float64
}

// MetricDistribution is an ordered collection of samples. Aggregates are
// order-insensitive, so samples may be collected in any completion order
// and are stored sorted by repetition.
type MetricDistribution struct {
	samples []MetricSample
}

// Len returns the number of samples.
func (d *MetricDistribution) Len() int {
	return len(d.samples)
}

// Samples returns a copy of the samples.
func (d *MetricDistribution) Samples() []MetricSample {
	return append([]MetricSample(nil), d.samples...)
}

// Values returns the sample values in collection order.
func (d *MetricDistribution) Values() []float64 {
	values := make([]float64, len(d.samples))
	for i, s := range d.samples {
		values[i] = s.Value
	}
	return values
}

// Mean returns the sample mean, or NaN for an empty distribution.
func (d *MetricDistribution) Mean() float64 {
	if len(d.samples) == 0 {
		return math.NaN()
	}
	return stat.Mean(d.Values(), nil)
}

// StdDev returns the sample standard deviation (n-1 denominator), or NaN
// when fewer than two samples exist.
func (d *MetricDistribution) StdDev() float64 {
	if len(d.samples) < 2 {
		return math.NaN()
	}
	return stat.StdDev(d.Values(), nil)
}

// Quantile returns the p-th empirical quantile, or NaN for an empty
// distribution.
func (d *MetricDistribution) Quantile(p float64) float64 {
	if len(d.samples) == 0 {
		return math.NaN()
	}
	values := d.Values()
	sort.Float64s(values)
	return stat.Quantile(p, stat.Empirical, values, nil)
}

// Median returns the 50% quantile.
func (d *MetricDistribution) Median() float64 {
	return d.Quantile(0.5)
}

func (d *MetricDistribution) add(s MetricSample) {
	d.samples = append(d.samples, s)
}

// RepetitionFailure records one repetition excluded from an aggregate
// because a fit failed, so data loss is never silent.
type RepetitionFailure struct {
	Repetition int
	Model      string
	Err        error
}
