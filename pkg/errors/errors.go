// Package errors provides the error taxonomy and warning system for restat.
// Error structs carry structured context (operation, repetition, model) and
// attach stack traces via cockroachdb/errors so failures inside an evaluator
// repetition can be traced back to their origin.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Warning handling
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// Default handler logs to the standard logger.
		log.Printf("restat-Warning: %v\n", w)
	}
)

// SetWarningHandler sets the warning handler for the whole library.
// Warnings (e.g. a skipped bootstrap repetition) are advisory and never
// interrupt an evaluation run.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // ignore warnings
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// Warn emits a warning through the configured handler.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Domain error types
//
// ===========================================================================

// InvalidInputError reports an input that violates a precondition before any
// computation runs: an empty table, an out-of-range configuration value, or
// a column reference that does not exist in the table's schema.
type InvalidInputError struct {
	Op     string
	Param  string
	Reason string
	Value  interface{}
}

func (e *InvalidInputError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("restat: %s: invalid input for %q: %s (got: %v)", e.Op, e.Param, e.Reason, e.Value)
	}
	return fmt.Sprintf("restat: %s: invalid input: %s", e.Op, e.Reason)
}

// MarshalZerologObject adds structured error context to a zerolog event.
func (e *InvalidInputError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("param", e.Param).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "InvalidInputError")
}

// NewInvalidInputError creates an InvalidInputError with a stack trace.
func NewInvalidInputError(op, param, reason string, value interface{}) error {
	err := &InvalidInputError{Op: op, Param: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// FitError reports a model-fitting failure: a singular design matrix or a
// numerically unstable solve. When raised inside an evaluator it carries the
// repetition index and model identifier that triggered it; outside an
// evaluator the repetition is -1.
type FitError struct {
	Model      string
	Repetition int // -1 when the fit did not run inside an evaluator
	Kind       string
	Err        error
}

func (e *FitError) Error() string {
	switch {
	case e.Model != "" && e.Repetition >= 0:
		return fmt.Sprintf("restat: fit failed for model %q in repetition %d: %s", e.Model, e.Repetition, e.Kind)
	case e.Model != "":
		return fmt.Sprintf("restat: fit failed for model %q: %s", e.Model, e.Kind)
	default:
		return fmt.Sprintf("restat: fit failed: %s", e.Kind)
	}
}

func (e *FitError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds structured error context to a zerolog event.
func (e *FitError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model", e.Model).
		Int("repetition", e.Repetition).
		Str("kind", e.Kind).
		Str("type", "FitError")
	if e.Err != nil {
		event.AnErr("cause", e.Err)
	}
}

// NewFitError creates a FitError with a stack trace.
func NewFitError(model, kind string, err error) error {
	fitErr := &FitError{Model: model, Repetition: -1, Kind: kind, Err: err}
	return errors.WithStack(fitErr)
}

// WithRepetition annotates a fit failure with the evaluator repetition that
// triggered it. FitError values keep their structure; anything else is
// wrapped so the repetition index is never lost.
func WithRepetition(err error, repetition int) error {
	var fitErr *FitError
	if errors.As(err, &fitErr) {
		tagged := &FitError{
			Model:      fitErr.Model,
			Repetition: repetition,
			Kind:       fitErr.Kind,
			Err:        fitErr.Err,
		}
		return errors.WithStack(tagged)
	}
	return errors.Wrapf(err, "repetition %d", repetition)
}

// MetricError reports an undefined metric, e.g. RMSE over an empty test
// partition or over predictions of mismatched length.
type MetricError struct {
	Metric    string
	Condition string
}

func (e *MetricError) Error() string {
	return fmt.Sprintf("restat: %s is undefined: %s", e.Metric, e.Condition)
}

// MarshalZerologObject adds structured error context to a zerolog event.
func (e *MetricError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("metric", e.Metric).
		Str("condition", e.Condition).
		Str("type", "MetricError")
}

// NewMetricError creates a MetricError with a stack trace.
func NewMetricError(metric, condition string) error {
	err := &MetricError{Metric: metric, Condition: condition}
	return errors.WithStack(err)
}

// SchemaWarning reports a tolerated schema irregularity observed while
// loading a delimited file, e.g. a categorical level seen only once.
type SchemaWarning struct {
	Column string
	Detail string
}

func (w *SchemaWarning) Error() string {
	return fmt.Sprintf("column %q: %s", w.Column, w.Detail)
}

// NewSchemaWarning creates a SchemaWarning.
func NewSchemaWarning(column, detail string) *SchemaWarning {
	return &SchemaWarning{Column: column, Detail: detail}
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a format string.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates an error with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Sentinel errors
//
// ===========================================================================

var (
	// ErrEmptyTable is returned when an operation receives a table with no rows.
	ErrEmptyTable = New("empty table")

	// ErrSingularMatrix is returned when a design matrix cannot be inverted.
	ErrSingularMatrix = New("singular matrix")
)
