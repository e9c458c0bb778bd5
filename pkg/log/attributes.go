// Standard attribute keys for evaluation runs. Using these keys everywhere
// keeps log lines filterable by procedure, repetition, and model.

package log

// Evaluation context.
const (
	// ProcedureKey names the evaluation procedure: "bootstrap" or "cross_validation".
	ProcedureKey = "eval.procedure"

	// RepetitionsKey is the configured repetition count.
	RepetitionsKey = "eval.repetitions"

	// RepetitionKey is a single repetition index (0-based).
	RepetitionKey = "eval.repetition"

	// SeedKey is the base random seed of a run.
	SeedKey = "eval.seed"

	// WorkersKey is the worker count used for a run.
	WorkersKey = "eval.workers"

	// FailuresKey counts repetitions excluded because a fit failed.
	FailuresKey = "eval.failures"

	// TrainFractionKey is the configured train fraction for a split.
	TrainFractionKey = "eval.train_fraction"

	// ComponentKey identifies the package performing the operation.
	ComponentKey = "component"
)

// Data shape.
const (
	// RowsKey is the number of rows in a table.
	RowsKey = "data.rows"

	// ColumnsKey is the number of columns in a table.
	ColumnsKey = "data.columns"

	// TrainRowsKey and TestRowsKey describe one split.
	TrainRowsKey = "data.train_rows"
	TestRowsKey  = "data.test_rows"
)

// Model context.
const (
	// ModelKey is a candidate model identifier.
	ModelKey = "model.name"

	// FamilyKey is the model family: "linear", "piecewise", "smooth".
	FamilyKey = "model.family"

	// TermsKey is the number of design matrix terms of a fit.
	TermsKey = "model.terms"
)

// Metrics.
const (
	// RMSEKey is a root-mean-squared-error value.
	RMSEKey = "metric.rmse"

	// StdErrKey is a bootstrap standard error.
	StdErrKey = "metric.stderr"

	// DurationMsKey is elapsed wall time in milliseconds.
	DurationMsKey = "duration_ms"
)
