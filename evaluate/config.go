package evaluate

import (
	"math/rand/v2"

	"github.com/YuminosukeSato/restat/model"
	"github.com/YuminosukeSato/restat/pkg/errors"
	"github.com/YuminosukeSato/restat/pkg/log"
)

// Config parameterizes an evaluation run. Validation happens before any
// repetition executes, so a bad configuration never produces partial output.
type Config struct {
	// Repetitions is the number of resampling repetitions. Must be positive;
	// 100-1000 is typical.
	Repetitions int

	// TrainFraction is the share of rows assigned to the train partition of
	// each cross-validation split, strictly between 0 and 1 (typically 0.8).
	// The bootstrap evaluator ignores it.
	TrainFraction float64

	// Seed is the base random seed. Repetition i derives its own generator
	// from (Seed, i), so output is identical for a fixed seed regardless of
	// the worker count.
	Seed uint64

	// Workers is the number of parallel workers. Values below 2 run
	// repetitions sequentially.
	Workers int

	// SkipFailedRepetitions opts the cross-validation evaluator into
	// dropping a whole repetition (all candidate models, preserving the
	// paired design) when any fit in it fails, recording the failure
	// instead of aborting the run. The bootstrap evaluator always counts
	// and excludes failed repetitions.
	SkipFailedRepetitions bool

	// Fitter is the model-fitting collaborator. Nil selects
	// model.LeastSquares.
	Fitter model.Fitter

	// Logger receives structured run logs. Nil selects the slog default.
	Logger log.Logger
}

func (c Config) validate(op string, needFraction bool) error {
	if c.Repetitions <= 0 {
		return errors.NewInvalidInputError(op, "Repetitions", "must be positive", c.Repetitions)
	}
	if needFraction && (c.TrainFraction <= 0 || c.TrainFraction >= 1) {
		return errors.NewInvalidInputError(op, "TrainFraction", "must be in (0, 1)", c.TrainFraction)
	}
	return nil
}

func (c Config) fitter() model.Fitter {
	if c.Fitter != nil {
		return c.Fitter
	}
	return model.LeastSquares{}
}

func (c Config) logger() log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}

// rngFor builds the independent random generator of one repetition.
func (c Config) rngFor(repetition int) *rand.Rand {
	return rand.New(rand.NewPCG(c.Seed, uint64(repetition)))
}
