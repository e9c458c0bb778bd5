package dataset

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/restat/pkg/errors"
)

// GenerateLinear creates an n-row table with columns "x" and "y" where
// y = intercept + slope*x + e, e ~ N(0, noiseSD) and x ~ Uniform(0, 10).
// The random source makes generation reproducible for a fixed seed.
func GenerateLinear(n int, intercept, slope, noiseSD float64, src rand.Source) (*Table, error) {
	if n <= 0 {
		return nil, errors.NewInvalidInputError("dataset.GenerateLinear", "n", "must be positive", n)
	}
	if noiseSD < 0 {
		return nil, errors.NewInvalidInputError("dataset.GenerateLinear", "noiseSD", "must be non-negative", noiseSD)
	}

	xDist := distuv.Uniform{Min: 0, Max: 10, Src: src}
	noise := distuv.Normal{Mu: 0, Sigma: noiseSD, Src: src}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		x := xDist.Rand()
		xs[i] = x
		ys[i] = intercept + slope*x + noise.Rand()
	}

	return New(NumericColumn("x", xs), NumericColumn("y", ys))
}

// GenerateGrowthCurve creates an n-row table with a known nonlinear
// structure: columns "age" (uniform on [0, 18]), "group" ("a" or "b"), and
// "height" following a saturating growth curve
//
//	height = asymptote - 110*exp(-0.35*age) + e,  e ~ N(0, noiseSD)
//
// with the asymptote shifted by group (168 for "a", 155 for "b"). A linear
// model in age underfits this curve, which is what the model-comparison
// scenario relies on.
func GenerateGrowthCurve(n int, noiseSD float64, src rand.Source) (*Table, error) {
	if n <= 0 {
		return nil, errors.NewInvalidInputError("dataset.GenerateGrowthCurve", "n", "must be positive", n)
	}
	if noiseSD < 0 {
		return nil, errors.NewInvalidInputError("dataset.GenerateGrowthCurve", "noiseSD", "must be non-negative", noiseSD)
	}

	ageDist := distuv.Uniform{Min: 0, Max: 18, Src: src}
	noise := distuv.Normal{Mu: 0, Sigma: noiseSD, Src: src}
	rng := rand.New(src)

	ages := make([]float64, n)
	groups := make([]string, n)
	heights := make([]float64, n)
	for i := 0; i < n; i++ {
		age := ageDist.Rand()
		group := "a"
		asymptote := 168.0
		if rng.IntN(2) == 1 {
			group = "b"
			asymptote = 155.0
		}
		ages[i] = age
		groups[i] = group
		heights[i] = asymptote - 110.0*math.Exp(-0.35*age) + noise.Rand()
	}

	return New(
		NumericColumn("age", ages),
		CategoricalColumn("group", groups),
		NumericColumn("height", heights),
	)
}
