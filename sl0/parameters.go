package sl0

import (
	"errors"
	"fmt"
	"math"
)

// Empirically chosen defaults. They are not derived constants.
const (
	// DefaultSigmaDecreaseFactor is the geometric ratio of the σ schedule.
	DefaultSigmaDecreaseFactor = 0.5
	// DefaultMu0 is the steepest descent step scale.
	DefaultMu0 = 2.
	// DefaultInnerIterations is the number of descent steps per σ.
	DefaultInnerIterations = 3
)

var (
	// ErrDegenerateParameter indicates a solver parameter outside its valid range.
	ErrDegenerateParameter = errors.New("sl0: degenerate parameter")
	// ErrNonFinite indicates a NaN or Inf in the solution (strict mode only).
	ErrNonFinite = errors.New("sl0: non-finite solution")
)

// Parameters controls the σ schedule and the inner descent.
//
// Recognized ranges:
//
//	SigmaMin            > 0. For noiseless data smaller values give sparser
//	                    results; for noisy data a few times the noise standard
//	                    deviation in s.
//	SigmaDecreaseFactor in (0, 1), 0.5 to 0.9 in practice. Smaller values
//	                    shorten the schedule at the cost of accuracy for less
//	                    sparse signals.
//	Mu0                 > 0, around 2.
//	InnerIterations     >= 1, around 3.
type Parameters struct {
	SigmaMin            float64 `yaml:"sigma_min"`
	SigmaDecreaseFactor float64 `yaml:"sigma_decrease_factor"`
	Mu0                 float64 `yaml:"mu0"`
	InnerIterations     int     `yaml:"inner_iterations"`
}

// DefaultParameters returns the default schedule ending at sigmaMin.
func DefaultParameters(sigmaMin float64) Parameters {
	return Parameters{
		SigmaMin:            sigmaMin,
		SigmaDecreaseFactor: DefaultSigmaDecreaseFactor,
		Mu0:                 DefaultMu0,
		InnerIterations:     DefaultInnerIterations,
	}
}

// Validate reports the first parameter outside its range, wrapped in
// ErrDegenerateParameter.
func (p Parameters) Validate() error {
	switch {
	case !(p.SigmaMin > 0) || math.IsInf(p.SigmaMin, 1):
		return fmt.Errorf("%w: sigma_min must be positive and finite, got %v", ErrDegenerateParameter, p.SigmaMin)
	case !(p.SigmaDecreaseFactor > 0 && p.SigmaDecreaseFactor < 1):
		return fmt.Errorf("%w: sigma_decrease_factor must lie in (0, 1), got %v", ErrDegenerateParameter, p.SigmaDecreaseFactor)
	case !(p.Mu0 > 0) || math.IsInf(p.Mu0, 1):
		return fmt.Errorf("%w: mu0 must be positive and finite, got %v", ErrDegenerateParameter, p.Mu0)
	case p.InnerIterations < 1:
		return fmt.Errorf("%w: inner_iterations must be at least 1, got %d", ErrDegenerateParameter, p.InnerIterations)
	}
	return nil
}

// IterationBound returns the number of outer iterations the schedule performs
// when starting from sigmaInit, roughly
//
//	ceil(log(sigmaInit/sigmaMin) / log(1/factor))
//
// The count replays the floating point schedule sigma *= factor so it matches
// the solver exactly, including at exact powers of factor. It is zero when
// sigmaInit <= sigmaMin, when sigmaInit is not finite, or when factor lies
// outside (0, 1). This is the only termination rule of the algorithm.
func IterationBound(sigmaInit, sigmaMin, factor float64) int {
	if !(sigmaInit > sigmaMin) || math.IsInf(sigmaInit, 1) || !(factor > 0 && factor < 1) {
		return 0
	}
	count := 0
	for sigma := sigmaInit; sigma > sigmaMin; sigma *= factor {
		count++
	}
	return count
}
