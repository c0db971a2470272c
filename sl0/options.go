package sl0

import (
	"github.com/hammal/compsens/linalg"
	"go.uber.org/zap"
)

// ProgressFunc is called once per outer iteration with the zero based
// iteration index and the σ used in it, before σ is decreased. It must not
// retain or modify solver state.
type ProgressFunc func(iteration int, sigma float64)

// Option customizes a Solver.
type Option func(*Solver)

// WithAlgebra sets the linear algebra backend. Panics on nil.
func WithAlgebra(alg linalg.Algebra) Option {
	if alg == nil {
		panic("sl0: WithAlgebra(nil)")
	}
	return func(s *Solver) {
		s.algebra = alg
	}
}

// WithProgress installs a progress hook. Panics on nil.
func WithProgress(fn ProgressFunc) Option {
	if fn == nil {
		panic("sl0: WithProgress(nil)")
	}
	return func(s *Solver) {
		s.progress = fn
	}
}

// WithStrict makes Solve fail with ErrNonFinite instead of returning a
// solution containing NaN or Inf.
func WithStrict() Option {
	return func(s *Solver) {
		s.strict = true
	}
}

// LogProgress returns a ProgressFunc that logs every outer iteration at debug
// level.
func LogProgress(logger *zap.Logger) ProgressFunc {
	if logger == nil {
		panic("sl0: LogProgress(nil)")
	}
	return func(iteration int, sigma float64) {
		logger.Debug("sl0 iteration", zap.Int("iteration", iteration), zap.Float64("sigma", sigma))
	}
}
