package reconstruct

import (
	"runtime"

	"github.com/hammal/compsens/linalg"
	"github.com/hammal/compsens/sl0"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// BlockProgressFunc reports an outer SL0 iteration of one block. It may be
// called concurrently for different blocks.
type BlockProgressFunc func(block, iteration int, sigma float64)

type config struct {
	workers   int
	logger    *zap.Logger
	algebra   linalg.Algebra
	progress  BlockProgressFunc
	strict    bool
	thetaPinv *mat.Dense
}

func defaultConfig() config {
	return config{
		workers: runtime.GOMAXPROCS(0),
		logger:  zap.NewNop(),
		algebra: linalg.Gonum{},
	}
}

// Option customizes a recovery.
type Option func(*config)

// WithWorkers bounds the number of blocks solved concurrently. One gives the
// sequential reference behavior. Panics on n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("reconstruct: WithWorkers(n < 1)")
	}
	return func(c *config) {
		c.workers = n
	}
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(logger *zap.Logger) Option {
	if logger == nil {
		panic("reconstruct: WithLogger(nil)")
	}
	return func(c *config) {
		c.logger = logger
	}
}

// WithAlgebra sets the linear algebra backend. Panics on nil.
func WithAlgebra(alg linalg.Algebra) Option {
	if alg == nil {
		panic("reconstruct: WithAlgebra(nil)")
	}
	return func(c *config) {
		c.algebra = alg
	}
}

// WithProgress installs a per block progress hook. Panics on nil.
func WithProgress(fn BlockProgressFunc) Option {
	if fn == nil {
		panic("reconstruct: WithProgress(nil)")
	}
	return func(c *config) {
		c.progress = fn
	}
}

// WithStrict rejects non-finite block solutions with sl0.ErrNonFinite.
func WithStrict() Option {
	return func(c *config) {
		c.strict = true
	}
}

// WithPseudoinverse supplies a precomputed pseudoinverse of the effective
// operator Θ instead of computing it. Only its shape is checked. Panics on
// nil.
func WithPseudoinverse(thetaPinv *mat.Dense) Option {
	if thetaPinv == nil {
		panic("reconstruct: WithPseudoinverse(nil)")
	}
	return func(c *config) {
		c.thetaPinv = thetaPinv
	}
}

// solverOptions returns the sl0 options for block.
func (c config) solverOptions(block int) []sl0.Option {
	opts := []sl0.Option{sl0.WithAlgebra(c.algebra)}
	if c.strict {
		opts = append(opts, sl0.WithStrict())
	}
	if c.progress != nil {
		progress := c.progress
		opts = append(opts, sl0.WithProgress(func(iteration int, sigma float64) {
			progress(block, iteration, sigma)
		}))
	}
	return opts
}
