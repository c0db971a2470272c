package sl0

import (
	"context"
	"fmt"
	"math"

	"github.com/hammal/compsens/gonumExtensions"
	"github.com/hammal/compsens/linalg"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Solver runs SL0 with a fixed set of Parameters. A Solver holds no per-call
// state and may be shared between goroutines.
type Solver struct {
	params   Parameters
	algebra  linalg.Algebra
	progress ProgressFunc
	strict   bool
}

// New validates params and returns a Solver.
func New(params Parameters, opts ...Option) (*Solver, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	s := &Solver{
		params:  params,
		algebra: linalg.Gonum{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Parameters returns the solver parameters.
func (s *Solver) Parameters() Parameters {
	return s.params
}

// Solve returns the sparsest approximate solution of a x = y.
//
// aPinv, if not nil, must be the pseudoinverse of a. It is not checked beyond
// its shape; passing it avoids recomputing the pseudoinverse when the same a
// is used for many right hand sides.
//
// If the minimum norm solution is identically zero, σ starts at zero, no
// iteration runs and the zero vector is returned. A minimum norm solution with
// NaN or Inf entries is returned as is, or rejected with ErrNonFinite in strict
// mode. ctx is checked before every outer iteration.
func (s *Solver) Solve(ctx context.Context, y mat.Vector, a, aPinv mat.Matrix) (*mat.VecDense, error) {
	m, n := a.Dims()
	if y.Len() != m {
		return nil, linalg.Mismatch("measurement has length %d, operator has %d rows", y.Len(), m)
	}
	if aPinv == nil {
		p, err := s.algebra.Pinv(a)
		if err != nil {
			return nil, fmt.Errorf("sl0: pseudoinverse: %w", err)
		}
		aPinv = p
	} else if r, c := aPinv.Dims(); r != n || c != m {
		return nil, linalg.Mismatch("pseudoinverse is %dx%d, want %dx%d", r, c, n, m)
	}

	var (
		mu0        = s.params.Mu0
		factor     = s.params.SigmaDecreaseFactor
		x          = mat.NewVecDense(n, nil)
		delta      = mat.NewVecDense(n, nil)
		correction = mat.NewVecDense(n, nil)
		residual   = mat.NewVecDense(m, nil)
	)

	// Minimum norm solution x = A^+ y
	s.algebra.MulVec(x, aPinv, y)

	// A non-finite start has nothing to anneal
	if gonumExtensions.NANORINF(x) {
		return s.finish(x)
	}

	// Initial smoothing width
	sigma := 2 * floats.Norm(x.RawVector().Data, math.Inf(1))
	if math.IsInf(sigma, 1) {
		// Overflowed width never shrinks below SigmaMin
		return s.finish(x)
	}

	for iteration := 0; sigma > s.params.SigmaMin; iteration++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("sl0: iteration %d: %w", iteration, err)
		}
		sigma2 := sigma * sigma
		gradient := func(v float64) float64 {
			return v * math.Exp(-v*v/sigma2)
		}
		for inner := 0; inner < s.params.InnerIterations; inner++ {
			// Steepest descent step on the smoothed L0 surrogate
			s.algebra.Apply(delta, gradient, x)
			x.AddScaledVec(x, -mu0, delta)

			// Project back onto A x = y
			s.algebra.MulVec(residual, a, x)
			residual.SubVec(residual, y)
			s.algebra.MulVec(correction, aPinv, residual)
			x.SubVec(x, correction)
		}
		if s.progress != nil {
			s.progress(iteration, sigma)
		}
		sigma *= factor
	}

	return s.finish(x)
}

func (s *Solver) finish(x *mat.VecDense) (*mat.VecDense, error) {
	if s.strict && gonumExtensions.NANORINF(x) {
		return nil, ErrNonFinite
	}
	return x, nil
}

// Solve is a convenience wrapper building a Solver from params and solving a
// single system without cancellation.
func Solve(y mat.Vector, a mat.Matrix, params Parameters, aPinv mat.Matrix) (*mat.VecDense, error) {
	s, err := New(params)
	if err != nil {
		return nil, err
	}
	return s.Solve(context.Background(), y, a, aPinv)
}
