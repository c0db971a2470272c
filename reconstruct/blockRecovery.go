package reconstruct

import (
	"context"

	"github.com/hammal/compsens/linalg"
	"github.com/hammal/compsens/sl0"
	"gonum.org/v1/gonum/mat"
)

// BlockRecovery recovers every column of a measurement batch on its own.
//
// For Φ of size (M by N) and Y of size (M by B) the result has length B*N and
// segment i holds D s_i, where s_i is the SL0 solution of Θ s = Y[:, i].
type BlockRecovery struct {
	*engine
}

var _ Reconstruction = (*BlockRecovery)(nil)

// NewBlockRecovery validates the parameters and dimensions and computes Θ = Φ D
// and its pseudoinverse once.
func NewBlockRecovery(phi, d mat.Matrix, params sl0.Parameters, opts ...Option) (*BlockRecovery, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	e, err := newEngine(phi, d, params, cfg)
	if err != nil {
		return nil, err
	}
	return &BlockRecovery{engine: e}, nil
}

// Reconstruct recovers the signal from y, one column per block.
func (r *BlockRecovery) Reconstruct(ctx context.Context, y mat.Matrix) (*mat.VecDense, error) {
	m, blocks := y.Dims()
	if m != r.op.Measurements() {
		return nil, linalg.Mismatch("measurement batch has %d rows, phi has %d", m, r.op.Measurements())
	}
	return r.run(ctx, blocks, func(index int) (mat.Vector, error) {
		return mat.NewVecDense(m, mat.Col(nil, index, y)), nil
	})
}

// Recover is the one shot form of NewBlockRecovery followed by Reconstruct.
func Recover(ctx context.Context, y, phi, d mat.Matrix, params sl0.Parameters, opts ...Option) (*mat.VecDense, error) {
	r, err := NewBlockRecovery(phi, d, params, opts...)
	if err != nil {
		return nil, err
	}
	return r.Reconstruct(ctx, y)
}
