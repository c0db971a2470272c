package reconstruct

import (
	"context"
	"fmt"

	"github.com/hammal/compsens/linalg"
	"github.com/hammal/compsens/sl0"
	"github.com/hammal/compsens/transform"
	"gonum.org/v1/gonum/mat"
)

// KroneckerRecovery recovers groups of K consecutive blocks jointly.
//
// The sensing operator is Φ_K = kron(I_K, Φ): each block is still sensed by Φ
// on its own, but the K blocks are solved together against a dictionary D_K
// of size (K*N by K*N) that can capture structure across block boundaries.
// The K measurement columns of a group are stacked with GroupFlatten.
type KroneckerRecovery struct {
	*engine
	phiRows    int
	kronFactor int
}

var _ Reconstruction = (*KroneckerRecovery)(nil)

// NewKroneckerRecovery builds Φ_K from phi and kronFactor and computes
// Θ_K = Φ_K D_K and its pseudoinverse once. dKron must be square of size
// kronFactor times the columns of phi.
func NewKroneckerRecovery(phi mat.Matrix, kronFactor int, dKron mat.Matrix, params sl0.Parameters, opts ...Option) (*KroneckerRecovery, error) {
	if kronFactor < 1 {
		return nil, fmt.Errorf("%w: kron factor must be at least 1, got %d", sl0.ErrDegenerateParameter, kronFactor)
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	phiKron := transform.ExpandKronecker(phi, kronFactor, cfg.algebra)
	e, err := newEngine(phiKron, dKron, params, cfg)
	if err != nil {
		return nil, err
	}
	m, _ := phi.Dims()
	return &KroneckerRecovery{engine: e, phiRows: m, kronFactor: kronFactor}, nil
}

// Reconstruct recovers the signal from y. The number of columns of y must be a
// multiple of the kron factor.
func (r *KroneckerRecovery) Reconstruct(ctx context.Context, y mat.Matrix) (*mat.VecDense, error) {
	m, blocks := y.Dims()
	if m != r.phiRows {
		return nil, linalg.Mismatch("measurement batch has %d rows, phi has %d", m, r.phiRows)
	}
	if blocks%r.kronFactor != 0 {
		return nil, linalg.Mismatch("%d blocks do not split into groups of %d", blocks, r.kronFactor)
	}
	return r.run(ctx, blocks/r.kronFactor, func(group int) (mat.Vector, error) {
		return GroupFlatten(y, group, r.kronFactor)
	})
}

// KronFactor returns the number of blocks per group.
func (r *KroneckerRecovery) KronFactor() int {
	return r.kronFactor
}

// RecoverKronecker is the one shot form of NewKroneckerRecovery followed by
// Reconstruct.
func RecoverKronecker(ctx context.Context, y, phi mat.Matrix, kronFactor int, dKron mat.Matrix, params sl0.Parameters, opts ...Option) (*mat.VecDense, error) {
	r, err := NewKroneckerRecovery(phi, kronFactor, dKron, params, opts...)
	if err != nil {
		return nil, err
	}
	return r.Reconstruct(ctx, y)
}
