// Package sampling produces measurement matrices and performs the block
// sampling phase that turns a long signal into a batch of compressed
// measurement vectors.
package sampling

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNotMultiple indicates N is not a multiple of M for a DBDD matrix.
	ErrNotMultiple = errors.New("sampling: N must be a multiple of M")
	// ErrUnknownMatrixKind indicates an unsupported random ensemble.
	ErrUnknownMatrixKind = errors.New("sampling: unknown matrix kind")
	// ErrInvalidSize indicates a non-positive matrix dimension.
	ErrInvalidSize = errors.New("sampling: dimensions must be positive")
)

// MatrixKind names a measurement matrix ensemble.
type MatrixKind string

const (
	// DBDDKind is the deterministic block diagonal matrix of DBDD.
	DBDDKind MatrixKind = "dbdd"
	// Gaussian draws N(0, 1) entries scaled by (1/M)².
	Gaussian MatrixKind = "gaussian"
	// StandardGaussian draws N(0, 1) entries scaled by 1/sqrt(M).
	StandardGaussian MatrixKind = "standard_gaussian"
	// ScaledBinary draws entries from {-0.5, 0.5} scaled by 1/sqrt(M).
	ScaledBinary MatrixKind = "scaled_binary"
	// UnscaledBinary draws entries from {-1, 1}.
	UnscaledBinary MatrixKind = "unscaled_binary"
)

// DBDD returns the deterministic diagonally blocked block diagonal matrix of
// size (m by n). Row i holds n/m consecutive ones starting at column i*n/m,
// so every measurement sums one segment of the block:
//
//	DBDD(3, 9) = [1 1 1 0 0 0 0 0 0
//	              0 0 0 1 1 1 0 0 0
//	              0 0 0 0 0 0 1 1 1]
func DBDD(m, n int) (*mat.Dense, error) {
	if m <= 0 || n <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, m, n)
	}
	if n%m != 0 {
		return nil, fmt.Errorf("%w: got M=%d, N=%d", ErrNotMultiple, m, n)
	}
	phi := mat.NewDense(m, n, nil)
	width := n / m
	for row := 0; row < m; row++ {
		for col := row * width; col < (row+1)*width; col++ {
			phi.Set(row, col, 1)
		}
	}
	return phi, nil
}

// Random returns an (m by n) matrix drawn from the given ensemble using rng.
//
// The Gaussian ensemble is scaled by (1/M)², not by the 1/sqrt(M) common in
// the compressed sensing literature. Use StandardGaussian for the latter.
func Random(m, n int, kind MatrixKind, rng *rand.Rand) (*mat.Dense, error) {
	if m <= 0 || n <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, m, n)
	}
	var draw func() float64
	switch kind {
	case Gaussian:
		scale := math.Pow(1/float64(m), 2)
		draw = func() float64 { return scale * rng.NormFloat64() }
	case StandardGaussian:
		scale := 1 / math.Sqrt(float64(m))
		draw = func() float64 { return scale * rng.NormFloat64() }
	case ScaledBinary:
		scale := 1 / math.Sqrt(float64(m))
		draw = func() float64 { return scale * (float64(rng.Intn(2)) - 0.5) }
	case UnscaledBinary:
		draw = func() float64 { return float64(rng.Intn(2)*2 - 1) }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMatrixKind, kind)
	}

	data := make([]float64, m*n)
	for index := range data {
		data[index] = draw()
	}
	return mat.NewDense(m, n, data), nil
}

// New dispatches to DBDD or Random depending on kind.
func New(m, n int, kind MatrixKind, rng *rand.Rand) (*mat.Dense, error) {
	if kind == DBDDKind {
		return DBDD(m, n)
	}
	return Random(m, n, kind, rng)
}
