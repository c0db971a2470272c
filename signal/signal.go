// Package signal generates synthetic sparse test signals.
package signal

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Generator defaults.
const (
	DefaultSigmaInactive = 0.01
	DefaultSigmaActive   = 0.5
	// DefaultSparsityRatio is the share of active components when none is given.
	DefaultSparsityRatio = 0.1
)

var (
	// ErrInvalidSparsity indicates more active components than samples.
	ErrInvalidSparsity = errors.New("signal: active count exceeds signal length")
	// ErrDictionarySize indicates coefficient blocks that do not match the dictionary.
	ErrDictionarySize = errors.New("signal: coefficient length does not match dictionary")
)

type sparseConfig struct {
	sigmaInactive float64
	sigmaActive   float64
	fixed         bool
	fixedValue    float64
}

// SparseOption customizes Sparse.
type SparseOption func(*sparseConfig)

// WithInactiveNoise sets the standard deviation of the inactive components.
// Zero gives an exactly sparse signal.
func WithInactiveNoise(sigma float64) SparseOption {
	if sigma < 0 {
		panic("signal: WithInactiveNoise(negative)")
	}
	return func(c *sparseConfig) {
		c.sigmaInactive = sigma
	}
}

// WithActiveSigma sets the standard deviation of the active components.
func WithActiveSigma(sigma float64) SparseOption {
	if sigma < 0 {
		panic("signal: WithActiveSigma(negative)")
	}
	return func(c *sparseConfig) {
		c.sigmaActive = sigma
	}
}

// WithFixedActiveValue assigns value to every active component instead of
// drawing it.
func WithFixedActiveValue(value float64) SparseOption {
	return func(c *sparseConfig) {
		c.fixed = true
		c.fixedValue = value
	}
}

// Sparse returns a signal of n samples with k active components on random
// positions, and the sorted active positions. A negative k selects
// DefaultSparsityRatio of n. Active components are Gaussian with
// DefaultSigmaActive unless fixed; inactive components carry Gaussian noise
// with DefaultSigmaInactive.
func Sparse(n, k int, rng *rand.Rand, opts ...SparseOption) ([]float64, []int, error) {
	if k < 0 {
		k = int(DefaultSparsityRatio * float64(n))
	}
	if k > n {
		return nil, nil, fmt.Errorf("%w: k=%d, n=%d", ErrInvalidSparsity, k, n)
	}
	cfg := sparseConfig{
		sigmaInactive: DefaultSigmaInactive,
		sigmaActive:   DefaultSigmaActive,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	positions := rng.Perm(n)
	active := append([]int(nil), positions[:k]...)
	sort.Ints(active)

	isActive := make([]bool, n)
	for _, index := range active {
		isActive[index] = true
	}

	sig := make([]float64, n)
	for index := range sig {
		switch {
		case isActive[index] && cfg.fixed:
			sig[index] = cfg.fixedValue
		case isActive[index]:
			sig[index] = cfg.sigmaActive * rng.NormFloat64()
		case cfg.sigmaInactive > 0:
			sig[index] = cfg.sigmaInactive * rng.NormFloat64()
		}
	}
	return sig, active, nil
}

// Synthesize concatenates D s_b for every coefficient block s_b. Each block
// must have as many entries as d has columns.
func Synthesize(d mat.Matrix, coefficients [][]float64) ([]float64, error) {
	n, c := d.Dims()
	res := make([]float64, n*len(coefficients))
	for index, s := range coefficients {
		if len(s) != c {
			return nil, fmt.Errorf("%w: block %d has %d coefficients, dictionary has %d columns", ErrDictionarySize, index, len(s), c)
		}
		block := mat.NewVecDense(n, res[index*n:(index+1)*n])
		block.MulVec(d, mat.NewVecDense(c, s))
	}
	return res, nil
}

// SparseBlocks draws blocks coefficient vectors with k active entries among
// the first band atoms of d (band <= 0 uses all atoms) and synthesizes the
// corresponding signal. The coefficient blocks are returned as well.
func SparseBlocks(d mat.Matrix, blocks, k, band int, rng *rand.Rand, opts ...SparseOption) ([]float64, [][]float64, error) {
	_, c := d.Dims()
	if band <= 0 || band > c {
		band = c
	}
	coefficients := make([][]float64, blocks)
	for index := range coefficients {
		head, _, err := Sparse(band, k, rng, opts...)
		if err != nil {
			return nil, nil, err
		}
		coefficients[index] = make([]float64, c)
		copy(coefficients[index], head)
	}
	sig, err := Synthesize(d, coefficients)
	if err != nil {
		return nil, nil, err
	}
	return sig, coefficients, nil
}
