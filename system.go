// Package compsens assembles the compressive sensing pipeline: block-wise
// measurement of a signal and its recovery, either block by block or in
// Kronecker groups.
package compsens

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/hammal/compsens/config"
	"github.com/hammal/compsens/dictionary"
	"github.com/hammal/compsens/reconstruct"
	"github.com/hammal/compsens/sampling"
	"github.com/hammal/compsens/signal"
	"gonum.org/v1/gonum/mat"
)

// ErrSignalTooShort indicates a signal that does not fill a single block.
var ErrSignalTooShort = errors.New("compsens: signal shorter than one block")

// System holds the measurement matrix, the dictionaries and the recovery
// engines built from a configuration.
type System struct {
	// Measurement matrix (M x N)
	Phi *mat.Dense
	// Block dictionary (N x N)
	D *mat.Dense
	// Kronecker dictionary (KN x KN)
	DKron *mat.Dense

	cfg   config.Config
	block *reconstruct.BlockRecovery
	kron  *reconstruct.KroneckerRecovery
}

// NewSystem builds a System from cfg. Random measurement matrices are drawn
// from rng, or from a source seeded with cfg.Seed when rng is nil. opts are
// applied after the options derived from cfg.
func NewSystem(cfg *config.Config, rng *rand.Rand, opts ...reconstruct.Option) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	phi, err := sampling.New(cfg.Measurements, cfg.BlockSize, cfg.Matrix, rng)
	if err != nil {
		return nil, err
	}

	sys := &System{
		Phi:   phi,
		D:     dictionary.DCT(cfg.BlockSize),
		DKron: dictionary.DCT(cfg.KronFactor * cfg.BlockSize),
		cfg:   *cfg,
	}

	var options []reconstruct.Option
	if cfg.Workers > 0 {
		options = append(options, reconstruct.WithWorkers(cfg.Workers))
	}
	if cfg.Strict {
		options = append(options, reconstruct.WithStrict())
	}
	options = append(options, opts...)

	if sys.block, err = reconstruct.NewBlockRecovery(sys.Phi, sys.D, cfg.Solver, options...); err != nil {
		return nil, fmt.Errorf("block recovery: %w", err)
	}
	if sys.kron, err = reconstruct.NewKroneckerRecovery(sys.Phi, cfg.KronFactor, sys.DKron, cfg.Solver, options...); err != nil {
		return nil, fmt.Errorf("kronecker recovery: %w", err)
	}
	return sys, nil
}

// Config returns a copy of the configuration the system was built from.
func (s *System) Config() config.Config {
	return s.cfg
}

// Compress measures every whole block of x.
func (s *System) Compress(x []float64) (*mat.Dense, error) {
	y := sampling.Compress(x, s.Phi)
	if y == nil {
		return nil, fmt.Errorf("%w: %d samples, block size %d", ErrSignalTooShort, len(x), s.cfg.BlockSize)
	}
	return y, nil
}

// Reconstruct recovers the signal block by block with the block dictionary.
func (s *System) Reconstruct(ctx context.Context, y mat.Matrix) (*mat.VecDense, error) {
	return s.block.Reconstruct(ctx, y)
}

// ReconstructKronecker recovers the signal in groups of KronFactor blocks
// with the Kronecker dictionary.
func (s *System) ReconstructKronecker(ctx context.Context, y mat.Matrix) (*mat.VecDense, error) {
	return s.kron.Reconstruct(ctx, y)
}

// SyntheticSignal draws a test signal of cfg.Signal.Groups Kronecker groups.
// With kronecker unset the signal is sparse in the block dictionary,
// otherwise in the Kronecker dictionary with KronFactor times as many active
// atoms and as wide a band.
func (s *System) SyntheticSignal(rng *rand.Rand, kronecker bool) ([]float64, error) {
	sc := s.cfg.Signal
	opts := []signal.SparseOption{signal.WithInactiveNoise(sc.InactiveNoise)}

	var (
		x   []float64
		err error
	)
	if kronecker {
		x, _, err = signal.SparseBlocks(s.DKron, sc.Groups, sc.Active*s.cfg.KronFactor, sc.Band*s.cfg.KronFactor, rng, opts...)
	} else {
		x, _, err = signal.SparseBlocks(s.D, sc.Groups*s.cfg.KronFactor, sc.Active, sc.Band, rng, opts...)
	}
	return x, err
}
