// Package reconstruct recovers a long signal from a batch of compressed block
// measurements by running the SL0 solver per block (or per group of blocks)
// against one shared transform operator and reassembling D s in block order.
//
// Blocks are independent: they only read the shared operator and write
// disjoint segments of the output, so they are solved concurrently on a
// bounded worker pool. The first failing block cancels the others and the
// whole call fails; there are no partial results.
package reconstruct

import (
	"context"
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrNoBlocks indicates a measurement batch without columns.
var ErrNoBlocks = errors.New("reconstruct: measurement batch has no blocks")

// Reconstruction recovers a signal from a measurement batch Y whose columns
// are the compressed blocks.
type Reconstruction interface {
	// Reconstruct runs the recovery and returns the concatenated signal
	Reconstruct(ctx context.Context, y mat.Matrix) (*mat.VecDense, error)
}
