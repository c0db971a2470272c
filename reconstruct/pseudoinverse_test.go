package reconstruct

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/hammal/compsens/dictionary"
	"github.com/hammal/compsens/linalg"
	"github.com/hammal/compsens/sampling"
	"github.com/hammal/compsens/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// countingAlgebra counts pseudoinverse computations.
type countingAlgebra struct {
	linalg.Gonum
	pinv atomic.Int32
}

func (c *countingAlgebra) Pinv(a mat.Matrix) (*mat.Dense, error) {
	c.pinv.Add(1)
	return c.Gonum.Pinv(a)
}

func TestBlockRecoveryPseudoinverseOnce(t *testing.T) {
	phi, d, _, y := dbddScenario(t, []int{0, 1}, []int{2, 3}, []int{1, 2}, []int{0, 3})
	_, blocks := y.Dims()
	require.Equal(t, 4, blocks)

	alg := &countingAlgebra{}
	_, err := Recover(context.Background(), y, phi, d, referenceParameters(), WithAlgebra(alg), WithWorkers(4))
	require.NoError(t, err)
	assert.EqualValues(t, 1, alg.pinv.Load())

	// A built recovery reuses its pseudoinverse across calls
	alg = &countingAlgebra{}
	r, err := NewBlockRecovery(phi, d, referenceParameters(), WithAlgebra(alg))
	require.NoError(t, err)
	for call := 0; call < 2; call++ {
		_, err = r.Reconstruct(context.Background(), y)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1, alg.pinv.Load())
}

func TestKroneckerRecoveryPseudoinverseOnce(t *testing.T) {
	phi, err := sampling.DBDD(4, 16)
	require.NoError(t, err)
	dKron := dictionary.DCT(32)
	x, err := signal.Synthesize(dKron, unitCoefficients(32, []int{0, 2}, []int{1, 3}))
	require.NoError(t, err)
	y := sampling.Compress(x, phi)
	_, blocks := y.Dims()
	require.Equal(t, 4, blocks)

	alg := &countingAlgebra{}
	_, err = RecoverKronecker(context.Background(), y, phi, 2, dKron, referenceParameters(), WithAlgebra(alg), WithWorkers(2))
	require.NoError(t, err)
	assert.EqualValues(t, 1, alg.pinv.Load())
}
