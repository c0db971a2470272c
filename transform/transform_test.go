package transform

import (
	"testing"

	"github.com/hammal/compsens/dictionary"
	"github.com/hammal/compsens/gonumExtensions"
	"github.com/hammal/compsens/linalg"
	"github.com/hammal/compsens/sampling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestBuildOperator(t *testing.T) {
	phi, err := sampling.DBDD(4, 16)
	require.NoError(t, err)
	d := dictionary.DCT(16)

	op, err := BuildOperator(phi, d, linalg.Gonum{})
	require.NoError(t, err)
	assert.Equal(t, 4, op.Measurements())
	assert.Equal(t, 16, op.BlockLength())

	var theta mat.Dense
	theta.Mul(phi, d)
	assert.True(t, mat.EqualApprox(&theta, op.Theta, 1e-14))

	// Θ Θ^+ is the identity for a full row rank Θ
	var id mat.Dense
	id.Mul(op.Theta, op.ThetaPinv)
	assert.True(t, mat.EqualApprox(&id, gonumExtensions.Eye(4, 4, 0), 1e-10))
}

func TestBuildOperatorMismatch(t *testing.T) {
	phi := mat.NewDense(4, 16, nil)

	_, err := BuildOperator(phi, mat.NewDense(8, 8, nil), linalg.Gonum{})
	require.ErrorIs(t, err, linalg.ErrDimensionMismatch)

	_, err = BuildOperator(phi, mat.NewDense(16, 8, nil), linalg.Gonum{})
	require.ErrorIs(t, err, linalg.ErrDimensionMismatch)
}

func TestNewOperator(t *testing.T) {
	phi, err := sampling.DBDD(2, 8)
	require.NoError(t, err)
	d := dictionary.DCT(8)

	built, err := BuildOperator(phi, d, linalg.Gonum{})
	require.NoError(t, err)

	wrapped, err := NewOperator(phi, d, built.ThetaPinv, linalg.Gonum{})
	require.NoError(t, err)
	assert.Same(t, built.ThetaPinv, wrapped.ThetaPinv)
	assert.True(t, mat.Equal(built.Theta, wrapped.Theta))

	_, err = NewOperator(phi, d, mat.NewDense(2, 8, nil), linalg.Gonum{})
	require.ErrorIs(t, err, linalg.ErrDimensionMismatch)
}

func TestSynthesize(t *testing.T) {
	d := dictionary.DCT(4)
	op := &Operator{Dictionary: d, Theta: mat.NewDense(2, 4, nil)}

	dst := make([]float64, 4)
	op.Synthesize(dst, mat.NewVecDense(4, []float64{1, 0, 0, 0}))
	for _, v := range dst {
		assert.InDelta(t, 0.5, v, 1e-15)
	}
}

func TestExpandKronecker(t *testing.T) {
	phi, err := sampling.DBDD(2, 4)
	require.NoError(t, err)

	kron := ExpandKronecker(phi, 3, linalg.Gonum{})
	r, c := kron.Dims()
	require.Equal(t, 6, r)
	require.Equal(t, 12, c)

	for block := 0; block < 3; block++ {
		view := kron.Slice(2*block, 2*block+2, 4*block, 4*block+4)
		assert.True(t, mat.Equal(phi, view), "block %d", block)
	}
	assert.Equal(t, 0.0, kron.At(0, 4))
	assert.Equal(t, 0.0, kron.At(5, 0))
}
