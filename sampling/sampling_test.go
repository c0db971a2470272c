package sampling

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestDBDD(t *testing.T) {
	phi, err := DBDD(3, 9)
	require.NoError(t, err)
	want := mat.NewDense(3, 9, []float64{
		1, 1, 1, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 1, 1, 1, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 1, 1, 1,
	})
	assert.True(t, mat.Equal(want, phi), "got\n%v", mat.Formatted(phi))

	_, err = DBDD(3, 10)
	require.ErrorIs(t, err, ErrNotMultiple)

	_, err = DBDD(0, 10)
	require.ErrorIs(t, err, ErrInvalidSize)
}

func TestRandom(t *testing.T) {
	const m, n = 8, 20
	cases := []struct {
		kind  MatrixKind
		check func(t *testing.T, v float64)
	}{
		{UnscaledBinary, func(t *testing.T, v float64) {
			assert.True(t, v == 1 || v == -1, "entry %v", v)
		}},
		{ScaledBinary, func(t *testing.T, v float64) {
			assert.InDelta(t, 0.5/math.Sqrt(m), math.Abs(v), 1e-15)
		}},
		{Gaussian, func(t *testing.T, v float64) {
			// Standard normal draws stay well inside 10 sigma
			assert.Less(t, math.Abs(v), 10./(m*m))
		}},
		{StandardGaussian, func(t *testing.T, v float64) {
			assert.Less(t, math.Abs(v), 10./math.Sqrt(m))
		}},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			a, err := Random(m, n, tc.kind, rand.New(rand.NewSource(1)))
			require.NoError(t, err)
			r, c := a.Dims()
			require.Equal(t, m, r)
			require.Equal(t, n, c)
			for _, v := range a.RawMatrix().Data {
				tc.check(t, v)
			}

			// Same seed, same matrix
			b, err := Random(m, n, tc.kind, rand.New(rand.NewSource(1)))
			require.NoError(t, err)
			assert.True(t, mat.Equal(a, b))
		})
	}

	_, err := Random(m, n, "bernoulli", rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, ErrUnknownMatrixKind)
}

func TestNew(t *testing.T) {
	phi, err := New(2, 4, DBDDKind, nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, phi.At(1, 3))

	phi, err = New(2, 4, UnscaledBinary, rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	r, c := phi.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 4, c)
}

func TestCompress(t *testing.T) {
	phi, err := DBDD(2, 4)
	require.NoError(t, err)

	// Two full blocks and one dangling sample
	signal := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	y := Compress(signal, phi)
	require.NotNil(t, y)

	want := mat.NewDense(2, 2, []float64{
		3, 11,
		7, 15,
	})
	assert.True(t, mat.Equal(want, y), "got\n%v", mat.Formatted(y))

	assert.Nil(t, Compress([]float64{1, 2}, phi))
}
