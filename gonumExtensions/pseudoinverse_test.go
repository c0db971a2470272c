package gonumExtensions

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func randomDense(rng *rand.Rand, m, n int) *mat.Dense {
	data := make([]float64, m*n)
	for index := range data {
		data[index] = rng.NormFloat64()
	}
	return mat.NewDense(m, n, data)
}

// The four Penrose conditions characterize the pseudoinverse uniquely.
func TestPinvPenroseConditions(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, dims := range [][2]int{{4, 16}, {16, 4}, {5, 5}} {
		a := randomDense(rng, dims[0], dims[1])
		p, err := Pinv(a)
		require.NoError(t, err)

		r, c := p.Dims()
		require.Equal(t, dims[1], r)
		require.Equal(t, dims[0], c)

		var apa, pap, ap, pa mat.Dense
		apa.Product(a, p, a)
		pap.Product(p, a, p)
		ap.Mul(a, p)
		pa.Mul(p, a)

		assert.True(t, mat.EqualApprox(&apa, a, 1e-10), "A A+ A != A for %v", dims)
		assert.True(t, mat.EqualApprox(&pap, p, 1e-10), "A+ A A+ != A+ for %v", dims)
		assert.True(t, mat.EqualApprox(&ap, ap.T(), 1e-10), "A A+ not symmetric for %v", dims)
		assert.True(t, mat.EqualApprox(&pa, pa.T(), 1e-10), "A+ A not symmetric for %v", dims)
	}
}

func TestPinvWideIsRightInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	a := randomDense(rng, 3, 8)
	p, err := Pinv(a)
	require.NoError(t, err)

	var ap mat.Dense
	ap.Mul(a, p)
	assert.True(t, mat.EqualApprox(&ap, Eye(3, 3, 0), 1e-10), "got\n%v", mat.Formatted(&ap))
}

func TestPinvRankDeficient(t *testing.T) {
	// Second row is twice the first, third is zero
	a := mat.NewDense(3, 3, []float64{
		1, 2, 3,
		2, 4, 6,
		0, 0, 0,
	})
	p, err := Pinv(a)
	require.NoError(t, err)
	assert.False(t, NANORINF(p))

	var apa mat.Dense
	apa.Product(a, p, a)
	assert.True(t, mat.EqualApprox(&apa, a, 1e-10))

	zero := mat.NewDense(2, 3, nil)
	pz, err := Pinv(zero)
	require.NoError(t, err)
	assert.True(t, mat.Equal(pz, mat.NewDense(3, 2, nil)))
}

func TestPinvEmpty(t *testing.T) {
	_, err := Pinv(&mat.Dense{})
	require.ErrorIs(t, err, ErrEmptyMatrix)
}
