package reconstruct

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hammal/compsens/linalg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestGroupFlattenColumnMajor(t *testing.T) {
	// M = 2, K = 2: column-major and row-major orderings differ
	y := mat.NewDense(2, 2, []float64{
		1, 2,
		3, 4,
	})
	flat, err := GroupFlatten(y, 0, 2)
	require.NoError(t, err)

	columnMajor := []float64{1, 3, 2, 4}
	rowMajor := []float64{1, 2, 3, 4}
	assert.Empty(t, cmp.Diff(columnMajor, flat.RawVector().Data))
	assert.NotEmpty(t, cmp.Diff(rowMajor, flat.RawVector().Data))
}

func TestGroupFlattenSelectsGroup(t *testing.T) {
	y := mat.NewDense(2, 6, []float64{
		1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12,
	})
	cases := []struct {
		group int
		want  []float64
	}{
		{0, []float64{1, 7, 2, 8, 3, 9}},
		{1, []float64{4, 10, 5, 11, 6, 12}},
	}
	for _, tc := range cases {
		flat, err := GroupFlatten(y, tc.group, 3)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(tc.want, flat.RawVector().Data), "group %d", tc.group)

		back, err := GroupUnflatten(flat, 2)
		require.NoError(t, err)
		assert.True(t, mat.Equal(y.Slice(0, 2, 3*tc.group, 3*tc.group+3), back))
	}
}

func TestGroupFlattenErrors(t *testing.T) {
	y := mat.NewDense(2, 4, nil)
	for _, args := range [][2]int{{2, 2}, {-1, 2}, {0, 0}, {1, 3}} {
		_, err := GroupFlatten(y, args[0], args[1])
		require.ErrorIs(t, err, linalg.ErrDimensionMismatch, "group %d, k %d", args[0], args[1])
	}

	_, err := GroupUnflatten(mat.NewVecDense(5, nil), 2)
	require.ErrorIs(t, err, linalg.ErrDimensionMismatch)
	_, err = GroupUnflatten(mat.NewVecDense(4, nil), 0)
	require.ErrorIs(t, err, linalg.ErrDimensionMismatch)
}
