// Package transform maps between the measurement space and the sparse
// coefficient space of a dictionary.
//
// For a sensing matrix Φ (M by N) and a square dictionary D (N by N) the
// effective operator is Θ = Φ D. Its pseudoinverse is the expensive part and
// is computed exactly once per Operator; every block recovered against the
// Operator shares it.
package transform

import (
	"fmt"

	"github.com/hammal/compsens/linalg"
	"gonum.org/v1/gonum/mat"
)

// Operator holds a dictionary together with the effective sensing operator and
// its pseudoinverse. It is read only after construction.
type Operator struct {
	// Dictionary D, N by N.
	Dictionary mat.Matrix
	// Theta = Φ D, M by N.
	Theta *mat.Dense
	// ThetaPinv = Θ^+, N by M.
	ThetaPinv *mat.Dense
}

// BuildOperator returns Θ = phi d and its pseudoinverse. d must be square with
// as many rows as phi has columns.
func BuildOperator(phi, d mat.Matrix, alg linalg.Algebra) (*Operator, error) {
	if err := CheckDictionary(phi, d); err != nil {
		return nil, err
	}
	theta := alg.Mul(phi, d)
	thetaPinv, err := alg.Pinv(theta)
	if err != nil {
		return nil, fmt.Errorf("transform: pseudoinverse of theta: %w", err)
	}
	return &Operator{
		Dictionary: d,
		Theta:      theta,
		ThetaPinv:  thetaPinv,
	}, nil
}

// NewOperator wraps an already computed pseudoinverse. thetaPinv must be the
// pseudoinverse of phi d; only its shape is checked.
func NewOperator(phi, d mat.Matrix, thetaPinv *mat.Dense, alg linalg.Algebra) (*Operator, error) {
	if err := CheckDictionary(phi, d); err != nil {
		return nil, err
	}
	m, n := phi.Dims()
	if r, c := thetaPinv.Dims(); r != n || c != m {
		return nil, linalg.Mismatch("theta pseudoinverse is %dx%d, want %dx%d", r, c, n, m)
	}
	return &Operator{
		Dictionary: d,
		Theta:      alg.Mul(phi, d),
		ThetaPinv:  thetaPinv,
	}, nil
}

// CheckDictionary verifies that d is square and matches the columns of phi.
func CheckDictionary(phi, d mat.Matrix) error {
	_, n := phi.Dims()
	r, c := d.Dims()
	if r != c {
		return linalg.Mismatch("dictionary must be square, got %dx%d", r, c)
	}
	if r != n {
		return linalg.Mismatch("phi has %d columns, dictionary has %d rows", n, r)
	}
	return nil
}

// Measurements returns the number of rows of Θ.
func (op *Operator) Measurements() int {
	m, _ := op.Theta.Dims()
	return m
}

// BlockLength returns the number of columns of Θ.
func (op *Operator) BlockLength() int {
	_, n := op.Theta.Dims()
	return n
}

// Synthesize writes D s into dst, which must have length BlockLength.
func (op *Operator) Synthesize(dst []float64, s mat.Vector) {
	out := mat.NewVecDense(len(dst), dst)
	out.MulVec(op.Dictionary, s)
}

// ExpandKronecker returns kron(I_k, phi): k copies of phi along the diagonal,
// sensing k consecutive blocks independently.
func ExpandKronecker(phi mat.Matrix, k int, alg linalg.Algebra) *mat.Dense {
	return alg.KronIdentity(k, phi)
}
