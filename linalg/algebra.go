// Package linalg defines the small set of dense linear algebra capabilities the
// sparse recovery code relies on, so the solver and orchestrators can be
// pointed at another array backend without being rewritten.
package linalg

import (
	"errors"
	"fmt"

	"github.com/hammal/compsens/gonumExtensions"
	"gonum.org/v1/gonum/mat"
)

// ErrDimensionMismatch indicates operands whose shapes do not agree.
var ErrDimensionMismatch = errors.New("linalg: dimension mismatch")

// Algebra is the capability set used by the recovery code.
type Algebra interface {
	// Mul returns a b.
	Mul(a, b mat.Matrix) *mat.Dense
	// MulVec stores a x in dst.
	MulVec(dst *mat.VecDense, a mat.Matrix, x mat.Vector)
	// Pinv returns the Moore-Penrose pseudoinverse of a.
	Pinv(a mat.Matrix) (*mat.Dense, error)
	// KronIdentity returns kron(I_k, a).
	KronIdentity(k int, a mat.Matrix) *mat.Dense
	// Apply stores fn(x_i) elementwise in dst.
	Apply(dst *mat.VecDense, fn func(float64) float64, x mat.Vector)
}

// Gonum is the default Algebra backed by gonum/mat.
type Gonum struct{}

var _ Algebra = Gonum{}

// Mul returns a b.
func (Gonum) Mul(a, b mat.Matrix) *mat.Dense {
	var res mat.Dense
	res.Mul(a, b)
	return &res
}

// MulVec stores a x in dst.
func (Gonum) MulVec(dst *mat.VecDense, a mat.Matrix, x mat.Vector) {
	dst.MulVec(a, x)
}

// Pinv returns the Moore-Penrose pseudoinverse of a.
func (Gonum) Pinv(a mat.Matrix) (*mat.Dense, error) {
	return gonumExtensions.Pinv(a)
}

// KronIdentity returns kron(I_k, a).
func (Gonum) KronIdentity(k int, a mat.Matrix) *mat.Dense {
	return gonumExtensions.KronIdentity(k, a)
}

// Apply stores fn(x_i) elementwise in dst. dst may alias x.
func (Gonum) Apply(dst *mat.VecDense, fn func(float64) float64, x mat.Vector) {
	n := x.Len()
	if dst.IsEmpty() {
		dst.ReuseAsVec(n)
	}
	for i := 0; i < n; i++ {
		dst.SetVec(i, fn(x.AtVec(i)))
	}
}

// Mismatch wraps ErrDimensionMismatch with a description of the offending
// shapes.
func Mismatch(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDimensionMismatch, fmt.Sprintf(format, args...))
}
