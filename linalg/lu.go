// SPDX-License-Identifier: MIT

package linalg

import (
	"math"

	"github.com/pkg/errors"
)

// PivotTolerance is the relative magnitude below which an LU pivot counts as
// zero: |U[i,i]| <= PivotTolerance·max|A|.
const PivotTolerance = 1e-14

// LU holds a Doolittle factorization A = L·U packed into one n×n slice:
// the strict lower triangle stores L (unit diagonal implied), the upper
// triangle stores U.
type LU struct {
	n  int
	lu []float64
}

// Factorize computes the Doolittle factorization of a square matrix without
// pivoting.
//
// Implementation:
//   - Stage 1: validate a (non-nil, square); copy it into the packed buffer.
//   - Stage 2: for i = 0..n-1 build row i of U, check the pivot, then build
//     column i of L, in fixed order.
//
// The absence of pivoting is safe for the symmetric positive definite systems
// this package is used with (reduced Laplacians). For anything else a
// vanishing pivot is reported as ErrSingular rather than silently amplified.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrSingular.
// Complexity: O(n³) time, O(n²) memory.
func Factorize(a Matrix) (*LU, error) {
	if err := ValidateSquare(a); err != nil {
		return nil, linalgErrorf(opLU, err)
	}
	n := a.Rows()
	f := &LU{n: n, lu: make([]float64, n*n)}

	var scale float64
	if d, ok := a.(*Dense); ok {
		copy(f.lu, d.data)
	} else {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				v, err := a.At(i, j)
				if err != nil {
					return nil, linalgErrorf(opLU, err)
				}
				f.lu[i*n+j] = v
			}
		}
	}
	for _, v := range f.lu {
		scale = math.Max(scale, math.Abs(v))
	}
	if scale == 0 {
		return nil, linalgErrorf(opLU, ErrSingular)
	}

	lu := f.lu
	var sum float64
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sum = lu[i*n+j]
			for k := 0; k < i; k++ {
				sum -= lu[i*n+k] * lu[k*n+j]
			}
			lu[i*n+j] = sum
		}
		pivot := lu[i*n+i]
		if math.Abs(pivot) <= PivotTolerance*scale || math.IsNaN(pivot) {
			return nil, linalgErrorf(opLU, errors.Wrapf(ErrSingular, "pivot %d = %g", i, pivot))
		}
		for j := i + 1; j < n; j++ {
			sum = lu[j*n+i]
			for k := 0; k < i; k++ {
				sum -= lu[j*n+k] * lu[k*n+i]
			}
			lu[j*n+i] = sum / pivot
		}
	}

	return f, nil
}

// Size returns n.
func (f *LU) Size() int { return f.n }

// L returns the unit lower triangular factor as a Dense matrix.
func (f *LU) L() *Dense {
	d := &Dense{r: f.n, c: f.n, data: make([]float64, f.n*f.n)}
	for i := 0; i < f.n; i++ {
		for j := 0; j < i; j++ {
			d.data[i*f.n+j] = f.lu[i*f.n+j]
		}
		d.data[i*f.n+i] = 1
	}
	return d
}

// U returns the upper triangular factor as a Dense matrix.
func (f *LU) U() *Dense {
	d := &Dense{r: f.n, c: f.n, data: make([]float64, f.n*f.n)}
	for i := 0; i < f.n; i++ {
		for j := i; j < f.n; j++ {
			d.data[i*f.n+j] = f.lu[i*f.n+j]
		}
	}
	return d
}

// Solve returns x with A·x = b by forward then backward substitution.
// Complexity: O(n²).
func (f *LU) Solve(b []float64) ([]float64, error) {
	if err := ValidateVecLen(b, f.n); err != nil {
		return nil, linalgErrorf(opSolveLU, err)
	}
	n, lu := f.n, f.lu
	x := append([]float64(nil), b...)
	for i := 1; i < n; i++ {
		for k := 0; k < i; k++ {
			x[i] -= lu[i*n+k] * x[k]
		}
	}
	for i := n - 1; i >= 0; i-- {
		for k := i + 1; k < n; k++ {
			x[i] -= lu[i*n+k] * x[k]
		}
		x[i] /= lu[i*n+i]
	}
	if err := ValidateFinite(x); err != nil {
		return nil, linalgErrorf(opSolveLU, err)
	}
	return x, nil
}
