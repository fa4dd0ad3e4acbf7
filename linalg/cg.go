// SPDX-License-Identifier: MIT

package linalg

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// CGResult reports how a conjugate-gradient run ended.
type CGResult struct {
	X          []float64
	Iterations int
	Residual   float64 // relative residual ‖b − A·x‖ / ‖b‖
}

// ConjugateGradient solves A·x = b for symmetric positive definite A.
//
// Implementation:
//   - Stage 1: validate shapes and b; start from x0 (or zero when nil).
//   - Stage 2: preconditioned CG iterations with the Jacobi (diagonal)
//     preconditioner when enabled and every diagonal entry is positive.
//   - Stage 3: stop once the relative residual drops below Tolerance.
//
// Errors:
//   - ErrNonSquare, ErrDimensionMismatch, ErrNaNInf for bad input.
//   - ErrNotConverged when the budget runs out or pᵀAp <= 0 (A not PD);
//     the partial result is still returned.
//
// Complexity: O(k · nnz) for k iterations.
func ConjugateGradient(a Matrix, b, x0 []float64, opts ...SolveOption) (CGResult, error) {
	o, err := buildSolveOptions(opts)
	if err != nil {
		return CGResult{}, linalgErrorf(opCG, err)
	}
	if err := ValidateSquare(a); err != nil {
		return CGResult{}, linalgErrorf(opCG, err)
	}
	n := a.Rows()
	if err := ValidateVecLen(b, n); err != nil {
		return CGResult{}, linalgErrorf(opCG, err)
	}
	if err := ValidateFinite(b); err != nil {
		return CGResult{}, linalgErrorf(opCG, err)
	}

	x := make([]float64, n)
	if x0 != nil {
		if err := ValidateVecLen(x0, n); err != nil {
			return CGResult{}, linalgErrorf(opCG, err)
		}
		copy(x, x0)
	}
	maxIter := o.MaxIterations
	if maxIter == 0 {
		maxIter = 10 * n
	}

	bnorm := floats.Norm(b, 2)
	if bnorm == 0 {
		return CGResult{X: make([]float64, n)}, nil
	}

	var inv []float64
	if o.Jacobi {
		inv = jacobi(a, n)
	}
	precond := func(dst, src []float64) {
		if inv == nil {
			copy(dst, src)
			return
		}
		floats.MulTo(dst, inv, src)
	}

	r := make([]float64, n)
	ap := make([]float64, n)
	if err := a.MulVec(ap, x); err != nil {
		return CGResult{}, linalgErrorf(opCG, err)
	}
	floats.SubTo(r, b, ap)
	z := make([]float64, n)
	precond(z, r)
	p := append([]float64(nil), z...)
	rz := floats.Dot(r, z)

	res := CGResult{X: x, Residual: floats.Norm(r, 2) / bnorm}
	for res.Iterations = 0; res.Iterations < maxIter; res.Iterations++ {
		if res.Residual <= o.Tolerance {
			return res, nil
		}
		if err := a.MulVec(ap, p); err != nil {
			return res, linalgErrorf(opCG, err)
		}
		pap := floats.Dot(p, ap)
		if !(pap > 0) {
			return res, linalgErrorf(opCG, errors.Wrapf(ErrNotConverged, "pᵀAp = %g at iteration %d", pap, res.Iterations))
		}
		alpha := rz / pap
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, ap)
		res.Residual = floats.Norm(r, 2) / bnorm
		if math.IsNaN(res.Residual) {
			return res, linalgErrorf(opCG, ErrNaNInf)
		}

		precond(z, r)
		rzNext := floats.Dot(r, z)
		beta := rzNext / rz
		rz = rzNext
		floats.AddScaledTo(p, z, beta, p)
	}
	if res.Residual <= o.Tolerance {
		return res, nil
	}
	return res, linalgErrorf(opCG, errors.Wrapf(ErrNotConverged, "residual %g after %d iterations", res.Residual, res.Iterations))
}

// jacobi returns 1/diag(a), or nil when any diagonal entry is not positive.
func jacobi(a Matrix, n int) []float64 {
	inv := make([]float64, n)
	for i := 0; i < n; i++ {
		d, err := a.At(i, i)
		if err != nil || !(d > 0) {
			return nil
		}
		inv[i] = 1 / d
	}
	return inv
}

// Solve solves the square system A·x = b, choosing dense LU for
// n <= DenseLimit and preconditioned CG otherwise.
//
// Errors: any error of Factorize, LU.Solve or ConjugateGradient.
func Solve(a Matrix, b []float64, opts ...SolveOption) ([]float64, error) {
	o, err := buildSolveOptions(opts)
	if err != nil {
		return nil, linalgErrorf(opSolve, err)
	}
	if err := ValidateSquare(a); err != nil {
		return nil, linalgErrorf(opSolve, err)
	}
	if a.Rows() <= o.DenseLimit {
		var src Matrix = a
		if s, ok := a.(*Sparse); ok {
			src = s.Dense()
		}
		f, err := Factorize(src)
		if err != nil {
			return nil, linalgErrorf(opSolve, err)
		}
		x, err := f.Solve(b)
		if err != nil {
			return nil, linalgErrorf(opSolve, err)
		}
		return x, nil
	}
	res, err := ConjugateGradient(a, b, nil, opts...)
	if err != nil {
		return nil, linalgErrorf(opSolve, err)
	}
	return res.X, nil
}
