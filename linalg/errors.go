// SPDX-License-Identifier: MIT
// Package linalg: sentinel error set.
// All kernels return these sentinels (possibly wrapped with an operation tag)
// and tests match them via errors.Is. Kernels never panic on user input.

package linalg

import "github.com/pkg/errors"

var (
	// ErrBadShape is returned when a requested shape is invalid (rows<=0 or cols<=0).
	ErrBadShape = errors.New("linalg: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("linalg: index out of range")

	// ErrDimensionMismatch indicates incompatible operand sizes, e.g. MulVec
	// with len(x) != Cols().
	ErrDimensionMismatch = errors.New("linalg: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required.
	ErrNonSquare = errors.New("linalg: matrix is not square")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("linalg: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil matrix was passed in.
	ErrNilMatrix = errors.New("linalg: nil matrix")

	// ErrSingular is returned when a zero (or vanishing) pivot is met during LU.
	ErrSingular = errors.New("linalg: singular matrix")

	// ErrNotConverged is returned by iterative solvers that exhaust their
	// iteration budget or break down (non-positive curvature direction).
	ErrNotConverged = errors.New("linalg: iterative solver did not converge")
)

// Operation tags for uniform error wrapping.
const (
	opNewDense = "NewDense"
	opMulVec   = "MulVec"
	opLU       = "LU"
	opSolveLU  = "SolveLU"
	opBuild    = "Build"
	opCG       = "ConjugateGradient"
	opSolve    = "Solve"
	opReduce   = "Reduce"
)

// linalgErrorf wraps err with an operation tag; the result formats as
// "<tag>: <underlying>" and still matches errors.Is.
// Call only with err != nil.
func linalgErrorf(tag string, err error) error {
	return errors.WithMessage(err, tag)
}
