// SPDX-License-Identifier: MIT

package linalg

// Matrix is the read side shared by Dense and Sparse.
//
// At returns ErrOutOfRange for invalid indices instead of panicking.
// MulVec writes A·x into dst; both slices must have the matching length.
type Matrix interface {
	Rows() int
	Cols() int
	At(i, j int) (float64, error)
	MulVec(dst, x []float64) error
}

var (
	_ Matrix = (*Dense)(nil)
	_ Matrix = (*Sparse)(nil)
)
