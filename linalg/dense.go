// SPDX-License-Identifier: MIT
// Package linalg: Dense is a row-major matrix storing elements in a flat
// slice for cache-friendly kernels.

package linalg

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Dense is a row-major matrix of float64 values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
type Dense struct {
	r, c int       // number of rows and columns
	data []float64 // flat backing storage, len == r*c
}

// NewDense creates an r×c Dense matrix initialized to zeros.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, linalgErrorf(opNewDense, errors.Wrapf(ErrBadShape, "%dx%d", rows, cols))
	}
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewDenseFrom copies a slice of equal-length rows into a Dense matrix.
func NewDenseFrom(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, linalgErrorf(opNewDense, ErrBadShape)
	}
	d, err := NewDense(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != d.c {
			return nil, linalgErrorf(opNewDense, errors.Wrapf(ErrDimensionMismatch, "row %d has %d entries", i, len(row)))
		}
		copy(d.data[i*d.c:], row)
	}
	return d, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, errors.Wrapf(ErrOutOfRange, "Dense(%d,%d) of %dx%d", row, col, m.r, m.c)
	}
	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return 0, err
	}
	return m.data[idx], nil
}

// Set assigns v at (row, col).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v
	return nil
}

// Clone returns a deep copy.
func (m *Dense) Clone() *Dense {
	return &Dense{r: m.r, c: m.c, data: append([]float64(nil), m.data...)}
}

// MulVec computes dst = m·x.
//
// Contract: len(x) == Cols(), len(dst) == Rows(); dst must not alias x.
// Determinism: fixed i→j loop order.
// Complexity: O(r*c).
func (m *Dense) MulVec(dst, x []float64) error {
	if err := ValidateVecLen(x, m.c); err != nil {
		return linalgErrorf(opMulVec, err)
	}
	if err := ValidateVecLen(dst, m.r); err != nil {
		return linalgErrorf(opMulVec, err)
	}
	var acc float64
	for i := 0; i < m.r; i++ {
		acc = 0
		base := i * m.c
		for j := 0; j < m.c; j++ {
			if x[j] != 0 {
				acc += m.data[base+j] * x[j]
			}
		}
		dst[i] = acc
	}
	return nil
}

// String implements fmt.Stringer for debugging.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteByte('[')
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
