// SPDX-License-Identifier: MIT
// Package linalg: central validators.
// Every public kernel validates its inputs through these helpers so that the
// error priority stays the same everywhere: nil -> shape -> length -> values.

package linalg

import (
	"math"

	"github.com/pkg/errors"
)

// ValidateNotNil returns ErrNilMatrix when m is nil (including typed nils).
func ValidateNotNil(m Matrix) error {
	switch v := m.(type) {
	case nil:
		return ErrNilMatrix
	case *Dense:
		if v == nil {
			return ErrNilMatrix
		}
	case *Sparse:
		if v == nil {
			return ErrNilMatrix
		}
	}
	return nil
}

// ValidateSquare returns ErrNonSquare unless m is n×n.
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return errors.Wrapf(ErrNonSquare, "%dx%d", m.Rows(), m.Cols())
	}
	return nil
}

// ValidateVecLen returns ErrDimensionMismatch unless len(x) == n.
func ValidateVecLen(x []float64, n int) error {
	if len(x) != n {
		return errors.Wrapf(ErrDimensionMismatch, "vector length %d, want %d", len(x), n)
	}
	return nil
}

// ValidateFinite returns ErrNaNInf at the first non-finite entry of x.
func ValidateFinite(x []float64) error {
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(ErrNaNInf, "entry %d = %g", i, v)
		}
	}
	return nil
}
