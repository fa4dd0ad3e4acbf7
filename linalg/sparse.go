// SPDX-License-Identifier: MIT
// Package linalg: compressed sparse row storage.
//
// Design:
//   • Triplets accumulates (i, j, v) entries in any order; duplicates sum.
//   • Build sorts once and compresses into an immutable CSR Sparse.
//   • Sparse is read-only after Build, so it is safe to share across goroutines.

package linalg

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// Triplets is a coordinate-format builder for Sparse matrices.
type Triplets struct {
	r, c    int
	entries []triplet
}

type triplet struct {
	i, j int
	v    float64
}

// NewTriplets starts an empty r×c builder.
func NewTriplets(rows, cols int) (*Triplets, error) {
	if rows <= 0 || cols <= 0 {
		return nil, linalgErrorf(opBuild, errors.Wrapf(ErrBadShape, "%dx%d", rows, cols))
	}
	return &Triplets{r: rows, c: cols}, nil
}

// Add accumulates v into (i, j).
// Errors: ErrOutOfRange, ErrNaNInf.
func (t *Triplets) Add(i, j int, v float64) error {
	if i < 0 || i >= t.r || j < 0 || j >= t.c {
		return errors.Wrapf(ErrOutOfRange, "Triplets(%d,%d) of %dx%d", i, j, t.r, t.c)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.Wrapf(ErrNaNInf, "Triplets(%d,%d) = %g", i, j, v)
	}
	t.entries = append(t.entries, triplet{i: i, j: j, v: v})
	return nil
}

// Len returns the number of accumulated (not yet merged) entries.
func (t *Triplets) Len() int { return len(t.entries) }

// Build compresses the triplets into CSR form, summing duplicates and
// keeping explicit zeros produced by cancellation out of the pattern.
//
// Complexity: O(k log k) for k triplets.
func (t *Triplets) Build() *Sparse {
	es := append([]triplet(nil), t.entries...)
	sort.Slice(es, func(a, b int) bool {
		if es[a].i != es[b].i {
			return es[a].i < es[b].i
		}
		return es[a].j < es[b].j
	})

	s := &Sparse{r: t.r, c: t.c, rowPtr: make([]int, t.r+1)}
	for k := 0; k < len(es); {
		i, j, v := es[k].i, es[k].j, 0.0
		for ; k < len(es) && es[k].i == i && es[k].j == j; k++ {
			v += es[k].v
		}
		if v == 0 {
			continue
		}
		s.colIdx = append(s.colIdx, j)
		s.values = append(s.values, v)
		s.rowPtr[i+1]++
	}
	for i := 0; i < t.r; i++ {
		s.rowPtr[i+1] += s.rowPtr[i]
	}
	return s
}

// Sparse is an immutable CSR matrix.
type Sparse struct {
	r, c   int
	rowPtr []int
	colIdx []int
	values []float64
}

// Rows returns the number of rows.
func (s *Sparse) Rows() int { return s.r }

// Cols returns the number of columns.
func (s *Sparse) Cols() int { return s.c }

// NNZ returns the number of stored entries.
func (s *Sparse) NNZ() int { return len(s.values) }

// At returns the entry at (i, j), zero when it is not stored.
// Complexity: O(log nnz(row i)).
func (s *Sparse) At(i, j int) (float64, error) {
	if i < 0 || i >= s.r || j < 0 || j >= s.c {
		return 0, errors.Wrapf(ErrOutOfRange, "Sparse(%d,%d) of %dx%d", i, j, s.r, s.c)
	}
	lo, hi := s.rowPtr[i], s.rowPtr[i+1]
	k := lo + sort.SearchInts(s.colIdx[lo:hi], j)
	if k < hi && s.colIdx[k] == j {
		return s.values[k], nil
	}
	return 0, nil
}

// Do calls fn for every stored entry in row-major order.
func (s *Sparse) Do(fn func(i, j int, v float64)) {
	for i := 0; i < s.r; i++ {
		for k := s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			fn(i, s.colIdx[k], s.values[k])
		}
	}
}

// MulVec computes dst = s·x.
// Complexity: O(nnz).
func (s *Sparse) MulVec(dst, x []float64) error {
	if err := ValidateVecLen(x, s.c); err != nil {
		return linalgErrorf(opMulVec, err)
	}
	if err := ValidateVecLen(dst, s.r); err != nil {
		return linalgErrorf(opMulVec, err)
	}
	for i := 0; i < s.r; i++ {
		var acc float64
		for k := s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			acc += s.values[k] * x[s.colIdx[k]]
		}
		dst[i] = acc
	}
	return nil
}

// Diagonal returns the main diagonal (length min(r, c)).
func (s *Sparse) Diagonal() []float64 {
	n := s.r
	if s.c < n {
		n = s.c
	}
	d := make([]float64, n)
	for i := 0; i < n; i++ {
		d[i], _ = s.At(i, i)
	}
	return d
}

// IsSymmetric reports whether |s(i,j) − s(j,i)| <= tol for every stored entry.
func (s *Sparse) IsSymmetric(tol float64) bool {
	if s.r != s.c {
		return false
	}
	sym := true
	s.Do(func(i, j int, v float64) {
		w, _ := s.At(j, i)
		if math.Abs(v-w) > tol {
			sym = false
		}
	})
	return sym
}

// Dense expands s into a Dense matrix.
func (s *Sparse) Dense() *Dense {
	d := &Dense{r: s.r, c: s.c, data: make([]float64, s.r*s.c)}
	s.Do(func(i, j int, v float64) { d.data[i*s.c+j] = v })
	return d
}

// Reduce returns the principal submatrix on the given indices, in order.
// It is how a singular Laplacian is made definite by pinning unknowns.
//
// Errors: ErrNonSquare, ErrOutOfRange, ErrBadShape (empty keep).
func (s *Sparse) Reduce(keep []int) (*Sparse, error) {
	if s.r != s.c {
		return nil, linalgErrorf(opReduce, ErrNonSquare)
	}
	if len(keep) == 0 {
		return nil, linalgErrorf(opReduce, ErrBadShape)
	}
	pos := make([]int, s.r)
	for i := range pos {
		pos[i] = -1
	}
	for k, i := range keep {
		if i < 0 || i >= s.r {
			return nil, linalgErrorf(opReduce, errors.Wrapf(ErrOutOfRange, "index %d", i))
		}
		pos[i] = k
	}
	t := &Triplets{r: len(keep), c: len(keep)}
	s.Do(func(i, j int, v float64) {
		if pos[i] >= 0 && pos[j] >= 0 {
			t.entries = append(t.entries, triplet{i: pos[i], j: pos[j], v: v})
		}
	})
	return t.Build(), nil
}
