// SPDX-License-Identifier: MIT

package linalg_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ricci/linalg"
)

// pathLaplacian returns the n×n matrix tridiag(−1, 2, −1), which is SPD.
func pathLaplacian(t *testing.T, n int) *linalg.Sparse {
	t.Helper()
	tr, err := linalg.NewTriplets(n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.NoError(t, tr.Add(i, i, 2))
		if i > 0 {
			require.NoError(t, tr.Add(i, i-1, -1))
			require.NoError(t, tr.Add(i-1, i, -1))
		}
	}
	return tr.Build()
}

func TestDense_Basics(t *testing.T) {
	_, err := linalg.NewDense(0, 3)
	assert.True(t, errors.Is(err, linalg.ErrBadShape))

	d, err := linalg.NewDenseFrom([][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	assert.Equal(t, 3, d.Rows())
	assert.Equal(t, 2, d.Cols())

	v, err := d.At(2, 1)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)
	_, err = d.At(3, 0)
	assert.True(t, errors.Is(err, linalg.ErrOutOfRange))

	c := d.Clone()
	require.NoError(t, c.Set(0, 0, 10))
	v, _ = d.At(0, 0)
	assert.Equal(t, 1.0, v, "clone must not alias")

	y := make([]float64, 3)
	require.NoError(t, d.MulVec(y, []float64{1, 1}))
	assert.Equal(t, []float64{3, 7, 11}, y)
	assert.True(t, errors.Is(d.MulVec(y, []float64{1}), linalg.ErrDimensionMismatch))

	_, err = linalg.NewDenseFrom([][]float64{{1, 2}, {3}})
	assert.True(t, errors.Is(err, linalg.ErrDimensionMismatch))
}

func TestLU_FactorAndSolve(t *testing.T) {
	a, err := linalg.NewDenseFrom([][]float64{
		{4, -2, 1},
		{-2, 4, -2},
		{1, -2, 4},
	})
	require.NoError(t, err)

	f, err := linalg.Factorize(a)
	require.NoError(t, err)
	require.Equal(t, 3, f.Size())

	// L·U reproduces A.
	l, u := f.L(), f.U()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				lv, _ := l.At(i, k)
				uv, _ := u.At(k, j)
				s += lv * uv
			}
			want, _ := a.At(i, j)
			assert.InDelta(t, want, s, 1e-12, "(%d,%d)", i, j)
		}
	}

	want := []float64{1, -2, 3}
	b := make([]float64, 3)
	require.NoError(t, a.MulVec(b, want))
	x, err := f.Solve(b)
	require.NoError(t, err)
	assert.True(t, cmp.Equal(want, x, cmpopts.EquateApprox(0, 1e-12)), cmp.Diff(want, x))

	_, err = f.Solve([]float64{1})
	assert.True(t, errors.Is(err, linalg.ErrDimensionMismatch))
}

func TestLU_Errors(t *testing.T) {
	singular, err := linalg.NewDenseFrom([][]float64{{1, 2}, {2, 4}})
	require.NoError(t, err)
	_, err = linalg.Factorize(singular)
	assert.True(t, errors.Is(err, linalg.ErrSingular), "got %v", err)

	zero, err := linalg.NewDense(2, 2)
	require.NoError(t, err)
	_, err = linalg.Factorize(zero)
	assert.True(t, errors.Is(err, linalg.ErrSingular))

	rect, err := linalg.NewDense(2, 3)
	require.NoError(t, err)
	_, err = linalg.Factorize(rect)
	assert.True(t, errors.Is(err, linalg.ErrNonSquare))

	_, err = linalg.Factorize(nil)
	assert.True(t, errors.Is(err, linalg.ErrNilMatrix))

	// A graph Laplacian is singular until one unknown is pinned.
	lap := pathLaplacian(t, 4)
	tr, _ := linalg.NewTriplets(4, 4)
	lap.Do(func(i, j int, v float64) { _ = tr.Add(i, j, v) })
	_ = tr.Add(0, 0, -1)
	_ = tr.Add(3, 3, -1)
	_, err = linalg.Factorize(tr.Build())
	assert.True(t, errors.Is(err, linalg.ErrSingular))
}

func TestTriplets_Build(t *testing.T) {
	tr, err := linalg.NewTriplets(3, 3)
	require.NoError(t, err)
	require.NoError(t, tr.Add(0, 0, 1))
	require.NoError(t, tr.Add(0, 0, 2))
	require.NoError(t, tr.Add(2, 1, 5))
	require.NoError(t, tr.Add(1, 2, 4))
	require.NoError(t, tr.Add(1, 2, -4))
	assert.True(t, errors.Is(tr.Add(3, 0, 1), linalg.ErrOutOfRange))
	assert.True(t, errors.Is(tr.Add(0, 0, nan()), linalg.ErrNaNInf))
	assert.Equal(t, 5, tr.Len())

	s := tr.Build()
	assert.Equal(t, 2, s.NNZ(), "duplicates merge and cancellations drop")
	v, err := s.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)
	v, _ = s.At(1, 2)
	assert.Equal(t, 0.0, v)
	assert.False(t, s.IsSymmetric(0))
	assert.Equal(t, []float64{3, 0, 0}, s.Diagonal())

	d := s.Dense()
	v, _ = d.At(2, 1)
	assert.Equal(t, 5.0, v)
}

func TestSparse_Reduce(t *testing.T) {
	lap := pathLaplacian(t, 5)
	require.True(t, lap.IsSymmetric(0))

	sub, err := lap.Reduce([]int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, sub.Rows())
	assert.Equal(t, 7, sub.NNZ())
	v, _ := sub.At(0, 1)
	assert.Equal(t, -1.0, v)

	_, err = lap.Reduce(nil)
	assert.True(t, errors.Is(err, linalg.ErrBadShape))
	_, err = lap.Reduce([]int{9})
	assert.True(t, errors.Is(err, linalg.ErrOutOfRange))
}

func TestConjugateGradient(t *testing.T) {
	const n = 300
	lap := pathLaplacian(t, n)
	want := make([]float64, n)
	for i := range want {
		want[i] = float64(i%7) - 3
	}
	b := make([]float64, n)
	require.NoError(t, lap.MulVec(b, want))

	res, err := linalg.ConjugateGradient(lap, b, nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Residual, linalg.DefaultTolerance)
	assert.Positive(t, res.Iterations)
	assert.True(t, cmp.Equal(want, res.X, cmpopts.EquateApprox(0, 1e-6)))

	// Solve picks CG above the dense limit and LU below it; both agree.
	x1, err := linalg.Solve(lap, b, linalg.WithDenseLimit(0))
	require.NoError(t, err)
	x2, err := linalg.Solve(lap, b, linalg.WithDenseLimit(n))
	require.NoError(t, err)
	assert.True(t, cmp.Equal(x1, x2, cmpopts.EquateApprox(0, 1e-6)))

	zero, err := linalg.ConjugateGradient(lap, make([]float64, n), nil)
	require.NoError(t, err)
	assert.Equal(t, make([]float64, n), zero.X)
}

func TestConjugateGradient_Failures(t *testing.T) {
	lap := pathLaplacian(t, 50)
	b := make([]float64, 50)
	b[0] = 1

	_, err := linalg.ConjugateGradient(lap, b, nil, linalg.WithMaxIterations(2), linalg.WithJacobi(false))
	assert.True(t, errors.Is(err, linalg.ErrNotConverged))

	_, err = linalg.ConjugateGradient(lap, b, nil, linalg.WithTolerance(-1))
	assert.Error(t, err)

	_, err = linalg.ConjugateGradient(lap, []float64{1}, nil)
	assert.True(t, errors.Is(err, linalg.ErrDimensionMismatch))

	bad := append([]float64(nil), b...)
	bad[3] = nan()
	_, err = linalg.ConjugateGradient(lap, bad, nil)
	assert.True(t, errors.Is(err, linalg.ErrNaNInf))

	// Negative definite: the first step already has pᵀAp < 0.
	tr, _ := linalg.NewTriplets(2, 2)
	_ = tr.Add(0, 0, -1)
	_ = tr.Add(1, 1, -1)
	_, err = linalg.ConjugateGradient(tr.Build(), []float64{1, 1}, nil)
	assert.True(t, errors.Is(err, linalg.ErrNotConverged))
}
