// SPDX-License-Identifier: MIT

package linalg

import "github.com/pkg/errors"

// Defaults for the iterative and direct solvers.
const (
	DefaultTolerance     = 1e-12
	DefaultMaxIterations = 0 // 0 means 10·n
	DefaultDenseLimit    = 256
)

// SolveOptions configures Solve and ConjugateGradient.
type SolveOptions struct {
	// Tolerance is the relative residual ‖b − A·x‖ / ‖b‖ at which CG stops.
	Tolerance float64

	// MaxIterations caps CG iterations; 0 selects 10·n.
	MaxIterations int

	// DenseLimit is the largest n for which Solve uses dense LU.
	DenseLimit int

	// Jacobi enables diagonal preconditioning in CG.
	Jacobi bool

	err error
}

// SolveOption mutates SolveOptions.
type SolveOption func(*SolveOptions)

// DefaultSolveOptions returns the defaults: tolerance 1e-12, 10·n iterations,
// dense limit 256, Jacobi preconditioning on.
func DefaultSolveOptions() SolveOptions {
	return SolveOptions{
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
		DenseLimit:    DefaultDenseLimit,
		Jacobi:        true,
	}
}

// WithTolerance sets the CG relative residual target (must be > 0).
func WithTolerance(tol float64) SolveOption {
	return func(o *SolveOptions) {
		if !(tol > 0) {
			o.err = errors.Errorf("linalg: tolerance must be > 0, got %g", tol)
			return
		}
		o.Tolerance = tol
	}
}

// WithMaxIterations caps CG iterations (must be >= 0).
func WithMaxIterations(n int) SolveOption {
	return func(o *SolveOptions) {
		if n < 0 {
			o.err = errors.Errorf("linalg: max iterations must be >= 0, got %d", n)
			return
		}
		o.MaxIterations = n
	}
}

// WithDenseLimit sets the size up to which Solve factorizes densely.
func WithDenseLimit(n int) SolveOption {
	return func(o *SolveOptions) { o.DenseLimit = n }
}

// WithJacobi toggles diagonal preconditioning.
func WithJacobi(on bool) SolveOption {
	return func(o *SolveOptions) { o.Jacobi = on }
}

func buildSolveOptions(opts []SolveOption) (SolveOptions, error) {
	o := DefaultSolveOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o, o.err
}
