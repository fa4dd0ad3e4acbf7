// SPDX-License-Identifier: MIT

package ricci

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidCone is returned for an unknown or duplicate cone vertex, a
	// non-finite target, or targets violating Gauss–Bonnet. It is reported
	// before any iteration runs.
	ErrInvalidCone = errors.New("ricci: invalid cone")

	// ErrSolverState is returned when the solver is configured or started
	// outside the Uninitialized/Configured states.
	ErrSolverState = errors.New("ricci: operation not allowed in current state")

	// ErrOptionViolation is returned by SetSettings for out-of-range values.
	ErrOptionViolation = errors.New("ricci: invalid settings")

	// ErrMaxIterExceeded is the soft failure of a solve that used every
	// iteration without converging. Solve itself returns a nil error in that
	// case; Result.Err reports it.
	ErrMaxIterExceeded = errors.New("ricci: maximum iterations exceeded")

	// ErrDiverged is the hard failure of a solve whose radii left the valid
	// range or whose residual kept growing. It is wrapped by DivergenceError.
	ErrDiverged = errors.New("ricci: flow diverged")
)

// DivergenceError carries the diagnostic state of a diverged solve.
type DivergenceError struct {
	Iterations int
	Residual   float64
	Reason     string
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("%v after %d iterations (residual %g): %s", ErrDiverged, e.Iterations, e.Residual, e.Reason)
}

// Unwrap lets errors.Is match ErrDiverged.
func (e *DivergenceError) Unwrap() error { return ErrDiverged }
