// SPDX-License-Identifier: MIT

package ricci

// Status is the solver state:
//
//	Uninitialized → Configured → Running → {Converged | MaxIterExceeded | Diverged}
type Status int

const (
	Uninitialized Status = iota
	Configured
	Running
	Converged
	MaxIterExceeded
	Diverged
)

var statusNames = [...]string{"Uninitialized", "Configured", "Running", "Converged", "MaxIterExceeded", "Diverged"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "Unknown"
	}
	return statusNames[s]
}

// Terminal reports whether s ends a solve.
func (s Status) Terminal() bool { return s >= Converged }

// Result summarizes a solve.
type Result struct {
	Status     Status
	Iterations int       // radius updates performed
	Residual   float64   // final max |target − curvature|
	History    []float64 // residual before each update, then the final one
	Flips      int
	Splits     int

	NewtonFallbacks int // Newton steps replaced by gradient steps
	StepHalvings    int // gradient steps shortened to keep the metric valid

	err error
}

// Err returns nil for Converged, ErrMaxIterExceeded for the soft failure
// and the *DivergenceError for Diverged.
func (r Result) Err() error {
	switch r.Status {
	case MaxIterExceeded:
		return ErrMaxIterExceeded
	case Diverged:
		return r.err
	}
	return nil
}
