// SPDX-License-Identifier: MIT

package ricci

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/pkg/errors"

	"github.com/katalvlaran/ricci/delaunay"
)

// SolverType selects the radius update rule.
type SolverType int

const (
	// GradientDescent updates log-radii by Step times the curvature residual.
	GradientDescent SolverType = iota

	// Newton solves H·Δ = r with the curvature Hessian and falls back to a
	// gradient step whenever the Newton step is unusable.
	Newton
)

// String returns the solver type name.
func (t SolverType) String() string {
	switch t {
	case GradientDescent:
		return "GradientDescent"
	case Newton:
		return "Newton"
	default:
		return "Unknown"
	}
}

// Settings configures one solve. It is copied when the solve starts.
type Settings struct {
	// Eps is the convergence tolerance on max |target − curvature|.
	Eps float64
	// MaxIters caps the number of radius updates.
	MaxIters int
	// Step scales gradient updates. 1.0 can oscillate on coarse closed
	// meshes, where the Hessian's largest eigenvalue exceeds 2.
	Step float64
	Type SolverType
	// Verbose logs every iteration at Info level instead of Debug.
	Verbose bool

	// Scheme, DihedralThreshold and Visitor configure the remesh that
	// follows every update.
	Scheme            delaunay.Scheme
	DihedralThreshold s1.Angle
	Visitor           delaunay.Visitor

	// DivergenceWindow is how many consecutive residual increases are
	// tolerated; one more stops the solve as diverged.
	DivergenceWindow int
}

// Defaults for Settings.
const (
	DefaultEps              = 1e-6
	DefaultMaxIters         = 1000
	DefaultStep             = 1.0
	DefaultDivergenceWindow = 5
	maxStepHalvings         = 8
)

// DefaultSettings returns eps 1e-6, 1000 iterations, step 1, gradient
// descent, SimpleFlip remeshing with a 10° threshold, divergence window 5.
func DefaultSettings() Settings {
	return Settings{
		Eps:               DefaultEps,
		MaxIters:          DefaultMaxIters,
		Step:              DefaultStep,
		Type:              GradientDescent,
		Scheme:            delaunay.SimpleFlip,
		DihedralThreshold: delaunay.DefaultDihedralThreshold,
		DivergenceWindow:  DefaultDivergenceWindow,
	}
}

// Validate checks every field and returns ErrOptionViolation naming the
// first bad one.
func (st Settings) Validate() error {
	switch {
	case !(st.Eps > 0) || math.IsInf(st.Eps, 1):
		return errors.Wrapf(ErrOptionViolation, "eps %g", st.Eps)
	case st.MaxIters <= 0:
		return errors.Wrapf(ErrOptionViolation, "max iters %d", st.MaxIters)
	case !(st.Step > 0) || math.IsInf(st.Step, 1):
		return errors.Wrapf(ErrOptionViolation, "step %g", st.Step)
	case st.Type != GradientDescent && st.Type != Newton:
		return errors.Wrapf(ErrOptionViolation, "solver type %d", int(st.Type))
	case st.Scheme < delaunay.SimpleFlip || st.Scheme > delaunay.FeaturePreserving:
		return errors.Wrapf(ErrOptionViolation, "remesh scheme %d", int(st.Scheme))
	case st.DihedralThreshold < 0 || st.DihedralThreshold > s1.Angle(math.Pi):
		return errors.Wrapf(ErrOptionViolation, "dihedral threshold %v", st.DihedralThreshold)
	case st.DivergenceWindow < 1:
		return errors.Wrapf(ErrOptionViolation, "divergence window %d", st.DivergenceWindow)
	}
	return nil
}

func (st Settings) remeshOptions() []delaunay.Option {
	opts := []delaunay.Option{delaunay.WithDihedralThreshold(st.DihedralThreshold)}
	if st.Visitor != nil {
		opts = append(opts, delaunay.WithVisitor(st.Visitor))
	}
	return opts
}
