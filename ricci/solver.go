// SPDX-License-Identifier: MIT

package ricci

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/pkg/errors"

	"github.com/katalvlaran/ricci/delaunay"
	"github.com/katalvlaran/ricci/halfedge"
	"github.com/katalvlaran/ricci/internal/logging"
	"github.com/katalvlaran/ricci/linalg"
	"github.com/katalvlaran/ricci/metric"
)

// gaussBonnetTolerance is relative to max(1, |2πχ|).
const gaussBonnetTolerance = 1e-8

// Solver drives a metric store toward prescribed vertex curvatures. A
// Solver runs once; build a new one to solve again.
type Solver struct {
	store    *metric.Store
	mesh     *halfedge.Mesh
	cones    map[halfedge.VertexID]float64
	settings Settings
	state    Status
	result   Result

	// per-solve bookkeeping
	increases int
	classes   *delaunay.EdgeClasses
}

// NewSolver returns an Uninitialized solver bound to s. The store is
// mutated in place by Solve.
func NewSolver(s *metric.Store) *Solver {
	return &Solver{
		store:    s,
		mesh:     s.Mesh(),
		cones:    make(map[halfedge.VertexID]float64),
		settings: DefaultSettings(),
	}
}

// Status returns the current state.
func (s *Solver) Status() Status { return s.state }

// Settings returns the active settings.
func (s *Solver) Settings() Settings { return s.settings }

// EdgeClasses returns the edge classes shared by every remesh of the
// solve, or nil before Solve. Edges are classified once from the input
// geometry; flips and splits made during the flow are remembered.
func (s *Solver) EdgeClasses() *delaunay.EdgeClasses { return s.classes }

// Result returns the result of the last Solve.
func (s *Solver) Result() Result { return s.result }

// AddCone prescribes curvature k (radians) at v.
//
// Errors: ErrSolverState once solving started; ErrInvalidCone for an
// unknown vertex, a vertex already registered, or a non-finite k.
func (s *Solver) AddCone(v halfedge.VertexID, k float64) error {
	if s.state >= Running {
		return errors.Wrapf(ErrSolverState, "add cone in state %v", s.state)
	}
	if !s.mesh.HasVertex(v) {
		return errors.Wrapf(ErrInvalidCone, "unknown vertex %d", v)
	}
	if _, dup := s.cones[v]; dup {
		return errors.Wrapf(ErrInvalidCone, "vertex %d already has a cone", v)
	}
	if math.IsNaN(k) || math.IsInf(k, 0) {
		return errors.Wrapf(ErrInvalidCone, "vertex %d: target %g", v, k)
	}
	s.cones[v] = k
	s.state = Configured
	return nil
}

// SetSettings validates and installs st.
//
// Errors: ErrSolverState once solving started; ErrOptionViolation.
func (s *Solver) SetSettings(st Settings) error {
	if s.state >= Running {
		return errors.Wrapf(ErrSolverState, "set settings in state %v", s.state)
	}
	if err := st.Validate(); err != nil {
		return err
	}
	s.settings = st
	s.state = Configured
	return nil
}

// Target returns the target curvature of v and whether v is constrained.
// Cone vertices are constrained to their cone value and interior vertices
// to 0. Border vertices without a cone are free.
func (s *Solver) Target(v halfedge.VertexID) (float64, bool) {
	if k, ok := s.cones[v]; ok {
		return k, true
	}
	if s.mesh.IsBorderVertex(v) {
		return 0, false
	}
	return 0, true
}

// Cones returns a copy of the registered cones.
func (s *Solver) Cones() map[halfedge.VertexID]float64 {
	out := make(map[halfedge.VertexID]float64, len(s.cones))
	for v, k := range s.cones {
		out[v] = k
	}
	return out
}

// Solve runs the flow until the maximum curvature residual drops below
// Eps, MaxIters updates were made, or the flow diverges.
//
// Implementation:
//   - Stage 0: Gauss–Bonnet check when every vertex is constrained or the
//     mesh is closed; infeasible targets fail before any iteration.
//   - Stage 1, per iteration: residuals r(v) = target(v) − K(v) (0 for
//     free vertices), convergence and iteration-cap tests, divergence test.
//   - Stage 2: radius update in log space, gradient (u += step·r) or
//     Newton (H·Δ = r on the constrained vertices); lengths follow from
//     radii and inversive distances.
//   - Stage 3: Delaunay remesh with the configured scheme. Edge classes
//     are computed once before the first iteration and carried through
//     every remesh. Vertices created by splits are interior and get
//     target 0.
//
// Returns:
//   - Converged: nil error.
//   - MaxIterExceeded: nil error; Result.Err reports ErrMaxIterExceeded.
//   - Diverged: *DivergenceError, or the remesher error that stopped the run.
//
// Errors: ErrSolverState when called twice; ErrInvalidCone for infeasible
// targets.
func (s *Solver) Solve() (Result, error) {
	if s.state >= Running {
		return s.result, errors.Wrapf(ErrSolverState, "solve in state %v", s.state)
	}
	if err := s.checkGaussBonnet(); err != nil {
		return Result{Status: s.state}, err
	}
	classes, err := delaunay.Classify(s.mesh, s.settings.remeshOptions()...)
	if err != nil {
		return Result{Status: s.state}, err
	}
	s.classes = classes
	s.state = Running
	s.result = Result{Status: Running}
	log := logging.Logger()
	log.Info("ricci solve",
		"type", s.settings.Type.String(),
		"scheme", s.settings.Scheme.String(),
		"vertices", s.mesh.NumVertices(),
		"cones", len(s.cones))

	err = s.run()
	s.result.Status = s.state
	if err != nil {
		s.result.err = err
		log.Warn("ricci solve stopped", "status", s.state.String(), "err", err)
	} else {
		log.Info("ricci solve finished",
			"status", s.state.String(),
			"iterations", s.result.Iterations,
			"residual", s.result.Residual)
	}
	return s.result, err
}

func (s *Solver) run() error {
	level := slog.LevelDebug
	if s.settings.Verbose {
		level = slog.LevelInfo
	}
	log := logging.Logger()
	prev := math.Inf(1)

	for it := 0; ; it++ {
		s.result.Iterations = it
		res, maxR := s.residuals()
		s.result.Residual = maxR
		s.result.History = append(s.result.History, maxR)
		log.Log(context.Background(), level, "ricci iteration", "iter", it, "residual", maxR)

		if math.IsNaN(maxR) || math.IsInf(maxR, 0) {
			return s.diverge(it, maxR, "non-finite curvature")
		}
		if maxR < s.settings.Eps {
			s.state = Converged
			return nil
		}
		if it >= s.settings.MaxIters {
			s.state = MaxIterExceeded
			return nil
		}
		if maxR > prev {
			s.increases++
		} else {
			s.increases = 0
		}
		if s.increases > s.settings.DivergenceWindow {
			return s.diverge(it, maxR, "residual increased in consecutive iterations")
		}
		prev = maxR
		if v, ok := s.badRadius(); ok {
			return s.diverge(it, maxR, fmt.Sprintf("invalid radius at vertex %d", v))
		}

		var err error
		if s.settings.Type == Newton {
			err = s.newtonStep(res, maxR)
		} else {
			err = s.gradientStep(res)
		}
		if err != nil {
			return s.diverge(it, maxR, err.Error())
		}

		stats, err := delaunay.Remesh(s.store, s.settings.Scheme,
			append(s.settings.remeshOptions(), delaunay.WithEdgeClasses(s.classes))...)
		s.result.Flips += stats.Flips
		s.result.Splits += stats.Splits
		if err != nil {
			s.state = Diverged
			s.result.Iterations = it + 1
			return errors.Wrapf(err, "remesh after iteration %d", it)
		}
	}
}

// residuals returns r(v) for every vertex and max |r|.
func (s *Solver) residuals() ([]float64, float64) {
	res := make([]float64, s.mesh.NumVertices())
	var maxR float64
	for v := range res {
		k, constrained := s.Target(halfedge.VertexID(v))
		if !constrained {
			continue
		}
		res[v] = k - s.store.DiscreteCurvature(halfedge.VertexID(v))
		if a := math.Abs(res[v]); a > maxR || math.IsNaN(a) {
			maxR = a
		}
	}
	return res, maxR
}

func (s *Solver) badRadius() (halfedge.VertexID, bool) {
	for v, r := range s.store.Radii() {
		if !(r > 0) || math.IsInf(r, 1) {
			return halfedge.VertexID(v), true
		}
	}
	return 0, false
}

func (s *Solver) diverge(it int, residual float64, reason string) error {
	s.state = Diverged
	return &DivergenceError{Iterations: it, Residual: residual, Reason: reason}
}

// gradientStep scales every radius by exp(step·r). An update that breaks
// the triangle inequality is undone and retried with half the step.
func (s *Solver) gradientStep(res []float64) error {
	radii := s.store.Radii()
	step := s.settings.Step
	next := make([]float64, len(radii))
	for halvings := 0; ; halvings++ {
		for v, r := range radii {
			next[v] = r * math.Exp(step*res[v])
		}
		err := s.store.SetRadii(next)
		if err == nil {
			if err = s.store.UpdateLengthsFromRadii(); err == nil {
				return nil
			}
			if rerr := s.store.RestoreRadii(radii); rerr != nil {
				return rerr
			}
		}
		if halvings == maxStepHalvings {
			return errors.Wrapf(err, "no valid gradient step after %d halvings", halvings)
		}
		step /= 2
		s.result.StepHalvings++
		logging.Logger().Warn("ricci step halved", "step", step, "cause", err)
	}
}

// newtonStep solves H·Δ = r over the constrained vertices and applies
// u += Δ. When every vertex is constrained the first one is pinned to
// remove the scaling null space. Any failure, or a step that does not
// lower the residual, is undone and replaced by a gradient step.
func (s *Solver) newtonStep(res []float64, maxR float64) error {
	if err := s.tryNewton(res, maxR); err != nil {
		s.result.NewtonFallbacks++
		logging.Logger().Warn("newton step rejected, using gradient step", "cause", err)
		return s.gradientStep(res)
	}
	return nil
}

func (s *Solver) tryNewton(res []float64, maxR float64) error {
	keep := make([]int, 0, len(res))
	for v := range res {
		if _, constrained := s.Target(halfedge.VertexID(v)); constrained {
			keep = append(keep, v)
		}
	}
	if len(keep) == len(res) {
		keep = keep[1:]
	}
	if len(keep) == 0 {
		return errors.New("no unknowns")
	}

	h, err := Hessian(s.store)
	if err != nil {
		return err
	}
	hr, err := h.Reduce(keep)
	if err != nil {
		return err
	}
	b := make([]float64, len(keep))
	for i, v := range keep {
		b[i] = res[v]
	}
	delta, err := linalg.Solve(hr, b, linalg.WithJacobi(true))
	if err != nil {
		return err
	}

	radii, lengths := s.store.Radii(), s.store.Lengths()
	next := append([]float64(nil), radii...)
	for i, v := range keep {
		if math.IsNaN(delta[i]) || math.IsInf(delta[i], 0) {
			return errors.Errorf("non-finite update at vertex %d", v)
		}
		next[v] = radii[v] * math.Exp(delta[i])
	}
	if err := s.store.SetRadii(next); err != nil {
		return err
	}
	undo := func(cause error) error {
		if rerr := s.store.RestoreRadii(radii); rerr != nil {
			return rerr
		}
		if rerr := s.store.RestoreLengths(lengths); rerr != nil {
			return rerr
		}
		return cause
	}
	if err := s.store.UpdateLengthsFromRadii(); err != nil {
		return undo(err)
	}
	if _, r := s.residuals(); !(r < maxR) {
		return undo(errors.Errorf("residual %g does not improve on %g", r, maxR))
	}
	return nil
}

// checkGaussBonnet compares Σ targets with 2πχ when all curvature is
// prescribed: on closed meshes, or when every border vertex has a cone.
func (s *Solver) checkGaussBonnet() error {
	n := s.mesh.NumVertices()
	var sum float64
	for v := 0; v < n; v++ {
		k, constrained := s.Target(halfedge.VertexID(v))
		if !constrained {
			return nil
		}
		sum += k
	}
	want := 2 * math.Pi * float64(s.mesh.EulerCharacteristic())
	if math.Abs(sum-want) > gaussBonnetTolerance*math.Max(1, math.Abs(want)) {
		return errors.Wrapf(ErrInvalidCone, "targets sum to %.12g, Gauss–Bonnet requires %.12g", sum, want)
	}
	return nil
}
