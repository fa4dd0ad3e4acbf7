// SPDX-License-Identifier: MIT

package param

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/katalvlaran/ricci/embed"
	"github.com/katalvlaran/ricci/halfedge"
	"github.com/katalvlaran/ricci/internal/logging"
	"github.com/katalvlaran/ricci/metric"
	"github.com/katalvlaran/ricci/ricci"
)

// SetLogger routes the logs of every package in the module to l. Nil
// silences them again.
func SetLogger(l *slog.Logger) { logging.SetLogger(l) }

// Parameterizer flattens a mesh with Ricci flow and lays the result out
// in the plane. It runs once.
type Parameterizer struct {
	store     *metric.Store
	solver    *ricci.Solver
	embedOpts []embed.Option
}

// Result bundles the flow outcome with the flattened metric and its layout.
type Result struct {
	Solve     ricci.Result
	Metric    *metric.Store
	Embedding *embed.Embedding
}

// Err reports the soft failure of the flow, if any.
func (r *Result) Err() error { return r.Solve.Err() }

// New derives the circle-packing metric of m and prepares a solver.
//
// Errors: metric.ErrInvalidMetric; ricci.ErrOptionViolation for bad
// options.
func New(m *halfedge.Mesh, opts ...Option) (*Parameterizer, error) {
	c := config{settings: ricci.DefaultSettings()}
	for _, fn := range opts {
		fn(&c)
	}
	store, err := metric.New(m)
	if err != nil {
		return nil, err
	}
	sv := ricci.NewSolver(store)
	if err := sv.SetSettings(c.settings); err != nil {
		return nil, err
	}
	return &Parameterizer{store: store, solver: sv, embedOpts: c.embedOpts}, nil
}

// Metric returns the store the flow mutates.
func (p *Parameterizer) Metric() *metric.Store { return p.store }

// AddCone prescribes curvature k, in radians, at v.
func (p *Parameterizer) AddCone(v halfedge.VertexID, k float64) error {
	return p.solver.AddCone(v, k)
}

// SetSolverSettings replaces the flow settings, including any set by
// options.
func (p *Parameterizer) SetSolverSettings(st ricci.Settings) error {
	return p.solver.SetSettings(st)
}

// Parameterize runs the flow and embeds the result, cut open along the
// shortest seam through the cones.
//
// A converged flow returns a full Result. MaxIterExceeded also returns a
// full Result, laid out from the last metric, and a nil error; check
// Result.Err. A diverged flow returns the Result without an embedding
// together with the error. Infeasible cones fail before anything runs.
func (p *Parameterizer) Parameterize() (*Result, error) {
	solved, err := p.solver.Solve()
	res := &Result{Solve: solved, Metric: p.store}
	if err != nil {
		if solved.Status == ricci.Diverged {
			return res, err
		}
		return nil, err
	}

	cones := p.solver.Cones()
	cut := make(map[halfedge.VertexID]bool, len(cones))
	for v := range cones {
		cut[v] = true
	}
	emb, err := embed.EmbedCirclePackingMetric(p.store, cut, p.embedOpts...)
	if err != nil {
		return res, errors.Wrap(err, "param: embedding flattened metric")
	}
	res.Embedding = emb
	logging.Logger().Info("parameterized",
		"status", solved.Status.String(),
		"regions", emb.Regions(),
		"seam", emb.Seam().Len(),
		"images", emb.NumImages())
	return res, nil
}
