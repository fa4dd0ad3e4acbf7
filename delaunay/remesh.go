// SPDX-License-Identifier: MIT

package delaunay

import (
	"math"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/pkg/errors"

	"github.com/katalvlaran/ricci/halfedge"
	"github.com/katalvlaran/ricci/internal/logging"
	"github.com/katalvlaran/ricci/metric"
)

// Stats counts what one Remesh run did.
type Stats struct {
	Flips        int
	Splits       int
	Nonflippable int
	Skipped      int // feature edges left alone
}

// Operations returns Flips + Splits.
func (st Stats) Operations() int { return st.Flips + st.Splits }

// remesher is the per-run state: a FIFO of edges with an in-queue flag per
// edge, plus the edge and vertex classifications the schemes need.
type remesher struct {
	store   *metric.Store
	mesh    *halfedge.Mesh
	scheme  Scheme
	opts    Options
	visitor Visitor

	queue   *linkedlistqueue.Queue
	inQueue []bool
	cls     *EdgeClasses

	budget int
	stats  Stats
}

// Remesh restores the local Delaunay property of s under the given scheme,
// editing the mesh topology and the store's lengths in place.
//
// Implementation:
//   - Stage 1: enqueue every non-Delaunay edge (FIFO, one in-queue flag per
//     edge); classify edges as physical/virtual and feature/non-feature from
//     the 3D dihedral angles, or take the classes given by WithEdgeClasses.
//   - Stage 2: pop edges; skip those that became Delaunay; otherwise flip,
//     split, skip or report them as the scheme dictates. A flip re-enqueues
//     the four quad edges; a split re-enqueues the four outer edges and the
//     four edges at the new vertex.
//   - Stage 3: audit mesh connectivity.
//
// Intrinsic updates: a flipped edge takes the length of the other diagonal
// of the unfolded quad; split edges are measured in the unfolded triangles;
// the new vertex gets the smallest tangent radius of its corners and sits on
// the 3D segment of the split edge. Inversive distances of every new or
// changed edge are recomputed.
//
// Errors: ErrUnknownScheme, ErrOptionViolation, ErrOperationBudget,
// ErrNonManifold. Stats are valid even when an error is returned.
func Remesh(s *metric.Store, scheme Scheme, opts ...Option) (Stats, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return Stats{}, err
	}
	if scheme < SimpleFlip || scheme > FeaturePreserving {
		return Stats{}, errors.Wrapf(ErrUnknownScheme, "%d", int(scheme))
	}

	r := &remesher{
		store:   s,
		mesh:    s.Mesh(),
		scheme:  scheme,
		opts:    o,
		visitor: o.Visitor,
		queue:   linkedlistqueue.New(),
	}
	r.budget = o.MaxOperations
	if r.budget == 0 {
		r.budget = 64*r.mesh.NumEdges() + 1024
	}

	r.visitor.OnStarted(s)
	r.init()
	err = r.run()
	if err == nil {
		if verr := r.mesh.Validate(); verr != nil {
			err = errors.Wrap(ErrNonManifold, verr.Error())
		}
	}
	r.visitor.OnFinished(s)

	logging.Logger().Debug("delaunay remesh",
		"scheme", scheme.String(),
		"flips", r.stats.Flips,
		"splits", r.stats.Splits,
		"nonflippable", r.stats.Nonflippable,
		"skipped", r.stats.Skipped)
	return r.stats, err
}

func (r *remesher) init() {
	ne := r.mesh.NumEdges()
	r.inQueue = make([]bool, ne)
	r.cls = r.opts.Classes
	if r.cls == nil {
		r.cls = classify(r.mesh, r.opts)
	}
	r.cls.grow(ne, r.mesh.NumVertices())

	for e := 0; e < ne; e++ {
		if eid := halfedge.EdgeID(e); !isDelaunay(r.store, eid, r.opts.Epsilon) {
			r.push(eid)
		}
	}
}

func (r *remesher) push(e halfedge.EdgeID) {
	if r.inQueue[e] {
		return
	}
	r.inQueue[e] = true
	r.queue.Enqueue(e)
}

func (r *remesher) run() error {
	for !r.queue.Empty() {
		x, _ := r.queue.Dequeue()
		e := x.(halfedge.EdgeID)
		r.inQueue[e] = false
		if isDelaunay(r.store, e, r.opts.Epsilon) {
			continue
		}
		if r.stats.Operations() >= r.budget {
			return errors.Wrapf(ErrOperationBudget, "%d operations", r.stats.Operations())
		}

		var err error
		switch r.scheme {
		case SimpleFlip:
			err = r.flipOrReport(e)
		case FeaturePreserving:
			if r.cls.feature[e] {
				r.stats.Skipped++
				continue
			}
			err = r.flipOrReport(e)
		case GeometryPreserving:
			flipped := false
			if !r.cls.physical[e] {
				flipped, err = r.flip(e)
			}
			if err == nil && !flipped {
				r.visitor.OnNonflippable(r.store, e)
				r.stats.Nonflippable++
				err = r.split(e)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *remesher) flipOrReport(e halfedge.EdgeID) error {
	flipped, err := r.flip(e)
	if err != nil || flipped {
		return err
	}
	r.visitor.OnNonflippable(r.store, e)
	r.stats.Nonflippable++
	return nil
}

// flip replaces e by the other diagonal of its quad. It reports false,
// without touching anything, when the flip is topologically illegal or the
// new triangles would be degenerate.
func (r *remesher) flip(e halfedge.EdgeID) (bool, error) {
	if !r.mesh.CanFlip(e) {
		return false, nil
	}
	d := unfold(r.store, e)
	l := d.flipLength()
	a1, b1 := r.store.HalfedgeLength(d.qv), r.store.HalfedgeLength(d.vp)
	a2, b2 := r.store.HalfedgeLength(d.pu), r.store.HalfedgeLength(d.uq)
	if !metric.IsTriangle(l, b1, a2) || !metric.IsTriangle(l, b2, a1) {
		return false, nil
	}

	r.visitor.OnFlipping(r.store, e)
	if err := r.mesh.FlipEdge(e); err != nil {
		return false, errors.Wrapf(ErrNonManifold, "flip edge %d: %v", e, err)
	}
	if err := r.store.SetEdgeLengths([]halfedge.EdgeID{e}, []float64{l}); err != nil {
		return false, errors.Wrapf(ErrNonManifold, "flip edge %d: %v", e, err)
	}
	r.store.ResetInversiveDistance(e)
	r.cls.flipped(e)
	r.stats.Flips++
	r.visitor.OnFlipped(r.store, e)
	logging.Logger().Debug("flip", "edge", int(e), "length", l)

	for _, h := range [4]halfedge.HalfedgeID{d.qv, d.vp, d.pu, d.uq} {
		r.push(r.mesh.Edge(h))
	}
	return true, nil
}

// split inserts a vertex on e at the power-of-two position and fans it to
// both opposite corners.
func (r *remesher) split(e halfedge.EdgeID) error {
	d := unfold(r.store, e)
	l := r.store.EdgeLength(e)
	t := splitParameter(l, r.cls.split[d.p])
	pos := r.mesh.PointOnEdge(e, t)
	sp := d.at(t)
	lsv := math.Hypot(sp.X-d.V.X, sp.Y-d.V.Y)
	lsu := math.Hypot(sp.X-d.U.X, sp.Y-d.U.Y)

	r.visitor.OnSplitting(r.store, e)
	site, err := r.mesh.SplitEdge(e, pos)
	if err != nil {
		return errors.Wrapf(ErrNonManifold, "split edge %d: %v", e, err)
	}
	r.store.Grow()

	eqs := r.mesh.Edge(site.HQS)
	evs := r.mesh.Edge(site.HVS)
	eus := r.mesh.Edge(site.HUS)
	edges := []halfedge.EdgeID{e, eqs, evs, eus}
	if err := r.store.SetEdgeLengths(edges, []float64{t * l, (1 - t) * l, lsv, lsu}); err != nil {
		return errors.Wrapf(ErrNonManifold, "split edge %d: %v", e, err)
	}
	if err := r.store.SetVertexRadius(site.Vertex, r.store.TangentRadius(site.Vertex)); err != nil {
		return errors.Wrapf(ErrNonManifold, "split edge %d: %v", e, err)
	}
	for _, x := range edges {
		r.store.ResetInversiveDistance(x)
	}

	for len(r.inQueue) < r.mesh.NumEdges() {
		r.inQueue = append(r.inQueue, false)
	}
	r.cls.grow(r.mesh.NumEdges(), r.mesh.NumVertices())
	r.cls.physical[eqs] = r.cls.physical[e]
	r.cls.feature[eqs] = r.cls.feature[e]
	r.cls.split[site.Vertex] = true
	r.stats.Splits++

	r.visitor.OnSplit(r.store, SplitSite{Split: site, T: t, Position: pos})
	logging.Logger().Debug("split", "edge", int(e), "t", t, "vertex", int(site.Vertex))

	for _, h := range [4]halfedge.HalfedgeID{d.qv, d.vp, d.pu, d.uq} {
		r.push(r.mesh.Edge(h))
	}
	for _, x := range edges {
		r.push(x)
	}
	return nil
}
