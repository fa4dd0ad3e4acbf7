// SPDX-License-Identifier: MIT

package delaunay

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/ricci/halfedge"
	"github.com/katalvlaran/ricci/metric"
)

// diamond is the quad around an interior edge p→q laid flat in the plane:
// p at the origin, q on the positive x axis, v (left face) above and u
// (right face) below. Only intrinsic lengths are used.
type diamond struct {
	h, o           halfedge.HalfedgeID // p→q, q→p
	qv, vp, pu, uq halfedge.HalfedgeID
	p, q, u, v     halfedge.VertexID
	P, Q, U, V     r2.Vec
}

func unfold(s *metric.Store, e halfedge.EdgeID) diamond {
	m := s.Mesh()
	d := diamond{h: m.Halfedge(e)}
	d.o = m.Opposite(d.h)
	d.qv = m.Next(d.h)
	d.vp = m.Next(d.qv)
	d.pu = m.Next(d.o)
	d.uq = m.Next(d.pu)
	d.p, d.q = m.Source(d.h), m.Target(d.h)
	d.v, d.u = m.Target(d.qv), m.Target(d.pu)

	l := s.EdgeLength(e)
	d.P = r2.Vec{}
	d.Q = r2.Vec{X: l}
	d.V = apex(l, s.HalfedgeLength(d.vp), s.HalfedgeLength(d.qv), 1)
	d.U = apex(l, s.HalfedgeLength(d.pu), s.HalfedgeLength(d.uq), -1)
	return d
}

// apex places the third corner of a triangle with base (0,0)–(l,0), at
// distance fromP from the origin and fromQ from (l,0), on the side of sign.
func apex(l, fromP, fromQ, sign float64) r2.Vec {
	x := (l*l + fromP*fromP - fromQ*fromQ) / (2 * l)
	y := math.Sqrt(math.Max(0, fromP*fromP-x*x))
	return r2.Vec{X: x, Y: sign * y}
}

// flipLength returns the length of the other diagonal u–v.
func (d diamond) flipLength() float64 {
	return r2.Norm(r2.Sub(d.V, d.U))
}

// at returns the point at parameter t along p→q.
func (d diamond) at(t float64) r2.Vec {
	return r2.Scale(t, d.Q)
}

// splitParameter returns where to insert a vertex on an edge of length l:
// at a power-of-two distance from the endpoint that is not itself a split
// vertex, the power being the one closest to l/2 (1 when l/2 lies in
// [0.75, 1.5]). The result is a parameter along p→q.
func splitParameter(l float64, fromQ bool) float64 {
	half := l / 2
	d := 1.0
	switch {
	case half > 1.5:
		d = 2
		for d < half {
			d *= 2
		}
		if math.Abs(d-half) > math.Abs(d/2-half) {
			d /= 2
		}
	case half < 0.75:
		d = 0.5
		for d > half {
			d /= 2
		}
		if math.Abs(d-half) > math.Abs(d*2-half) {
			d *= 2
		}
	}
	t := d / l
	if fromQ {
		t = 1 - t
	}
	return t
}
