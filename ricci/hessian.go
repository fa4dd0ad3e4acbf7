// SPDX-License-Identifier: MIT

package ricci

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/ricci/halfedge"
	"github.com/katalvlaran/ricci/linalg"
	"github.com/katalvlaran/ricci/metric"
)

// Hessian returns the V×V matrix dK/du of discrete curvature with respect
// to log-radii. It is a graph Laplacian: off-diagonal entries are −w(e) and
// every row sums to zero, with
//
//	w(e) = Σ over the faces of e of h(e, f) / l(e)
//
// where h(e, f) is the signed distance from the power center of f (the
// point with equal power to the three vertex circles) to the line of e.
// For tangent circle packings the power center is the incenter.
//
// Errors: metric.ErrInvalidMetric if a face is degenerate, or any
// linalg error while assembling.
func Hessian(s *metric.Store) (*linalg.Sparse, error) {
	m := s.Mesh()
	t, err := linalg.NewTriplets(m.NumVertices(), m.NumVertices())
	if err != nil {
		return nil, err
	}
	for f := 0; f < m.NumFaces(); f++ {
		hs := m.HalfedgesAroundFace(halfedge.FaceID(f))
		dist, err := powerDistances(s, hs)
		if err != nil {
			return nil, errors.Wrapf(err, "face %d", f)
		}
		for i, h := range hs {
			w := dist[i] / s.HalfedgeLength(h)
			a, b := int(m.Source(h)), int(m.Target(h))
			for _, e := range [...]struct {
				i, j int
				v    float64
			}{{a, a, w}, {b, b, w}, {a, b, -w}, {b, a, -w}} {
				if err := t.Add(e.i, e.j, e.v); err != nil {
					return nil, err
				}
			}
		}
	}
	return t.Build(), nil
}

// powerDistances lays the face of hs out in the plane (Source(hs[0]) at the
// origin, Target(hs[0]) on the positive x axis, counter-clockwise) and
// returns the signed distance from its power center to the edge of each
// halfedge. Distances are positive when the center lies inside the face.
func powerDistances(s *metric.Store, hs [3]halfedge.HalfedgeID) ([3]float64, error) {
	m := s.Mesh()
	v0, v1, v2 := m.Source(hs[0]), m.Target(hs[0]), m.Target(hs[1])
	r0, r1, r2v := s.VertexRadius(v0), s.VertexRadius(v1), s.VertexRadius(v2)
	l01, l20 := s.HalfedgeLength(hs[0]), s.HalfedgeLength(hs[2])

	theta := s.CornerAngle(hs[2])
	p := [3]r2.Vec{
		{},
		{X: l01},
		{X: l20 * math.Cos(theta), Y: l20 * math.Sin(theta)},
	}
	if !(p[2].Y > 0) || !(l01 > 0) {
		return [3]float64{}, errors.Wrap(metric.ErrInvalidMetric, "degenerate face")
	}

	var c r2.Vec
	c.X = (l01*l01 + r0*r0 - r1*r1) / (2 * l01)
	c.Y = ((r2.Dot(p[2], p[2])+r0*r0-r2v*r2v)/2 - p[2].X*c.X) / p[2].Y

	var d [3]float64
	for i := range d {
		a, b := p[i], p[(i+1)%3]
		ab := r2.Sub(b, a)
		d[i] = r2.Cross(ab, r2.Sub(c, a)) / r2.Norm(ab)
	}
	return d, nil
}
