// SPDX-License-Identifier: MIT

package metric

import (
	"math"

	"github.com/katalvlaran/ricci/halfedge"
)

// CornerAngle returns the interior angle at Target(h) of Face(h), computed
// from edge lengths with the law of cosines. The cosine is clamped to
// [-1, 1] so nearly degenerate faces yield 0 or π instead of NaN.
// Border halfedges have no corner and report 0.
func (s *Store) CornerAngle(h halfedge.HalfedgeID) float64 {
	if s.mesh.IsBorder(h) {
		return 0
	}
	n := s.mesh.Next(h)
	a := s.HalfedgeLength(h)
	b := s.HalfedgeLength(n)
	c := s.HalfedgeLength(s.mesh.Next(n))
	return angleFromLengths(a, b, c)
}

// angleFromLengths returns the angle between sides a and b opposite side c.
func angleFromLengths(a, b, c float64) float64 {
	cos := (a*a + b*b - c*c) / (2 * a * b)
	return math.Acos(math.Max(-1, math.Min(1, cos)))
}

// AngleSum returns the sum of corner angles at v.
func (s *Store) AngleSum(v halfedge.VertexID) float64 {
	var sum float64
	for _, h := range s.mesh.HalfedgesAroundTarget(v) {
		sum += s.CornerAngle(h)
	}
	return sum
}

// DiscreteCurvature returns the angle defect at v: 2π − Σ angles for interior
// vertices, π − Σ angles for border vertices.
func (s *Store) DiscreteCurvature(v halfedge.VertexID) float64 {
	if s.mesh.IsBorderVertex(v) {
		return math.Pi - s.AngleSum(v)
	}
	return 2*math.Pi - s.AngleSum(v)
}

// Curvatures returns DiscreteCurvature for every vertex.
func (s *Store) Curvatures() []float64 {
	k := make([]float64, s.mesh.NumVertices())
	for v := range k {
		k[v] = s.DiscreteCurvature(halfedge.VertexID(v))
	}
	return k
}

// TotalCurvature returns Σ DiscreteCurvature(v). For a valid metric it equals
// 2π·χ (discrete Gauss–Bonnet).
func (s *Store) TotalCurvature() float64 {
	var sum float64
	for v := 0; v < s.mesh.NumVertices(); v++ {
		sum += s.DiscreteCurvature(halfedge.VertexID(v))
	}
	return sum
}

// OppositeAngles returns the angles facing e in the face left of its even
// halfedge and in the face on the other side. A border side reports 0.
func (s *Store) OppositeAngles(e halfedge.EdgeID) (alpha, beta float64) {
	h := s.mesh.Halfedge(e)
	if !s.mesh.IsBorder(h) {
		alpha = s.CornerAngle(s.mesh.Next(h))
	}
	o := s.mesh.Opposite(h)
	if !s.mesh.IsBorder(o) {
		beta = s.CornerAngle(s.mesh.Next(o))
	}
	return alpha, beta
}

// CotanWeight returns (cot α + cot β)/2 over the non-border sides of e.
func (s *Store) CotanWeight(e halfedge.EdgeID) float64 {
	var w float64
	h := s.mesh.Halfedge(e)
	for _, x := range [2]halfedge.HalfedgeID{h, s.mesh.Opposite(h)} {
		if s.mesh.IsBorder(x) {
			continue
		}
		w += 0.5 / math.Tan(s.CornerAngle(s.mesh.Next(x)))
	}
	return w
}
