// SPDX-License-Identifier: MIT

package halfedge

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// EdgeLength returns the Euclidean length of e in the embedding.
func (m *Mesh) EdgeLength(e EdgeID) float64 {
	u, v := m.EdgeVertices(e)
	return r3.Norm(r3.Sub(m.positions[v], m.positions[u]))
}

// FaceNormal returns the unit normal of f (zero vector for degenerate faces).
func (m *Mesh) FaceNormal(f FaceID) r3.Vec {
	c := m.FaceVertices(f)
	n := r3.Cross(
		r3.Sub(m.positions[c[1]], m.positions[c[0]]),
		r3.Sub(m.positions[c[2]], m.positions[c[0]]),
	)
	l := r3.Norm(n)
	if l == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/l, n)
}

// FaceArea returns the area of f in the embedding.
func (m *Mesh) FaceArea(f FaceID) float64 {
	c := m.FaceVertices(f)
	return 0.5 * r3.Norm(r3.Cross(
		r3.Sub(m.positions[c[1]], m.positions[c[0]]),
		r3.Sub(m.positions[c[2]], m.positions[c[0]]),
	))
}

// DihedralAngle returns the angle between the normals of the two faces
// sharing e, in radians: 0 for coplanar faces, approaching π for a sharp
// fold. Border edges report 0.
func (m *Mesh) DihedralAngle(e EdgeID) float64 {
	if m.IsBorderEdge(e) {
		return 0
	}
	h := m.Halfedge(e)
	n1 := m.FaceNormal(m.face[h])
	n2 := m.FaceNormal(m.face[h^1])
	c := r3.Dot(n1, n2)
	return math.Acos(math.Max(-1, math.Min(1, c)))
}

// PointOnEdge returns the point at parameter t along the even halfedge of e
// (t = 0 at its source, t = 1 at its target).
func (m *Mesh) PointOnEdge(e EdgeID, t float64) r3.Vec {
	u, v := m.EdgeVertices(e)
	a, b := m.positions[u], m.positions[v]
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}
