// SPDX-License-Identifier: MIT

package halfedge

// HalfedgesAroundTarget returns every halfedge pointing into v, border
// halfedges included, starting at VertexHalfedge(v).
//
// The walk is h → Opposite(Next(h)); it is bounded by NumHalfedges so a
// corrupted mesh cannot loop forever.
func (m *Mesh) HalfedgesAroundTarget(v VertexID) []HalfedgeID {
	start := m.vhalf[v]
	out := make([]HalfedgeID, 0, 6)
	h := start
	for i := 0; i <= len(m.target); i++ {
		out = append(out, h)
		h = m.Opposite(m.next[h])
		if h == start {
			return out
		}
	}
	return out
}

// HalfedgesAroundFace returns the three halfedges of f starting at
// FaceHalfedge(f).
func (m *Mesh) HalfedgesAroundFace(f FaceID) [3]HalfedgeID {
	h := m.fhalf[f]
	n := m.next[h]
	return [3]HalfedgeID{h, n, m.next[n]}
}

// VerticesAroundVertex returns the one-ring neighbours of v.
func (m *Mesh) VerticesAroundVertex(v VertexID) []VertexID {
	hs := m.HalfedgesAroundTarget(v)
	out := make([]VertexID, len(hs))
	for i, h := range hs {
		out[i] = m.Source(h)
	}
	return out
}

// Degree returns the number of edges incident to v.
func (m *Mesh) Degree(v VertexID) int { return len(m.HalfedgesAroundTarget(v)) }

// FindHalfedge returns the halfedge u→v, or NoHalfedge if u and v are not adjacent.
func (m *Mesh) FindHalfedge(u, v VertexID) HalfedgeID {
	for _, h := range m.HalfedgesAroundTarget(v) {
		if m.Source(h) == u {
			return h
		}
	}
	return NoHalfedge
}
