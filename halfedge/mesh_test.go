// SPDX-License-Identifier: MIT

package halfedge_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/ricci/halfedge"
)

func square() []r3.Vec {
	return []r3.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
}

func TestNew_Validation(t *testing.T) {
	cases := []struct {
		name  string
		pos   []r3.Vec
		faces [][3]int
		want  error
	}{
		{"no faces", square(), nil, halfedge.ErrEmptyMesh},
		{"index out of range", square(), [][3]int{{0, 1, 7}}, halfedge.ErrBadFace},
		{"negative index", square(), [][3]int{{0, -1, 2}}, halfedge.ErrBadFace},
		{"repeated corner", square(), [][3]int{{0, 1, 1}}, halfedge.ErrBadFace},
		{"isolated vertex", square(), [][3]int{{0, 1, 2}}, halfedge.ErrNonManifold},
		{"inconsistent orientation", square(), [][3]int{{0, 1, 2}, {0, 2, 1}, {0, 2, 3}}, halfedge.ErrNonManifold},
		{
			"bow tie",
			[]r3.Vec{{}, {X: 1}, {X: 1, Y: 1}, {X: -1}, {X: -1, Y: -1}},
			[][3]int{{0, 1, 2}, {0, 3, 4}},
			halfedge.ErrNonManifold,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := halfedge.New(tc.pos, tc.faces)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestNew_Square(t *testing.T) {
	m, err := halfedge.New(square(), [][3]int{{0, 1, 2}, {0, 2, 3}})
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	assert.Equal(t, 4, m.NumVertices())
	assert.Equal(t, 5, m.NumEdges())
	assert.Equal(t, 10, m.NumHalfedges())
	assert.Equal(t, 2, m.NumFaces())
	assert.Equal(t, 1, m.EulerCharacteristic())
	assert.True(t, m.HasBorder())

	borderEdges := 0
	for e := 0; e < m.NumEdges(); e++ {
		if m.IsBorderEdge(halfedge.EdgeID(e)) {
			borderEdges++
		}
	}
	assert.Equal(t, 4, borderEdges)

	for v := 0; v < m.NumVertices(); v++ {
		vid := halfedge.VertexID(v)
		assert.True(t, m.IsBorderVertex(vid))
		assert.True(t, m.IsBorder(m.VertexHalfedge(vid)), "border halfedge preferred at %d", v)
	}
	assert.Equal(t, 3, m.Degree(0))
	assert.Equal(t, 2, m.Degree(1))
}

func TestMesh_Navigation(t *testing.T) {
	m := halfedge.Tetrahedron()
	require.False(t, m.HasBorder())
	assert.Equal(t, 2, m.EulerCharacteristic())

	for h := 0; h < m.NumHalfedges(); h++ {
		hid := halfedge.HalfedgeID(h)
		assert.Equal(t, hid, m.Opposite(m.Opposite(hid)))
		assert.Equal(t, m.Edge(hid), m.Edge(m.Opposite(hid)))
		assert.Equal(t, hid, m.Prev(m.Next(hid)))
		assert.Equal(t, m.Target(hid), m.Source(m.Next(hid)))
		assert.Equal(t, m.Face(hid), m.Face(m.Next(hid)))
	}
	for f := 0; f < m.NumFaces(); f++ {
		fid := halfedge.FaceID(f)
		hs := m.HalfedgesAroundFace(fid)
		vs := m.FaceVertices(fid)
		for i, h := range hs {
			assert.Equal(t, vs[i], m.Source(h))
			assert.Equal(t, fid, m.Face(h))
		}
		n := m.FaceNormal(fid)
		assert.InDelta(t, 1.0, r3.Norm(n), 1e-12)
	}
}

func TestMesh_Circulators(t *testing.T) {
	m := halfedge.Octahedron()
	for v := 0; v < m.NumVertices(); v++ {
		vid := halfedge.VertexID(v)
		ring := m.VerticesAroundVertex(vid)
		require.Len(t, ring, 4)
		for _, u := range ring {
			h := m.FindHalfedge(u, vid)
			require.NotEqual(t, halfedge.NoHalfedge, h)
			assert.Equal(t, vid, m.Target(h))
			assert.Equal(t, u, m.Source(h))
		}
		for _, h := range m.HalfedgesAroundTarget(vid) {
			assert.Equal(t, vid, m.Target(h))
		}
	}
	// Antipodal vertices of the octahedron are not adjacent.
	assert.Equal(t, halfedge.NoHalfedge, m.FindHalfedge(4, 5))
}

func TestMesh_Geometry(t *testing.T) {
	tet := halfedge.Tetrahedron()
	for e := 0; e < tet.NumEdges(); e++ {
		eid := halfedge.EdgeID(e)
		assert.InDelta(t, 1.0, tet.EdgeLength(eid), 1e-12)
		// Normals of a regular tetrahedron meet at π − acos(1/3).
		assert.InDelta(t, 1.9106332362490186, tet.DihedralAngle(eid), 1e-9)
	}
	for f := 0; f < tet.NumFaces(); f++ {
		assert.InDelta(t, 0.4330127018922193, tet.FaceArea(halfedge.FaceID(f)), 1e-12)
	}

	g, err := halfedge.Grid(3, 2, 0.5)
	require.NoError(t, err)
	for e := 0; e < g.NumEdges(); e++ {
		assert.InDelta(t, 0.0, g.DihedralAngle(halfedge.EdgeID(e)), 1e-12)
	}
	mid := g.PointOnEdge(0, 0.5)
	u, v := g.EdgeVertices(0)
	want := r3.Scale(0.5, r3.Add(g.Position(u), g.Position(v)))
	assert.InDelta(t, 0.0, r3.Norm(r3.Sub(mid, want)), 1e-15)
}
