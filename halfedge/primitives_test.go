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

func TestPlatonicSolids(t *testing.T) {
	cases := []struct {
		solid   halfedge.Solid
		v, e, f int
		degree  int
	}{
		{halfedge.TetrahedronSolid, 4, 6, 4, 3},
		{halfedge.OctahedronSolid, 6, 12, 8, 4},
		{halfedge.IcosahedronSolid, 12, 30, 20, 5},
	}
	for _, tc := range cases {
		t.Run(tc.solid.String(), func(t *testing.T) {
			m, err := halfedge.PlatonicSolid(tc.solid)
			require.NoError(t, err)
			require.NoError(t, m.Validate())
			assert.Equal(t, tc.v, m.NumVertices())
			assert.Equal(t, tc.e, m.NumEdges())
			assert.Equal(t, tc.f, m.NumFaces())
			assert.Equal(t, 2, m.EulerCharacteristic())
			for v := 0; v < m.NumVertices(); v++ {
				assert.Equal(t, tc.degree, m.Degree(halfedge.VertexID(v)))
			}
			for e := 0; e < m.NumEdges(); e++ {
				assert.InDelta(t, 1.0, m.EdgeLength(halfedge.EdgeID(e)), 1e-9)
			}
			// Outward orientation: normals point away from the centroid.
			var c r3.Vec
			for v := 0; v < m.NumVertices(); v++ {
				c = r3.Add(c, m.Position(halfedge.VertexID(v)))
			}
			c = r3.Scale(1/float64(m.NumVertices()), c)
			for f := 0; f < m.NumFaces(); f++ {
				fid := halfedge.FaceID(f)
				p := m.Position(m.FaceVertices(fid)[0])
				assert.Positive(t, r3.Dot(m.FaceNormal(fid), r3.Sub(p, c)), "face %d", f)
			}
		})
	}

	_, err := halfedge.PlatonicSolid(halfedge.Solid(42))
	assert.True(t, errors.Is(err, halfedge.ErrBadFace))
}

func TestTriangleAndGrid(t *testing.T) {
	tri, err := halfedge.Triangle(2)
	require.NoError(t, err)
	assert.Equal(t, 1, tri.EulerCharacteristic())
	for e := 0; e < 3; e++ {
		assert.InDelta(t, 2.0, tri.EdgeLength(halfedge.EdgeID(e)), 1e-12)
	}
	_, err = halfedge.Triangle(0)
	assert.True(t, errors.Is(err, halfedge.ErrBadFace))

	g, err := halfedge.Grid(4, 3, 1)
	require.NoError(t, err)
	require.NoError(t, g.Validate())
	assert.Equal(t, 20, g.NumVertices())
	assert.Equal(t, 24, g.NumFaces())
	assert.Equal(t, 1, g.EulerCharacteristic())
	interior := 0
	for v := 0; v < g.NumVertices(); v++ {
		if !g.IsBorderVertex(halfedge.VertexID(v)) {
			interior++
		}
	}
	assert.Equal(t, 6, interior)

	_, err = halfedge.Grid(0, 3, 1)
	assert.True(t, errors.Is(err, halfedge.ErrEmptyMesh))
}

func TestSubdivide(t *testing.T) {
	ico := halfedge.Icosahedron()
	sphere, err := halfedge.Subdivide(ico, true)
	require.NoError(t, err)
	require.NoError(t, sphere.Validate())
	assert.Equal(t, 42, sphere.NumVertices())
	assert.Equal(t, 120, sphere.NumEdges())
	assert.Equal(t, 80, sphere.NumFaces())

	r := r3.Norm(sphere.Position(0))
	for v := 0; v < sphere.NumVertices(); v++ {
		assert.InDelta(t, r, r3.Norm(sphere.Position(halfedge.VertexID(v))), 1e-9)
	}

	g, err := halfedge.Grid(2, 2, 1)
	require.NoError(t, err)
	fine, err := halfedge.Subdivide(g, false)
	require.NoError(t, err)
	assert.Equal(t, 4*g.NumFaces(), fine.NumFaces())
	assert.Equal(t, 1, fine.EulerCharacteristic())
}
