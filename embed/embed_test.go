// SPDX-License-Identifier: MIT

package embed_test

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/ricci/embed"
	"github.com/katalvlaran/ricci/halfedge"
	"github.com/katalvlaran/ricci/metric"
	"github.com/katalvlaran/ricci/seam"
)

func newStore(t *testing.T, m *halfedge.Mesh) *metric.Store {
	t.Helper()
	s, err := metric.New(m)
	require.NoError(t, err)
	return s
}

// assertIsometric checks every corner-to-corner distance against the metric.
func assertIsometric(t *testing.T, s *metric.Store, e *embed.Embedding, faces ...halfedge.FaceID) {
	t.Helper()
	m := s.Mesh()
	if len(faces) == 0 {
		for f := 0; f < m.NumFaces(); f++ {
			faces = append(faces, halfedge.FaceID(f))
		}
	}
	for _, f := range faces {
		for _, h := range m.HalfedgesAroundFace(f) {
			d := r2.Norm(r2.Sub(e.UV(h), e.UV(m.Prev(h))))
			assert.InDelta(t, s.HalfedgeLength(h), d, 1e-9, "face %d halfedge %d", f, h)
		}
		assert.Greater(t, e.SignedArea(f), 0.0, "face %d orientation", f)
	}
}

func TestEmbed_Triangle(t *testing.T) {
	tri, err := halfedge.Triangle(2)
	require.NoError(t, err)
	s := newStore(t, tri)

	e, err := embed.EmbedCirclePackingMetric(s, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, e.Regions())
	assert.Equal(t, 3, e.NumImages())
	assertIsometric(t, s, e)
	assert.InDelta(t, math.Sqrt(3), e.SignedArea(0), 1e-12)

	box := e.Bounds()
	assert.InDelta(t, 0, box.Min.X, 1e-12)
	assert.InDelta(t, 0, box.Min.Y, 1e-12)
	assert.InDelta(t, 2, box.Max.X, 1e-12)
	assert.InDelta(t, math.Sqrt(3), box.Max.Y, 1e-12)
}

func TestEmbed_FlatGrid(t *testing.T) {
	grid, err := halfedge.Grid(3, 3, 0.5)
	require.NoError(t, err)
	s := newStore(t, grid)

	var order []halfedge.FaceID
	e, err := embed.EmbedCirclePackingMetric(s, nil,
		embed.WithSeedFace(5),
		embed.WithOnVisitFace(func(f halfedge.FaceID, region int) {
			assert.Equal(t, 0, region)
			order = append(order, f)
		}))
	require.NoError(t, err)

	assert.Equal(t, 1, e.Regions())
	assert.Equal(t, grid.NumVertices(), e.NumImages())
	require.Len(t, order, grid.NumFaces())
	assert.Equal(t, halfedge.FaceID(5), order[0])
	assertIsometric(t, s, e)

	for v := 0; v < grid.NumVertices(); v++ {
		assert.Len(t, e.Images(halfedge.VertexID(v)), 1)
	}
	diag := r2.Sub(e.Images(15)[0].UV, e.Images(0)[0].UV)
	assert.InDelta(t, 1.5*math.Sqrt2, r2.Norm(diag), 1e-9, "layout is a rigid motion")
}

func TestEmbed_ConesCutTheSurface(t *testing.T) {
	oct := halfedge.Octahedron()
	s := newStore(t, oct)

	t.Run("one cone", func(t *testing.T) {
		e, err := embed.EmbedCirclePackingMetric(s, map[halfedge.VertexID]bool{4: true})
		require.NoError(t, err)
		assert.Equal(t, 1, e.Regions())
		require.Equal(t, 1, e.Seam().Len(), "slit")
		assert.Equal(t, 1, e.Seam().Degree(4))
		assert.Len(t, e.Images(4), 1)
		assert.Equal(t, oct.NumVertices(), e.NumImages())
	})

	t.Run("two cones", func(t *testing.T) {
		e, err := embed.EmbedCirclePackingMetric(s, map[halfedge.VertexID]bool{4: true, 5: true, 0: false})
		require.NoError(t, err)
		// One equator vertex sits in the middle of the seam and is split.
		assert.Equal(t, 1, e.Regions())
		assert.Equal(t, 2, e.Seam().Len())
		assert.Equal(t, 7, e.NumImages())
		assert.Len(t, e.Images(4), 1)
		assert.Len(t, e.Images(5), 1)
	})

	t.Run("all cones", func(t *testing.T) {
		tet := newStore(t, halfedge.Tetrahedron())
		cones := map[halfedge.VertexID]bool{0: true, 1: true, 2: true, 3: true}
		e, err := embed.EmbedCirclePackingMetric(tet, cones)
		require.NoError(t, err)
		// The classic net: vertex 0 is copied onto each flap.
		assert.Equal(t, 1, e.Regions())
		assert.Len(t, e.Images(0), 3)
		assert.Equal(t, 6, e.NumImages())
		assertIsometric(t, tet, e)
	})
}

func TestEmbed_SubdividedTetrahedronIsFlat(t *testing.T) {
	m, err := halfedge.Subdivide(halfedge.Tetrahedron(), false)
	require.NoError(t, err)
	m, err = halfedge.Subdivide(m, false)
	require.NoError(t, err)
	s := newStore(t, m)
	for v := 4; v < m.NumVertices(); v++ {
		require.InDelta(t, 0, s.DiscreteCurvature(halfedge.VertexID(v)), 1e-12)
	}

	cones := map[halfedge.VertexID]bool{0: true, 1: true, 2: true, 3: true}
	e, err := embed.EmbedCirclePackingMetric(s, cones)
	require.NoError(t, err)
	assert.Equal(t, 1, e.Regions())
	// Three original edges of four segments each.
	assert.Equal(t, 12, e.Seam().Len())
	assert.Equal(t, m.NumVertices()+9+2, e.NumImages())
	assertIsometric(t, s, e)
}

func TestEmbed_ExplicitSeam(t *testing.T) {
	grid, err := halfedge.Grid(3, 3, 0.5)
	require.NoError(t, err)
	s := newStore(t, grid)

	var line []halfedge.EdgeID
	for _, pair := range [][2]halfedge.VertexID{{1, 5}, {5, 9}, {9, 13}} {
		h := grid.FindHalfedge(pair[0], pair[1])
		require.NotEqual(t, halfedge.NoHalfedge, h)
		line = append(line, grid.Edge(h))
	}
	cut, err := seam.NewCut(grid, line)
	require.NoError(t, err)

	e, err := embed.EmbedCirclePackingMetric(s, nil, embed.WithSeam(cut))
	require.NoError(t, err)
	assert.Same(t, cut, e.Seam())
	assert.Equal(t, 2, e.Regions(), "the line crosses the grid")
	assert.Equal(t, grid.NumVertices()+4, e.NumImages())
	for _, v := range []halfedge.VertexID{1, 5, 9, 13} {
		ims := e.Images(v)
		require.Len(t, ims, 2)
		assert.NotEqual(t, ims[0].Region, ims[1].Region)
	}
	assertIsometric(t, s, e)

	other, err := seam.NewCut(halfedge.Tetrahedron(), nil)
	require.NoError(t, err)
	_, err = embed.EmbedCirclePackingMetric(s, nil, embed.WithSeam(other))
	assert.True(t, errors.Is(err, embed.ErrOptionViolation))
}

func TestEmbed_Errors(t *testing.T) {
	tri, err := halfedge.Triangle(1)
	require.NoError(t, err)
	s := newStore(t, tri)

	_, err = embed.EmbedCirclePackingMetric(s, nil, embed.WithSeedFace(3))
	assert.True(t, errors.Is(err, embed.ErrOptionViolation))

	require.NoError(t, s.RestoreLengths([]float64{1, 1, 5}))
	_, err = embed.EmbedCirclePackingMetric(s, nil)
	assert.True(t, errors.Is(err, embed.ErrInconsistentMetric))
}
