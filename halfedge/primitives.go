// SPDX-License-Identifier: MIT
//
// primitives.go: canonical closed and open test surfaces.
//
// Design:
//   • Platonic shells are stored as fixed vertex/face tables (outward CCW faces)
//     and rescaled to unit edge length at construction time.
//   • Grid and Subdivide generate meshes deterministically from their parameters.

package halfedge

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// Solid enumerates the built-in Platonic shells.
type Solid int

// Enum values (stable ordering).
const (
	TetrahedronSolid Solid = iota // V=4,  E=6,  F=4
	OctahedronSolid               // V=6,  E=12, F=8
	IcosahedronSolid              // V=12, E=30, F=20
)

// String provides a readable identifier for logs.
func (s Solid) String() string {
	switch s {
	case TetrahedronSolid:
		return "Tetrahedron"
	case OctahedronSolid:
		return "Octahedron"
	case IcosahedronSolid:
		return "Icosahedron"
	default:
		return "Unknown"
	}
}

type solidTable struct {
	vertices []r3.Vec
	faces    [][3]int
}

var (
	golden    = (1 + math.Sqrt(5)) / 2
	sqrt3     = math.Sqrt(3)
	tetHeight = math.Sqrt(2.0 / 3.0)
)

var solidTables = map[Solid]solidTable{
	TetrahedronSolid: {
		vertices: []r3.Vec{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0.5, Y: sqrt3 / 2, Z: 0},
			{X: 0.5, Y: sqrt3 / 6, Z: tetHeight},
		},
		faces: [][3]int{{0, 2, 1}, {0, 1, 3}, {1, 2, 3}, {2, 0, 3}},
	},
	OctahedronSolid: {
		vertices: []r3.Vec{
			{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
		},
		faces: [][3]int{
			{0, 2, 4}, {2, 1, 4}, {1, 3, 4}, {3, 0, 4},
			{2, 0, 5}, {1, 2, 5}, {3, 1, 5}, {0, 3, 5},
		},
	},
	IcosahedronSolid: {
		vertices: []r3.Vec{
			{X: -1, Y: golden}, {X: 1, Y: golden}, {X: -1, Y: -golden}, {X: 1, Y: -golden},
			{Y: -1, Z: golden}, {Y: 1, Z: golden}, {Y: -1, Z: -golden}, {Y: 1, Z: -golden},
			{X: golden, Z: -1}, {X: golden, Z: 1}, {X: -golden, Z: -1}, {X: -golden, Z: 1},
		},
		faces: [][3]int{
			{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
			{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
			{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
			{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
		},
	},
}

// PlatonicSolid builds the requested shell scaled to unit edge length.
func PlatonicSolid(s Solid) (*Mesh, error) {
	tab, ok := solidTables[s]
	if !ok {
		return nil, errors.Wrapf(ErrBadFace, "unknown solid %v", s)
	}
	a, b := tab.faces[0][0], tab.faces[0][1]
	scale := 1 / r3.Norm(r3.Sub(tab.vertices[b], tab.vertices[a]))
	pos := make([]r3.Vec, len(tab.vertices))
	for i, p := range tab.vertices {
		pos[i] = r3.Scale(scale, p)
	}
	return New(pos, tab.faces)
}

// Tetrahedron returns a regular tetrahedron with unit edges.
func Tetrahedron() *Mesh { return mustSolid(TetrahedronSolid) }

// Octahedron returns a regular octahedron with unit edges.
func Octahedron() *Mesh { return mustSolid(OctahedronSolid) }

// Icosahedron returns a regular icosahedron with unit edges.
func Icosahedron() *Mesh { return mustSolid(IcosahedronSolid) }

// mustSolid is only used with the static tables above, which are valid.
func mustSolid(s Solid) *Mesh {
	m, err := PlatonicSolid(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Triangle returns a single equilateral triangle in the z = 0 plane.
func Triangle(side float64) (*Mesh, error) {
	if !(side > 0) {
		return nil, errors.Wrapf(ErrBadFace, "side %g", side)
	}
	pos := []r3.Vec{
		{X: 0, Y: 0},
		{X: side, Y: 0},
		{X: side / 2, Y: side * sqrt3 / 2},
	}
	return New(pos, [][3]int{{0, 1, 2}})
}

// Grid returns an open nx × ny grid of squares in the z = 0 plane, each square
// split along its rising diagonal.
func Grid(nx, ny int, spacing float64) (*Mesh, error) {
	if nx < 1 || ny < 1 || !(spacing > 0) {
		return nil, errors.Wrapf(ErrEmptyMesh, "grid %dx%d spacing %g", nx, ny, spacing)
	}
	idx := func(i, j int) int { return j*(nx+1) + i }
	pos := make([]r3.Vec, 0, (nx+1)*(ny+1))
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			pos = append(pos, r3.Vec{X: float64(i) * spacing, Y: float64(j) * spacing})
		}
	}
	faces := make([][3]int, 0, 2*nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			a, b, c, d := idx(i, j), idx(i+1, j), idx(i+1, j+1), idx(i, j+1)
			faces = append(faces, [3]int{a, b, c}, [3]int{a, c, d})
		}
	}
	return New(pos, faces)
}

// Subdivide performs one 1→4 midpoint subdivision. With project set, every
// vertex is pushed onto the sphere through the original vertices (centroid
// and mean radius), which turns an icosahedron into an icosphere.
func Subdivide(m *Mesh, project bool) (*Mesh, error) {
	pos := append([]r3.Vec(nil), m.positions...)
	mid := make([]int, m.NumEdges())
	for e := range mid {
		mid[e] = len(pos)
		pos = append(pos, m.PointOnEdge(EdgeID(e), 0.5))
	}
	faces := make([][3]int, 0, 4*m.NumFaces())
	for f := 0; f < m.NumFaces(); f++ {
		hs := m.HalfedgesAroundFace(FaceID(f))
		c := [3]int{int(m.Source(hs[0])), int(m.Source(hs[1])), int(m.Source(hs[2]))}
		x := [3]int{mid[m.Edge(hs[0])], mid[m.Edge(hs[1])], mid[m.Edge(hs[2])]}
		faces = append(faces,
			[3]int{c[0], x[0], x[2]},
			[3]int{c[1], x[1], x[0]},
			[3]int{c[2], x[2], x[1]},
			[3]int{x[0], x[1], x[2]},
		)
	}
	if project {
		var center r3.Vec
		for _, p := range m.positions {
			center = r3.Add(center, p)
		}
		center = r3.Scale(1/float64(len(m.positions)), center)
		var radius float64
		for _, p := range m.positions {
			radius += r3.Norm(r3.Sub(p, center))
		}
		radius /= float64(len(m.positions))
		for i, p := range pos {
			d := r3.Sub(p, center)
			pos[i] = r3.Add(center, r3.Scale(radius/r3.Norm(d), d))
		}
	}
	return New(pos, faces)
}
