// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/katalvlaran/ricci/embed"
	"github.com/katalvlaran/ricci/halfedge"
)

func buildMesh(name string, n int) (*halfedge.Mesh, error) {
	switch strings.ToLower(name) {
	case "tetrahedron":
		return halfedge.Tetrahedron(), nil
	case "octahedron":
		return halfedge.Octahedron(), nil
	case "icosahedron":
		return halfedge.Icosahedron(), nil
	case "icosphere":
		m := halfedge.Icosahedron()
		for i := 0; i < n; i++ {
			var err error
			if m, err = halfedge.Subdivide(m, true); err != nil {
				return nil, err
			}
		}
		return m, nil
	case "grid":
		return halfedge.Grid(n, n, 1)
	}
	return nil, errors.Errorf("unknown mesh %q", name)
}

type cone struct {
	v halfedge.VertexID
	k float64
}

// parseCones reads "none", "auto" or "v:k,v:k". Auto spreads 2πχ evenly
// over the irregular interior vertices (degree other than 6) of a closed
// mesh and adds nothing to meshes with a border.
func parseCones(list string, m *halfedge.Mesh) ([]cone, error) {
	switch list {
	case "", "none":
		return nil, nil
	case "auto":
		if m.HasBorder() {
			return nil, nil
		}
		var vs []halfedge.VertexID
		for v := 0; v < m.NumVertices(); v++ {
			if m.Degree(halfedge.VertexID(v)) != 6 {
				vs = append(vs, halfedge.VertexID(v))
			}
		}
		if len(vs) == 0 {
			return nil, errors.New("auto cones: mesh has no irregular vertex")
		}
		k := 2 * math.Pi * float64(m.EulerCharacteristic()) / float64(len(vs))
		out := make([]cone, len(vs))
		for i, v := range vs {
			out[i] = cone{v: v, k: k}
		}
		return out, nil
	}

	var out []cone
	for _, item := range strings.Split(list, ",") {
		vs, ks, ok := strings.Cut(strings.TrimSpace(item), ":")
		if !ok {
			return nil, errors.Errorf("cone %q: want v:k", item)
		}
		v, err := strconv.Atoi(vs)
		if err != nil {
			return nil, errors.Wrapf(err, "cone %q", item)
		}
		k, err := strconv.ParseFloat(ks, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "cone %q", item)
		}
		out = append(out, cone{v: halfedge.VertexID(v), k: k})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].v < out[j].v })
	return out, nil
}

// writeOBJ stores one OBJ vertex per image and one face per mesh face.
func writeOBJ(path string, e *embed.Embedding) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	m := e.Mesh()
	// Images are numbered in creation order; collect them per vertex.
	pos := make(map[int]string, e.NumImages())
	for v := 0; v < m.NumVertices(); v++ {
		for _, h := range m.HalfedgesAroundTarget(halfedge.VertexID(v)) {
			if idx := e.ImageIndex(h); idx >= 0 {
				uv := e.UV(h)
				pos[idx] = fmt.Sprintf("v %.9g %.9g 0", uv.X, uv.Y)
			}
		}
	}
	for i := 0; i < e.NumImages(); i++ {
		fmt.Fprintln(w, pos[i])
	}
	for fi := 0; fi < m.NumFaces(); fi++ {
		hs := m.HalfedgesAroundFace(halfedge.FaceID(fi))
		fmt.Fprintf(w, "f %d %d %d\n", e.ImageIndex(hs[0])+1, e.ImageIndex(hs[1])+1, e.ImageIndex(hs[2])+1)
	}
	return w.Flush()
}
