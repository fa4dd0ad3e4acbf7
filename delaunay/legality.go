// SPDX-License-Identifier: MIT

package delaunay

import (
	"math"

	"github.com/katalvlaran/ricci/halfedge"
	"github.com/katalvlaran/ricci/metric"
)

// IsDelaunay reports whether e is locally Delaunay under the store's
// lengths: the two angles facing e sum to at most π (plus DefaultEpsilon).
// Border edges are always Delaunay.
func IsDelaunay(s *metric.Store, e halfedge.EdgeID) bool {
	return isDelaunay(s, e, DefaultEpsilon)
}

func isDelaunay(s *metric.Store, e halfedge.EdgeID, eps float64) bool {
	if s.Mesh().IsBorderEdge(e) {
		return true
	}
	alpha, beta := s.OppositeAngles(e)
	return alpha+beta <= math.Pi+eps
}

// IsMeshDelaunay reports whether every edge is locally Delaunay.
func IsMeshDelaunay(s *metric.Store) bool {
	for e := 0; e < s.Mesh().NumEdges(); e++ {
		if !IsDelaunay(s, halfedge.EdgeID(e)) {
			return false
		}
	}
	return true
}

// NonDelaunayEdges lists the edges failing IsDelaunay, in ID order.
func NonDelaunayEdges(s *metric.Store) []halfedge.EdgeID {
	var out []halfedge.EdgeID
	for e := 0; e < s.Mesh().NumEdges(); e++ {
		if !IsDelaunay(s, halfedge.EdgeID(e)) {
			out = append(out, halfedge.EdgeID(e))
		}
	}
	return out
}
