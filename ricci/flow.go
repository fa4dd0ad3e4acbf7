// SPDX-License-Identifier: MIT

package ricci

import (
	"slices"

	"github.com/katalvlaran/ricci/halfedge"
	"github.com/katalvlaran/ricci/metric"
)

// Flow is the one-call form of NewSolver, SetSettings, AddCone and Solve.
// Cones are registered in ascending vertex order so the first invalid one
// reported is deterministic.
func Flow(s *metric.Store, targets map[halfedge.VertexID]float64, st Settings) (Result, error) {
	sv := NewSolver(s)
	if err := sv.SetSettings(st); err != nil {
		return Result{}, err
	}
	for _, v := range sortedKeys(targets) {
		if err := sv.AddCone(v, targets[v]); err != nil {
			return Result{}, err
		}
	}
	return sv.Solve()
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[V any](m map[halfedge.VertexID]V) []halfedge.VertexID {
	keys := make([]halfedge.VertexID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
