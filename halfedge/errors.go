// SPDX-License-Identifier: MIT
// Package halfedge: sentinel error set.
// Callers branch with errors.Is; context is attached with errors.Wrapf at the
// call site and never baked into the sentinel text.

package halfedge

import "github.com/pkg/errors"

var (
	// ErrBadFace is returned by New when a face references an unknown vertex
	// or repeats a vertex.
	ErrBadFace = errors.New("halfedge: invalid face")

	// ErrNonManifold is returned when the input faces do not describe an
	// oriented 2-manifold (edge shared by more than two faces, inconsistent
	// orientation, or a vertex whose fan is not a single disk/half-disk).
	ErrNonManifold = errors.New("halfedge: mesh is not an oriented manifold")

	// ErrIllegalTopology is returned by FlipEdge/SplitEdge when the requested
	// mutation would break manifoldness or touches a border edge.
	ErrIllegalTopology = errors.New("halfedge: illegal topology operation")

	// ErrOutOfRange indicates an element ID outside the current mesh.
	ErrOutOfRange = errors.New("halfedge: id out of range")

	// ErrEmptyMesh is returned when no faces are supplied.
	ErrEmptyMesh = errors.New("halfedge: mesh has no faces")
)
