// SPDX-License-Identifier: MIT

package seam

import "github.com/pkg/errors"

// Sentinel errors returned by ShortestPaths and CutGraph.
var (
	// ErrNilStore indicates that a nil metric store was passed in.
	ErrNilStore = errors.New("seam: metric store is nil")

	// ErrNoSource indicates that ShortestPaths was called without sources.
	ErrNoSource = errors.New("seam: no source vertex")

	// ErrVertexNotFound indicates a source, cone or root outside the mesh.
	ErrVertexNotFound = errors.New("seam: vertex not found in mesh")

	// ErrNegativeLength indicates an edge length that is negative or NaN.
	ErrNegativeLength = errors.New("seam: negative edge length")
)
