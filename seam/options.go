// SPDX-License-Identifier: MIT

package seam

import "github.com/katalvlaran/ricci/halfedge"

// Options configures CutGraph.
type Options struct {
	// Root anchors the cut of a closed piece. NoVertex selects the lowest
	// cone of the piece, or its lowest vertex when it has no cone.
	Root halfedge.VertexID
}

// Option represents a functional option for configuring CutGraph.
type Option func(*Options)

// DefaultOptions returns automatic root selection.
func DefaultOptions() Options {
	return Options{Root: halfedge.NoVertex}
}

// WithRoot anchors the cut of the closed piece containing v at v. It has
// no effect on pieces with a border.
func WithRoot(v halfedge.VertexID) Option {
	return func(o *Options) {
		o.Root = v
	}
}
