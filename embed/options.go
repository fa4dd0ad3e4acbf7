// SPDX-License-Identifier: MIT

package embed

import (
	"github.com/katalvlaran/ricci/halfedge"
	"github.com/katalvlaran/ricci/seam"
)

// Options configures EmbedCirclePackingMetric.
type Options struct {
	// SeedFace is laid out first; -1 selects the lowest face ID.
	SeedFace halfedge.FaceID

	// Seam replaces the cut derived from the cones. It must belong to the
	// embedded mesh.
	Seam *seam.Cut

	// OnVisitFace is called once per face in BFS order, with the region the
	// face was assigned to.
	OnVisitFace func(f halfedge.FaceID, region int)
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns no hook, automatic seed selection and the cone
// seam.
func DefaultOptions() Options {
	return Options{SeedFace: halfedge.NoFace}
}

// WithSeedFace starts the traversal at f.
func WithSeedFace(f halfedge.FaceID) Option {
	return func(o *Options) { o.SeedFace = f }
}

// WithSeam lays the metric out along c instead of the seam joining the
// cones; nil restores the default.
func WithSeam(c *seam.Cut) Option {
	return func(o *Options) { o.Seam = c }
}

// WithOnVisitFace installs a per-face hook; nil removes it.
func WithOnVisitFace(fn func(f halfedge.FaceID, region int)) Option {
	return func(o *Options) { o.OnVisitFace = fn }
}
