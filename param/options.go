// SPDX-License-Identifier: MIT

package param

import (
	"github.com/golang/geo/s1"

	"github.com/katalvlaran/ricci/delaunay"
	"github.com/katalvlaran/ricci/embed"
	"github.com/katalvlaran/ricci/ricci"
)

// Option adjusts a Parameterizer at construction.
type Option func(*config)

type config struct {
	settings  ricci.Settings
	embedOpts []embed.Option
}

// WithScheme selects the remeshing scheme run after every flow step.
func WithScheme(s delaunay.Scheme) Option {
	return func(c *config) { c.settings.Scheme = s }
}

// WithDihedralThreshold sets the feature-edge angle for FeaturePreserving.
func WithDihedralThreshold(a s1.Angle) Option {
	return func(c *config) { c.settings.DihedralThreshold = a }
}

// WithVisitor observes every remesh.
func WithVisitor(v delaunay.Visitor) Option {
	return func(c *config) { c.settings.Visitor = v }
}

// WithSolver selects the radius update rule.
func WithSolver(t ricci.SolverType) Option {
	return func(c *config) { c.settings.Type = t }
}

// WithEmbedOptions forwards options to the planar embedding.
func WithEmbedOptions(opts ...embed.Option) Option {
	return func(c *config) { c.embedOpts = append(c.embedOpts, opts...) }
}
