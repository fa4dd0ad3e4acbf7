// SPDX-License-Identifier: MIT

// Command ricciflow flattens one of the built-in meshes with discrete Ricci
// flow and optionally writes the planar layout as a Wavefront OBJ file.
//
//	ricciflow -mesh icosphere -subdiv 2 -solver newton -out layout.obj
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/katalvlaran/ricci/delaunay"
	"github.com/katalvlaran/ricci/param"
	"github.com/katalvlaran/ricci/ricci"
)

type cli struct {
	mesh   string
	subdiv int
	solver string
	scheme string
	cones  string
	out    string
	debug  bool

	step   float64
	eps    float64
	iters  int
	window int
}

func main() {
	var c cli
	fset, err := flags(&c)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ricciflow:", err)
		os.Exit(2)
	}
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})
	if err := fset.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	level := slog.LevelInfo
	if c.debug {
		level = slog.LevelDebug
	}
	param.SetLogger(slog.New(newKlogHandler(level)))
	err = run(c)
	klog.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ricciflow:", err)
		os.Exit(1)
	}
}

func run(c cli) error {
	m, err := buildMesh(c.mesh, c.subdiv)
	if err != nil {
		return err
	}
	st, err := c.settings()
	if err != nil {
		return err
	}
	p, err := param.New(m)
	if err != nil {
		return err
	}
	if err := p.SetSolverSettings(st); err != nil {
		return err
	}
	cones, err := parseCones(c.cones, m)
	if err != nil {
		return err
	}
	for _, cn := range cones {
		if err := p.AddCone(cn.v, cn.k); err != nil {
			return err
		}
	}
	klog.Infof("mesh %s: V=%d E=%d F=%d, %d cones", c.mesh, m.NumVertices(), m.NumEdges(), m.NumFaces(), len(cones))

	res, err := p.Parameterize()
	if err != nil {
		return err
	}
	fmt.Printf("status=%v iterations=%d residual=%.3g flips=%d splits=%d\n",
		res.Solve.Status, res.Solve.Iterations, res.Solve.Residual, res.Solve.Flips, res.Solve.Splits)
	fmt.Printf("regions=%d images=%d\n", res.Embedding.Regions(), res.Embedding.NumImages())
	if serr := res.Err(); serr != nil {
		klog.Warningf("%v", serr)
	}
	if c.out == "" {
		return nil
	}
	return writeOBJ(c.out, res.Embedding)
}

// flags registers the klog flags and the command flags of c on a new set,
// with klog writing to stderr.
func flags(c *cli) (*flag.FlagSet, error) {
	fset := flag.NewFlagSet("ricciflow", flag.ContinueOnError)
	klog.InitFlags(fset)
	if err := fset.Set("logtostderr", "true"); err != nil {
		return nil, errors.Wrap(err, "klog logtostderr")
	}

	def := ricci.DefaultSettings()
	fset.StringVar(&c.mesh, "mesh", "icosphere", "tetrahedron, octahedron, icosahedron, icosphere or grid")
	fset.IntVar(&c.subdiv, "subdiv", 1, "subdivision levels for icosphere, cells per side for grid")
	fset.StringVar(&c.solver, "solver", "newton", "gd or newton")
	fset.StringVar(&c.scheme, "scheme", "simple", "remesh scheme: simple, geometry or feature")
	fset.StringVar(&c.cones, "cones", "auto", `"auto", "none" or a list v:k,... with k in radians`)
	fset.StringVar(&c.out, "out", "", "write the planar layout to this OBJ file")
	fset.BoolVar(&c.debug, "debug", false, "log every iteration, flip and split (with -v=2)")
	fset.Float64Var(&c.step, "step", def.Step, "gradient step")
	fset.Float64Var(&c.eps, "eps", def.Eps, "curvature tolerance")
	fset.IntVar(&c.iters, "iters", def.MaxIters, "iteration cap")
	fset.IntVar(&c.window, "window", def.DivergenceWindow, "tolerated consecutive residual increases")
	return fset, nil
}

func (c cli) settings() (ricci.Settings, error) {
	st := ricci.DefaultSettings()
	st.Step, st.Eps, st.MaxIters, st.DivergenceWindow = c.step, c.eps, c.iters, c.window
	st.Verbose = c.debug
	switch strings.ToLower(c.solver) {
	case "gd", "gradient":
		st.Type = ricci.GradientDescent
	case "newton":
		st.Type = ricci.Newton
	default:
		return st, errors.Errorf("unknown solver %q", c.solver)
	}
	switch strings.ToLower(c.scheme) {
	case "simple":
		st.Scheme = delaunay.SimpleFlip
	case "geometry":
		st.Scheme = delaunay.GeometryPreserving
	case "feature":
		st.Scheme = delaunay.FeaturePreserving
	default:
		return st, errors.Errorf("unknown scheme %q", c.scheme)
	}
	return st, st.Validate()
}
