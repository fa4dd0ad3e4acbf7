// SPDX-License-Identifier: MIT

package delaunay_test

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/ricci/delaunay"
	"github.com/katalvlaran/ricci/halfedge"
	"github.com/katalvlaran/ricci/metric"
)

// flipLogger prints flips and ignores every other event.
type flipLogger struct {
	delaunay.NopVisitor
}

func (flipLogger) OnFlipped(s *metric.Store, e halfedge.EdgeID) {
	u, v := s.Mesh().EdgeVertices(e)
	fmt.Printf("flipped to %d-%d, length %.3f\n", u, v, s.EdgeLength(e))
}

func ExampleRemesh() {
	m, _ := halfedge.New([]r3.Vec{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 2, Y: 0.5}, {X: 2, Y: -0.5},
	}, [][3]int{{0, 1, 2}, {1, 0, 3}})
	s, _ := metric.New(m)

	stats, err := delaunay.Remesh(s, delaunay.SimpleFlip, delaunay.WithVisitor(flipLogger{}))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("flips:", stats.Flips, "delaunay:", delaunay.IsMeshDelaunay(s))
	// Output:
	// flipped to 3-2, length 1.000
	// flips: 1 delaunay: true
}
