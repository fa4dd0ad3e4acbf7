// SPDX-License-Identifier: MIT

package embed

import (
	"math"
	"slices"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/ricci/halfedge"
	"github.com/katalvlaran/ricci/internal/logging"
	"github.com/katalvlaran/ricci/metric"
	"github.com/katalvlaran/ricci/seam"
)

// Image is one planar copy of a vertex.
type Image struct {
	Vertex halfedge.VertexID
	Region int
	UV     r2.Vec
}

// Embedding is a planar layout of a metric, stored per face corner. A
// vertex has one image per wedge: a run of corners around it not separated
// by a seam or border edge. Vertices off the seam have exactly one.
type Embedding struct {
	mesh    *halfedge.Mesh
	seam    *seam.Cut
	images  []Image
	corner  []int // halfedge → image index, -1 on border halfedges
	region  []int // face → region
	regions int
	byVert  [][]int
}

// Mesh returns the embedded mesh.
func (e *Embedding) Mesh() *halfedge.Mesh { return e.mesh }

// Seam returns the edges the layout was cut along.
func (e *Embedding) Seam() *seam.Cut { return e.seam }

// UV returns the position of Target(h) in Face(h). Border halfedges have
// no corner and report the zero vector.
func (e *Embedding) UV(h halfedge.HalfedgeID) r2.Vec {
	if i := e.corner[h]; i >= 0 {
		return e.images[i].UV
	}
	return r2.Vec{}
}

// ImageIndex returns the image used by the corner of h, or -1.
func (e *Embedding) ImageIndex(h halfedge.HalfedgeID) int { return e.corner[h] }

// Images returns every image of v.
func (e *Embedding) Images(v halfedge.VertexID) []Image {
	out := make([]Image, len(e.byVert[v]))
	for i, idx := range e.byVert[v] {
		out[i] = e.images[idx]
	}
	return out
}

// NumImages returns the total number of vertex images.
func (e *Embedding) NumImages() int { return len(e.images) }

// Regions returns the number of connected pieces laid out; one per
// connected component of the mesh.
func (e *Embedding) Regions() int { return e.regions }

// FaceRegion returns the region of f.
func (e *Embedding) FaceRegion(f halfedge.FaceID) int { return e.region[f] }

// SignedArea returns the oriented area of f in the plane; positive for a
// counter-clockwise layout.
func (e *Embedding) SignedArea(f halfedge.FaceID) float64 {
	hs := e.mesh.HalfedgesAroundFace(f)
	a, b, c := e.UV(hs[0]), e.UV(hs[1]), e.UV(hs[2])
	return r2.Cross(r2.Sub(b, a), r2.Sub(c, a)) / 2
}

// Bounds returns the bounding box of all images.
func (e *Embedding) Bounds() r2.Box {
	box := r2.Box{
		Min: r2.Vec{X: math.Inf(1), Y: math.Inf(1)},
		Max: r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)},
	}
	for _, im := range e.images {
		box.Min.X = math.Min(box.Min.X, im.UV.X)
		box.Min.Y = math.Min(box.Min.Y, im.UV.Y)
		box.Max.X = math.Max(box.Max.X, im.UV.X)
		box.Max.Y = math.Max(box.Max.Y, im.UV.Y)
	}
	return box
}

// walker is the per-call traversal state.
type walker struct {
	store *metric.Store
	mesh  *halfedge.Mesh
	cut   *seam.Cut
	opts  Options
	emb   *Embedding

	queue  *linkedlistqueue.Queue
	placed []bool
	slot   []int // halfedge → wedge, -1 on border halfedges
	image  []int // wedge → image index, -1 until placed
}

// EmbedCirclePackingMetric lays the metric of s out in the plane.
//
// Implementation:
//   - Stage 1: reject faces that violate the triangle inequality.
//   - Stage 2: cut the surface open. Unless WithSeam supplies one, the seam
//     is seam.CutGraph of the cones, which joins them to each other or to
//     the border and opens every handle.
//   - Stage 3: number the wedges of every vertex; each wedge becomes one
//     image.
//   - Stage 4: breadth-first search over the dual graph from the seed face,
//     crossing every edge that is neither on the seam nor on the border.
//     The seed face is placed with its first halfedge on the positive x
//     axis; each newly reached face takes the two shared corners from its
//     parent and, unless its wedge is already placed, puts the third one
//     at the intersection of two circles, on the counter-clockwise side.
//     Faces left unreached start new regions, in increasing face order.
//
// A flat metric with every curvature gathered at the cones is laid out
// isometrically, face by face.
//
// Errors: ErrInconsistentMetric, ErrOptionViolation, and the seam errors
// for cones outside the mesh.
// Complexity: O((V + E) log V + F).
func EmbedCirclePackingMetric(s *metric.Store, cones map[halfedge.VertexID]bool, opts ...Option) (*Embedding, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	m := s.Mesh()
	if o.SeedFace != halfedge.NoFace && !m.HasFace(o.SeedFace) {
		return nil, errors.Wrapf(ErrOptionViolation, "seed face %d", o.SeedFace)
	}
	if o.Seam != nil && o.Seam.Mesh() != m {
		return nil, errors.Wrap(ErrOptionViolation, "seam built for another mesh")
	}
	for f := 0; f < m.NumFaces(); f++ {
		hs := m.HalfedgesAroundFace(halfedge.FaceID(f))
		a, b, c := s.HalfedgeLength(hs[0]), s.HalfedgeLength(hs[1]), s.HalfedgeLength(hs[2])
		if !metric.IsTriangle(a, b, c) {
			return nil, errors.Wrapf(ErrInconsistentMetric, "face %d: lengths (%g, %g, %g)", f, a, b, c)
		}
	}

	cut := o.Seam
	if cut == nil {
		var list []halfedge.VertexID
		for _, v := range sortedKeys(cones) {
			if cones[v] {
				list = append(list, v)
			}
		}
		var err error
		if cut, err = seam.CutGraph(s, list); err != nil {
			return nil, errors.Wrap(err, "embed: cutting seam")
		}
	}

	slot, n := wedges(m, cut)
	w := &walker{
		store: s,
		mesh:  m,
		cut:   cut,
		opts:  o,
		emb: &Embedding{
			mesh:   m,
			seam:   cut,
			corner: make([]int, m.NumHalfedges()),
			region: make([]int, m.NumFaces()),
			byVert: make([][]int, m.NumVertices()),
		},
		queue:  linkedlistqueue.New(),
		placed: make([]bool, m.NumFaces()),
		slot:   slot,
		image:  make([]int, n),
	}
	for h := range w.emb.corner {
		w.emb.corner[h] = -1
	}
	for i := range w.image {
		w.image[i] = -1
	}

	if o.SeedFace != halfedge.NoFace {
		w.grow(o.SeedFace)
	}
	for f := 0; f < m.NumFaces(); f++ {
		if !w.placed[f] {
			w.grow(halfedge.FaceID(f))
		}
	}

	logging.Logger().Debug("embed",
		"faces", m.NumFaces(),
		"seam", cut.Len(),
		"regions", w.emb.regions,
		"images", len(w.emb.images))
	return w.emb, nil
}

// wedges numbers the corners around every vertex. Consecutive corners
// share a number unless the edge between them is on the seam or the
// border. It returns the number per halfedge (-1 on border halfedges) and
// the count.
func wedges(m *halfedge.Mesh, cut *seam.Cut) ([]int, int) {
	slot := make([]int, m.NumHalfedges())
	for h := range slot {
		slot[h] = -1
	}
	separates := func(h halfedge.HalfedgeID) bool {
		e := m.Edge(h)
		return cut.Contains(e) || m.IsBorderEdge(e)
	}
	n := 0
	for v := 0; v < m.NumVertices(); v++ {
		ring := m.HalfedgesAroundTarget(halfedge.VertexID(v))
		start := slices.IndexFunc(ring, separates)
		if start < 0 {
			start = 0
		}
		// The corner of ring[i] lies between Edge(ring[i]) and Edge(ring[i+1]).
		for i := range ring {
			h := ring[(start+i)%len(ring)]
			if i > 0 && separates(h) {
				n++
			}
			if !m.IsBorder(h) {
				slot[h] = n
			}
		}
		n++
	}
	return slot, n
}

// grow starts a new region at f and floods it.
func (w *walker) grow(f halfedge.FaceID) {
	region := w.emb.regions
	w.emb.regions++

	hs := w.mesh.HalfedgesAroundFace(f)
	l0, l1, l2 := w.store.HalfedgeLength(hs[0]), w.store.HalfedgeLength(hs[1]), w.store.HalfedgeLength(hs[2])
	// hs[2] ends at Source(hs[0]), hs[0] ends at Target(hs[0]).
	w.setCorner(hs[2], region, r2.Vec{})
	w.setCorner(hs[0], region, r2.Vec{X: l0})
	x := (l0*l0 + l2*l2 - l1*l1) / (2 * l0)
	y := math.Sqrt(math.Max(0, l2*l2-x*x))
	w.setCorner(hs[1], region, r2.Vec{X: x, Y: y})

	w.enqueue(f, region)
	w.loop(region)
}

func (w *walker) enqueue(f halfedge.FaceID, region int) {
	w.placed[f] = true
	w.emb.region[f] = region
	w.queue.Enqueue(f)
}

func (w *walker) loop(region int) {
	for !w.queue.Empty() {
		v, _ := w.queue.Dequeue()
		f := v.(halfedge.FaceID)
		if w.opts.OnVisitFace != nil {
			w.opts.OnVisitFace(f, region)
		}
		for _, h := range w.mesh.HalfedgesAroundFace(f) {
			o := w.mesh.Opposite(h)
			if w.mesh.IsBorder(o) || w.placed[w.mesh.Face(o)] || w.cut.Contains(w.mesh.Edge(h)) {
				continue
			}
			w.unfoldAcross(h, o, region)
			w.enqueue(w.mesh.Face(o), region)
		}
	}
}

// unfoldAcross places the face of o next to the already placed face of h.
// Both sides of a crossed edge lie in the same wedges, so the shared
// corners resolve to the parent's images; the apex k is intersected from
// circles around them unless its wedge was placed earlier.
func (w *walker) unfoldAcross(h, o halfedge.HalfedgeID, region int) {
	m := w.mesh
	// o runs s → t where s = Target(h) and t = Source(h).
	w.setCorner(o, region, w.emb.UV(m.Prev(h)))
	w.setCorner(m.Prev(o), region, w.emb.UV(h))

	next := m.Next(o)
	if idx := w.image[w.slot[next]]; idx >= 0 {
		w.emb.corner[next] = idx
		return
	}
	ps, pt := w.emb.UV(m.Prev(o)), w.emb.UV(o)
	ls := w.store.HalfedgeLength(m.Prev(o)) // k – s
	lt := w.store.HalfedgeLength(next)      // t – k
	w.setCorner(next, region, intersect(ps, pt, ls, lt))
}

// intersect returns the point at distance ls from ps and lt from pt that
// lies left of ps→pt.
func intersect(ps, pt r2.Vec, ls, lt float64) r2.Vec {
	st := r2.Sub(pt, ps)
	d := r2.Norm(st)
	a := (ls*ls - lt*lt + d*d) / (2 * d)
	h := math.Sqrt(math.Max(0, ls*ls-a*a))
	along := r2.Scale(1/d, st)
	left := r2.Vec{X: -along.Y, Y: along.X}
	return r2.Add(r2.Add(ps, r2.Scale(a, along)), r2.Scale(h, left))
}

// setCorner points the corner of h at the image of its wedge, creating the
// image at p when the wedge has none yet.
func (w *walker) setCorner(h halfedge.HalfedgeID, region int, p r2.Vec) {
	s := w.slot[h]
	if idx := w.image[s]; idx >= 0 {
		w.emb.corner[h] = idx
		return
	}
	v := w.mesh.Target(h)
	idx := len(w.emb.images)
	w.emb.images = append(w.emb.images, Image{Vertex: v, Region: region, UV: p})
	w.emb.byVert[v] = append(w.emb.byVert[v], idx)
	w.emb.corner[h] = idx
	w.image[s] = idx
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
