// SPDX-License-Identifier: MIT

package delaunay

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/ricci/halfedge"
	"github.com/katalvlaran/ricci/metric"
)

// SplitSite describes one edge split: the mesh-level record, the parameter
// of the new vertex along the original even halfedge, and its 3D position.
type SplitSite struct {
	halfedge.Split
	T        float64
	Position r3.Vec
}

// Visitor observes a remesh run. OnStarted comes first and OnFinished last.
// Flips are bracketed by OnFlipping/OnFlipped, splits by
// OnSplitting/OnSplit. OnNonflippable reports a non-Delaunay edge the
// scheme could not flip.
//
// Callbacks run synchronously on the remeshing goroutine and must not mutate
// the store or mesh.
type Visitor interface {
	OnStarted(s *metric.Store)
	OnFlipping(s *metric.Store, e halfedge.EdgeID)
	OnFlipped(s *metric.Store, e halfedge.EdgeID)
	OnNonflippable(s *metric.Store, e halfedge.EdgeID)
	OnSplitting(s *metric.Store, e halfedge.EdgeID)
	OnSplit(s *metric.Store, site SplitSite)
	OnFinished(s *metric.Store)
}

// NopVisitor implements every Visitor method as a no-op. Embed it to
// override only the events you care about.
type NopVisitor struct{}

func (NopVisitor) OnStarted(*metric.Store)                       {}
func (NopVisitor) OnFlipping(*metric.Store, halfedge.EdgeID)     {}
func (NopVisitor) OnFlipped(*metric.Store, halfedge.EdgeID)      {}
func (NopVisitor) OnNonflippable(*metric.Store, halfedge.EdgeID) {}
func (NopVisitor) OnSplitting(*metric.Store, halfedge.EdgeID)    {}
func (NopVisitor) OnSplit(*metric.Store, SplitSite)              {}
func (NopVisitor) OnFinished(*metric.Store)                      {}

// EventKind names a visitor callback.
type EventKind int

const (
	Started EventKind = iota
	Flipping
	Flipped
	Nonflippable
	Splitting
	Split
	Finished
)

var eventNames = [...]string{"Started", "Flipping", "Flipped", "Nonflippable", "Splitting", "Split", "Finished"}

// String returns the callback name without the "On" prefix.
func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return "Unknown"
	}
	return eventNames[k]
}

// Event is one recorded callback. Edge is halfedge.EdgeID(-1) for Started
// and Finished; Site is set only for Split.
type Event struct {
	Kind EventKind
	Edge halfedge.EdgeID
	Site *SplitSite
}

// Recorder is a Visitor that appends every callback to Events.
type Recorder struct {
	Events []Event
}

func (r *Recorder) add(k EventKind, e halfedge.EdgeID) {
	r.Events = append(r.Events, Event{Kind: k, Edge: e})
}

func (r *Recorder) OnStarted(*metric.Store) { r.add(Started, -1) }
func (r *Recorder) OnFlipping(_ *metric.Store, e halfedge.EdgeID) {
	r.add(Flipping, e)
}
func (r *Recorder) OnFlipped(_ *metric.Store, e halfedge.EdgeID) {
	r.add(Flipped, e)
}
func (r *Recorder) OnNonflippable(_ *metric.Store, e halfedge.EdgeID) {
	r.add(Nonflippable, e)
}
func (r *Recorder) OnSplitting(_ *metric.Store, e halfedge.EdgeID) {
	r.add(Splitting, e)
}
func (r *Recorder) OnSplit(_ *metric.Store, site SplitSite) {
	r.Events = append(r.Events, Event{Kind: Split, Edge: site.Edge, Site: &site})
}
func (r *Recorder) OnFinished(*metric.Store) { r.add(Finished, -1) }

// Kinds returns the recorded event kinds in order.
func (r *Recorder) Kinds() []EventKind {
	out := make([]EventKind, len(r.Events))
	for i, ev := range r.Events {
		out[i] = ev.Kind
	}
	return out
}

// Edges returns the edges reported with kind k, in order.
func (r *Recorder) Edges(k EventKind) []halfedge.EdgeID {
	var out []halfedge.EdgeID
	for _, ev := range r.Events {
		if ev.Kind == k {
			out = append(out, ev.Edge)
		}
	}
	return out
}

// Reset drops all recorded events.
func (r *Recorder) Reset() { r.Events = r.Events[:0] }

var (
	_ Visitor = NopVisitor{}
	_ Visitor = (*Recorder)(nil)
)
