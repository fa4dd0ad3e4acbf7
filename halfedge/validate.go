// SPDX-License-Identifier: MIT

package halfedge

import "github.com/pkg/errors"

// Validate audits the connectivity invariants: next/prev are inverse,
// every face is a triangle whose halfedges name it, twins point back to each
// other's source, and every vertex fan closes. It returns ErrNonManifold
// describing the first violation found.
//
// Complexity: O(V + H).
func (m *Mesh) Validate() error {
	for h := range m.target {
		hid := HalfedgeID(h)
		n := m.next[hid]
		if n < 0 || int(n) >= len(m.target) || m.prev[n] != hid {
			return errors.Wrapf(ErrNonManifold, "halfedge %d: next/prev mismatch", h)
		}
		if m.Source(n) != m.target[hid] {
			return errors.Wrapf(ErrNonManifold, "halfedge %d: next does not start at target", h)
		}
		if m.target[hid] == m.Source(hid) {
			return errors.Wrapf(ErrNonManifold, "halfedge %d: degenerate loop", h)
		}
	}
	for f, h := range m.fhalf {
		fid := FaceID(f)
		hs := [3]HalfedgeID{h, m.next[h], m.next[m.next[h]]}
		if m.next[hs[2]] != h {
			return errors.Wrapf(ErrNonManifold, "face %d is not a triangle", f)
		}
		for _, x := range hs {
			if m.face[x] != fid {
				return errors.Wrapf(ErrNonManifold, "face %d: halfedge %d names face %d", f, x, m.face[x])
			}
		}
	}
	return m.checkFans()
}
