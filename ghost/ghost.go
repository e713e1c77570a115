// Package ghost implements the ghost-triangle layer: bulk materialisation
// and removal of the virtual triangles (u, v, BoundaryIndex) that make
// point location uniform for points inside and outside the current hull.
// Per-insertion ghost maintenance lives in topo.Triangulation.AddTriangle
// (its updateGhostEdges flag); this package covers the bulk sweep
// operations from spec §4.3, used after seeding a triangulation from a
// known state or before running the equivalence tests in spec §8.
package ghost

import (
	"github.com/osuushi-labs/delaunay/geom"
	"github.com/osuushi-labs/delaunay/topo"
)

// IsGhostTriangle reports whether t names the boundary sentinel.
func IsGhostTriangle(t geom.Triangle) bool { return t.IsGhost() }

// AddGhostTriangles materialises a ghost triangle for every hull edge that
// doesn't already have one.
func AddGhostTriangles(tr *topo.Triangulation) {
	for _, t := range tr.Triangles() {
		if IsGhostTriangle(t) {
			continue
		}
		idx := t.Indices()
		for i := 0; i < 3; i++ {
			u, v := idx[i], idx[(i+1)%3]
			if tr.GetEdge(v, u) != geom.DefaultAdjacentValue {
				continue
			}
			// The ghost occupies the empty (v, u) slot, not (u, v): its own
			// edge runs the opposite direction of the solid edge it faces,
			// matching topo.Triangulation.MaterializeGhostEdge's convention.
			if tr.HasTriangle(geom.Triangle{A: v, B: u, C: geom.BoundaryIndex}) {
				continue
			}
			tr.AddTriangle(v, u, geom.BoundaryIndex, false)
		}
	}
}

// RemoveGhostTriangles deletes every ghost triangle and sweeps the
// tombstones that leaves behind. It is the exact inverse of
// AddGhostTriangles on the solid state.
func RemoveGhostTriangles(tr *topo.Triangulation) {
	for _, t := range tr.Triangles() {
		if !IsGhostTriangle(t) {
			continue
		}
		idx := t.Indices()
		tr.DeleteTriangle(idx[0], idx[1], idx[2])
	}
	tr.ClearEmptyKeys()
}

// PointGetter resolves a point index to coordinates.
type PointGetter func(geom.PointIndex) (geom.Point, error)

// RepresentativePoints computes the centroid of the current hull's
// vertices as an opaque "interior witness". It is never consumed by the
// core algorithms; presentation layers use it to orient labels or seed a
// fill point for a boundary region.
func RepresentativePoints(tr *topo.Triangulation, points PointGetter) (geom.Point, error) {
	edges := tr.ReverseEdges(geom.BoundaryIndex)
	seen := make(map[geom.PointIndex]struct{}, len(edges))
	var sx, sy float64
	for _, e := range edges {
		for _, v := range [2]geom.PointIndex{e.I, e.J} {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			p, err := points(v)
			if err != nil {
				return geom.Point{}, err
			}
			sx += p.X
			sy += p.Y
		}
	}
	if len(seen) == 0 {
		return geom.Point{}, nil
	}
	n := float64(len(seen))
	return geom.Point{X: sx / n, Y: sy / n}, nil
}
