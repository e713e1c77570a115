// Package locate implements point location: the jump-and-walk variant
// used by Bowyer-Watson, and the history-DAG variant used by the de Berg
// randomised-incremental engine. Both return a (possibly ghost) triangle
// whose CCW triple encloses the query point per the orientation
// predicate. Grounded on the teacher's query-DAG descent
// (osuushi-triangulate/triangulate/querynode.go): a query node picks a
// child by orientation test exactly the way a history-DAG node picks a
// replacement triangle here.
package locate

import (
	"github.com/osuushi-labs/delaunay/delaunayerr"
	"github.com/osuushi-labs/delaunay/geom"
	"github.com/osuushi-labs/delaunay/topo"
)

// PointGetter resolves a point index to coordinates.
type PointGetter func(geom.PointIndex) (geom.Point, error)

// Walk implements jump-and-walk location over a live Triangulation.
type Walk struct {
	Tri        *topo.Triangulation
	Points     PointGetter
	Predicates geom.Predicates
}

// Locate walks from seed toward p, crossing shared edges via A until no
// edge points away from p, returning the enclosing triangle (solid or
// ghost).
func (w *Walk) Locate(seed geom.Triangle, p geom.Point) geom.Triangle {
	current := seed
	guard := w.guard()
	for step := 0; ; step++ {
		if step > guard {
			delaunayerr.Fatalf(delaunayerr.DegenerateInput, "locate: walk did not converge after %d steps", step)
		}

		if current.IsGhost() {
			u, v, _ := current.GhostHullEdge()
			pu := w.mustPoint(u)
			pv := w.mustPoint(v)
			// The ghost's own edge (u, v) runs opposite to the solid hull
			// edge, so p is on the solid side when it is to the right of it.
			if w.Predicates.Orient(pu, pv, p) < 0 {
				opp := w.Tri.GetEdge(v, u)
				if opp == geom.DefaultAdjacentValue {
					delaunayerr.Fatalf(delaunayerr.InvariantViolation, "locate: hull edge (%d,%d) has no interior neighbour", v, u)
				}
				current = geom.Triangle{A: v, B: u, C: opp}
				continue
			}
			return current
		}

		idx := current.Indices()
		crossed := false
		degenerateCount := 0
		for i := 0; i < 3; i++ {
			u, v := idx[i], idx[(i+1)%3]
			pu := w.mustPoint(u)
			pv := w.mustPoint(v)
			switch w.Predicates.Orient(pu, pv, p) {
			case 0:
				degenerateCount++
			case -1:
				opp := w.Tri.GetEdge(v, u)
				if opp == geom.DefaultAdjacentValue {
					current = geom.Triangle{A: v, B: u, C: geom.BoundaryIndex}
				} else {
					current = geom.Triangle{A: v, B: u, C: opp}
				}
				crossed = true
			}
			if crossed {
				break
			}
		}
		if crossed {
			continue
		}
		if degenerateCount == 3 {
			delaunayerr.Fatalf(delaunayerr.DegenerateInput, "locate: %v has all-collinear orientations for query point", current)
		}
		return current
	}
}

func (w *Walk) mustPoint(idx geom.PointIndex) geom.Point {
	p, err := w.Points(idx)
	if err != nil {
		delaunayerr.Fatalf(delaunayerr.OutOfRange, "locate: %s", err.Error())
	}
	return p
}

func (w *Walk) guard() int {
	n := w.Tri.NumTriangles()
	if n < 16 {
		n = 16
	}
	return 8 * n
}
