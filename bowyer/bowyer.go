// Package bowyer implements the Bowyer-Watson incremental insertion
// engine (spec §4.5.1): locate the triangle containing the new point,
// find the cavity of triangles whose circumcircle contains it, delete the
// cavity, and re-triangulate its boundary as a fan around the new vertex.
// Grounded algorithmically on the cavity-removal loop in
// _examples/other_examples/esimov-triangle__delaunay.go, translated from
// a flat triangle slice into topo's adjacency-map representation; error
// propagation is grounded on the teacher's
// internal/throw.go fatalf/recover convention.
package bowyer

import (
	"math"
	"math/rand"

	"github.com/osuushi-labs/delaunay/delaunayerr"
	"github.com/osuushi-labs/delaunay/geom"
	"github.com/osuushi-labs/delaunay/locate"
	"github.com/osuushi-labs/delaunay/topo"
)

// DuplicatePolicy controls what add_point_bowyer! does when the inserted
// point coincides with an existing vertex (spec §9's open question).
type DuplicatePolicy int

const (
	// DuplicateSkip makes insertion of a coincident point a silent no-op.
	DuplicateSkip DuplicatePolicy = iota
	// DuplicateError surfaces coincident points as a DuplicatePoint error.
	DuplicateError
)

const duplicateTolerance = 1e-9

// Triangulator owns the mutable state of one incremental Bowyer-Watson
// construction: the triangulation, the point store and the seed used for
// randomised insertion order and seed-vertex selection. Not safe for
// concurrent use.
type Triangulator struct {
	Tri        *topo.Triangulation
	Points     *geom.PointStore
	Predicates geom.Predicates
	Duplicates DuplicatePolicy

	rng  *rand.Rand
	last geom.Triangle
}

var boundingTriangle = geom.Triangle{
	A: geom.LowerRightBoundingIndex,
	B: geom.UpperBoundingIndex,
	C: geom.LowerLeftBoundingIndex,
}

// New seeds a Triangulator with the bounding triangle (plus its ghost
// layer) over the statistics of points, ready to receive insertions.
func New(points []geom.Point, predicates geom.Predicates, seed int64) *Triangulator {
	store := geom.NewPointStore(points)
	tr := topo.New()
	tr.AddTriangle(boundingTriangle.A, boundingTriangle.B, boundingTriangle.C, true)

	return &Triangulator{
		Tri:        tr,
		Points:     store,
		Predicates: predicates,
		rng:        rand.New(rand.NewSource(seed)),
		last:       boundingTriangle,
	}
}

// Triangulate is the public construction API: triangulate_bowyer(points
// [, seed]) -> (T, A, V, G). Points are inserted in a seed-controlled
// random permutation, per spec §5's determinism requirement.
func Triangulate(points []geom.Point, predicates geom.Predicates, seed int64) (tr *topo.Triangulation, store *geom.PointStore, err error) {
	bt := New(points, predicates, seed)
	defer func() {
		if r := recover(); r != nil {
			tr, store, err = nil, nil, delaunayerr.Recover(r)
		}
	}()

	for _, oi := range bt.rng.Perm(bt.Points.Len()) {
		idx := geom.FirstPointIndex + geom.PointIndex(oi)
		if _, ierr := bt.addPointUnsafe(idx); ierr != nil {
			return nil, nil, ierr
		}
	}
	return bt.Tri, bt.Points, nil
}

// AddPoint pushes a brand-new point onto the point store and inserts it,
// returning the index assigned to it. Use this for streaming input whose
// extent is not known upfront (the bounding triangle is sized once, from
// whatever points existed at construction time).
func (bt *Triangulator) AddPoint(p geom.Point) (idx geom.PointIndex, err error) {
	idx = bt.Points.PushBack(p)
	_, err = bt.InsertPoint(idx)
	return idx, err
}

// InsertPoint implements add_point_bowyer!(T, A, V, G, points, r) exactly:
// r already names a point in the store (typically because the full point
// set, including r, was supplied to New so the bounding triangle was sized
// correctly), and this call inserts it into the live triangulation. Every
// caller controlling its own insertion order over a known point set should
// use this rather than AddPoint.
func (bt *Triangulator) InsertPoint(r geom.PointIndex) (t geom.Triangle, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			t, err = geom.Triangle{}, delaunayerr.Recover(rec)
		}
	}()
	return bt.addPointUnsafe(r)
}

func (bt *Triangulator) addPointUnsafe(r geom.PointIndex) (geom.Triangle, error) {
	pr, err := bt.Points.Get(r)
	if err != nil {
		return geom.Triangle{}, err
	}

	seed := bt.seedTriangle()
	walker := &locate.Walk{Tri: bt.Tri, Points: bt.Points.Get, Predicates: bt.Predicates}
	located := walker.Locate(seed, pr)

	if dup, derr := bt.checkDuplicate(located, pr); derr != nil {
		return geom.Triangle{}, derr
	} else if dup {
		return located, nil
	}

	cavity := bt.findCavity(located, pr)
	boundary := bt.cavityBoundary(cavity)

	for t := range cavity {
		idx := t.Indices()
		bt.Tri.DeleteTriangle(idx[0], idx[1], idx[2])
	}

	// The fan's spoke edges (each boundary vertex to r) are shared between
	// two fan triangles added in this same loop; checking each triangle's
	// edges for a missing opposite as it's added would find its
	// not-yet-added fan neighbour absent and wrongly ghost a spoke that's
	// about to become interior. Add the whole fan first, then materialise
	// ghosts only for the boundary edges that are genuinely still exposed.
	var newTriangle geom.Triangle
	for _, e := range boundary {
		bt.Tri.AddTriangle(e.I, e.J, r, false)
		newTriangle = geom.Triangle{A: e.I, B: e.J, C: r}
	}
	for _, e := range boundary {
		bt.Tri.MaterializeGhostEdge(e.I, e.J)
	}
	bt.last = newTriangle
	return newTriangle, nil
}

// seedTriangle picks a triangle to start the walk from: the last triangle
// inserted, or (if it has since been deleted) one containing a randomly
// chosen vertex from G, per spec §4.4.
func (bt *Triangulator) seedTriangle() geom.Triangle {
	if bt.Tri.HasTriangle(bt.last) {
		return bt.last
	}
	vertices := bt.Tri.Graph().Vertices()
	if len(vertices) == 0 {
		return boundingTriangle
	}
	v := vertices[bt.rng.Intn(len(vertices))]
	edges := bt.Tri.ReverseEdges(v)
	if len(edges) == 0 {
		return boundingTriangle
	}
	e := edges[0]
	return geom.Triangle{A: e.I, B: e.J, C: v}
}

func (bt *Triangulator) checkDuplicate(located geom.Triangle, pr geom.Point) (bool, error) {
	var candidates []geom.PointIndex
	if located.IsGhost() {
		u, v, _ := located.GhostHullEdge()
		candidates = []geom.PointIndex{u, v}
	} else {
		idx := located.Indices()
		candidates = idx[:]
	}
	for _, c := range candidates {
		if c.Kind() != geom.KindInput {
			continue
		}
		p, err := bt.Points.Get(c)
		if err != nil {
			continue
		}
		if pointsEqual(p, pr) {
			if bt.Duplicates == DuplicateError {
				return false, delaunayerr.DuplicatePointf("bowyer: point (%g,%g) coincides with existing vertex %d", pr.X, pr.Y, c)
			}
			return true, nil
		}
	}
	return false, nil
}

func pointsEqual(a, b geom.Point) bool {
	return math.Abs(a.X-b.X) < duplicateTolerance && math.Abs(a.Y-b.Y) < duplicateTolerance
}

// findCavity performs the breadth-first search from the located triangle,
// collecting every triangle whose circumcircle strictly contains pr. A
// ghost neighbour's "in-circle" is defined per spec §4.5.1: true iff
// orient(u, v, pr) > 0.
func (bt *Triangulator) findCavity(seed geom.Triangle, pr geom.Point) map[geom.Triangle]struct{} {
	if !bt.inCavity(seed, pr) {
		delaunayerr.Fatalf(delaunayerr.DegenerateInput, "bowyer: located triangle %v does not contain the query point", seed)
	}
	cavity := map[geom.Triangle]struct{}{topo.Canonical(seed): {}}
	queue := []geom.Triangle{seed}
	visited := map[geom.Triangle]struct{}{topo.Canonical(seed): {}}

	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		idx := t.Indices()
		for i := 0; i < 3; i++ {
			u, v := idx[i], idx[(i+1)%3]
			w := bt.Tri.GetEdge(v, u)
			if w == geom.DefaultAdjacentValue {
				continue
			}
			neighbor := geom.Triangle{A: v, B: u, C: w}
			key := topo.Canonical(neighbor)
			if _, seen := visited[key]; seen {
				continue
			}
			visited[key] = struct{}{}
			if bt.inCavity(neighbor, pr) {
				cavity[key] = struct{}{}
				queue = append(queue, neighbor)
			}
		}
	}
	return cavity
}

func (bt *Triangulator) inCavity(t geom.Triangle, pr geom.Point) bool {
	if t.IsGhost() {
		u, v, _ := t.GhostHullEdge()
		pu := bt.Points.MustGet(u)
		pv := bt.Points.MustGet(v)
		return bt.Predicates.Orient(pu, pv, pr) > 0
	}
	idx := t.Indices()
	a := bt.Points.MustGet(idx[0])
	b := bt.Points.MustGet(idx[1])
	c := bt.Points.MustGet(idx[2])
	return bt.Predicates.InCircle(a, b, c, pr) > 0
}

// cavityBoundary returns the directed edges (u, v) of the cavity whose
// reverse (v, u) belongs to a triangle outside the cavity (or has no
// recorded neighbour at all).
func (bt *Triangulator) cavityBoundary(cavity map[geom.Triangle]struct{}) []topo.Edge {
	var boundary []topo.Edge
	for t := range cavity {
		idx := t.Indices()
		for i := 0; i < 3; i++ {
			u, v := idx[i], idx[(i+1)%3]
			w := bt.Tri.GetEdge(v, u)
			isBoundary := true
			if w != geom.DefaultAdjacentValue {
				neighbor := topo.Canonical(geom.Triangle{A: v, B: u, C: w})
				if _, inside := cavity[neighbor]; inside {
					isBoundary = false
				}
			}
			if isBoundary {
				boundary = append(boundary, topo.Edge{I: u, J: v})
			}
		}
	}
	return boundary
}
