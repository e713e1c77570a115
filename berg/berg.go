// Package berg implements the de Berg randomised-incremental construction
// (spec §4.5.2): point location descends a history DAG instead of walking
// triangle-to-triangle, and every inserted point legalises its incident
// edges by recursive in-circle flips. Grounded on the teacher's
// query-DAG/legalisation split between
// osuushi-triangulate/triangulate/querynode.go (descent) and
// osuushi-triangulate/triangulate/edge.go (flip bookkeeping), re-targeted
// from the teacher's quad-edge representation onto topo's adjacency maps
// plus locate.History.
package berg

import (
	"math"
	"math/rand"

	"github.com/osuushi-labs/delaunay/delaunayerr"
	"github.com/osuushi-labs/delaunay/geom"
	"github.com/osuushi-labs/delaunay/locate"
	"github.com/osuushi-labs/delaunay/topo"
)

// DuplicatePolicy mirrors bowyer.DuplicatePolicy for the de Berg engine.
type DuplicatePolicy int

const (
	DuplicateSkip DuplicatePolicy = iota
	DuplicateError
)

const duplicateTolerance = 1e-9

var boundingTriangle = geom.Triangle{
	A: geom.LowerRightBoundingIndex,
	B: geom.UpperBoundingIndex,
	C: geom.LowerLeftBoundingIndex,
}

// Triangulator owns one incremental de Berg construction: the live
// triangulation, its point-location history DAG and the seed governing
// insertion order. Not safe for concurrent use.
type Triangulator struct {
	Tri        *topo.Triangulation
	Points     *geom.PointStore
	Predicates geom.Predicates
	Duplicates DuplicatePolicy
	History    *locate.History

	rng *rand.Rand
}

// New seeds a Triangulator with the bounding triangle as both the sole
// solid triangle in the live triangulation (alongside its three ghosts)
// and the root of the history DAG.
func New(points []geom.Point, predicates geom.Predicates, seed int64) *Triangulator {
	store := geom.NewPointStore(points)
	tr := topo.New()
	tr.AddTriangle(boundingTriangle.A, boundingTriangle.B, boundingTriangle.C, true)

	return &Triangulator{
		Tri:        tr,
		Points:     store,
		Predicates: predicates,
		History:    locate.NewHistory(boundingTriangle),
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// Triangulate is triangulate_deberg(points [, seed]) -> (T, A, V, G): every
// point is inserted in a seed-controlled random permutation and legalised
// on the way in.
func Triangulate(points []geom.Point, predicates geom.Predicates, seed int64) (tr *topo.Triangulation, store *geom.PointStore, err error) {
	bg := New(points, predicates, seed)
	defer func() {
		if r := recover(); r != nil {
			tr, store, err = nil, nil, delaunayerr.Recover(r)
		}
	}()

	for _, oi := range bg.rng.Perm(bg.Points.Len()) {
		idx := geom.FirstPointIndex + geom.PointIndex(oi)
		if ierr := bg.addPointUnsafe(idx); ierr != nil {
			return nil, nil, ierr
		}
	}
	return bg.Tri, bg.Points, nil
}

// AddPoint pushes a brand-new point onto the point store and inserts it,
// returning the index assigned to it. The bounding triangle is sized once,
// from the points given to New, and location through the history DAG
// covers only that triangle: a point outside it is not supported (once the
// root has been split, its location fails with a DegenerateInput error).
func (bg *Triangulator) AddPoint(p geom.Point) (idx geom.PointIndex, err error) {
	idx = bg.Points.PushBack(p)
	err = bg.InsertPoint(idx)
	return idx, err
}

// InsertPoint implements add_point_deberg!(T, A, V, G, H, points, r)
// exactly: r already names a point in the store (typically because the
// full point set, including r, was supplied to New so the bounding
// triangle was sized correctly), and this call inserts it into the live
// triangulation and history DAG.
func (bg *Triangulator) InsertPoint(r geom.PointIndex) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = delaunayerr.Recover(rec)
		}
	}()
	return bg.addPointUnsafe(r)
}

func (bg *Triangulator) addPointUnsafe(r geom.PointIndex) error {
	pr, err := bg.Points.Get(r)
	if err != nil {
		return err
	}

	located := bg.History.Locate(pr, bg.contains)
	if located.IsGhost() {
		delaunayerr.Fatalf(delaunayerr.InvariantViolation, "berg: point (%g,%g) located outside the bounding triangle", pr.X, pr.Y)
	}

	if dup, derr := bg.checkDuplicate(located, pr); derr != nil {
		return derr
	} else if dup {
		return nil
	}

	if edgeVertices, onEdge := bg.pointOnEdge(located, pr); onEdge {
		bg.splitOnEdge(located, edgeVertices[0], edgeVertices[1], r)
	} else {
		bg.splitInside(located, r)
	}
	return nil
}

// contains implements the ghost-aware point-in-triangle test History.Locate
// needs: strict interior or boundary counts as contained (>= 0 on every
// edge), matching the descent semantics of a history DAG whose leaves
// partition the plane without gaps.
func (bg *Triangulator) contains(t geom.Triangle, p geom.Point) bool {
	if t.IsGhost() {
		u, v, _ := t.GhostHullEdge()
		pu := bg.Points.MustGet(u)
		pv := bg.Points.MustGet(v)
		return bg.Predicates.Orient(pu, pv, p) >= 0
	}
	idx := t.Indices()
	for i := 0; i < 3; i++ {
		pu := bg.Points.MustGet(idx[i])
		pv := bg.Points.MustGet(idx[(i+1)%3])
		if bg.Predicates.Orient(pu, pv, p) < 0 {
			return false
		}
	}
	return true
}

// pointOnEdge reports whether p lies exactly on one of t's edges, and if
// so, that edge in the (u, v) orientation matching t's CCW winding.
func (bg *Triangulator) pointOnEdge(t geom.Triangle, p geom.Point) ([2]geom.PointIndex, bool) {
	idx := t.Indices()
	for i := 0; i < 3; i++ {
		u, v := idx[i], idx[(i+1)%3]
		pu := bg.Points.MustGet(u)
		pv := bg.Points.MustGet(v)
		if bg.Predicates.Orient(pu, pv, p) == 0 && between(pu, pv, p) {
			return [2]geom.PointIndex{u, v}, true
		}
	}
	return [2]geom.PointIndex{}, false
}

func between(a, b, p geom.Point) bool {
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}

func (bg *Triangulator) checkDuplicate(located geom.Triangle, pr geom.Point) (bool, error) {
	idx := located.Indices()
	for _, c := range idx {
		if c.Kind() != geom.KindInput {
			continue
		}
		p, err := bg.Points.Get(c)
		if err != nil {
			continue
		}
		if math.Abs(p.X-pr.X) < duplicateTolerance && math.Abs(p.Y-pr.Y) < duplicateTolerance {
			if bg.Duplicates == DuplicateError {
				return false, delaunayerr.DuplicatePointf("berg: point (%g,%g) coincides with existing vertex %d", pr.X, pr.Y, c)
			}
			return true, nil
		}
	}
	return false, nil
}

// splitInside implements the 3-way split of a triangle strictly containing
// r, followed by legalising the three edges opposite r.
func (bg *Triangulator) splitInside(t geom.Triangle, r geom.PointIndex) {
	idx := t.Indices()
	u, v, w := idx[0], idx[1], idx[2]

	bg.Tri.DeleteTriangle(u, v, w)
	n1 := geom.Triangle{A: u, B: v, C: r}
	n2 := geom.Triangle{A: v, B: w, C: r}
	n3 := geom.Triangle{A: w, B: u, C: r}
	// n1, n2, n3 share the three spokes to r pairwise; ghost-checking each
	// one's edges as it's added would find its not-yet-added fan neighbour
	// absent and wrongly ghost a spoke. Add the fan first, then
	// materialise ghosts only for the triangle's three original edges.
	bg.Tri.AddTriangle(n1.A, n1.B, n1.C, false)
	bg.Tri.AddTriangle(n2.A, n2.B, n2.C, false)
	bg.Tri.AddTriangle(n3.A, n3.B, n3.C, false)
	bg.Tri.MaterializeGhostEdge(u, v)
	bg.Tri.MaterializeGhostEdge(v, w)
	bg.Tri.MaterializeGhostEdge(w, u)
	bg.History.Replace(t, []geom.Triangle{n1, n2, n3})

	bg.legalize(u, v, r)
	bg.legalize(v, w, r)
	bg.legalize(w, u, r)
}

// splitOnEdge implements the case where r lies exactly on the shared edge
// (u, v) of t and its neighbour across that edge: both triangles become
// two, and all four newly exposed outer edges are legalised.
func (bg *Triangulator) splitOnEdge(t geom.Triangle, u, v geom.PointIndex, r geom.PointIndex) {
	idx := t.Indices()
	w := opposite(idx, u, v)

	x := bg.Tri.GetEdge(v, u)
	haveNeighbor := x != geom.DefaultAdjacentValue

	bg.Tri.DeleteTriangle(u, v, w)
	n1 := geom.Triangle{A: u, B: r, C: w}
	n2 := geom.Triangle{A: r, B: v, C: w}
	// n1 and n2 share the new spoke (r, w); add both before checking either
	// for a missing opposite, or the check would fire on that spoke before
	// its partner triangle exists.
	bg.Tri.AddTriangle(n1.A, n1.B, n1.C, false)
	bg.Tri.AddTriangle(n2.A, n2.B, n2.C, false)
	bg.Tri.MaterializeGhostEdge(w, u)
	bg.Tri.MaterializeGhostEdge(v, w)
	bg.History.Replace(t, []geom.Triangle{n1, n2})
	bg.legalize(w, u, r)
	bg.legalize(v, w, r)

	if !haveNeighbor {
		return
	}
	t2 := geom.Triangle{A: v, B: u, C: x}
	bg.Tri.DeleteTriangle(v, u, x)
	n3 := geom.Triangle{A: v, B: r, C: x}
	n4 := geom.Triangle{A: r, B: u, C: x}
	bg.Tri.AddTriangle(n3.A, n3.B, n3.C, false)
	bg.Tri.AddTriangle(n4.A, n4.B, n4.C, false)
	bg.Tri.MaterializeGhostEdge(x, v)
	bg.Tri.MaterializeGhostEdge(u, x)
	bg.History.Replace(t2, []geom.Triangle{n3, n4})
	bg.legalize(x, v, r)
	bg.legalize(u, x, r)
}

func opposite(idx [3]geom.PointIndex, u, v geom.PointIndex) geom.PointIndex {
	for _, c := range idx {
		if c != u && c != v {
			return c
		}
	}
	delaunayerr.Fatalf(delaunayerr.InvariantViolation, "berg: (%d,%d) is not an edge of %v", u, v, idx)
	return 0
}

// legalize implements LegalizeEdge: triangle (u, v, r) shares edge (u, v)
// with its neighbour (v, u, c). If r lies inside that neighbour's
// circumcircle the shared edge is illegal; flipping it to (r, c) produces
// two new triangles whose other two edges are legalised in turn.
func (bg *Triangulator) legalize(u, v, r geom.PointIndex) {
	c := bg.Tri.GetEdge(v, u)
	if c == geom.DefaultAdjacentValue || c == geom.BoundaryIndex {
		return
	}

	pu := bg.Points.MustGet(u)
	pv := bg.Points.MustGet(v)
	pc := bg.Points.MustGet(c)
	pr := bg.Points.MustGet(r)

	if bg.Predicates.InCircle(pv, pu, pc, pr) <= 0 {
		return
	}

	near := geom.Triangle{A: u, B: v, C: r}
	far := geom.Triangle{A: v, B: u, C: c}
	bg.Tri.DeleteTriangle(u, v, r)
	bg.Tri.DeleteTriangle(v, u, c)

	n1 := geom.Triangle{A: r, B: u, C: c}
	n2 := geom.Triangle{A: r, B: c, C: v}
	// n1 and n2 share the new diagonal (r, c); add both before checking
	// either for a missing opposite, same reasoning as splitInside/splitOnEdge.
	bg.Tri.AddTriangle(n1.A, n1.B, n1.C, false)
	bg.Tri.AddTriangle(n2.A, n2.B, n2.C, false)
	bg.Tri.MaterializeGhostEdge(r, u)
	bg.Tri.MaterializeGhostEdge(u, c)
	bg.Tri.MaterializeGhostEdge(c, v)
	bg.Tri.MaterializeGhostEdge(v, r)
	bg.History.ReplaceMany([]geom.Triangle{near, far}, []geom.Triangle{n1, n2})

	bg.legalize(u, c, r)
	bg.legalize(c, v, r)
}
