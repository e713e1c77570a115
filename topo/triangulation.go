// Package topo implements the combinatorial structures the triangulation
// core mutates: the triangle set T, the adjacency map A, the reverse
// adjacency map V and the vertex graph G, kept consistent with each other
// on every insertion. Layout is grounded on the teacher's query-graph
// bookkeeping style (osuushi-triangulate/triangulate/querygraph.go) and on
// katalvlaran-lvlath's adjacency-list conventions, adapted to a map keyed
// on directed vertex pairs instead of a segment structure.
package topo

import (
	"sort"

	"github.com/osuushi-labs/delaunay/delaunayerr"
	"github.com/osuushi-labs/delaunay/geom"
)

// Edge is a directed pair of point indices.
type Edge struct {
	I, J geom.PointIndex
}

// Triangulation owns T, A, V and G for a single triangulation context. It
// is not safe for concurrent use (§5): all mutation is in-place and
// ordered by call sequence.
type Triangulation struct {
	triangles map[geom.Triangle]struct{}
	adjacency map[Edge]geom.PointIndex
	reverse   map[geom.PointIndex]map[Edge]struct{}
	graph     *VertexGraph
}

// New returns an empty Triangulation.
func New() *Triangulation {
	return &Triangulation{
		triangles: make(map[geom.Triangle]struct{}),
		adjacency: make(map[Edge]geom.PointIndex),
		reverse:   make(map[geom.PointIndex]map[Edge]struct{}),
		graph:     newVertexGraph(),
	}
}

// Canonical rotates t so its lowest-valued vertex comes first. Two
// triangles related by a cyclic shift always share the same canonical
// form, which is what lets the triangle set treat rotations as identical
// without scanning all three rotations on every lookup.
func Canonical(t geom.Triangle) geom.Triangle {
	idx := t.Indices()
	minPos := 0
	for i := 1; i < 3; i++ {
		if idx[i] < idx[minPos] {
			minPos = i
		}
	}
	return t.Shift(minPos)
}

// Graph returns the vertex graph G.
func (tr *Triangulation) Graph() *VertexGraph { return tr.graph }

// NumTriangles returns the number of solid and ghost triangles currently
// stored.
func (tr *Triangulation) NumTriangles() int { return len(tr.triangles) }

// HasTriangle reports whether t (in any rotation) is currently stored.
func (tr *Triangulation) HasTriangle(t geom.Triangle) bool {
	_, ok := tr.triangles[Canonical(t)]
	return ok
}

// Triangles returns every stored triangle, one entry per rotation class,
// in its canonical rotation.
func (tr *Triangulation) Triangles() []geom.Triangle {
	out := make([]geom.Triangle, 0, len(tr.triangles))
	for t := range tr.triangles {
		out = append(out, t)
	}
	return out
}

// AddTriangle inserts (i, j, k) into T, writes the three forward
// adjacency entries, the three reverse-adjacency entries, and the three
// graph edges. When updateGhostEdges is set, any edge of the new triangle
// that has no recorded opposite (i.e. is newly exposed on the hull) gets
// a ghost triangle materialised across it.
func (tr *Triangulation) AddTriangle(i, j, k geom.PointIndex, updateGhostEdges bool) {
	// A newly exposed edge gets a ghost triangle sharing its new owner's
	// own directed slot (a ghost across (i, j) is recorded at A(i,j) =
	// BoundaryIndex, same slot a later real triangle on that exact side
	// would use). When a real triangle now claims that slot, the ghost's
	// own bookkeeping (its other two directed edges, its V entries) must
	// be torn down first or it lingers as an orphan.
	tr.reclaimStaleGhost(i, j)
	tr.reclaimStaleGhost(j, k)
	tr.reclaimStaleGhost(k, i)

	t := geom.Triangle{A: i, B: j, C: k}
	tr.triangles[Canonical(t)] = struct{}{}

	tr.setAdjacency(i, j, k)
	tr.setAdjacency(j, k, i)
	tr.setAdjacency(k, i, j)

	tr.addReverse(i, j, k)
	tr.addReverse(j, k, i)
	tr.addReverse(k, i, j)

	tr.graph.AddEdge(i, j)
	tr.graph.AddEdge(j, k)
	tr.graph.AddEdge(k, i)

	if updateGhostEdges {
		tr.MaterializeGhostEdge(i, j)
		tr.MaterializeGhostEdge(j, k)
		tr.MaterializeGhostEdge(k, i)
	}
}

// MaterializeGhostEdge checks whether (u, v) currently has no recorded
// opposite and, if so, adds a BoundaryIndex ghost across it. Callers that
// add a batch of mutually-adjacent triangles sharing brand-new internal
// edges (a point-insertion fan, an edge-flip's two replacement triangles)
// should add every triangle in the batch with updateGhostEdges=false and
// then call this once per batch's true outer edge - checking each new
// triangle's edges individually as they're added would find the batch's
// own not-yet-added neighbour missing and wrongly ghost an edge that's
// about to become interior.
func (tr *Triangulation) MaterializeGhostEdge(u, v geom.PointIndex) {
	if u == geom.BoundaryIndex || v == geom.BoundaryIndex {
		return
	}
	if tr.GetEdge(v, u) == geom.DefaultAdjacentValue {
		tr.AddTriangle(v, u, geom.BoundaryIndex, false)
	}
}

// reclaimStaleGhost deletes the ghost triangle (u, v, BoundaryIndex), if
// one is currently recorded, before some other triangle claims directed
// edge (u, v) as its own.
func (tr *Triangulation) reclaimStaleGhost(u, v geom.PointIndex) {
	if tr.GetEdge(u, v) == geom.BoundaryIndex {
		tr.DeleteTriangle(u, v, geom.BoundaryIndex)
	}
}

func (tr *Triangulation) setAdjacency(i, j, k geom.PointIndex) {
	tr.adjacency[Edge{I: i, J: j}] = k
}

func (tr *Triangulation) addReverse(i, j, k geom.PointIndex) {
	if tr.reverse[k] == nil {
		tr.reverse[k] = make(map[Edge]struct{})
	}
	tr.reverse[k][Edge{I: i, J: j}] = struct{}{}
}

// GetEdge returns A(i,j), or DefaultAdjacentValue if the edge has never
// been set or has since been cleared. It never inserts a new key.
func (tr *Triangulation) GetEdge(i, j geom.PointIndex) geom.PointIndex {
	if v, ok := tr.adjacency[Edge{I: i, J: j}]; ok {
		return v
	}
	return geom.DefaultAdjacentValue
}

// EdgeExists reports whether A(i,j) names a real vertex.
func (tr *Triangulation) EdgeExists(i, j geom.PointIndex) bool {
	return tr.GetEdge(i, j) != geom.DefaultAdjacentValue
}

// IsBoundaryEdge reports whether (i, j) is a hull edge: either A(i,j) is
// BoundaryIndex, or (i, j) is recorded under V[BoundaryIndex].
func (tr *Triangulation) IsBoundaryEdge(i, j geom.PointIndex) bool {
	if tr.GetEdge(i, j) == geom.BoundaryIndex {
		return true
	}
	if edges, ok := tr.reverse[geom.BoundaryIndex]; ok {
		_, ok := edges[Edge{I: i, J: j}]
		return ok
	}
	return false
}

// ReverseEdges returns the edges recorded under V[k].
// ReverseEdges returns every edge (i, j) such that some triangle (i, j, k)
// exists, sorted by (i, j) for reproducibility across runs (see
// VertexGraph.Vertices).
func (tr *Triangulation) ReverseEdges(k geom.PointIndex) []Edge {
	edges := tr.reverse[k]
	out := make([]Edge, 0, len(edges))
	for e := range edges {
		out = append(out, e)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].I != out[b].I {
			return out[a].I < out[b].I
		}
		return out[a].J < out[b].J
	})
	return out
}

// DeleteTriangle removes (i, j, k) and both of its cyclic shifts from T,
// tombstones the three A entries (set to DefaultAdjacentValue rather than
// deleted outright, so a later ClearEmptyKeys pass can sweep them), and
// removes the three V entries. Graph edge support is decremented, and the
// edge itself is dropped from G once no triangle supports it.
func (tr *Triangulation) DeleteTriangle(i, j, k geom.PointIndex) {
	t := geom.Triangle{A: i, B: j, C: k}
	delete(tr.triangles, Canonical(t))

	tr.tombstone(i, j)
	tr.tombstone(j, k)
	tr.tombstone(k, i)

	tr.removeReverse(i, j, k)
	tr.removeReverse(j, k, i)
	tr.removeReverse(k, i, j)

	tr.graph.RemoveEdgeSupport(i, j)
	tr.graph.RemoveEdgeSupport(j, k)
	tr.graph.RemoveEdgeSupport(k, i)
}

func (tr *Triangulation) tombstone(i, j geom.PointIndex) {
	if _, ok := tr.adjacency[Edge{I: i, J: j}]; ok {
		tr.adjacency[Edge{I: i, J: j}] = geom.DefaultAdjacentValue
	}
}

func (tr *Triangulation) removeReverse(i, j, k geom.PointIndex) {
	if edges, ok := tr.reverse[k]; ok {
		delete(edges, Edge{I: i, J: j})
	}
}

// ClearEmptyAdjacencyKeys deletes A entries tombstoned by DeleteTriangle.
// Idempotent.
func (tr *Triangulation) ClearEmptyAdjacencyKeys() {
	for e, v := range tr.adjacency {
		if v == geom.DefaultAdjacentValue {
			delete(tr.adjacency, e)
		}
	}
}

// ClearEmptyReverseKeys deletes V entries whose edge set became empty.
// Idempotent.
func (tr *Triangulation) ClearEmptyReverseKeys() {
	for k, edges := range tr.reverse {
		if len(edges) == 0 {
			delete(tr.reverse, k)
		}
	}
}

// ClearEmptyKeys sweeps A, V and G of the lazy tombstones/empty entries
// left behind by DeleteTriangle. Idempotent.
func (tr *Triangulation) ClearEmptyKeys() {
	tr.ClearEmptyAdjacencyKeys()
	tr.ClearEmptyReverseKeys()
	tr.graph.ClearEmptyPoints()
}

// CheckInvariants verifies that A and V are mutual inverses on non-empty
// entries. It is a debug/verification helper, never called from normal
// insertion, and returns an InvariantViolation error rather than panicking
// so callers can log-and-continue in test harnesses.
func (tr *Triangulation) CheckInvariants() error {
	for e, k := range tr.adjacency {
		if k == geom.DefaultAdjacentValue {
			continue
		}
		edges, ok := tr.reverse[k]
		if !ok {
			return delaunayerr.InvariantViolationf("topo: A(%d,%d)=%d but V[%d] is empty", e.I, e.J, k, k)
		}
		if _, ok := edges[e]; !ok {
			return delaunayerr.InvariantViolationf("topo: A(%d,%d)=%d but (%d,%d) not in V[%d]", e.I, e.J, k, e.I, e.J, k)
		}
	}
	for k, edges := range tr.reverse {
		for e := range edges {
			if got := tr.GetEdge(e.I, e.J); got != k {
				return delaunayerr.InvariantViolationf("topo: (%d,%d) in V[%d] but A(%d,%d)=%d", e.I, e.J, k, e.I, e.J, got)
			}
		}
	}
	return nil
}

// CompareTriangleSets reports whether a and b represent the same multiset
// of triangles, modulo cyclic rotation.
func CompareTriangleSets(a, b []geom.Triangle) bool {
	ca := make(map[geom.Triangle]int, len(a))
	for _, t := range a {
		ca[Canonical(t)]++
	}
	cb := make(map[geom.Triangle]int, len(b))
	for _, t := range b {
		cb[Canonical(t)]++
	}
	if len(ca) != len(cb) {
		return false
	}
	for k, v := range ca {
		if cb[k] != v {
			return false
		}
	}
	return true
}

// CompareUnconstrained is the conjunction of the four pointwise equalities
// (T, A, V, G) after ClearEmptyKeys on both sides.
func CompareUnconstrained(a, b *Triangulation) bool {
	a.ClearEmptyKeys()
	b.ClearEmptyKeys()

	if !CompareTriangleSets(a.Triangles(), b.Triangles()) {
		return false
	}

	if len(a.adjacency) != len(b.adjacency) {
		return false
	}
	for e, v := range a.adjacency {
		if bv, ok := b.adjacency[e]; !ok || bv != v {
			return false
		}
	}

	if len(a.reverse) != len(b.reverse) {
		return false
	}
	for k, edges := range a.reverse {
		be, ok := b.reverse[k]
		if !ok || len(be) != len(edges) {
			return false
		}
		for e := range edges {
			if _, ok := be[e]; !ok {
				return false
			}
		}
	}

	return a.graph.Equal(b.graph)
}
