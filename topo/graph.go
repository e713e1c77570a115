package topo

import (
	"sort"

	"github.com/osuushi-labs/delaunay/geom"
)

type unorderedEdge struct{ a, b geom.PointIndex }

func normalize(a, b geom.PointIndex) unorderedEdge {
	if a <= b {
		return unorderedEdge{a, b}
	}
	return unorderedEdge{b, a}
}

// VertexGraph is the undirected 1-skeleton of the current triangulation
// (component G in the data model): nodes are point indices belonging to
// at least one triangle, edges are the triangles' sides. Each edge tracks
// how many triangles currently support it, since an interior edge is
// shared by exactly two triangles and must survive the deletion of
// either one.
type VertexGraph struct {
	support map[unorderedEdge]int
	adj     map[geom.PointIndex]map[geom.PointIndex]struct{}
}

func newVertexGraph() *VertexGraph {
	return &VertexGraph{
		support: make(map[unorderedEdge]int),
		adj:     make(map[geom.PointIndex]map[geom.PointIndex]struct{}),
	}
}

// AddEdge records that a triangle supports edge (a, b).
func (g *VertexGraph) AddEdge(a, b geom.PointIndex) {
	g.support[normalize(a, b)]++
	g.link(a, b)
	g.link(b, a)
}

func (g *VertexGraph) link(a, b geom.PointIndex) {
	if g.adj[a] == nil {
		g.adj[a] = make(map[geom.PointIndex]struct{})
	}
	g.adj[a][b] = struct{}{}
}

// RemoveEdgeSupport records that one fewer triangle supports edge (a, b),
// removing the edge from the graph once no triangle supports it anymore.
func (g *VertexGraph) RemoveEdgeSupport(a, b geom.PointIndex) {
	e := normalize(a, b)
	if g.support[e] <= 0 {
		return
	}
	g.support[e]--
	if g.support[e] == 0 {
		delete(g.support, e)
		if g.adj[a] != nil {
			delete(g.adj[a], b)
		}
		if g.adj[b] != nil {
			delete(g.adj[b], a)
		}
	}
}

// ClearEmptyPoints removes vertices with no remaining incident edges.
func (g *VertexGraph) ClearEmptyPoints() {
	for v, neighbors := range g.adj {
		if len(neighbors) == 0 {
			delete(g.adj, v)
		}
	}
}

// Neighbors returns the vertices adjacent to v.
func (g *VertexGraph) Neighbors(v geom.PointIndex) []geom.PointIndex {
	out := make([]geom.PointIndex, 0, len(g.adj[v]))
	for n := range g.adj[v] {
		out = append(out, n)
	}
	return out
}

// Vertices returns every vertex recorded in the graph, sorted by index; a
// vertex whose last edge was removed stays listed until ClearEmptyPoints
// runs. Go's map iteration order is randomized per process, so
// callers that need a reproducible result across runs of the same inputs
// (e.g. picking a seed vertex by index) rely on this sort rather than
// ranging over the adjacency map directly.
func (g *VertexGraph) Vertices() []geom.PointIndex {
	out := make([]geom.PointIndex, 0, len(g.adj))
	for v := range g.adj {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Degree returns the number of edges incident to v.
func (g *VertexGraph) Degree(v geom.PointIndex) int { return len(g.adj[v]) }

// Equal reports whether g and o support exactly the same set of edges.
func (g *VertexGraph) Equal(o *VertexGraph) bool {
	if len(g.support) != len(o.support) {
		return false
	}
	for e, c := range g.support {
		if o.support[e] != c {
			return false
		}
	}
	return true
}
