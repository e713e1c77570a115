package locate

import (
	"github.com/osuushi-labs/delaunay/delaunayerr"
	"github.com/osuushi-labs/delaunay/geom"
	"github.com/osuushi-labs/delaunay/topo"
)

type historyNodeID int

type historyNode struct {
	triangle geom.Triangle
	children []historyNodeID
}

// History is the arena-allocated DAG linking every triangle ever created
// to the immediate replacements that destroyed it (§3, §9: "arena
// allocated nodes with parent-to-children indices; no per-node heap
// allocation in hot paths"). Leaves of the DAG are the current
// triangulation.
type History struct {
	nodes []historyNode
	root  historyNodeID
	// leaf is keyed by topo.Canonical(triangle): a triangle reconstructed
	// from a different starting vertex than the one it was stored under
	// (as happens when a cascading edge flip re-derives the same leaf)
	// must still hit the same entry.
	leaf map[geom.Triangle]historyNodeID
}

// NewHistory seeds the DAG with a single root triangle (typically the
// bounding triangle).
func NewHistory(root geom.Triangle) *History {
	h := &History{nodes: make([]historyNode, 0, 64)}
	id := h.alloc(root)
	h.root = id
	h.leaf = map[geom.Triangle]historyNodeID{topo.Canonical(root): id}
	return h
}

func (h *History) alloc(t geom.Triangle) historyNodeID {
	h.nodes = append(h.nodes, historyNode{triangle: t})
	return historyNodeID(len(h.nodes) - 1)
}

// Replace records that the current leaf `old` was destroyed and replaced
// by `news`, all becoming children of old's node.
func (h *History) Replace(old geom.Triangle, news []geom.Triangle) {
	h.ReplaceMany([]geom.Triangle{old}, news)
}

// ReplaceMany records that every triangle in `olds` (all current leaves)
// was destroyed and replaced by the same set of new triangles `news` -
// the shape an edge flip takes: the near and far triangle both collapse
// into the same two post-flip triangles, so both need an edge to the same
// two new DAG nodes rather than each getting its own copy.
func (h *History) ReplaceMany(olds []geom.Triangle, news []geom.Triangle) {
	newIDs := make([]historyNodeID, len(news))
	for i, nt := range news {
		newIDs[i] = h.alloc(nt)
		h.leaf[topo.Canonical(nt)] = newIDs[i]
	}
	for _, old := range olds {
		key := topo.Canonical(old)
		parentID, ok := h.leaf[key]
		if !ok {
			delaunayerr.Fatalf(delaunayerr.InvariantViolation, "history: %v is not a current leaf", old)
		}
		delete(h.leaf, key)
		h.nodes[parentID].children = append(h.nodes[parentID].children, newIDs...)
	}
}

// Contains reports whether triangle t is a current leaf of the DAG.
func (h *History) Contains(t geom.Triangle) bool {
	_, ok := h.leaf[topo.Canonical(t)]
	return ok
}

// NumNodes returns the total number of triangles ever recorded, live or
// dead.
func (h *History) NumNodes() int { return len(h.nodes) }

// Locate descends from the root toward p: at each node, it picks the
// child whose triangle contains p per the supplied predicate. Ties -
// more than one child claiming to contain p - resolve to the
// lexicographically-earlier child, the spec's fixed tie-break rule.
func (h *History) Locate(p geom.Point, contains func(geom.Triangle, geom.Point) bool) geom.Triangle {
	node := h.root
	for {
		n := &h.nodes[node]
		if len(n.children) == 0 {
			return n.triangle
		}
		next := historyNodeID(-1)
		for _, c := range n.children {
			if !contains(h.nodes[c].triangle, p) {
				continue
			}
			if next == -1 || lexLess(h.nodes[c].triangle, h.nodes[next].triangle) {
				next = c
			}
		}
		if next == -1 {
			delaunayerr.Fatalf(delaunayerr.DegenerateInput, "history: no child of %v contains query point", n.triangle)
		}
		node = next
	}
}

func lexLess(a, b geom.Triangle) bool {
	ai, bi := a.Indices(), b.Indices()
	for i := 0; i < 3; i++ {
		if ai[i] != bi[i] {
			return ai[i] < bi[i]
		}
	}
	return false
}
