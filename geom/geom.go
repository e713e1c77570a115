// Package geom provides the geometric primitives the triangulation core
// consumes: a tagged point-index type, plain Point/Triangle value shapes,
// the abstract Predicates contract (orientation and in-circle), and the
// deterministic bounding-triangle construction described by the data
// model. Predicate exactness is out of scope here; geom depends only on
// the interface, never on a concrete implementation (see package
// predicate for the default one).
package geom

import "math"

// PointIndex names either an input point (>= FirstPointIndex) or one of
// four negative sentinels. It is a distinct type rather than a bare int so
// that Kind() acts as a cheap tagged-union discriminator without paying
// for an interface or a sum-type allocation on every lookup.
type PointIndex int

// IndexKind classifies a PointIndex.
type IndexKind int

const (
	KindInput IndexKind = iota
	KindGhost
	KindBoundingLR
	KindBoundingLL
	KindBoundingU
)

const (
	// FirstPointIndex is the smallest valid index into the input point
	// array.
	FirstPointIndex PointIndex = 1

	// The three bounding-triangle sentinels and the ghost/boundary
	// sentinel. Concrete values are implementation-defined; callers must
	// treat them as opaque and use Kind()/the exported constants rather
	// than assuming specific numbers.
	LowerRightBoundingIndex PointIndex = -1
	LowerLeftBoundingIndex  PointIndex = -2
	UpperBoundingIndex      PointIndex = -3
	BoundaryIndex           PointIndex = -4

	// DefaultAdjacentValue is returned by a missing adjacency lookup. It is
	// distinct from every sentinel above and from every non-negative input
	// index.
	DefaultAdjacentValue PointIndex = math.MinInt32
)

// Kind classifies idx.
func (idx PointIndex) Kind() IndexKind {
	switch idx {
	case LowerRightBoundingIndex:
		return KindBoundingLR
	case LowerLeftBoundingIndex:
		return KindBoundingLL
	case UpperBoundingIndex:
		return KindBoundingU
	case BoundaryIndex:
		return KindGhost
	default:
		return KindInput
	}
}

// IsBounding reports whether idx names one of the three bounding-triangle
// vertices.
func (idx PointIndex) IsBounding() bool {
	switch idx.Kind() {
	case KindBoundingLR, KindBoundingLL, KindBoundingU:
		return true
	default:
		return false
	}
}

// IsGhost reports whether idx is the sentinel boundary vertex.
func (idx PointIndex) IsGhost() bool { return idx == BoundaryIndex }

const (
	// MinWidthHeight bounds the bounding-triangle scale away from zero when
	// the input degenerates to a single point or a vertical/horizontal
	// line.
	MinWidthHeight = 1.0

	// BoundingTriangleShift is the constant `s` from the data model; large
	// enough that every input point lies strictly inside the bounding
	// triangle for any point set whose extent is measured by PointStats.
	BoundingTriangleShift = 3.0
)

// Point is an ordered pair of real coordinates.
type Point struct {
	X, Y float64
}

// Triangle is an ordered triple of point indices, CCW by convention.
// Triangles related by a cyclic shift are considered the same triangle;
// use CircularEqual rather than ==.
type Triangle struct {
	A, B, C PointIndex
}

// Indices returns the triangle's vertices in stored order.
func (t Triangle) Indices() [3]PointIndex { return [3]PointIndex{t.A, t.B, t.C} }

// Shift returns the r-th cyclic rotation of t (r is taken mod 3).
func (t Triangle) Shift(r int) Triangle {
	switch ((r % 3) + 3) % 3 {
	case 0:
		return t
	case 1:
		return Triangle{A: t.B, B: t.C, C: t.A}
	default:
		return Triangle{A: t.C, B: t.A, C: t.B}
	}
}

// CircularEqual reports whether t and o name the same triangle, allowing
// for cyclic rotation.
func (t Triangle) CircularEqual(o Triangle) bool {
	return t == o || t == o.Shift(1) || t == o.Shift(2)
}

// IsGhost reports whether any vertex of t is the boundary sentinel.
func (t Triangle) IsGhost() bool {
	return t.A.IsGhost() || t.B.IsGhost() || t.C.IsGhost()
}

// GhostHullEdge returns the two non-boundary vertices of a ghost triangle
// in the order (u, v) such that (u, v, BoundaryIndex) is CCW, i.e. (u, v)
// is the real hull edge the ghost materialises. ok is false if t is not a
// ghost triangle.
func (t Triangle) GhostHullEdge() (u, v PointIndex, ok bool) {
	idx := t.Indices()
	for i := 0; i < 3; i++ {
		if idx[i] == BoundaryIndex {
			return idx[(i+1)%3], idx[(i+2)%3], true
		}
	}
	return 0, 0, false
}

// ChooseUVW implements the rotation law: exactly one of a, b, c must be
// true, selecting (i,j,k), (j,k,i) or (k,i,j) respectively.
func ChooseUVW(a, b, c bool, i, j, k PointIndex) (PointIndex, PointIndex, PointIndex) {
	switch {
	case a && !b && !c:
		return i, j, k
	case b && !a && !c:
		return j, k, i
	case c && !a && !b:
		return k, i, j
	default:
		panic("geom: ChooseUVW requires exactly one selector to be true")
	}
}

// Predicates is the abstract geometric contract the core consumes.
// Implementations are treated as black boxes: the core never inspects
// their internals, only their sign. Ties (a return of 0) are the
// implementation's decision, but the core treats 0 as "not strictly"
// wherever spec ties matter (§4.1, §4.5.1).
type Predicates interface {
	// Orient returns +1 if (p, q, r) turns counter-clockwise, -1 if
	// clockwise, 0 if collinear.
	Orient(p, q, r Point) int

	// InCircle returns +1 if p lies strictly inside the circumcircle of
	// the CCW triangle (a, b, c), -1 if strictly outside, 0 on the circle.
	InCircle(a, b, c, p Point) int
}

// PointStats returns the centre of the bounding box of points and the
// scale M = max(width, height, MinWidthHeight) used to size the bounding
// triangle.
func PointStats(points []Point) (cx, cy, m float64) {
	if len(points) == 0 {
		return 0, 0, MinWidthHeight
	}
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	cx = (minX + maxX) / 2
	cy = (minY + maxY) / 2
	width := maxX - minX
	height := maxY - minY
	m = math.Max(math.Max(width, height), MinWidthHeight)
	return cx, cy, m
}

// BoundingTriangleCoords computes the three bounding-triangle vertices
// from the statistics returned by PointStats.
func BoundingTriangleCoords(cx, cy, m float64) (lowerRight, lowerLeft, upper Point) {
	s := BoundingTriangleShift
	lowerRight = Point{X: cx + s*m, Y: cy - m}
	lowerLeft = Point{X: cx - s*m, Y: cy - m}
	upper = Point{X: cx, Y: cy + s*m}
	return lowerRight, lowerLeft, upper
}
