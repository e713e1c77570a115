// Package delaunay is the public facade over the incremental Delaunay
// triangulation core: construction via Bowyer-Watson or de Berg
// randomised-incremental insertion, ghost-triangle bookkeeping and the
// triangulation comparators used to treat the two engines as
// interchangeable. Internals live in geom, topo, ghost, locate, bowyer and
// berg; this file only re-exports the surface spec.md §6 calls out,
// mirroring the way the teacher's root package re-exported
// triangulate/types.go's value types for its own public API.
package delaunay

import (
	"github.com/osuushi-labs/delaunay/berg"
	"github.com/osuushi-labs/delaunay/bowyer"
	"github.com/osuushi-labs/delaunay/geom"
	"github.com/osuushi-labs/delaunay/ghost"
	"github.com/osuushi-labs/delaunay/predicate"
	"github.com/osuushi-labs/delaunay/topo"
)

// Value and container types re-exported so callers never need to import
// the internal packages directly.
type (
	Point         = geom.Point
	PointIndex    = geom.PointIndex
	Triangle      = geom.Triangle
	PointStore    = geom.PointStore
	Predicates    = geom.Predicates
	Triangulation = topo.Triangulation
	Edge          = topo.Edge
)

// Sentinel constants, per spec.md §6.
const (
	FirstPointIndex         = geom.FirstPointIndex
	LowerRightBoundingIndex = geom.LowerRightBoundingIndex
	LowerLeftBoundingIndex  = geom.LowerLeftBoundingIndex
	UpperBoundingIndex      = geom.UpperBoundingIndex
	BoundaryIndex           = geom.BoundaryIndex
	DefaultAdjacentValue    = geom.DefaultAdjacentValue
	MinWidthHeight          = geom.MinWidthHeight
	BoundingTriangleShift   = geom.BoundingTriangleShift
)

// DuplicatePolicy controls what happens when an inserted point coincides
// with a vertex already present in the triangulation.
type DuplicatePolicy = bowyer.DuplicatePolicy

const (
	DuplicateSkip  = bowyer.DuplicateSkip
	DuplicateError = bowyer.DuplicateError
)

// DefaultPredicates returns the library's shipped geom.Predicates
// implementation, used by every test and by cmd/delaunaydemo unless a
// caller supplies their own.
func DefaultPredicates() Predicates { return predicate.Float64{} }

// TriangulateBowyer implements triangulate_bowyer(points [, seed]).
func TriangulateBowyer(points []Point, seed int64) (*Triangulation, *PointStore, error) {
	return bowyer.Triangulate(points, DefaultPredicates(), seed)
}

// TriangulateBerg implements triangulate_berg(points [, seed]).
func TriangulateBerg(points []Point, seed int64) (*Triangulation, *PointStore, error) {
	return berg.Triangulate(points, DefaultPredicates(), seed)
}

// BowyerTriangulator is the stateful add_point_bowyer! collaborator: build
// one with NewBowyerTriangulator, then call AddPoint per new point.
type BowyerTriangulator = bowyer.Triangulator

// NewBowyerTriangulator seeds a BowyerTriangulator over points (which may
// be empty) using the shipped predicates.
func NewBowyerTriangulator(points []Point, seed int64) *BowyerTriangulator {
	return bowyer.New(points, DefaultPredicates(), seed)
}

// BergTriangulator is the stateful add_point_berg! collaborator.
type BergTriangulator = berg.Triangulator

// NewBergTriangulator seeds a BergTriangulator over points using the
// shipped predicates.
func NewBergTriangulator(points []Point, seed int64) *BergTriangulator {
	return berg.New(points, DefaultPredicates(), seed)
}

// AddGhostTriangles implements add_ghost_triangles!.
func AddGhostTriangles(tr *Triangulation) { ghost.AddGhostTriangles(tr) }

// RemoveGhostTriangles implements remove_ghost_triangles!.
func RemoveGhostTriangles(tr *Triangulation) { ghost.RemoveGhostTriangles(tr) }

// CompareTriangleSets implements compare_triangle_sets.
func CompareTriangleSets(a, b []Triangle) bool {
	return topo.CompareTriangleSets(a, b)
}

// CompareUnconstrainedTriangulations implements
// compare_unconstrained_triangulations: equality of T, A, V and G after
// both sides have had clear_empty_keys! applied.
func CompareUnconstrainedTriangulations(a, b *Triangulation) bool {
	return topo.CompareUnconstrained(a, b)
}

// CompareDebergToBowyerWatson implements compare_deberg_to_bowyerwatson: the
// two engines are equivalent iff their unconstrained triangulations match.
func CompareDebergToBowyerWatson(bowyerTri, debergTri *Triangulation) bool {
	return topo.CompareUnconstrained(bowyerTri, debergTri)
}
