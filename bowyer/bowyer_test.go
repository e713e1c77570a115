package bowyer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osuushi-labs/delaunay/bowyer"
	"github.com/osuushi-labs/delaunay/geom"
	"github.com/osuushi-labs/delaunay/predicate"
	"github.com/osuushi-labs/delaunay/topo"
)

func squarePoints() []geom.Point {
	return []geom.Point{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 10},
		{X: 0, Y: 10},
		{X: 5, Y: 5},
	}
}

// assertEmptyCircumcircleProperty implements spec §8's "Delaunay property":
// no point lies strictly inside the circumcircle of any solid triangle.
func assertEmptyCircumcircleProperty(t *testing.T, tr *topo.Triangulation, store *geom.PointStore, preds geom.Predicates) {
	t.Helper()
	for _, tri := range tr.Triangles() {
		if tri.IsGhost() {
			continue
		}
		idx := tri.Indices()
		a, err := store.Get(idx[0])
		require.NoError(t, err)
		b, err := store.Get(idx[1])
		require.NoError(t, err)
		c, err := store.Get(idx[2])
		require.NoError(t, err)

		for i := 0; i < store.Len(); i++ {
			p := geom.FirstPointIndex + geom.PointIndex(i)
			if p == idx[0] || p == idx[1] || p == idx[2] {
				continue
			}
			pp := store.At(i)
			assert.LessOrEqualf(t, preds.InCircle(a, b, c, pp), 0,
				"point %d (%v) lies inside the circumcircle of solid triangle %v", p, pp, idx)
		}
	}
}

func TestTriangulateProducesConsistentTopology(t *testing.T) {
	tr, store, err := bowyer.Triangulate(squarePoints(), predicate.Float64{}, 928881)
	require.NoError(t, err)
	require.NotNil(t, tr)
	require.Equal(t, 5, store.Len())
	assert.NoError(t, tr.CheckInvariants())

	solid := 0
	for _, tri := range tr.Triangles() {
		if !tri.IsGhost() {
			solid++
		}
	}
	assert.Greater(t, solid, 0)

	assertEmptyCircumcircleProperty(t, tr, store, predicate.Float64{})
}

func TestTriangulateIsDeterministicForFixedSeed(t *testing.T) {
	trA, _, err := bowyer.Triangulate(squarePoints(), predicate.Float64{}, 42)
	require.NoError(t, err)
	trB, _, err := bowyer.Triangulate(squarePoints(), predicate.Float64{}, 42)
	require.NoError(t, err)

	assert.True(t, topo.CompareTriangleSets(trA.Triangles(), trB.Triangles()))
}

func TestAddPointIncrementallyGrowsTriangulation(t *testing.T) {
	bt := bowyer.New(nil, predicate.Float64{}, 1)
	before := bt.Tri.NumTriangles()

	for _, p := range squarePoints() {
		_, err := bt.AddPoint(p)
		require.NoError(t, err)
	}

	assert.Greater(t, bt.Tri.NumTriangles(), before)
	assert.NoError(t, bt.Tri.CheckInvariants())
}

func TestAddPointDuplicateSkipsByDefault(t *testing.T) {
	bt := bowyer.New(nil, predicate.Float64{}, 7)
	_, err := bt.AddPoint(geom.Point{X: 1, Y: 1})
	require.NoError(t, err)
	before := bt.Tri.NumTriangles()

	_, err = bt.AddPoint(geom.Point{X: 1, Y: 1})
	require.NoError(t, err)
	assert.Equal(t, before, bt.Tri.NumTriangles())
}

// scatteredPoints mirrors berg_test.go's fixture of the same name: distinct
// enough that the two engines' triangle sets are comparable without an
// in-circle tie, and dense enough to exercise several insertions past the
// first triangle.
func scatteredPoints() []geom.Point {
	return []geom.Point{
		{X: 0, Y: 0},
		{X: 11, Y: 1},
		{X: 9, Y: 12},
		{X: 1, Y: 8},
		{X: 6, Y: 3},
		{X: 4, Y: 9},
	}
}

// TestGhostBoundaryTracesBoundingTriangle implements spec §8's "Hull
// consistency" property: the boundary-edge set {(u,v): A(u,v)=BoundaryIndex}
// forms a single closed polygon. Each ghost edge is the reverse of a solid
// hull edge, so the polygon runs clockwise, opposite to the solid
// triangles' counter-clockwise winding.
//
// "Current points" here reads as every vertex in the graph, including the
// three permanent bounding sentinels sized at construction to strictly
// contain the input - not just the caller's own points. A hull edge
// between two real points always gets a "skirt" triangle (the two real
// points plus a bounding-sentinel apex) materialised on its far side once
// the sentinels are wired in, so it stops needing a ghost; only the
// sentinel triangle's own three edges have no far side, ever. The boundary
// polygon this walks is therefore always exactly the bounding triangle,
// for any input.
func TestGhostBoundaryTracesBoundingTriangle(t *testing.T) {
	for _, points := range [][]geom.Point{squarePoints(), scatteredPoints()} {
		tr, _, err := bowyer.Triangulate(points, predicate.Float64{}, 928881)
		require.NoError(t, err)

		edges := tr.ReverseEdges(geom.BoundaryIndex)
		require.Len(t, edges, 3, "boundary edge set must stay exactly the bounding triangle")

		next := make(map[geom.PointIndex]geom.PointIndex, 3)
		for _, e := range edges {
			next[e.I] = e.J
		}

		seen := make(map[geom.PointIndex]bool, 3)
		v := edges[0].I
		for i := 0; i < 3; i++ {
			require.False(t, seen[v], "boundary walk revisited %d before closing", v)
			seen[v] = true
			require.True(t, v.IsBounding(), "boundary vertex %d is not a bounding sentinel", v)
			v = next[v]
		}
		assert.Equal(t, edges[0].I, v, "boundary edges must close into a single cycle")
		assert.True(t, seen[geom.LowerRightBoundingIndex])
		assert.True(t, seen[geom.LowerLeftBoundingIndex])
		assert.True(t, seen[geom.UpperBoundingIndex])
	}
}

func TestAddPointDuplicateErrorsWhenConfigured(t *testing.T) {
	bt := bowyer.New(nil, predicate.Float64{}, 7)
	bt.Duplicates = bowyer.DuplicateError
	_, err := bt.AddPoint(geom.Point{X: 1, Y: 1})
	require.NoError(t, err)

	_, err = bt.AddPoint(geom.Point{X: 1, Y: 1})
	assert.Error(t, err)
}
