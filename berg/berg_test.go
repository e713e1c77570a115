package berg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osuushi-labs/delaunay/berg"
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
	tr, store, err := berg.Triangulate(squarePoints(), predicate.Float64{}, 928881)
	require.NoError(t, err)
	require.NotNil(t, tr)
	require.Equal(t, 5, store.Len())
	assert.NoError(t, tr.CheckInvariants())

	assertEmptyCircumcircleProperty(t, tr, store, predicate.Float64{})
}

func TestTriangulateIsDeterministicForFixedSeed(t *testing.T) {
	trA, _, err := berg.Triangulate(squarePoints(), predicate.Float64{}, 42)
	require.NoError(t, err)
	trB, _, err := berg.Triangulate(squarePoints(), predicate.Float64{}, 42)
	require.NoError(t, err)

	assert.True(t, topo.CompareTriangleSets(trA.Triangles(), trB.Triangles()))
}

func TestAddPointIncrementallyGrowsHistory(t *testing.T) {
	bg := berg.New(nil, predicate.Float64{}, 3)
	before := bg.History.NumNodes()

	for _, p := range squarePoints() {
		_, err := bg.AddPoint(p)
		require.NoError(t, err)
	}

	assert.Greater(t, bg.History.NumNodes(), before)
	assert.NoError(t, bg.Tri.CheckInvariants())
}

func TestAddPointDuplicateSkipsByDefault(t *testing.T) {
	bg := berg.New(nil, predicate.Float64{}, 9)
	_, err := bg.AddPoint(geom.Point{X: 1, Y: 1})
	require.NoError(t, err)
	before := bg.Tri.NumTriangles()

	_, err = bg.AddPoint(geom.Point{X: 1, Y: 1})
	require.NoError(t, err)
	assert.Equal(t, before, bg.Tri.NumTriangles())
}

// scatteredPoints avoids the exact cocircularity of squarePoints' four
// corners plus centre, so the two engines' final triangle sets are
// comparable without landing on an in-circle tie.
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

// TestBergMatchesBowyerWatson checks the two engines agree on the final
// triangle set for the same point set, per the equivalence oracle scenario
// the history DAG exists to make cheap.
func TestBergMatchesBowyerWatson(t *testing.T) {
	points := scatteredPoints()
	bTri, _, err := berg.Triangulate(points, predicate.Float64{}, 928881)
	require.NoError(t, err)
	wTri, _, err := bowyer.Triangulate(points, predicate.Float64{}, 928881)
	require.NoError(t, err)

	solid := func(tr *topo.Triangulation) []geom.Triangle {
		var out []geom.Triangle
		for _, tri := range tr.Triangles() {
			if !tri.IsGhost() {
				out = append(out, tri)
			}
		}
		return out
	}
	assert.True(t, topo.CompareTriangleSets(solid(bTri), solid(wTri)))
}

// TestBergSatisfiesEmptyCircumcircleOnCascadingFlips exercises the empty
// circumcircle property on a denser point set than squarePoints(), the
// kind of input where a single insertion legalises through more than one
// level of flips.
func TestBergSatisfiesEmptyCircumcircleOnCascadingFlips(t *testing.T) {
	points := []geom.Point{
		{X: 0, Y: 0}, {X: 4, Y: -1}, {X: 8, Y: 0}, {X: 9, Y: 4},
		{X: 6, Y: 7}, {X: 2, Y: 7}, {X: -1, Y: 4}, {X: 4, Y: 3},
		{X: 3, Y: 1}, {X: 5, Y: 5}, {X: 1, Y: 2},
	}
	tr, store, err := berg.Triangulate(points, predicate.Float64{}, 928881)
	require.NoError(t, err)
	assertEmptyCircumcircleProperty(t, tr, store, predicate.Float64{})
}
