package predicate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osuushi-labs/delaunay/geom"
	"github.com/osuushi-labs/delaunay/predicate"
)

func TestOrientSignsAndSymmetry(t *testing.T) {
	p := predicate.Float64{}
	a := geom.Point{X: 0, Y: 0}
	b := geom.Point{X: 1, Y: 0}
	c := geom.Point{X: 0, Y: 1}

	assert.Equal(t, 1, p.Orient(a, b, c))
	assert.Equal(t, -1, p.Orient(a, c, b))
	assert.Equal(t, 0, p.Orient(a, b, geom.Point{X: 2, Y: 0}))

	// Cyclic shifts preserve the sign.
	assert.Equal(t, p.Orient(a, b, c), p.Orient(b, c, a))
	assert.Equal(t, p.Orient(a, b, c), p.Orient(c, a, b))
}

func TestInCircleUnitCircle(t *testing.T) {
	p := predicate.Float64{}
	a := geom.Point{X: 1, Y: 0}
	b := geom.Point{X: 0, Y: 1}
	c := geom.Point{X: -1, Y: 0}

	assert.Equal(t, 1, p.InCircle(a, b, c, geom.Point{X: 0, Y: 0}))
	assert.Equal(t, -1, p.InCircle(a, b, c, geom.Point{X: 5, Y: 5}))
	assert.Equal(t, 0, p.InCircle(a, b, c, geom.Point{X: 0, Y: -1}))
}
