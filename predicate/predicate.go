// Package predicate provides the default, concrete implementation of
// geom.Predicates used by the tests and the demo CLI. The core never
// imports this package directly; it consumes geom.Predicates as an
// interface (spec §1, §4.1, §6). The determinant formulas below are
// grounded on the classic Bowyer-Watson circumcircle test
// (_examples/other_examples/esimov-triangle__delaunay.go) and the
// orientation test used throughout quad-edge Delaunay implementations
// (_examples/tjim-manifold/quadedge/quadedge.go).
package predicate

import "github.com/osuushi-labs/delaunay/geom"

// Float64 is a plain float64 implementation of geom.Predicates. It makes
// no attempt at exact/robust arithmetic; per spec §4.1, robustness is
// outside the core's contract.
type Float64 struct{}

// Orient returns the sign of the signed area of (p, q, r): +1 for
// counter-clockwise, -1 for clockwise, 0 for collinear.
func (Float64) Orient(p, q, r geom.Point) int {
	area := (q.X-p.X)*(r.Y-p.Y) - (q.Y-p.Y)*(r.X-p.X)
	return sign(area)
}

// InCircle returns +1 if p lies strictly inside the circumcircle of the
// CCW triangle (a, b, c), -1 if strictly outside, 0 on the circle.
func (Float64) InCircle(a, b, c, p geom.Point) int {
	ax, ay := a.X-p.X, a.Y-p.Y
	bx, by := b.X-p.X, b.Y-p.Y
	cx, cy := c.X-p.X, c.Y-p.Y

	det := (ax*ax+ay*ay)*(bx*cy-cx*by) -
		(bx*bx+by*by)*(ax*cy-cx*ay) +
		(cx*cx+cy*cy)*(ax*by-bx*ay)

	return sign(det)
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
