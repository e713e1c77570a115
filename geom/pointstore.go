package geom

import "github.com/osuushi-labs/delaunay/delaunayerr"

// PointStore is the concrete point container the core consumes: it holds
// the input points (addressable from FirstPointIndex) plus the three
// bounding-triangle vertices computed once, from the initial point set, at
// construction time. It implements the length / random-access /
// iteration / push_back contract from the spec's external interfaces.
type PointStore struct {
	points    []Point
	lr, ll, u Point
}

// NewPointStore copies points and computes the bounding triangle from
// their statistics (§3). Points added later via PushBack do not change
// the bounding triangle.
func NewPointStore(points []Point) *PointStore {
	cx, cy, m := PointStats(points)
	lr, ll, u := BoundingTriangleCoords(cx, cy, m)
	cp := make([]Point, len(points))
	copy(cp, points)
	return &PointStore{points: cp, lr: lr, ll: ll, u: u}
}

// Len returns the number of input points currently stored (bounding
// triangle vertices are not counted).
func (s *PointStore) Len() int { return len(s.points) }

// At returns the i'th input point (0-based), matching the container's
// "random access by index" requirement.
func (s *PointStore) At(i int) Point { return s.points[i] }

// PushBack appends a new input point and returns the index it was
// assigned.
func (s *PointStore) PushBack(p Point) PointIndex {
	s.points = append(s.points, p)
	return FirstPointIndex + PointIndex(len(s.points)-1)
}

// Get resolves idx to coordinates. BoundaryIndex has no coordinate and
// always fails with OutOfRange, matching §4.5.3's get_point contract.
func (s *PointStore) Get(idx PointIndex) (Point, error) {
	switch idx.Kind() {
	case KindBoundingLR:
		return s.lr, nil
	case KindBoundingLL:
		return s.ll, nil
	case KindBoundingU:
		return s.u, nil
	case KindGhost:
		return Point{}, delaunayerr.OutOfRangef("geom: BoundaryIndex has no coordinate")
	default:
		if idx < FirstPointIndex {
			return Point{}, delaunayerr.OutOfRangef("geom: point index %d is below FirstPointIndex", idx)
		}
		i := int(idx - FirstPointIndex)
		if i >= len(s.points) {
			return Point{}, delaunayerr.OutOfRangef("geom: point index %d out of range [%d, %d)", idx, FirstPointIndex, int(FirstPointIndex)+len(s.points))
		}
		return s.points[i], nil
	}
}

// MustGet resolves idx to coordinates, converting a lookup failure into a
// Fatalf panic. Used deep inside recursive algorithms where a bad index is
// an invariant violation, not a normal error path.
func (s *PointStore) MustGet(idx PointIndex) Point {
	p, err := s.Get(idx)
	if err != nil {
		delaunayerr.Fatalf(delaunayerr.OutOfRange, "%s", err.Error())
	}
	return p
}
