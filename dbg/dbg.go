// Package dbg turns point indices and triangles into short, memoised,
// human-readable names, used as triangle labels in the demo CLI's rendered
// image. Grounded on the
// teacher's dbg/readablenames.go, which did the same for its query-DAG
// pointers; retargeted here onto geom.PointIndex/geom.Triangle values
// since the core has no pointer-identity objects worth naming.
package dbg

import (
	"fmt"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"

	"github.com/osuushi-labs/delaunay/geom"
	"github.com/osuushi-labs/delaunay/topo"
)

var pointNames map[geom.PointIndex]string
var triangleNames map[geom.Triangle]string

func init() {
	pointNames = make(map[geom.PointIndex]string)
	triangleNames = make(map[geom.Triangle]string)
	// Names are generated in order of demand, so make them nondeterministic
	// to remind the reader they don't refer to the same point across runs.
	petname.NonDeterministicMode()
}

// PointName returns a memoised readable name for idx. Sentinel indices get
// a fixed name instead of a random one, since there's only ever one of
// each.
func PointName(idx geom.PointIndex) string {
	switch idx.Kind() {
	case geom.KindBoundingLR:
		return "BoundLR"
	case geom.KindBoundingLL:
		return "BoundLL"
	case geom.KindBoundingU:
		return "BoundU"
	case geom.KindGhost:
		return "Ghost"
	}
	if name, ok := pointNames[idx]; ok {
		return name
	}
	name := fmt.Sprintf("%s%s", strings.Title(petname.Adjective()), strings.Title(petname.Name()))
	pointNames[idx] = name
	return name
}

// TriangleName returns a memoised readable name keyed on t's canonical
// rotation, so the three cyclic shifts of the same triangle always print
// the same name.
func TriangleName(t geom.Triangle) string {
	key := topo.Canonical(t)
	if name, ok := triangleNames[key]; ok {
		return name
	}
	idx := key.Indices()
	name := fmt.Sprintf("%s-%s-%s", PointName(idx[0]), PointName(idx[1]), PointName(idx[2]))
	triangleNames[key] = name
	return name
}
