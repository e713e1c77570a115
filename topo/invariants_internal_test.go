package topo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osuushi-labs/delaunay/delaunayerr"
	"github.com/osuushi-labs/delaunay/geom"
)

// TestCheckInvariantsDetectsSpuriousReverseEntry grounds the "Adjacent <->
// Adjacent2Vertex inverse" scenario from the spec: adding a spurious
// boundary pair directly to V makes check_adjacent_is_adjacent2vertex_inverse
// false.
func TestCheckInvariantsDetectsSpuriousReverseEntry(t *testing.T) {
	tr := New()
	tr.AddTriangle(1, 2, 3, true)
	require.NoError(t, tr.CheckInvariants())

	tr.addReverse(10, 11, geom.BoundaryIndex)

	err := tr.CheckInvariants()
	require.Error(t, err)
	assert.True(t, delaunayerr.Is(err, delaunayerr.InvariantViolation))
}
