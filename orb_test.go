package mapproj_test

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tzneal/mapproj"
)

func lambert93(t *testing.T) *mapproj.Projection {
	t.Helper()
	return mustCreate(t, "Lambert_Conformal_Conic_2SP", values(mapproj.GRS80, map[string]float64{
		mapproj.CentralMeridian:   3,
		mapproj.LatitudeOfOrigin:  46.5,
		mapproj.StandardParallel1: 49,
		mapproj.StandardParallel2: 44,
		mapproj.FalseEasting:      700000,
		mapproj.FalseNorthing:     6600000,
	}))
}

func TestOrbForward(t *testing.T) {
	p := lambert93(t)
	pt := project.Point(orb.Point{3, 46.5}, p.OrbForward())
	assert.InDelta(t, 700000, pt[0], 1e-6)
	assert.InDelta(t, 6600000, pt[1], 1e-6)

	back := project.Point(pt, p.OrbInverse())
	assert.InDelta(t, 3, back[0], 1e-9)
	assert.InDelta(t, 46.5, back[1], 1e-9)

	bad := p.OrbForward()(orb.Point{0, 100})
	assert.True(t, math.IsNaN(bad[0]))
	assert.True(t, math.IsNaN(bad[1]))
}

func TestProjectGeometry(t *testing.T) {
	p := lambert93(t)
	ring := orb.Ring{{2, 48}, {3, 48}, {3, 49}, {2, 49}, {2, 48}}
	poly := orb.Polygon{ring}

	g, err := p.ProjectGeometry(poly)
	require.NoError(t, err)
	projected, ok := g.(orb.Polygon)
	require.True(t, ok)
	assert.Equal(t, orb.Point{2, 48}, poly[0][0], "input geometry must not change")
	for i, pt := range projected[0] {
		x, y, err := p.Forward(ring[i][0], ring[i][1])
		require.NoError(t, err)
		assert.Equal(t, orb.Point{x, y}, pt)
	}

	g, err = p.UnprojectGeometry(projected)
	require.NoError(t, err)
	for i, pt := range g.(orb.Polygon)[0] {
		if math.Abs(pt[0]-ring[i][0]) > 1e-9 || math.Abs(pt[1]-ring[i][1]) > 1e-9 {
			t.Fatalf("vertex %d came back as %v, expected %v", i, pt, ring[i])
		}
	}

	g, err = p.ProjectGeometry(nil)
	assert.NoError(t, err)
	assert.Nil(t, g)
}

func TestProjectGeometryFailure(t *testing.T) {
	p := lambert93(t)
	line := orb.LineString{{2, 48}, {200, 48}, {3, 49}, {3, 95}}
	g, err := p.ProjectGeometry(line)
	assert.ErrorIs(t, err, mapproj.ErrPointOutsideEnvelope)
	assert.Contains(t, err.Error(), "200")

	projected := g.(orb.LineString)
	require.Len(t, projected, 4)
	assert.False(t, math.IsNaN(projected[0][0]))
	assert.True(t, math.IsNaN(projected[1][0]))
	assert.False(t, math.IsNaN(projected[2][0]))
	assert.True(t, math.IsNaN(projected[3][1]))
	assert.Equal(t, orb.Point{200, 48}, line[1])
}
