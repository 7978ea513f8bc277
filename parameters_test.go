package mapproj_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tzneal/mapproj"
)

func TestNewParameters(t *testing.T) {
	_, err := mapproj.NewParameters(map[string]float64{"false_origin": 1})
	assert.ErrorIs(t, err, mapproj.ErrIllegalArgument)

	tests := []struct {
		name  string
		value float64
	}{
		{mapproj.SemiMajor, 0},
		{mapproj.SemiMajor, -1},
		{mapproj.ScaleFactor, 0},
		{mapproj.LatitudeOfOrigin, 90.5},
		{mapproj.CentralMeridian, -181},
		{mapproj.StandardParallel2, -91},
		{mapproj.FalseEasting, math.NaN()},
	}
	for _, tc := range tests {
		_, err := mapproj.NewParameters(map[string]float64{tc.name: tc.value})
		if !assert.ErrorIs(t, err, mapproj.ErrIllegalArgument) {
			t.Fatalf("expected %s = %g to be rejected", tc.name, tc.value)
		}
	}

	p, err := mapproj.NewParameters(map[string]float64{
		mapproj.LatitudeOfOrigin: -90,
		mapproj.CentralMeridian:  180,
		mapproj.FalseNorthing:    -1e7,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{mapproj.CentralMeridian, mapproj.FalseNorthing, mapproj.LatitudeOfOrigin}, p.Names())
}

func TestParameterDefaults(t *testing.T) {
	p := mapproj.EllipsoidParameters(mapproj.WGS84)
	v, err := p.Get(mapproj.ScaleFactor)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
	v, err = p.Get(mapproj.FalseEasting)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
	_, ok := p.Value(mapproj.ScaleFactor)
	assert.False(t, ok)

	empty, err := mapproj.NewParameters(nil)
	require.NoError(t, err)
	_, err = empty.Get(mapproj.SemiMajor)
	assert.ErrorIs(t, err, mapproj.ErrMissingParameter)
	_, err = empty.Get("bogus")
	assert.ErrorIs(t, err, mapproj.ErrIllegalArgument)
	_, err = empty.Ellipsoid()
	assert.ErrorIs(t, err, mapproj.ErrMissingParameter)
}

func TestParameterAlias(t *testing.T) {
	p, err := mapproj.NewParameters(map[string]float64{"standard_parallel1": 33})
	require.NoError(t, err)
	v, ok := p.Value(mapproj.StandardParallel1)
	assert.True(t, ok)
	assert.Equal(t, 33.0, v)

	p, err = mapproj.NewParameters(map[string]float64{"standard_parallel1": 33, mapproj.StandardParallel1: 33})
	require.NoError(t, err)
	v, _ = p.Value(mapproj.StandardParallel1)
	assert.Equal(t, 33.0, v)

	for i := 0; i < 20; i++ {
		_, err = mapproj.NewParameters(map[string]float64{"standard_parallel1": 33, mapproj.StandardParallel1: 45})
		if !assert.ErrorIs(t, err, mapproj.ErrIllegalArgument) {
			t.Fatalf("conflicting alias values were accepted")
		}
	}
}

func TestParametersWith(t *testing.T) {
	p := mapproj.EllipsoidParameters(mapproj.WGS84)
	q, err := p.With(mapproj.CentralMeridian, 9)
	require.NoError(t, err)
	_, ok := p.Value(mapproj.CentralMeridian)
	assert.False(t, ok, "With must not modify the receiver")
	v, ok := q.Value(mapproj.CentralMeridian)
	assert.True(t, ok)
	assert.Equal(t, 9.0, v)

	_, err = p.With(mapproj.LatitudeTrueScale, 100)
	assert.ErrorIs(t, err, mapproj.ErrIllegalArgument)

	s := q.WithEllipsoid(mapproj.Sphere)
	e, err := s.Ellipsoid()
	require.NoError(t, err)
	assert.True(t, e.IsSphere())
	e, err = q.Ellipsoid()
	require.NoError(t, err)
	assert.Equal(t, mapproj.WGS84.SemiMinor, e.SemiMinor)
}

func TestParametersFromMap(t *testing.T) {
	p, err := mapproj.ParametersFromMap(map[string]interface{}{
		mapproj.SemiMajor:        6378137,
		mapproj.SemiMinor:        "6356752.314245",
		mapproj.LatitudeOfOrigin: "45",
		mapproj.ScaleFactor:      0.9996,
	})
	require.NoError(t, err)
	v, err := p.Get(mapproj.LatitudeOfOrigin)
	require.NoError(t, err)
	assert.Equal(t, 45.0, v)
	v, err = p.Get(mapproj.SemiMinor)
	require.NoError(t, err)
	assert.Equal(t, 6356752.314245, v)

	p, err = mapproj.ParametersFromMap(nil)
	require.NoError(t, err)
	assert.Empty(t, p.Names())

	_, err = mapproj.ParametersFromMap(map[string]interface{}{mapproj.SemiMajor: "big"})
	assert.ErrorIs(t, err, mapproj.ErrIllegalArgument)
	_, err = mapproj.ParametersFromMap(map[string]interface{}{mapproj.LatitudeOfOrigin: 95})
	assert.ErrorIs(t, err, mapproj.ErrIllegalArgument)
}

func TestEllipsoids(t *testing.T) {
	e, err := mapproj.LookupEllipsoid(" wgs84 ")
	require.NoError(t, err)
	assert.Equal(t, mapproj.WGS84, e)
	assert.InDelta(t, 6356752.314245, e.SemiMinor, 1e-6)
	assert.InDelta(t, 1/298.257223563, e.Flattening(), 1e-15)
	assert.InDelta(t, 0.0818191908426, e.E(), 1e-12)

	e, err = mapproj.LookupEllipsoid("clrk66")
	require.NoError(t, err)
	assert.Equal(t, mapproj.Clarke1866, e)

	_, err = mapproj.LookupEllipsoid("Everest")
	assert.ErrorIs(t, err, mapproj.ErrIllegalArgument)

	s := mapproj.NewEllipsoidFlattening("sphere", 1000, math.Inf(1))
	assert.True(t, s.IsSphere())
	assert.Zero(t, s.Es())
}
