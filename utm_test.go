package mapproj_test

import (
	"testing"

	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tzneal/mapproj"
)

// about 6 mm on the earth
const roundTripRadians = 1e-9

func TestUTMRoundTrip(t *testing.T) {
	utm, err := mapproj.NewUTM(mapproj.WGS84, 0)
	if err != nil {
		t.Fatalf("error creating UTM converter: %s", err)
	}
	const latInc = 0.5
	const lngInc = 0.5
	for lng := -190.0; lng < 190; lng += lngInc {
		for lat := -100.0; lat < 100; lat += latInc {
			geo := s2.LatLngFromDegrees(lat, lng)
			uc, err := utm.ConvertFromGeodetic(geo, 0)
			if err == nil {
				geo2, err := utm.ConvertToGeodetic(uc)
				if err != nil {
					t.Fatalf("expected no error in round trip, got one at %s (%s)", geo, err)
				}
				if geo.Distance(geo2) > roundTripRadians {
					t.Fatalf("expected %s, got %s", geo, geo2)
				}
			}
		}
	}
}

func TestUTMKnownValues(t *testing.T) {
	tests := []struct {
		lat, lng   float64
		zone       int
		hemisphere mapproj.Hemisphere
		easting    float64
		northing   float64
	}{
		{0, 3, 31, mapproj.HemisphereNorth, 500000, 0},
		{45, 9, 32, mapproj.HemisphereNorth, 500000, 4982950.400},
		{-45, 9, 32, mapproj.HemisphereSouth, 500000, 10000000 - 4982950.400},
		{0, -75, 18, mapproj.HemisphereNorth, 500000, 0},
		{0, 180, 1, mapproj.HemisphereNorth, 500000 - 333978.557, 0},
	}
	for _, tc := range tests {
		uc, err := mapproj.DefaultUTMConverter.ConvertFromGeodetic(s2.LatLngFromDegrees(tc.lat, tc.lng), 0)
		require.NoError(t, err)
		assert.Equal(t, tc.zone, uc.Zone, "zone of (%g, %g)", tc.lat, tc.lng)
		assert.Equal(t, tc.hemisphere, uc.Hemisphere)
		assert.InDelta(t, tc.easting, uc.Easting, 0.05, "easting of (%g, %g)", tc.lat, tc.lng)
		assert.InDelta(t, tc.northing, uc.Northing, 0.05, "northing of (%g, %g)", tc.lat, tc.lng)
	}
}

func TestUTMSpecialZones(t *testing.T) {
	tests := []struct {
		lat, lng float64
		zone     int
	}{
		{60, 4, 32},  // southern Norway
		{60, 2, 31},  // west of the widened zone
		{75, 10, 33}, // Svalbard
		{75, 25, 35},
		{75, 35, 37},
		{75, 5, 31},
	}
	for _, tc := range tests {
		uc, err := mapproj.DefaultUTMConverter.ConvertFromGeodetic(s2.LatLngFromDegrees(tc.lat, tc.lng), 0)
		if err != nil {
			t.Fatalf("expected no error for (%g, %g), got %s", tc.lat, tc.lng, err)
		}
		if uc.Zone != tc.zone {
			t.Errorf("expected zone %d for (%g, %g), got %d", tc.zone, tc.lat, tc.lng, uc.Zone)
		}
	}
}

func TestUTMOverride(t *testing.T) {
	geo := s2.LatLngFromDegrees(45, 7.5)
	uc, err := mapproj.DefaultUTMConverter.ConvertFromGeodetic(geo, 31)
	require.NoError(t, err)
	assert.Equal(t, 31, uc.Zone)
	assert.Greater(t, uc.Easting, 500000.0)

	geo2, err := mapproj.DefaultUTMConverter.ConvertToGeodetic(uc)
	require.NoError(t, err)
	assert.InDelta(t, 0, float64(geo.Distance(geo2)), roundTripRadians)

	_, err = mapproj.DefaultUTMConverter.ConvertFromGeodetic(geo, 35)
	assert.ErrorIs(t, err, mapproj.ErrIllegalArgument)

	_, err = mapproj.NewUTM(mapproj.WGS84, 61)
	assert.ErrorIs(t, err, mapproj.ErrIllegalArgument)
}

func TestUTMOutOfRange(t *testing.T) {
	utm := mapproj.DefaultUTMConverter
	_, err := utm.ConvertFromGeodetic(s2.LatLngFromDegrees(85, 0), 0)
	assert.ErrorIs(t, err, mapproj.ErrPointOutsideEnvelope)
	_, err = utm.ConvertFromGeodetic(s2.LatLngFromDegrees(-81, 0), 0)
	assert.ErrorIs(t, err, mapproj.ErrPointOutsideEnvelope)

	_, err = utm.ConvertToGeodetic(mapproj.UTMCoord{Zone: 0, Hemisphere: mapproj.HemisphereNorth, Easting: 500000})
	assert.ErrorIs(t, err, mapproj.ErrIllegalArgument)
	_, err = utm.ConvertToGeodetic(mapproj.UTMCoord{Zone: 31, Easting: 500000})
	assert.ErrorIs(t, err, mapproj.ErrIllegalArgument)
	_, err = utm.ConvertToGeodetic(mapproj.UTMCoord{Zone: 31, Hemisphere: mapproj.HemisphereNorth, Easting: 50000})
	assert.ErrorIs(t, err, mapproj.ErrPointOutsideEnvelope)
	_, err = utm.ConvertToGeodetic(mapproj.UTMCoord{Zone: 31, Hemisphere: mapproj.HemisphereNorth, Easting: 500000, Northing: -1})
	assert.ErrorIs(t, err, mapproj.ErrPointOutsideEnvelope)
}

func TestUTMZoneProjection(t *testing.T) {
	for zone := 1; zone <= 60; zone++ {
		p, err := mapproj.DefaultUTMConverter.Zone(zone)
		require.NoError(t, err)
		got, err := p.Zone()
		require.NoError(t, err)
		if got != zone {
			t.Fatalf("expected projection of zone %d to report zone %d, got %d", zone, zone, got)
		}
	}
	_, err := mapproj.DefaultUTMConverter.Zone(61)
	assert.ErrorIs(t, err, mapproj.ErrIllegalArgument)
	assert.Equal(t, mapproj.WGS84, mapproj.DefaultUTMConverter.Ellipsoid())
}
