package mapproj_test

import (
	"testing"

	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tzneal/mapproj"
)

func TestUPSRoundTrip(t *testing.T) {
	ups, err := mapproj.NewUPS(mapproj.WGS84)
	if err != nil {
		t.Fatalf("error creating UPS converter: %s", err)
	}
	const latInc = 0.5
	const lngInc = 0.5
	for lng := -190.0; lng < 190; lng += lngInc {
		for lat := -100.0; lat < 100; lat += latInc {
			geo := s2.LatLngFromDegrees(lat, lng)
			uc, err := ups.ConvertFromGeodetic(geo)
			if err == nil {
				geo2, err := ups.ConvertToGeodetic(uc)
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

func TestUPSPoles(t *testing.T) {
	uc, err := mapproj.DefaultUPSConverter.ConvertFromGeodetic(s2.LatLngFromDegrees(90, 0))
	require.NoError(t, err)
	assert.Equal(t, mapproj.UPSCoord{Hemisphere: mapproj.HemisphereNorth, Easting: 2000000, Northing: 2000000}, uc)

	uc, err = mapproj.DefaultUPSConverter.ConvertFromGeodetic(s2.LatLngFromDegrees(-90, 0))
	require.NoError(t, err)
	assert.Equal(t, mapproj.UPSCoord{Hemisphere: mapproj.HemisphereSouth, Easting: 2000000, Northing: 2000000}, uc)
}

func TestUPSDirections(t *testing.T) {
	// northern grid north points along 180°, southern along 0°
	uc, err := mapproj.DefaultUPSConverter.ConvertFromGeodetic(s2.LatLngFromDegrees(85, 0))
	require.NoError(t, err)
	assert.InDelta(t, 2000000, uc.Easting, 1e-6)
	assert.Less(t, uc.Northing, 2000000.0)

	uc, err = mapproj.DefaultUPSConverter.ConvertFromGeodetic(s2.LatLngFromDegrees(-85, 0))
	require.NoError(t, err)
	assert.InDelta(t, 2000000, uc.Easting, 1e-6)
	assert.Greater(t, uc.Northing, 2000000.0)

	uc, err = mapproj.DefaultUPSConverter.ConvertFromGeodetic(s2.LatLngFromDegrees(85, 90))
	require.NoError(t, err)
	assert.Greater(t, uc.Easting, 2000000.0)
	assert.InDelta(t, 2000000, uc.Northing, 1e-6)
}

func TestUPSOutOfRange(t *testing.T) {
	ups := mapproj.DefaultUPSConverter
	_, err := ups.ConvertFromGeodetic(s2.LatLngFromDegrees(80, 0))
	assert.ErrorIs(t, err, mapproj.ErrPointOutsideEnvelope)
	_, err = ups.ConvertFromGeodetic(s2.LatLngFromDegrees(-70, 0))
	assert.ErrorIs(t, err, mapproj.ErrPointOutsideEnvelope)

	_, err = ups.ConvertToGeodetic(mapproj.UPSCoord{Easting: 2000000, Northing: 2000000})
	assert.ErrorIs(t, err, mapproj.ErrIllegalArgument)
	_, err = ups.ConvertToGeodetic(mapproj.UPSCoord{Hemisphere: mapproj.HemisphereNorth, Easting: -1, Northing: 2000000})
	assert.ErrorIs(t, err, mapproj.ErrPointOutsideEnvelope)
	// the corner of the grid lies south of 83.5°
	_, err = ups.ConvertToGeodetic(mapproj.UPSCoord{Hemisphere: mapproj.HemisphereNorth, Easting: 0, Northing: 0})
	assert.ErrorIs(t, err, mapproj.ErrPointOutsideEnvelope)
}

func TestHemisphereString(t *testing.T) {
	assert.Equal(t, "N", mapproj.HemisphereNorth.String())
	assert.Equal(t, "S", mapproj.HemisphereSouth.String())
	assert.Equal(t, "invalid", mapproj.HemisphereInvalid.String())
}
