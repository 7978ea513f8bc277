package mapproj

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/pkg/errors"
)

// Hemisphere represents the hemisphere, north or south
type Hemisphere byte

// Hemisphere constants
const (
	HemisphereInvalid Hemisphere = iota
	HemisphereNorth
	HemisphereSouth
)

func (h Hemisphere) String() string {
	switch h {
	case HemisphereNorth:
		return "N"
	case HemisphereSouth:
		return "S"
	}
	return "invalid"
}

// UPSCoord is a UPS coordinate with a specified easting/northing in meters and
// hemisphere.
type UPSCoord struct {
	Hemisphere Hemisphere
	Easting    float64
	Northing   float64
}

// UPS is a UPS coordinate converter
type UPS struct {
	ellipsoid Ellipsoid
	north     *Projection
	south     *Projection
}

const epsilonRadians = 1.75e-7 // approx 1.0e-5 degrees (~1 meter) in radians

const upsScaleFactor = 0.994
const upsFalseEasting = 2000000
const upsFalseNorthing = 2000000

const upsMaxLat = 90.0 * (math.Pi / 180.0) // 90 degrees in radians
const upsMinNorthLat = 83.5 * (math.Pi / 180.0)
const upsMaxSouthLat = -79.5 * (math.Pi / 180.0)
const upsMinEastNorth = 0.0
const upsMaxEastNorth = 4000000.0

// NewUPS construct a new UPS converter with the specified ellipsoid. Both
// hemispheres are polar stereographic projections from DefaultRegistry.
func NewUPS(ellipsoid Ellipsoid) (*UPS, error) {
	if err := ellipsoid.validate(); err != nil {
		return nil, err
	}
	u := &UPS{ellipsoid: ellipsoid}
	var err error
	if u.north, err = newUPSProjection(ellipsoid, 90); err != nil {
		return nil, err
	}
	if u.south, err = newUPSProjection(ellipsoid, -90); err != nil {
		return nil, err
	}
	return u, nil
}

func newUPSProjection(ellipsoid Ellipsoid, pole float64) (*Projection, error) {
	params, err := NewParameters(map[string]float64{
		SemiMajor:        ellipsoid.SemiMajor,
		SemiMinor:        ellipsoid.SemiMinor,
		LatitudeOfOrigin: pole,
		ScaleFactor:      upsScaleFactor,
		FalseEasting:     upsFalseEasting,
		FalseNorthing:    upsFalseNorthing,
	})
	if err != nil {
		return nil, err
	}
	return Create("Polar_Stereographic", params)
}

// Ellipsoid returns the earth model of the converter.
func (u *UPS) Ellipsoid() Ellipsoid {
	return u.ellipsoid
}

// ConvertFromGeodetic converts a geodetic coordinate to a UPS coordinate.
func (u *UPS) ConvertFromGeodetic(geodeticCoordinates s2.LatLng) (UPSCoord, error) {
	longitude := geodeticCoordinates.Lng.Radians()
	latitude := geodeticCoordinates.Lat.Radians()

	if (latitude < -upsMaxLat) ||
		(latitude > upsMaxLat) {
		return UPSCoord{}, errors.Wrap(ErrPointOutsideEnvelope, "latitude out of range")
	} else if (latitude < 0) && (latitude >= (upsMaxSouthLat + epsilonRadians)) {
		return UPSCoord{}, errors.Wrap(ErrPointOutsideEnvelope, "latitude out of range")
	} else if (latitude >= 0) && (latitude < (upsMinNorthLat - epsilonRadians)) {
		return UPSCoord{}, errors.Wrap(ErrPointOutsideEnvelope, "latitude out of range")
	}
	if (longitude < -math.Pi) ||
		(longitude > (2 * math.Pi)) {
		return UPSCoord{}, errors.Wrap(ErrPointOutsideEnvelope, "longitude out of range")
	}

	polarStereographic := u.north
	hemisphere := HemisphereNorth
	if latitude < 0 {
		hemisphere = HemisphereSouth
		polarStereographic = u.south
	}

	lonDegrees := geodeticCoordinates.Lng.Degrees()
	if lonDegrees > 180 {
		lonDegrees -= 360
	}
	easting, northing, err := polarStereographic.Forward(lonDegrees, geodeticCoordinates.Lat.Degrees())
	if err != nil {
		return UPSCoord{}, err
	}

	return UPSCoord{
		Hemisphere: hemisphere,
		Easting:    easting,
		Northing:   northing,
	}, nil
}

// ConvertToGeodetic converts UPS (hemisphere, easting, and northing)
// coordinates to geodetic (latitude and longitude) coordinates according to the
// current ellipsoid parameters.
func (u *UPS) ConvertToGeodetic(upsCoordinates UPSCoord) (s2.LatLng, error) {
	hemisphere := upsCoordinates.Hemisphere
	easting := upsCoordinates.Easting
	northing := upsCoordinates.Northing

	if (hemisphere != HemisphereNorth) && (hemisphere != HemisphereSouth) {
		return s2.LatLng{}, errors.Wrap(ErrIllegalArgument, "hemisphere invalid")
	}

	if (easting < upsMinEastNorth) || (easting > upsMaxEastNorth) {
		return s2.LatLng{}, errors.Wrapf(ErrPointOutsideEnvelope, "easting %g out of range", easting)
	}
	if (northing < upsMinEastNorth) || (northing > upsMaxEastNorth) {
		return s2.LatLng{}, errors.Wrapf(ErrPointOutsideEnvelope, "northing %g out of range", northing)
	}

	polarStereographic := u.north
	if hemisphere == HemisphereSouth {
		polarStereographic = u.south
	}
	geodeticCoordinates, err := polarStereographic.ConvertToGeodetic(MapCoords{
		Easting:  easting,
		Northing: northing,
	})
	if err != nil {
		return s2.LatLng{}, err
	}

	latitude := geodeticCoordinates.Lat.Radians()

	if (latitude < 0) && (latitude >= (upsMaxSouthLat + epsilonRadians)) {
		return s2.LatLng{}, errors.Wrap(ErrPointOutsideEnvelope, "resulting latitude out of range")
	}
	if (latitude >= 0) && (latitude < (upsMinNorthLat - epsilonRadians)) {
		return s2.LatLng{}, errors.Wrap(ErrPointOutsideEnvelope, "resulting latitude out of range")
	}

	return geodeticCoordinates, nil
}
