package mapproj

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/pkg/errors"
)

// UTMCoord is a UTM coordinate
type UTMCoord struct {
	Zone       int
	Hemisphere Hemisphere
	Easting    float64
	Northing   float64
}

// UTM is a UTM coordinate converter
type UTM struct {
	ellipsoid   Ellipsoid
	utmOverride int
	zones       [maxUTMZone + 1]*Projection
}

const utmMinLat = ((-80.5 * math.Pi) / 180.0) // -80.5 degrees in radians
const utmMaxLat = ((84.5 * math.Pi) / 180.0)  //  84.5 degrees in radians
const utmMinEasting = 100000.0
const utmMaxEasting = 900000.0
const utmMinNorthing = 0.0
const utmMaxNorthing = 10000000.0
const utmSouthFalseNorthing = 10000000.0

// NewUTM receives the ellipsoid and UTM zone override parameter as inputs.
// override is the UTM override zone, 0 indicates no override. Each zone is
// an extended Transverse Mercator projection from DefaultRegistry.
func NewUTM(ellipsoid Ellipsoid, override int) (*UTM, error) {
	if err := ellipsoid.validate(); err != nil {
		return nil, err
	}
	if (override < 0) || (override > maxUTMZone) {
		return nil, errors.Wrapf(ErrIllegalArgument, "zone override %d out of range", override)
	}
	u := &UTM{
		ellipsoid:   ellipsoid,
		utmOverride: override,
	}
	for zone := 1; zone <= maxUTMZone; zone++ {
		params, err := NewParameters(map[string]float64{
			SemiMajor:       ellipsoid.SemiMajor,
			SemiMinor:       ellipsoid.SemiMinor,
			CentralMeridian: float64(6*zone - 183),
			ScaleFactor:     UTMScaleFactor,
			FalseEasting:    UTMFalseEasting,
		})
		if err != nil {
			return nil, err
		}
		u.zones[zone], err = Create("Transverse_Mercator_Extended", params)
		if err != nil {
			return nil, errors.WithMessagef(err, "UTM zone %d", zone)
		}
	}
	return u, nil
}

// Ellipsoid returns the earth model of the converter.
func (u *UTM) Ellipsoid() Ellipsoid {
	return u.ellipsoid
}

// Zone returns the Transverse Mercator projection of zone 1..60.
func (u *UTM) Zone(zone int) (*Projection, error) {
	if (zone < 1) || (zone > maxUTMZone) {
		return nil, errors.Wrapf(ErrIllegalArgument, "zone %d out of range", zone)
	}
	return u.zones[zone], nil
}

// zoneFor returns the zone of a point, longitude in [0, 2π), honouring the
// Norway and Svalbard exceptions and an override of at most one zone.
func (u *UTM) zoneFor(latitude, longitude float64, utmZoneOverride int) (int, error) {
	LatDegrees := int(latitude * 180.0 / math.Pi)
	LongDegrees := int(longitude * 180.0 / math.Pi)

	var tempZone int
	if longitude < math.Pi {
		tempZone = int(31 + (((longitude + 1.0e-10) * 180.0 / math.Pi) / 6.0))
	} else {
		tempZone = int((((longitude + 1.0e-10) * 180.0 / math.Pi) / 6.0) - 29)
	}

	if tempZone > 60 {
		tempZone = 1
	} else if tempZone < 0 {
		return 0, errors.Wrap(ErrPointOutsideEnvelope, "longitude out of range")
	}

	override := utmZoneOverride
	if override == 0 {
		override = u.utmOverride
	}
	// allow UTM zone override up to +/- one zone of the calculated zone
	if override != 0 {
		if (tempZone == 1) && (override == 60) {
			return override, nil
		} else if (tempZone == 60) && (override == 1) {
			return override, nil
		} else if ((tempZone - 1) <= override) && (override <= (tempZone + 1)) {
			return override, nil
		}
		return 0, errors.Wrapf(ErrIllegalArgument, "zone override %d too far from zone %d", override, tempZone)
	}

	// special zone cases over southern Norway and Svalbard
	if (LatDegrees > 55) && (LatDegrees < 64) && (LongDegrees > -1) &&
		(LongDegrees < 3) {
		tempZone = 31
	}
	if (LatDegrees > 55) && (LatDegrees < 64) && (LongDegrees > 2) &&
		(LongDegrees < 12) {
		tempZone = 32
	}
	if (LatDegrees > 71) && (LongDegrees > -1) && (LongDegrees < 9) {
		tempZone = 31
	}
	if (LatDegrees > 71) && (LongDegrees > 8) && (LongDegrees < 21) {
		tempZone = 33
	}
	if (LatDegrees > 71) && (LongDegrees > 20) && (LongDegrees < 33) {
		tempZone = 35
	}
	if (LatDegrees > 71) && (LongDegrees > 32) && (LongDegrees < 42) {
		tempZone = 37
	}
	return tempZone, nil
}

// ConvertFromGeodetic converts geodetic (latitude and longitude) coordinates
// to UTM projection (zone, hemisphere, easting and northing) coordinates
// according to the current ellipsoid and UTM zone override parameters.
func (u *UTM) ConvertFromGeodetic(geodeticCoordinates s2.LatLng, utmZoneOverride int) (UTMCoord, error) {
	longitude := geodeticCoordinates.Lng.Radians()
	latitude := geodeticCoordinates.Lat.Radians()
	if (latitude < (utmMinLat - epsilonRadians)) ||
		(latitude >= (utmMaxLat + epsilonRadians)) {
		return UTMCoord{}, errors.Wrapf(ErrPointOutsideEnvelope, "latitude %g out of range", geodeticCoordinates.Lat.Degrees())
	}
	if (longitude < (-math.Pi - epsilonRadians)) ||
		(longitude > (2*math.Pi + epsilonRadians)) {
		return UTMCoord{}, errors.Wrapf(ErrPointOutsideEnvelope, "longitude %g out of range", geodeticCoordinates.Lng.Degrees())
	}

	if (latitude > -1.0e-9) && (latitude < 0) {
		latitude = 0.0
	}
	if longitude < 0 {
		longitude += (2 * math.Pi)
	}

	zone, err := u.zoneFor(latitude, longitude, utmZoneOverride)
	if err != nil {
		return UTMCoord{}, err
	}

	falseNorthing := 0.0
	hemisphere := HemisphereNorth
	if latitude < 0 {
		falseNorthing = utmSouthFalseNorthing
		hemisphere = HemisphereSouth
	}

	lonDegrees := s1.Angle(longitude).Degrees()
	if lonDegrees > 180 {
		lonDegrees -= 360
	}
	easting, northing, err := u.zones[zone].Forward(lonDegrees, s1.Angle(latitude).Degrees())
	if err != nil {
		return UTMCoord{}, err
	}
	northing += falseNorthing
	if (easting < utmMinEasting) || (easting > utmMaxEasting) {
		return UTMCoord{}, errors.Wrapf(ErrPointOutsideEnvelope, "easting %g out of range", easting)
	}
	if (northing < utmMinNorthing) || (northing > utmMaxNorthing) {
		return UTMCoord{}, errors.Wrapf(ErrPointOutsideEnvelope, "northing %g out of range", northing)
	}

	return UTMCoord{
		Zone:       zone,
		Hemisphere: hemisphere,
		Easting:    easting,
		Northing:   northing,
	}, nil
}

// ConvertToGeodetic converts UTM projection (zone, hemisphere, easting and
// northing) coordinates to geodetic (latitude and longitude) coordinates,
// according to the current ellipsoid parameters.
func (u *UTM) ConvertToGeodetic(utmCoordinates UTMCoord) (s2.LatLng, error) {
	zone := utmCoordinates.Zone
	hemisphere := utmCoordinates.Hemisphere
	easting := utmCoordinates.Easting
	northing := utmCoordinates.Northing

	if (zone < 1) || (zone > maxUTMZone) {
		return s2.LatLng{}, errors.Wrapf(ErrIllegalArgument, "zone %d out of range", zone)
	}
	if (hemisphere != HemisphereSouth) && (hemisphere != HemisphereNorth) {
		return s2.LatLng{}, errors.Wrap(ErrIllegalArgument, "hemisphere out of range")
	}
	if (easting < utmMinEasting) || (easting > utmMaxEasting) {
		return s2.LatLng{}, errors.Wrapf(ErrPointOutsideEnvelope, "easting %g out of range", easting)
	}
	if (northing < utmMinNorthing) || (northing > utmMaxNorthing) {
		return s2.LatLng{}, errors.Wrapf(ErrPointOutsideEnvelope, "northing %g out of range", northing)
	}

	if hemisphere == HemisphereSouth {
		northing -= utmSouthFalseNorthing
	}
	geodeticCoordinates, err := u.zones[zone].ConvertToGeodetic(MapCoords{Easting: easting, Northing: northing})
	if err != nil {
		return s2.LatLng{}, err
	}

	latitude := geodeticCoordinates.Lat.Radians()
	if (latitude < (utmMinLat - epsilonRadians)) ||
		(latitude >= (utmMaxLat + epsilonRadians)) {
		return s2.LatLng{}, errors.Wrapf(ErrPointOutsideEnvelope, "latitude %g out of range", geodeticCoordinates.Lat.Degrees())
	}

	return geodeticCoordinates, nil
}
