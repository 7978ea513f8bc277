package mapproj

import (
	"math"

	"github.com/pkg/errors"
)

// Zone conventions recognized by Zone and CentralMeridianForZone.
const (
	UTMScaleFactor  = 0.9996
	UTMFalseEasting = 500000.0
	MTMScaleFactor  = 0.9999
	MTMFalseEasting = 304800.0

	utmZoneWidth = 6.0
	mtmZoneWidth = 3.0
	maxUTMZone   = 60
	maxMTMZone   = 32
)

type zoneConvention int

const (
	noZones zoneConvention = iota
	utmZones
	mtmZones
)

func (p *Projection) zoneConvention() zoneConvention {
	switch p.core.(type) {
	case transverseMercator, extendedTransverseMercator:
	default:
		return noZones
	}
	switch {
	case math.Abs(p.scaleFactor-UTMScaleFactor) < 1e-9 && p.falseEasting == UTMFalseEasting:
		return utmZones
	case math.Abs(p.scaleFactor-MTMScaleFactor) < 1e-9 && p.falseEasting == MTMFalseEasting:
		return mtmZones
	}
	return noZones
}

// Zone returns the UTM or MTM zone whose central meridian is the central
// meridian of this Transverse Mercator projection. UTM zones are 6° wide,
// numbered eastward from 180°W; MTM zones are 3° wide, numbered westward
// from 53°W. The convention is recognized from the scale factor and false
// easting; ErrIllegalState is returned when neither matches.
func (p *Projection) Zone() (int, error) {
	cm := p.centralMeridian * rad2Deg
	switch p.zoneConvention() {
	case utmZones:
		zone := int(math.Floor((cm+180)/utmZoneWidth)) + 1
		if zone > maxUTMZone {
			zone = maxUTMZone
		}
		return zone, nil
	case mtmZones:
		switch {
		case cm > -54.5:
			return 1, nil
		case cm > -57.25:
			return 2, nil
		}
		return int(math.Round((-cm - 49.5) / mtmZoneWidth)), nil
	}
	return 0, errors.Wrapf(ErrIllegalState, "%s with scale factor %g and false easting %g is neither UTM nor MTM",
		p.Classification(), p.scaleFactor, p.falseEasting)
}

// CentralMeridianForZone returns the central meridian, in degrees, of the
// given zone in the convention of this projection. See Zone.
func (p *Projection) CentralMeridianForZone(zone int) (float64, error) {
	switch p.zoneConvention() {
	case utmZones:
		if zone < 1 || zone > maxUTMZone {
			return 0, errors.Wrapf(ErrIllegalArgument, "UTM zone %d", zone)
		}
		return -180 + utmZoneWidth*float64(zone) - utmZoneWidth/2, nil
	case mtmZones:
		if zone < 1 || zone > maxMTMZone {
			return 0, errors.Wrapf(ErrIllegalArgument, "MTM zone %d", zone)
		}
		switch zone {
		case 1:
			return -53, nil
		case 2:
			return -56, nil
		}
		return -(49.5 + mtmZoneWidth*float64(zone)), nil
	}
	return 0, errors.Wrapf(ErrIllegalState, "%s with scale factor %g and false easting %g is neither UTM nor MTM",
		p.Classification(), p.scaleFactor, p.falseEasting)
}
