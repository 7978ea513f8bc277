package mapproj

import (
	"math"

	"github.com/pkg/errors"
)

// orthographic is the perspective azimuthal projection from infinite
// distance (Snyder ch. 20). Only the visible hemisphere can be projected.
type orthographic struct {
	mode   azimuthalMode
	phi0   float64
	sinph0 float64
	cosph0 float64
}

func buildOrthographic(b *base, r *paramReader, o options) (projector, error) {
	if !b.spherical() {
		return nil, errors.Wrap(ErrUnsupportedOperation, "orthographic projection of an ellipsoid")
	}
	p := orthographic{
		mode:   azimuthalModeFor(b.latitudeOfOrigin),
		phi0:   b.latitudeOfOrigin,
		sinph0: math.Sin(b.latitudeOfOrigin),
		cosph0: math.Cos(b.latitudeOfOrigin),
	}
	if p.mode == modeEquatorial {
		p.sinph0, p.cosph0 = 0, 1
	}
	return p, nil
}

func (p orthographic) forward(lam, phi float64) (x, y float64, err error) {
	cosphi := math.Cos(phi)
	coslam := math.Cos(lam)
	switch p.mode {
	case modeEquatorial:
		if cosphi*coslam < -eps10 {
			return 0, 0, p.hidden(lam, phi)
		}
		y = math.Sin(phi)
	case modeOblique:
		sinphi := math.Sin(phi)
		if p.sinph0*sinphi+p.cosph0*cosphi*coslam < -eps10 {
			return 0, 0, p.hidden(lam, phi)
		}
		y = p.cosph0*sinphi - p.sinph0*cosphi*coslam
	default:
		if math.Abs(phi-p.phi0) < eps10 {
			return 0, 0, nil
		}
		if math.Abs(phi-p.phi0)-eps10 > halfPi {
			return 0, 0, p.hidden(lam, phi)
		}
		if p.mode == modeNorthPole {
			coslam = -coslam
		}
		y = cosphi * coslam
	}
	return cosphi * math.Sin(lam), y, nil
}

func (p orthographic) hidden(lam, phi float64) error {
	return errors.Wrapf(ErrPointOutsideHemisphere, "(%g°, %g°) from the %s orthographic origin",
		lam*rad2Deg, phi*rad2Deg, p.mode)
}

func (p orthographic) inverse(x, y float64) (lam, phi float64, err error) {
	rh := math.Hypot(x, y)
	sinc := rh
	if sinc > 1 {
		if sinc-1 > eps10 {
			return 0, 0, errors.Wrapf(ErrPointOutsideHemisphere, "%g radii from the centre of the disc", rh)
		}
		sinc = 1
	}
	cosc := math.Sqrt(1 - sinc*sinc)
	if rh <= eps10 {
		return 0, p.phi0, nil
	}
	switch p.mode {
	case modeNorthPole:
		y = -y
		phi = math.Acos(sinc)
	case modeSouthPole:
		phi = -math.Acos(sinc)
	case modeEquatorial:
		phi = y * sinc / rh
		x *= sinc
		y = cosc * rh
	case modeOblique:
		phi = cosc*p.sinph0 + y*sinc*p.cosph0/rh
		y = (cosc - p.sinph0*phi) * rh
		x *= sinc * p.cosph0
	}
	if !p.mode.polar() {
		if math.Abs(phi) >= 1 {
			phi = math.Copysign(halfPi, phi)
		} else {
			phi = math.Asin(phi)
		}
		if y == 0 {
			switch {
			case x == 0:
				return 0, phi, nil
			case x < 0:
				return -halfPi, phi, nil
			}
			return halfPi, phi, nil
		}
	}
	return math.Atan2(x, y), phi, nil
}
