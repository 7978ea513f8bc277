package mapproj

import (
	"math"

	"github.com/pkg/errors"
)

// azimuthalMode is the aspect of an azimuthal projection, fixed at
// construction from the latitude of origin.
type azimuthalMode int

const (
	modeNorthPole azimuthalMode = iota
	modeSouthPole
	modeOblique
	modeEquatorial
)

func (m azimuthalMode) String() string {
	switch m {
	case modeNorthPole:
		return "north polar"
	case modeSouthPole:
		return "south polar"
	case modeOblique:
		return "oblique"
	case modeEquatorial:
		return "equatorial"
	}
	return "unknown"
}

func (m azimuthalMode) polar() bool {
	return m == modeNorthPole || m == modeSouthPole
}

func azimuthalModeFor(phi0 float64) azimuthalMode {
	switch t := math.Abs(phi0); {
	case math.Abs(t-halfPi) < eps10:
		if phi0 < 0 {
			return modeSouthPole
		}
		return modeNorthPole
	case t > eps10:
		return modeOblique
	}
	return modeEquatorial
}

// stereographic is the conformal azimuthal projection (Snyder ch. 21). The
// ellipsoidal oblique and equatorial aspects project through the conformal
// sphere; the polar aspects use the isometric latitude directly.
type stereographic struct {
	mode      azimuthalMode
	e         float64
	akm1      float64
	sinX1     float64 // conformal latitude of origin
	cosX1     float64
	sinph0    float64
	cosph0    float64
	phi0      float64
	series    polarSeries
	useSeries bool
	spherical bool
}

// polarSeries holds the coefficients of Snyder (3-5), the geodetic latitude
// as a trig series in the conformal latitude.
type polarSeries struct {
	k2, k4, k6, k8 float64
}

func newPolarSeries(es float64) polarSeries {
	e4 := es * es
	e6 := e4 * es
	e8 := e4 * e4
	return polarSeries{
		k2: es/2 + 5*e4/24 + e6/12 + 13*e8/360,
		k4: 7*e4/48 + 29*e6/240 + 811*e8/11520,
		k6: 7*e6/120 + 81*e8/1120,
		k8: 4279 * e8 / 161280,
	}
}

func (s polarSeries) latitude(chi float64) float64 {
	return chi + s.k2*math.Sin(2*chi) + s.k4*math.Sin(4*chi) + s.k6*math.Sin(6*chi) + s.k8*math.Sin(8*chi)
}

func buildStereographic(b *base, r *paramReader, o options) (projector, error) {
	return newStereographic(b, azimuthalModeFor(b.latitudeOfOrigin), halfPi, o), nil
}

// buildPolarStereographic always builds a polar aspect. The pole is taken
// from the latitude of origin, or from the latitude of true scale when the
// origin is left on the equator.
func buildPolarStereographic(b *base, r *paramReader, o options) (projector, error) {
	south := b.latitudeOfOrigin < 0
	if _, set := r.p.Value(LatitudeOfOrigin); !set || b.latitudeOfOrigin == 0 {
		if ts, ok := r.p.Value(LatitudeTrueScale); ok {
			south = ts < 0
		}
	}
	mode, pole := modeNorthPole, 90.0
	if south {
		mode, pole = modeSouthPole, -90.0
	}
	b.latitudeOfOrigin = r.record(LatitudeOfOrigin, pole) * deg2Rad
	phits := math.Abs(r.getOr(LatitudeTrueScale, pole)) * deg2Rad
	return newStereographic(b, mode, phits, o), nil
}

func newStereographic(b *base, mode azimuthalMode, phits float64, o options) stereographic {
	s := stereographic{
		mode:      mode,
		e:         b.e,
		phi0:      b.latitudeOfOrigin,
		sinph0:    math.Sin(b.latitudeOfOrigin),
		cosph0:    math.Cos(b.latitudeOfOrigin),
		useSeries: o.seriesInverse,
		spherical: b.spherical(),
	}
	if mode == modeEquatorial {
		s.sinph0, s.cosph0 = 0, 1
	}
	trueScaleAtPole := math.Abs(phits-halfPi) < eps10
	switch {
	case s.spherical && mode.polar():
		if trueScaleAtPole {
			s.akm1 = 2
		} else {
			s.akm1 = math.Cos(phits) / math.Tan(fortPi-0.5*phits)
		}
	case s.spherical:
		s.akm1 = 2
	case mode.polar():
		if trueScaleAtPole {
			s.akm1 = 2 / math.Sqrt(math.Pow(1+s.e, 1+s.e)*math.Pow(1-s.e, 1-s.e))
		} else {
			t := math.Sin(phits)
			s.akm1 = math.Cos(phits) / tsfn(phits, t, s.e)
			t *= s.e
			s.akm1 /= math.Sqrt(1 - t*t)
		}
		if s.useSeries {
			s.series = newPolarSeries(b.es)
		}
	default:
		t := math.Sin(s.phi0)
		x := 2*math.Atan(ssfn(s.phi0, t, s.e)) - halfPi
		t *= s.e
		s.akm1 = 2 * math.Cos(s.phi0) / math.Sqrt(1-t*t)
		s.sinX1, s.cosX1 = math.Sin(x), math.Cos(x)
		if mode == modeEquatorial {
			s.sinX1, s.cosX1 = 0, 1
		}
	}
	return s
}

func (s stereographic) forward(lam, phi float64) (x, y float64, err error) {
	if s.mode.polar() {
		return s.polarForward(lam, phi)
	}
	sinlam := math.Sin(lam)
	coslam := math.Cos(lam)
	if s.spherical {
		sinphi := math.Sin(phi)
		cosphi := math.Cos(phi)
		d := 1 + s.sinph0*sinphi + s.cosph0*cosphi*coslam
		if d <= eps10 {
			return 0, 0, errors.Wrap(ErrInfinity, "antipode of the projection origin")
		}
		a := s.akm1 / d
		return a * cosphi * sinlam, a * (s.cosph0*sinphi - s.sinph0*cosphi*coslam), nil
	}
	chi := 2*math.Atan(ssfn(phi, math.Sin(phi), s.e)) - halfPi
	sinX := math.Sin(chi)
	cosX := math.Cos(chi)
	d := s.cosX1 * (1 + s.sinX1*sinX + s.cosX1*cosX*coslam)
	if d <= eps10 {
		return 0, 0, errors.Wrap(ErrInfinity, "antipode of the projection origin")
	}
	a := s.akm1 / d
	return a * cosX * sinlam, a * (s.cosX1*sinX - s.sinX1*cosX*coslam), nil
}

func (s stereographic) polarForward(lam, phi float64) (x, y float64, err error) {
	coslam := math.Cos(lam)
	if s.mode == modeNorthPole {
		phi = -phi
		coslam = -coslam
	}
	// mirrored so that the pole of projection sits at -π/2
	switch {
	case math.Abs(phi+halfPi) < eps10:
		return 0, 0, nil
	case math.Abs(phi-halfPi) < eps10:
		return 0, 0, errors.Wrapf(ErrPoleProjection, "%s stereographic of the opposite pole", s.mode)
	}
	var rho float64
	if s.spherical {
		rho = s.akm1 * math.Tan(fortPi+0.5*phi)
	} else {
		rho = s.akm1 * tsfn(-phi, -math.Sin(phi), s.e)
	}
	return rho * math.Sin(lam), rho * coslam, nil
}

func (s stereographic) inverse(x, y float64) (lam, phi float64, err error) {
	if s.mode.polar() {
		return s.polarInverse(x, y)
	}
	rho := math.Hypot(x, y)
	if s.spherical {
		c := 2 * math.Atan(rho/s.akm1)
		sinc := math.Sin(c)
		cosc := math.Cos(c)
		if rho <= eps10 {
			return 0, s.phi0, nil
		}
		phi = math.Asin(cosc*s.sinph0 + y*sinc*s.cosph0/rho)
		if c := cosc - s.sinph0*math.Sin(phi); c != 0 || x != 0 {
			lam = math.Atan2(x*sinc*s.cosph0, c*rho)
		}
		return lam, phi, nil
	}
	tp := 2 * math.Atan2(rho*s.cosX1, s.akm1)
	cosphi := math.Cos(tp)
	sinphi := math.Sin(tp)
	var phiL float64
	if rho == 0 {
		phiL = math.Asin(cosphi * s.sinX1)
	} else {
		phiL = math.Asin(cosphi*s.sinX1 + y*sinphi*s.cosX1/rho)
	}
	tp = math.Tan(0.5 * (halfPi + phiL))
	x *= sinphi
	y = rho*s.cosX1*cosphi - y*s.sinX1*sinphi
	halfe := 0.5 * s.e
	for i := 0; i < maxIterPhi; i++ {
		esinphi := s.e * math.Sin(phiL)
		phi = 2*math.Atan(tp*math.Pow((1+esinphi)/(1-esinphi), halfe)) - halfPi
		if math.Abs(phiL-phi) < tolPhi {
			if x != 0 || y != 0 {
				lam = math.Atan2(x, y)
			}
			return lam, phi, nil
		}
		phiL = phi
	}
	return 0, 0, errors.Wrap(ErrNoConvergence, "oblique stereographic latitude")
}

func (s stereographic) polarInverse(x, y float64) (lam, phi float64, err error) {
	if s.mode == modeNorthPole {
		y = -y
	}
	rho := math.Hypot(x, y)
	if rho == 0 {
		return 0, s.phi0, nil
	}
	t := rho / s.akm1
	switch {
	case s.spherical:
		phi = halfPi - 2*math.Atan(t)
	case s.useSeries:
		phi = s.series.latitude(halfPi - 2*math.Atan(t))
	default:
		if phi, err = cphi2(t, s.e); err != nil {
			return 0, 0, err
		}
	}
	if s.mode == modeSouthPole {
		phi = -phi
	}
	return math.Atan2(x, y), phi, nil
}
