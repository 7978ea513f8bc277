package mapproj

import (
	"math"

	"github.com/pkg/errors"
)

const (
	deg2Rad = math.Pi / 180
	rad2Deg = 180 / math.Pi
	halfPi  = math.Pi / 2
	fortPi  = math.Pi / 4
	twoPi   = 2 * math.Pi

	eps10 = 1e-10
	eps7  = 1e-7

	// maxIterPhi bounds the conformal and authalic latitude solvers.
	maxIterPhi = 15
	tolPhi     = 1e-10

	// maxIterMlfn bounds the meridian distance inversion.
	maxIterMlfn = 10
	tolMlfn     = 1e-11
)

// msfn computes cos(phi)/sqrt(1 - es·sin²(phi)), the radius of the parallel
// divided by the semi-major axis (Snyder 14-15).
func msfn(sinphi, cosphi, es float64) float64 {
	return cosphi / math.Sqrt(1-es*sinphi*sinphi)
}

// tsfn computes the function t of Snyder (15-9), tan(π/4 - phi/2) corrected
// for the eccentricity.
func tsfn(phi, sinphi, e float64) float64 {
	sinphi *= e
	return math.Tan(0.5*(halfPi-phi)) / math.Pow((1-sinphi)/(1+sinphi), 0.5*e)
}

// ssfn is the conformal latitude helper of the stereographic projection,
// tan(π/4 + phi/2)·((1 - e·sin)/(1 + e·sin))^(e/2).
func ssfn(phi, sinphi, e float64) float64 {
	sinphi *= e
	return math.Tan(0.5*(halfPi+phi)) * math.Pow((1-sinphi)/(1+sinphi), 0.5*e)
}

// qsfn computes q of Snyder (3-12), used by equal-area projections.
func qsfn(sinphi, e, oneEs float64) float64 {
	if e < eps7 {
		return sinphi + sinphi
	}
	con := e * sinphi
	return oneEs * (sinphi/(1-con*con) - (0.5/e)*math.Log((1-con)/(1+con)))
}

// cphi2 solves Snyder (7-9) for the latitude whose tsfn is ts.
func cphi2(ts, e float64) (float64, error) {
	eccnth := 0.5 * e
	phi := halfPi - 2*math.Atan(ts)
	for i := 0; i < maxIterPhi; i++ {
		con := e * math.Sin(phi)
		dphi := halfPi - 2*math.Atan(ts*math.Pow((1-con)/(1+con), eccnth)) - phi
		phi += dphi
		if math.Abs(dphi) <= tolPhi {
			return phi, nil
		}
	}
	return math.NaN(), errors.Wrapf(ErrNoConvergence, "conformal latitude for t=%g", ts)
}

// phi1 solves Snyder (3-16) for the latitude whose authalic q is qs.
func phi1(qs, e, oneEs float64) (float64, error) {
	phi := math.Asin(0.5 * qs)
	if e < eps7 {
		return phi, nil
	}
	for i := 0; i < maxIterPhi; i++ {
		sinpi := math.Sin(phi)
		cospi := math.Cos(phi)
		con := e * sinpi
		com := 1 - con*con
		dphi := 0.5 * com * com / cospi * (qs/oneEs - sinpi/com + 0.5/e*math.Log((1-con)/(1+con)))
		phi += dphi
		if math.Abs(dphi) <= tolPhi {
			return phi, nil
		}
	}
	return math.NaN(), errors.Wrapf(ErrNoConvergence, "authalic latitude for q=%g", qs)
}

// Meridian distance series coefficients.
const (
	c00 = 1.0
	c02 = 0.25
	c04 = 0.046875
	c06 = 0.01953125
	c08 = 0.01068115234375
	c22 = 0.75
	c44 = 0.46875
	c46 = 0.01302083333333333333
	c48 = 0.00712076822916666666
	c66 = 0.36458333333333333333
	c68 = 0.00569661458333333333
	c88 = 0.3076171875
)

// meridianSeries holds the coefficients of the meridian distance expansion
// for one ellipsoid.
type meridianSeries struct {
	es                 float64
	en0, en1, en2, en3 float64
	en4                float64
}

func newMeridianSeries(es float64) meridianSeries {
	m := meridianSeries{es: es}
	m.en0 = c00 - es*(c02+es*(c04+es*(c06+es*c08)))
	m.en1 = es * (c22 - es*(c04+es*(c06+es*c08)))
	t := es * es
	m.en2 = t * (c44 - es*(c46+es*c48))
	t *= es
	m.en3 = t * (c66 - es*c68)
	m.en4 = t * es * c88
	return m
}

// mlfn returns the meridian distance from the equator to phi, in units of
// the semi-major axis.
func (m meridianSeries) mlfn(phi, sphi, cphi float64) float64 {
	cphi *= sphi
	sphi *= sphi
	return m.en0*phi - cphi*(m.en1+sphi*(m.en2+sphi*(m.en3+sphi*m.en4)))
}

// invMlfn inverts mlfn by Newton iteration.
func (m meridianSeries) invMlfn(arg float64) (float64, error) {
	k := 1 / (1 - m.es)
	phi := arg
	for i := 0; i < maxIterMlfn; i++ {
		s := math.Sin(phi)
		t := 1 - m.es*s*s
		t = (m.mlfn(phi, s, math.Cos(phi)) - arg) * (t * math.Sqrt(t)) * k
		phi -= t
		if math.Abs(t) < tolMlfn {
			return phi, nil
		}
	}
	return math.NaN(), errors.Wrapf(ErrNoConvergence, "inverse meridian distance for %g", arg)
}

func aTanH(x float64) float64 {
	return 0.5 * math.Log((1+x)/(1-x))
}

// geodeticLat recovers the geodetic latitude from the sine of the conformal
// latitude.
func geodeticLat(sinChi, e float64) (float64, error) {
	sOld := 1.0e99
	s := sinChi
	onePlusSinChi := 1.0 + sinChi
	oneMinusSinChi := 1.0 - sinChi

	for n := 0; n < 30; n++ {
		p := math.Exp(e * aTanH(e*s))
		pSq := p * p
		s = (onePlusSinChi*pSq - oneMinusSinChi) /
			(onePlusSinChi*pSq + oneMinusSinChi)

		if math.Abs(s-sOld) < 1.0e-12 {
			return math.Asin(s), nil
		}
		sOld = s
	}
	return math.NaN(), errors.Wrapf(ErrNoConvergence, "geodetic latitude for sin(chi)=%g", sinChi)
}

// ensureInRange wraps a longitude in radians back into [-π, π]. Values above
// π land in [-π, π) and values below -π in (-π, π].
func ensureInRange(x float64) float64 {
	if x > math.Pi {
		return x - twoPi*math.Floor((x+math.Pi)/twoPi)
	}
	if x < -math.Pi {
		return x + twoPi*math.Floor((math.Pi-x)/twoPi)
	}
	return x
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
