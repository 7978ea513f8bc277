package mapproj

import (
	"math"

	"github.com/pkg/errors"
)

const nTerms = 6

// maxDeltaLong is the widest distance from the central meridian, away from
// the poles, the Krüger series is trusted for.
const maxDeltaLong = 70 * deg2Rad

// extendedTransverseMercator is the Transverse Mercator projection computed
// with Krüger's n-series: geodetic latitude to conformal latitude, the
// spherical transverse Mercator on the conformal sphere, then a trig series
// mapping onto the ellipsoid. Unlike the Snyder series it stays accurate
// tens of degrees away from the central meridian.
type extendedTransverseMercator struct {
	e      float64
	r4oa   float64 // meridional isoperimetric radius over a
	aCoeff [8]float64
	bCoeff [8]float64
	y0     float64 // northing of the latitude of origin
}

func buildExtendedTransverseMercator(b *base, r *paramReader, o options) (projector, error) {
	t := extendedTransverseMercator{e: b.e}
	n := (b.semiMajor - b.semiMinor) / (b.semiMajor + b.semiMinor)
	t.r4oa = generateCoefficients(n, t.aCoeff[:], t.bCoeff[:])
	_, y0, err := t.project(0, b.latitudeOfOrigin)
	if err != nil {
		return nil, errors.Wrap(ErrIllegalArgument, err.Error())
	}
	t.y0 = y0
	return t, nil
}

// generateCoefficients computes, for Helmert's n = (a-b)/(a+b), the
// coefficients of the rectifying latitude as a trig series in the conformal
// latitude (aCoeff) and of its reverse (bCoeff), for k = 2, 4, ... 16. It
// returns R4/a. The result depends only on the shape of the ellipsoid.
func generateCoefficients(n1 float64, aCoeff, bCoeff []float64) float64 {
	n2 := n1 * n1
	n3 := n2 * n1
	n4 := n3 * n1
	n5 := n4 * n1
	n6 := n5 * n1
	n7 := n6 * n1
	n8 := n7 * n1
	n10 := n8 * n2

	aCoeff[0] = (-18975107.0)*n8/50803200.0 +
		(72161.0)*n7/387072.0 +
		(7891.0)*n6/37800.0 +
		(-127.0)*n5/288.0 +
		(41.0)*n4/180.0 +
		(5.0)*n3/16.0 +
		(-2.0)*n2/3.0 +
		(1.0)*n1/2.0
	aCoeff[1] = (148003883.0)*n8/174182400.0 +
		(13769.0)*n7/28800.0 +
		(-1983433.0)*n6/1935360.0 +
		(281.0)*n5/630.0 +
		(557.0)*n4/1440.0 +
		(-3.0)*n3/5.0 +
		(13.0)*n2/48.0
	aCoeff[2] = (79682431.0)*n8/79833600.0 +
		(-67102379.0)*n7/29030400.0 +
		(167603.0)*n6/181440.0 +
		(15061.0)*n5/26880.0 +
		(-103.0)*n4/140.0 +
		(61.0)*n3/240.0
	aCoeff[3] = (-40176129013.0)*n8/7664025600.0 +
		(97445.0)*n7/49896.0 +
		(6601661.0)*n6/7257600.0 +
		(-179.0)*n5/168.0 +
		(49561.0)*n4/161280.0
	aCoeff[4] = (2605413599.0)*n8/622702080.0 +
		(14644087.0)*n7/9123840.0 +
		(-3418889.0)*n6/1995840.0 +
		(34729.0)*n5/80640.0
	aCoeff[5] = (175214326799.0)*n8/58118860800.0 +
		(-30705481.0)*n7/10378368.0 +
		(212378941.0)*n6/319334400.0
	aCoeff[6] = (-16759934899.0)*n8/3113510400.0 +
		(1522256789.0)*n7/1383782400.0
	aCoeff[7] = (1424729850961.0) * n8 / 743921418240.0

	bCoeff[0] = (-7944359.0)*n8/67737600.0 +
		(5406467.0)*n7/38707200.0 +
		(-96199.0)*n6/604800.0 +
		(81.0)*n5/512.0 +
		(1.0)*n4/360.0 +
		(-37.0)*n3/96.0 +
		(2.0)*n2/3.0 +
		(-1.0)*n1/2.0
	bCoeff[1] = (-24749483.0)*n8/348364800.0 +
		(-51841.0)*n7/1209600.0 +
		(1118711.0)*n6/3870720.0 +
		(-46.0)*n5/105.0 +
		(437.0)*n4/1440.0 +
		(-1.0)*n3/15.0 +
		(-1.0)*n2/48.0
	bCoeff[2] = (6457463.0)*n8/17740800.0 +
		(-9261899.0)*n7/58060800.0 +
		(-5569.0)*n6/90720.0 +
		(209.0)*n5/4480.0 +
		(37.0)*n4/840.0 +
		(-17.0)*n3/480.0
	bCoeff[3] = (-324154477.0)*n8/7664025600.0 +
		(-466511.0)*n7/2494800.0 +
		(830251.0)*n6/7257600.0 +
		(11.0)*n5/504.0 +
		(-4397.0)*n4/161280.0
	bCoeff[4] = (-22894433.0)*n8/124540416.0 +
		(8005831.0)*n7/63866880.0 +
		(108847.0)*n6/3991680.0 +
		(-4583.0)*n5/161280.0
	bCoeff[5] = (2204645983.0)*n8/12915302400.0 +
		(16363163.0)*n7/518918400.0 +
		(-20648693.0)*n6/638668800.0
	bCoeff[6] = (497323811.0)*n8/12454041600.0 +
		(-219941297.0)*n7/5535129600.0
	bCoeff[7] = (-191773887257.0) * n8 / 3719607091200.0

	r4 := 1 + n2/4 + n4/64 + n6/256 + 25*n8/16384 + 49*n10/65536
	return r4 / (1 + n1)
}

// checkDeltaLon rejects points too far from the central meridian, except
// near the poles and the opposite meridian where the series still holds.
func checkDeltaLon(phi, lam float64) error {
	testAngle := math.Abs(lam)
	if delta := math.Abs(lam - math.Pi); delta < testAngle {
		testAngle = delta
	}
	if delta := math.Abs(lam + math.Pi); delta < testAngle {
		testAngle = delta
	}
	if delta := halfPi - phi; delta < testAngle {
		testAngle = delta
	}
	if delta := halfPi + phi; delta < testAngle {
		testAngle = delta
	}
	if testAngle > maxDeltaLong {
		return errors.Wrapf(ErrToleranceCondition, "%g° from the central meridian", lam*rad2Deg)
	}
	return nil
}

func (t extendedTransverseMercator) project(lam, phi float64) (x, y float64, err error) {
	if err := checkDeltaLon(phi, lam); err != nil {
		return 0, 0, err
	}
	cosLam := math.Cos(lam)
	sinLam := math.Sin(lam)
	cosPhi := math.Cos(phi)
	sinPhi := math.Sin(phi)

	// geodetic to conformal latitude; only its sine and cosine are needed
	p := math.Exp(t.e * aTanH(t.e*sinPhi))
	part1 := (1 + sinPhi) / p
	part2 := (1 - sinPhi) * p
	denom := part1 + part2
	cosChi := 2 * cosPhi / denom
	sinChi := (part1 - part2) / denom

	u := aTanH(cosChi * sinLam)
	v := math.Atan2(sinChi, cosChi*cosLam)
	if math.IsInf(u, 0) {
		return 0, 0, errors.Wrap(ErrInfinity, "point 90° from the central meridian on the equator")
	}

	var c2ku, s2ku, c2kv, s2kv [8]float64
	computeHyperbolicSeries(2*u, c2ku[:], s2ku[:])
	computeTrigSeries(2*v, c2kv[:], s2kv[:])

	xStar, yStar := 0.0, 0.0
	for k := nTerms - 1; k >= 0; k-- {
		xStar += t.aCoeff[k] * s2ku[k] * c2kv[k]
		yStar += t.aCoeff[k] * c2ku[k] * s2kv[k]
	}
	return t.r4oa * (xStar + u), t.r4oa * (yStar + v), nil
}

func (t extendedTransverseMercator) forward(lam, phi float64) (x, y float64, err error) {
	x, y, err = t.project(lam, phi)
	return x, y - t.y0, err
}

func (t extendedTransverseMercator) inverse(x, y float64) (lam, phi float64, err error) {
	xStar := x / t.r4oa
	yStar := (y + t.y0) / t.r4oa

	var c2kx, s2kx, c2ky, s2ky [8]float64
	computeHyperbolicSeries(2*xStar, c2kx[:], s2kx[:])
	computeTrigSeries(2*yStar, c2ky[:], s2ky[:])

	u, v := 0.0, 0.0
	for k := nTerms - 1; k >= 0; k-- {
		u += t.bCoeff[k] * s2kx[k] * c2ky[k]
		v += t.bCoeff[k] * c2kx[k] * s2ky[k]
	}
	u += xStar
	v += yStar

	coshU := math.Cosh(u)
	sinhU := math.Sinh(u)
	cosV := math.Cos(v)
	sinV := math.Sin(v)
	if math.Abs(cosV) >= 1e-11 || math.Abs(sinhU) >= 1e-11 {
		lam = math.Atan2(sinhU, cosV)
	}
	phi, err = geodeticLat(sinV/coshU, t.e)
	if err != nil {
		return 0, 0, err
	}
	return lam, phi, nil
}

// computeHyperbolicSeries fills c2kx[k] = cosh(2(k+1)x) and
// s2kx[k] = sinh(2(k+1)x) for k = 0 .. 7 from trig identities.
func computeHyperbolicSeries(twoX float64, c2kx, s2kx []float64) {
	c2kx[0] = math.Cosh(twoX)
	s2kx[0] = math.Sinh(twoX)
	c2kx[1] = 2.0*c2kx[0]*c2kx[0] - 1.0
	s2kx[1] = 2.0 * c2kx[0] * s2kx[0]
	c2kx[2] = c2kx[0]*c2kx[1] + s2kx[0]*s2kx[1]
	s2kx[2] = c2kx[1]*s2kx[0] + c2kx[0]*s2kx[1]
	c2kx[3] = 2.0*c2kx[1]*c2kx[1] - 1.0
	s2kx[3] = 2.0 * c2kx[1] * s2kx[1]
	c2kx[4] = c2kx[0]*c2kx[3] + s2kx[0]*s2kx[3]
	s2kx[4] = c2kx[3]*s2kx[0] + c2kx[0]*s2kx[3]
	c2kx[5] = 2.0*c2kx[2]*c2kx[2] - 1.0
	s2kx[5] = 2.0 * c2kx[2] * s2kx[2]
	c2kx[6] = c2kx[0]*c2kx[5] + s2kx[0]*s2kx[5]
	s2kx[6] = c2kx[5]*s2kx[0] + c2kx[0]*s2kx[5]
	c2kx[7] = 2.0*c2kx[3]*c2kx[3] - 1.0
	s2kx[7] = 2.0 * c2kx[3] * s2kx[3]
}

// computeTrigSeries is the circular counterpart of computeHyperbolicSeries.
func computeTrigSeries(twoY float64, c2ky, s2ky []float64) {
	c2ky[0] = math.Cos(twoY)
	s2ky[0] = math.Sin(twoY)
	c2ky[1] = 2.0*c2ky[0]*c2ky[0] - 1.0
	s2ky[1] = 2.0 * c2ky[0] * s2ky[0]
	c2ky[2] = c2ky[1]*c2ky[0] - s2ky[1]*s2ky[0]
	s2ky[2] = c2ky[1]*s2ky[0] + c2ky[0]*s2ky[1]
	c2ky[3] = 2.0*c2ky[1]*c2ky[1] - 1.0
	s2ky[3] = 2.0 * c2ky[1] * s2ky[1]
	c2ky[4] = c2ky[3]*c2ky[0] - s2ky[3]*s2ky[0]
	s2ky[4] = c2ky[3]*s2ky[0] + c2ky[0]*s2ky[3]
	c2ky[5] = 2.0*c2ky[2]*c2ky[2] - 1.0
	s2ky[5] = 2.0 * c2ky[2] * s2ky[2]
	c2ky[6] = c2ky[5]*c2ky[0] - s2ky[5]*s2ky[0]
	s2ky[6] = c2ky[5]*s2ky[0] + c2ky[0]*s2ky[5]
	c2ky[7] = 2.0*c2ky[3]*c2ky[3] - 1.0
	s2ky[7] = 2.0 * c2ky[3] * s2ky[3]
}
