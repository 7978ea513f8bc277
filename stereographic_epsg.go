package mapproj

import (
	"math"

	"github.com/pkg/errors"
)

const (
	gaussMaxIter = 20
	gaussTol     = 1e-14
)

// obliqueStereographicEPSG is the double stereographic projection: the
// ellipsoid is first mapped conformally onto the Gauss sphere, which is then
// projected stereographically. It approximates EPSG method 9809 without
// matching it exactly, and degrades for points more than 90° from the
// central meridian. Results differ slightly from the single conformal
// sphere formulation of Stereographic.
type obliqueStereographicEPSG struct {
	e      float64
	c      float64 // exponent of the Gauss sphere mapping
	k      float64
	ratexp float64
	sinc0  float64
	cosc0  float64
	phic0  float64 // latitude of origin on the Gauss sphere
	r2     float64 // twice the Gauss sphere radius over a
}

func buildObliqueStereographicEPSG(b *base, r *paramReader, o options) (projector, error) {
	phi0 := b.latitudeOfOrigin
	s := obliqueStereographicEPSG{e: b.e}
	sphi := math.Sin(phi0)
	cphi := math.Cos(phi0)
	cphi *= cphi
	rc := math.Sqrt(1-b.es) / (1 - b.es*sphi*sphi)
	s.c = math.Sqrt(1 + b.es*cphi*cphi/(1-b.es))
	s.phic0 = math.Asin(sphi / s.c)
	s.ratexp = 0.5 * s.c * b.e
	s.k = math.Tan(0.5*s.phic0+fortPi) /
		(math.Pow(math.Tan(0.5*phi0+fortPi), s.c) * srat(b.e*sphi, s.ratexp))
	s.sinc0 = math.Sin(s.phic0)
	s.cosc0 = math.Cos(s.phic0)
	s.r2 = 2 * rc
	return s, nil
}

func srat(esinp, exp float64) float64 {
	return math.Pow((1-esinp)/(1+esinp), exp)
}

func (s obliqueStereographicEPSG) forward(lam, phi float64) (x, y float64, err error) {
	phi = 2*math.Atan(s.k*math.Pow(math.Tan(0.5*phi+fortPi), s.c)*srat(s.e*math.Sin(phi), s.ratexp)) - halfPi
	lam *= s.c
	sinc := math.Sin(phi)
	cosc := math.Cos(phi)
	cosl := math.Cos(lam)
	d := 1 + s.sinc0*sinc + s.cosc0*cosc*cosl
	if d <= eps10 {
		return 0, 0, errors.Wrap(ErrInfinity, "antipode of the projection origin")
	}
	k := s.r2 / d
	return k * cosc * math.Sin(lam), k * (s.cosc0*sinc - s.sinc0*cosc*cosl), nil
}

func (s obliqueStereographicEPSG) inverse(x, y float64) (lam, phi float64, err error) {
	rho := math.Hypot(x, y)
	if rho != 0 {
		c := 2 * math.Atan2(rho, s.r2)
		sinc := math.Sin(c)
		cosc := math.Cos(c)
		phi = math.Asin(cosc*s.sinc0 + y*sinc*s.cosc0/rho)
		lam = math.Atan2(x*sinc, rho*s.cosc0*cosc-y*s.sinc0*sinc)
	} else {
		phi = s.phic0
	}
	// back from the Gauss sphere
	lam /= s.c
	num := math.Pow(math.Tan(0.5*phi+fortPi)/s.k, 1/s.c)
	for i := 0; i < gaussMaxIter; i++ {
		prev := phi
		phi = 2*math.Atan(num*srat(s.e*math.Sin(phi), -0.5*s.e)) - halfPi
		if math.Abs(phi-prev) < gaussTol {
			return lam, phi, nil
		}
	}
	return 0, 0, errors.Wrap(ErrNoConvergence, "latitude from the Gauss sphere")
}
