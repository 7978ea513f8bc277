package mapproj

import (
	"math"

	"github.com/pkg/errors"
)

// belgeA is the angular correction of the Belgian Lambert 72 variant, in
// radians (29.2985 seconds).
const belgeA = 0.00014204313635987700

// lambertConic is the Lambert Conformal Conic projection (Snyder ch. 15)
// with one or two standard parallels.
type lambertConic struct {
	e         float64
	n         float64 // cone constant
	c         float64 // F of Snyder (15-10)
	rho0      float64
	belgium   bool
	spherical bool
}

func buildLambert1SP(b *base, r *paramReader, o options) (projector, error) {
	phi0 := r.require(LatitudeOfOrigin) * deg2Rad
	if r.err != nil {
		return nil, r.err
	}
	return newLambertConic(b, phi0, phi0, false)
}

func buildLambert2SP(b *base, r *paramReader, o options) (projector, error) {
	phi1, phi2 := readStandardParallels(b, r)
	if r.err != nil {
		return nil, r.err
	}
	return newLambertConic(b, phi1, phi2, false)
}

func buildLambert2SPBelgium(b *base, r *paramReader, o options) (projector, error) {
	phi1, phi2 := readStandardParallels(b, r)
	if r.err != nil {
		return nil, r.err
	}
	return newLambertConic(b, phi1, phi2, true)
}

// readStandardParallels reads the standard parallels of a secant cone, in
// radians. The first defaults to the latitude of origin and the second to
// the first.
func readStandardParallels(b *base, r *paramReader) (phi1, phi2 float64) {
	sp1 := r.getOr(StandardParallel1, b.latitudeOfOrigin*rad2Deg)
	sp2 := r.getOr(StandardParallel2, sp1)
	return sp1 * deg2Rad, sp2 * deg2Rad
}

func checkParallels(phi1, phi2 float64) error {
	if math.Abs(phi1+phi2) < eps10 {
		return errors.Wrapf(ErrAntipodalLatitudes, "standard parallels %g° and %g°", phi1*rad2Deg, phi2*rad2Deg)
	}
	return nil
}

func newLambertConic(b *base, phi1, phi2 float64, belgium bool) (lambertConic, error) {
	if err := checkParallels(phi1, phi2); err != nil {
		return lambertConic{}, err
	}
	l := lambertConic{e: b.e, belgium: belgium, spherical: b.spherical()}
	phi0 := b.latitudeOfOrigin
	sinphi := math.Sin(phi1)
	cosphi := math.Cos(phi1)
	secant := math.Abs(phi1-phi2) >= eps10
	l.n = sinphi
	atPole := math.Abs(math.Abs(phi0)-halfPi) < eps10
	if l.spherical {
		if secant {
			l.n = math.Log(cosphi/math.Cos(phi2)) /
				math.Log(math.Tan(fortPi+0.5*phi2)/math.Tan(fortPi+0.5*phi1))
		}
		l.c = cosphi * math.Pow(math.Tan(fortPi+0.5*phi1), l.n) / l.n
		if !atPole {
			l.rho0 = l.c * math.Pow(math.Tan(fortPi+0.5*phi0), -l.n)
		}
	} else {
		m1 := msfn(sinphi, cosphi, b.es)
		t1 := tsfn(phi1, sinphi, b.e)
		if secant {
			sinphi2 := math.Sin(phi2)
			l.n = math.Log(m1 / msfn(sinphi2, math.Cos(phi2), b.es))
			l.n /= math.Log(t1 / tsfn(phi2, sinphi2, b.e))
		}
		l.c = m1 * math.Pow(t1, -l.n) / l.n
		if !atPole {
			l.rho0 = l.c * math.Pow(tsfn(phi0, math.Sin(phi0), b.e), l.n)
		}
	}
	if math.IsNaN(l.c) || math.IsInf(l.c, 0) {
		return lambertConic{}, errors.Wrapf(ErrIllegalArgument, "degenerate cone for standard parallels %g° and %g°",
			phi1*rad2Deg, phi2*rad2Deg)
	}
	return l, nil
}

func (l lambertConic) forward(lam, phi float64) (x, y float64, err error) {
	var rho float64
	if math.Abs(math.Abs(phi)-halfPi) < eps10 {
		if phi*l.n <= 0 {
			return 0, 0, errors.Wrapf(ErrPoleProjection, "latitude %g° is the apex on the other side of the cone", phi*rad2Deg)
		}
	} else if l.spherical {
		rho = l.c * math.Pow(math.Tan(fortPi+0.5*phi), -l.n)
	} else {
		rho = l.c * math.Pow(tsfn(phi, math.Sin(phi), l.e), l.n)
	}
	lam *= l.n
	if l.belgium {
		lam -= belgeA
	}
	return rho * math.Sin(lam), l.rho0 - rho*math.Cos(lam), nil
}

func (l lambertConic) inverse(x, y float64) (lam, phi float64, err error) {
	y = l.rho0 - y
	rho := math.Hypot(x, y)
	if rho == 0 {
		return 0, math.Copysign(halfPi, l.n), nil
	}
	if l.n < 0 {
		rho, x, y = -rho, -x, -y
	}
	if l.spherical {
		phi = 2*math.Atan(math.Pow(l.c/rho, 1/l.n)) - halfPi
	} else {
		phi, err = cphi2(math.Pow(rho/l.c, 1/l.n), l.e)
		if err != nil {
			return 0, 0, err
		}
	}
	lam = math.Atan2(x, y)
	if l.belgium {
		lam += belgeA
	}
	return lam / l.n, phi, nil
}
