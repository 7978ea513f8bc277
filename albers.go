package mapproj

import (
	"math"

	"github.com/pkg/errors"
)

// albers is the Albers Equal Area conic projection (Snyder ch. 14).
type albers struct {
	e         float64
	oneEs     float64
	ec        float64 // q at the pole
	n         float64
	n2        float64
	c         float64
	dd        float64 // 1/n
	rho0      float64
	spherical bool
}

func buildAlbers(b *base, r *paramReader, o options) (projector, error) {
	phi1, phi2 := readStandardParallels(b, r)
	if r.err != nil {
		return nil, r.err
	}
	if err := checkParallels(phi1, phi2); err != nil {
		return nil, err
	}
	a := albers{e: b.e, oneEs: 1 - b.es, spherical: b.spherical()}
	sinphi := math.Sin(phi1)
	cosphi := math.Cos(phi1)
	secant := math.Abs(phi1-phi2) >= eps10
	a.n = sinphi
	var rho0sq float64
	if a.spherical {
		if secant {
			a.n = 0.5 * (a.n + math.Sin(phi2))
		}
		a.n2 = a.n + a.n
		a.c = cosphi*cosphi + a.n2*sinphi
		rho0sq = a.c - a.n2*math.Sin(b.latitudeOfOrigin)
	} else {
		m1 := msfn(sinphi, cosphi, b.es)
		ml1 := qsfn(sinphi, b.e, a.oneEs)
		if secant {
			sinphi2 := math.Sin(phi2)
			m2 := msfn(sinphi2, math.Cos(phi2), b.es)
			ml2 := qsfn(sinphi2, b.e, a.oneEs)
			a.n = (m1*m1 - m2*m2) / (ml2 - ml1)
		}
		a.ec = 1 - 0.5*a.oneEs*math.Log((1-b.e)/(1+b.e))/b.e
		a.c = m1*m1 + a.n*ml1
		rho0sq = a.c - a.n*qsfn(math.Sin(b.latitudeOfOrigin), b.e, a.oneEs)
	}
	if a.n == 0 || math.IsNaN(a.n) {
		return nil, errors.Wrapf(ErrIllegalArgument, "degenerate cone for standard parallels %g° and %g°",
			phi1*rad2Deg, phi2*rad2Deg)
	}
	if rho0sq < 0 {
		return nil, errors.Wrapf(ErrIllegalArgument, "latitude of origin %g° outside the cone", b.latitudeOfOrigin*rad2Deg)
	}
	a.dd = 1 / a.n
	a.rho0 = a.dd * math.Sqrt(rho0sq)
	return a, nil
}

func (a albers) forward(lam, phi float64) (x, y float64, err error) {
	var rho float64
	if a.spherical {
		rho = a.c - a.n2*math.Sin(phi)
	} else {
		rho = a.c - a.n*qsfn(math.Sin(phi), a.e, a.oneEs)
	}
	if rho < 0 {
		return 0, 0, errors.Wrapf(ErrToleranceCondition, "negative squared radius at latitude %g°", phi*rad2Deg)
	}
	rho = a.dd * math.Sqrt(rho)
	lam *= a.n
	return rho * math.Sin(lam), a.rho0 - rho*math.Cos(lam), nil
}

func (a albers) inverse(x, y float64) (lam, phi float64, err error) {
	y = a.rho0 - y
	rho := math.Hypot(x, y)
	if rho == 0 {
		return 0, math.Copysign(halfPi, a.n), nil
	}
	if a.n < 0 {
		rho, x, y = -rho, -x, -y
	}
	phi = rho / a.dd
	if a.spherical {
		phi = (a.c - phi*phi) / a.n2
		if math.Abs(phi) <= 1 {
			phi = math.Asin(phi)
		} else {
			phi = math.Copysign(halfPi, phi)
		}
	} else {
		phi = (a.c - phi*phi) / a.n
		if math.Abs(a.ec-math.Abs(phi)) > eps7 {
			if phi, err = phi1(phi, a.e, a.oneEs); err != nil {
				return 0, 0, err
			}
		} else {
			phi = math.Copysign(halfPi, phi)
		}
	}
	return math.Atan2(x, y) / a.n, phi, nil
}
