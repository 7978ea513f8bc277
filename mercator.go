package mapproj

import (
	"math"

	"github.com/pkg/errors"
)

// mercator is the normal aspect Mercator projection (Snyder ch. 7). The
// scale factor of the 2SP variant is folded into the base scale factor.
type mercator struct {
	e         float64
	spherical bool
}

func buildMercator1SP(b *base, r *paramReader, o options) (projector, error) {
	return mercator{e: b.e, spherical: b.spherical()}, nil
}

func buildMercator2SP(b *base, r *paramReader, o options) (projector, error) {
	phi1 := math.Abs(r.radians(StandardParallel1))
	if r.err != nil {
		return nil, r.err
	}
	if phi1 >= halfPi-eps10 {
		return nil, errors.Wrapf(ErrIllegalArgument, "standard parallel %g° too close to a pole", phi1*rad2Deg)
	}
	if b.spherical() {
		b.scaleFactor = math.Cos(phi1)
	} else {
		b.scaleFactor = msfn(math.Sin(phi1), math.Cos(phi1), b.es)
	}
	return mercator{e: b.e, spherical: b.spherical()}, nil
}

func (m mercator) forward(lam, phi float64) (x, y float64, err error) {
	if math.Abs(phi) > halfPi-eps10 {
		return 0, 0, errors.Wrapf(ErrPoleProjection, "latitude %g°", phi*rad2Deg)
	}
	if m.spherical {
		return lam, math.Log(math.Tan(fortPi + 0.5*phi)), nil
	}
	return lam, -math.Log(tsfn(phi, math.Sin(phi), m.e)), nil
}

func (m mercator) inverse(x, y float64) (lam, phi float64, err error) {
	if m.spherical {
		return x, halfPi - 2*math.Atan(math.Exp(-y)), nil
	}
	phi, err = cphi2(math.Exp(-y), m.e)
	if err != nil {
		return 0, 0, err
	}
	return x, phi, nil
}
