package mapproj

import (
	"math"

	"github.com/pkg/errors"
)

// Series coefficients of the ellipsoidal Transverse Mercator (Snyder 8-9
// to 8-12, 8-17 to 8-19).
const (
	fc1 = 1.0
	fc2 = 0.5
	fc3 = 0.16666666666666666666
	fc4 = 0.08333333333333333333
	fc5 = 0.05
	fc6 = 0.03333333333333333333
	fc7 = 0.02380952380952380952
	fc8 = 0.01785714285714285714
)

// transverseMercator is the Gauss-Krüger projection in the truncated series
// form of Snyder ch. 8, accurate within a few degrees of the central
// meridian.
type transverseMercator struct {
	es        float64
	esp       float64 // es / (1 - es)
	ml0       float64 // meridian distance of the latitude of origin
	phi0      float64
	en        meridianSeries
	spherical bool
}

func buildTransverseMercator(b *base, r *paramReader, o options) (projector, error) {
	t := transverseMercator{
		es:        b.es,
		phi0:      b.latitudeOfOrigin,
		spherical: b.spherical(),
	}
	if !t.spherical {
		t.esp = b.es / (1 - b.es)
		t.en = newMeridianSeries(b.es)
		t.ml0 = t.en.mlfn(t.phi0, math.Sin(t.phi0), math.Cos(t.phi0))
	}
	return t, nil
}

func (t transverseMercator) forward(lam, phi float64) (x, y float64, err error) {
	if t.spherical {
		return t.sphericalForward(lam, phi)
	}
	if lam < -halfPi || lam > halfPi {
		return 0, 0, errors.Wrapf(ErrToleranceCondition, "%g° from the central meridian", lam*rad2Deg)
	}
	sinphi := math.Sin(phi)
	cosphi := math.Cos(phi)
	tt := 0.0
	if math.Abs(cosphi) > eps10 {
		tt = sinphi / cosphi
	}
	tt *= tt
	al := cosphi * lam
	als := al * al
	al /= math.Sqrt(1 - t.es*sinphi*sinphi)
	n := t.esp * cosphi * cosphi

	x = al * (fc1 + fc3*als*(1-tt+n+
		fc5*als*(5+tt*(tt-18)+n*(14-58*tt)+
			fc7*als*(61+tt*(tt*(179-tt)-479)))))
	y = t.en.mlfn(phi, sinphi, cosphi) - t.ml0 +
		sinphi*al*lam*fc2*(1+
			fc4*als*(5-tt+n*(9+4*n)+
				fc6*als*(61+tt*(tt-58)+n*(270-330*tt)+
					fc8*als*(1385+tt*(tt*(543-tt)-3111)))))
	return x, y, nil
}

func (t transverseMercator) sphericalForward(lam, phi float64) (x, y float64, err error) {
	cosphi := math.Cos(phi)
	b := cosphi * math.Sin(lam)
	if math.Abs(math.Abs(b)-1) <= eps10 {
		return 0, 0, errors.Wrapf(ErrInfinity, "point 90° from the central meridian on the equator")
	}
	x = 0.5 * math.Log((1+b)/(1-b))
	y = cosphi * math.Cos(lam) / math.Sqrt(1-b*b)
	if b = math.Abs(y); b >= 1 {
		if b-1 > eps10 {
			return 0, 0, errors.Wrap(ErrToleranceCondition, "arc cosine out of range")
		}
		y = 0
	} else {
		y = math.Acos(y)
	}
	if phi < 0 {
		y = -y
	}
	return x, y - t.phi0, nil
}

func (t transverseMercator) inverse(x, y float64) (lam, phi float64, err error) {
	if t.spherical {
		return t.sphericalInverse(x, y)
	}
	phi, err = t.en.invMlfn(t.ml0 + y)
	if err != nil {
		return 0, 0, err
	}
	if math.Abs(phi) >= halfPi {
		return 0, math.Copysign(halfPi, y), nil
	}
	sinphi := math.Sin(phi)
	cosphi := math.Cos(phi)
	tt := 0.0
	if math.Abs(cosphi) > eps10 {
		tt = sinphi / cosphi
	}
	n := t.esp * cosphi * cosphi
	con := 1 - t.es*sinphi*sinphi
	d := x * math.Sqrt(con)
	con *= tt
	tt *= tt
	ds := d * d
	phi -= (con * ds / (1 - t.es)) * fc2 * (1 -
		ds*fc4*(5+tt*(3-9*n)+n*(1-4*n)-
			ds*fc6*(61+tt*(90-252*n+45*tt)+46*n-
				ds*fc8*(1385+tt*(3633+tt*(4095+1574*tt))))))
	lam = d * (fc1 -
		ds*fc3*(1+2*tt+n-
			ds*fc5*(5+tt*(28+24*tt+8*n)+6*n-
				ds*fc7*(61+tt*(662+tt*(1320+720*tt)))))) / cosphi
	return lam, phi, nil
}

func (t transverseMercator) sphericalInverse(x, y float64) (lam, phi float64, err error) {
	h := math.Exp(x)
	g := 0.5 * (h - 1/h)
	arg := t.phi0 + y
	h = math.Cos(arg)
	phi = math.Asin(math.Sqrt((1 - h*h) / (1 + g*g)))
	if arg < 0 {
		phi = -phi
	}
	if g != 0 || h != 0 {
		lam = math.Atan2(g, h)
	}
	return lam, phi, nil
}
