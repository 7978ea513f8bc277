package mapproj

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Ellipsoid is a rotational ellipsoid used as the earth model of a
// projection. A sphere has SemiMajor == SemiMinor.
type Ellipsoid struct {
	Name      string
	SemiMajor float64
	SemiMinor float64
}

// NewEllipsoidFlattening builds an ellipsoid from its semi-major axis and
// inverse flattening. An infinite inverse flattening denotes a sphere.
func NewEllipsoidFlattening(name string, semiMajor, invFlattening float64) Ellipsoid {
	semiMinor := semiMajor
	if !math.IsInf(invFlattening, 0) {
		semiMinor = semiMajor * (1 - 1/invFlattening)
	}
	return Ellipsoid{Name: name, SemiMajor: semiMajor, SemiMinor: semiMinor}
}

// Es returns the squared eccentricity 1 - (b/a)².
func (e Ellipsoid) Es() float64 {
	r := e.SemiMinor / e.SemiMajor
	return 1 - r*r
}

// E returns the eccentricity.
func (e Ellipsoid) E() float64 {
	return math.Sqrt(e.Es())
}

// Flattening returns (a - b) / a.
func (e Ellipsoid) Flattening() float64 {
	return (e.SemiMajor - e.SemiMinor) / e.SemiMajor
}

// IsSphere reports whether both axes are equal.
func (e Ellipsoid) IsSphere() bool {
	return e.SemiMajor == e.SemiMinor
}

func (e Ellipsoid) validate() error {
	if !(e.SemiMajor > 0) || math.IsInf(e.SemiMajor, 0) {
		return errors.Wrapf(ErrIllegalArgument, "semi-major axis must be greater than zero, got %g", e.SemiMajor)
	}
	if !(e.SemiMinor > 0) || math.IsInf(e.SemiMinor, 0) {
		return errors.Wrapf(ErrIllegalArgument, "semi-minor axis must be greater than zero, got %g", e.SemiMinor)
	}
	if es := e.Es(); es < 0 || es >= 1 {
		return errors.Wrapf(ErrIllegalArgument, "eccentricity squared %g outside [0,1)", es)
	}
	return nil
}

// Well known ellipsoids.
var (
	WGS84         = NewEllipsoidFlattening("WGS84", 6378137.0, 298.257223563)
	GRS80         = NewEllipsoidFlattening("GRS80", 6378137.0, 298.257222101)
	Clarke1866    = Ellipsoid{Name: "Clarke1866", SemiMajor: 6378206.4, SemiMinor: 6356583.8}
	International = NewEllipsoidFlattening("International1924", 6378388.0, 297.0)
	Bessel1841    = NewEllipsoidFlattening("Bessel1841", 6377397.155, 299.1528128)
	Airy1830      = Ellipsoid{Name: "Airy1830", SemiMajor: 6377563.396, SemiMinor: 6356256.909}
	Sphere        = Ellipsoid{Name: "Sphere", SemiMajor: 6371000.0, SemiMinor: 6371000.0}
)

var ellipsoids = map[string]Ellipsoid{
	"wgs84":             WGS84,
	"grs80":             GRS80,
	"clarke1866":        Clarke1866,
	"clrk66":            Clarke1866,
	"international1924": International,
	"intl":              International,
	"bessel1841":        Bessel1841,
	"bessel":            Bessel1841,
	"airy1830":          Airy1830,
	"airy":              Airy1830,
	"sphere":            Sphere,
}

// LookupEllipsoid finds a well known ellipsoid by name, ignoring case.
func LookupEllipsoid(name string) (Ellipsoid, error) {
	e, ok := ellipsoids[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Ellipsoid{}, errors.Wrapf(ErrIllegalArgument, "unknown ellipsoid %q", name)
	}
	return e, nil
}
