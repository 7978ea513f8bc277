package mapproj

import (
	"fmt"
	"hash/fnv"
	"log/slog"
	"math"
	"reflect"
	"sync"

	"github.com/golang/geo/s2"
	"github.com/pkg/errors"
)

// Point is a pair of ordinates. For geographic coordinates X is the
// longitude and Y the latitude, in degrees; for projected coordinates X is
// the easting and Y the northing, in metres.
type Point struct {
	X, Y float64
}

// MapCoords is a projected coordinate.
type MapCoords struct {
	Easting  float64
	Northing float64
}

// MathTransform is a two dimensional coordinate operation.
type MathTransform interface {
	// Transform transforms src. When dst is non-nil the result is written
	// into it and dst is returned, otherwise a new point is allocated.
	Transform(src Point, dst *Point) (*Point, error)
	// TransformArray transforms numPts interleaved (x,y) pairs.
	TransformArray(src []float64, srcOff int, dst []float64, dstOff int, numPts int) error
	// InverseTransform returns the reverse operation.
	InverseTransform() MathTransform
}

// projector is the normalized transform of one projection family. Angles
// are in radians, longitudes relative to the central meridian, and planar
// ordinates in units of the semi-major axis times the scale factor.
// Implementations are comparable value types holding only their derived
// constants.
type projector interface {
	forward(lam, phi float64) (x, y float64, err error)
	inverse(x, y float64) (lam, phi float64, err error)
}

// base holds the parameters shared by every projection, angles in radians.
type base struct {
	semiMajor        float64
	semiMinor        float64
	es               float64
	e                float64
	centralMeridian  float64
	latitudeOfOrigin float64
	scaleFactor      float64
	falseEasting     float64
	falseNorthing    float64
}

func readBase(r *paramReader) (base, error) {
	var b base
	b.semiMajor = r.get(SemiMajor)
	b.semiMinor = r.get(SemiMinor)
	b.centralMeridian = r.radians(CentralMeridian)
	b.latitudeOfOrigin = r.radians(LatitudeOfOrigin)
	b.scaleFactor = r.get(ScaleFactor)
	b.falseEasting = r.get(FalseEasting)
	b.falseNorthing = r.get(FalseNorthing)
	if r.err != nil {
		return b, r.err
	}
	ell := Ellipsoid{SemiMajor: b.semiMajor, SemiMinor: b.semiMinor}
	if err := ell.validate(); err != nil {
		return b, err
	}
	b.es = ell.Es()
	b.e = math.Sqrt(b.es)
	return b, nil
}

func (b *base) spherical() bool {
	return b.es == 0
}

// Projection is a map projection ready to transform points. It is immutable
// and safe for concurrent use.
type Projection struct {
	base
	provider    *provider
	params      *Parameters
	effective   map[string]float64
	globalScale float64
	core        projector
	selfCheck   *slog.Logger

	inverseOnce sync.Once
	inverse     *inverseProjection
}

func newProjection(prov *provider, r *paramReader, b base, core projector, o options) *Projection {
	return &Projection{
		base:        b,
		provider:    prov,
		params:      r.p,
		effective:   r.used,
		globalScale: b.semiMajor * b.scaleFactor,
		core:        core,
		selfCheck:   o.selfCheck,
	}
}

// Classification returns the classification name the projection was
// created from.
func (p *Projection) Classification() string {
	return p.provider.classification
}

// Parameters returns the parameter set the projection was created from.
func (p *Projection) Parameters() *Parameters {
	return p.params
}

// Ellipsoid returns the earth model of the projection.
func (p *Projection) Ellipsoid() Ellipsoid {
	return Ellipsoid{SemiMajor: p.semiMajor, SemiMinor: p.semiMinor}
}

// ScaleFactor returns the effective scale factor at the natural origin.
func (p *Projection) ScaleFactor() float64 {
	return p.scaleFactor
}

const envelopeTolerance = 1e-6

func checkGeographic(lon, lat float64) error {
	if lon < -180-envelopeTolerance || lon > 180+envelopeTolerance {
		return errors.Wrapf(ErrPointOutsideEnvelope, "longitude %g out of range", lon)
	}
	if lat < -90-envelopeTolerance || lat > 90+envelopeTolerance {
		return errors.Wrapf(ErrPointOutsideEnvelope, "latitude %g out of range", lat)
	}
	return nil
}

// Forward projects the geographic point (lon, lat), in degrees, to an
// easting and northing in metres.
func (p *Projection) Forward(lon, lat float64) (x, y float64, err error) {
	x, y, err = p.forward(lon, lat)
	if err == nil && p.selfCheck != nil {
		p.logCheck(p.checkForward(lon, lat, x, y), "forward", lon, lat)
	}
	return x, y, err
}

// Inverse maps the easting and northing (x, y), in metres, back to a
// longitude and latitude in degrees.
func (p *Projection) Inverse(x, y float64) (lon, lat float64, err error) {
	lon, lat, err = p.inverseDegrees(x, y)
	if err == nil && p.selfCheck != nil {
		p.logCheck(p.checkInverse(x, y, lon, lat), "inverse", x, y)
	}
	return lon, lat, err
}

func (p *Projection) forward(lon, lat float64) (x, y float64, err error) {
	if err := checkGeographic(lon, lat); err != nil {
		return math.NaN(), math.NaN(), err
	}
	lam := lon*deg2Rad - p.centralMeridian
	if p.centralMeridian != 0 {
		lam = ensureInRange(lam)
	}
	x, y, err = p.core.forward(lam, lat*deg2Rad)
	if err != nil {
		return math.NaN(), math.NaN(), errors.WithMessagef(err, "projecting (%g, %g)", lon, lat)
	}
	return p.globalScale*x + p.falseEasting, p.globalScale*y + p.falseNorthing, nil
}

func (p *Projection) inverseDegrees(x, y float64) (lon, lat float64, err error) {
	lam, phi, err := p.core.inverse(
		(x-p.falseEasting)/p.globalScale,
		(y-p.falseNorthing)/p.globalScale)
	if err != nil {
		return math.NaN(), math.NaN(), errors.WithMessagef(err, "inverting (%g, %g)", x, y)
	}
	lam += p.centralMeridian
	if p.centralMeridian != 0 {
		lam = ensureInRange(lam)
	}
	lon, lat = lam*rad2Deg, phi*rad2Deg
	if err := checkGeographic(lon, lat); err != nil {
		return math.NaN(), math.NaN(), err
	}
	return lon, lat, nil
}

// Transform projects src, a geographic point in degrees.
func (p *Projection) Transform(src Point, dst *Point) (*Point, error) {
	x, y, err := p.Forward(src.X, src.Y)
	if dst == nil {
		dst = &Point{}
	}
	dst.X, dst.Y = x, y
	return dst, err
}

// ConvertFromGeodetic projects a geodetic coordinate.
func (p *Projection) ConvertFromGeodetic(geodeticCoordinates s2.LatLng) (MapCoords, error) {
	x, y, err := p.Forward(geodeticCoordinates.Lng.Degrees(), geodeticCoordinates.Lat.Degrees())
	if err != nil {
		return MapCoords{}, err
	}
	return MapCoords{Easting: x, Northing: y}, nil
}

// ConvertToGeodetic maps projected coordinates back to a geodetic
// coordinate.
func (p *Projection) ConvertToGeodetic(mapProjectionCoordinates MapCoords) (s2.LatLng, error) {
	lon, lat, err := p.Inverse(mapProjectionCoordinates.Easting, mapProjectionCoordinates.Northing)
	if err != nil {
		return s2.LatLng{}, err
	}
	return s2.LatLngFromDegrees(lat, lon), nil
}

// InverseTransform returns the inverse transform, mapping projected
// coordinates to geographic ones. The same value is returned on every call.
func (p *Projection) InverseTransform() MathTransform {
	p.inverseOnce.Do(func() {
		p.inverse = &inverseProjection{p: p}
	})
	return p.inverse
}

// inverseProjection is the MathTransform view of Projection.Inverse.
type inverseProjection struct {
	p *Projection
}

func (ip *inverseProjection) Transform(src Point, dst *Point) (*Point, error) {
	lon, lat, err := ip.p.Inverse(src.X, src.Y)
	if dst == nil {
		dst = &Point{}
	}
	dst.X, dst.Y = lon, lat
	return dst, err
}

func (ip *inverseProjection) TransformArray(src []float64, srcOff int, dst []float64, dstOff int, numPts int) error {
	return transformArray(ip.p.inverseDegrees, src, srcOff, dst, dstOff, numPts)
}

func (ip *inverseProjection) InverseTransform() MathTransform {
	return ip.p
}

// Equal reports whether p and o are the same projection: the same
// classification with identical derived constants.
func (p *Projection) Equal(o *Projection) bool {
	if p == o {
		return true
	}
	if p == nil || o == nil {
		return false
	}
	return p.provider.classification == o.provider.classification &&
		p.base == o.base &&
		p.core == o.core
}

// Hash returns a hash code consistent with Equal.
func (p *Projection) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprint(h, p.provider.classification)
	hashValue(h, reflect.ValueOf(p.base))
	fmt.Fprintf(h, "%T", p.core)
	hashValue(h, reflect.ValueOf(p.core))
	return h.Sum64()
}

func hashValue(h interface{ Write([]byte) (int, error) }, v reflect.Value) {
	var buf [8]byte
	switch v.Kind() {
	case reflect.Interface, reflect.Ptr:
		if !v.IsNil() {
			hashValue(h, v.Elem())
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			hashValue(h, v.Field(i))
		}
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			hashValue(h, v.Index(i))
		}
	case reflect.Float64:
		bits := math.Float64bits(v.Float() + 0) // fold -0 into +0
		for i := range buf {
			buf[i] = byte(bits >> (8 * i))
		}
		h.Write(buf[:])
	case reflect.Bool:
		if v.Bool() {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		bits := uint64(v.Int())
		for i := range buf {
			buf[i] = byte(bits >> (8 * i))
		}
		h.Write(buf[:])
	}
}

// String returns the English name of the projection.
func (p *Projection) String() string {
	return p.provider.names.english()
}

// geographicDistance returns the distance in metres between two geographic
// points on the sphere of radius semi-major.
func (p *Projection) geographicDistance(lon1, lat1, lon2, lat2 float64) float64 {
	a := s2.LatLngFromDegrees(lat1, lon1)
	b := s2.LatLngFromDegrees(lat2, lon2)
	return float64(a.Distance(b)) * p.semiMajor
}
