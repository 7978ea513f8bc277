package mapproj

import (
	"math"
	"sort"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// Parameter names understood by the projections.
const (
	SemiMajor          = "semi_major"
	SemiMinor          = "semi_minor"
	CentralMeridian    = "central_meridian"
	LatitudeOfOrigin   = "latitude_of_origin"
	ScaleFactor        = "scale_factor"
	FalseEasting       = "false_easting"
	FalseNorthing      = "false_northing"
	StandardParallel1  = "standard_parallel_1"
	StandardParallel2  = "standard_parallel_2"
	LatitudeTrueScale  = "latitude_true_scale"
	standardParallel1b = "standard_parallel1"
)

type paramDescriptor struct {
	def      float64 // NaN when the parameter is mandatory
	min, max float64
	minOpen  bool
}

var (
	lengthRange    = paramDescriptor{def: math.NaN(), min: 0, max: math.Inf(1), minOpen: true}
	latitudeRange  = paramDescriptor{min: -90, max: 90}
	longitudeRange = paramDescriptor{min: -180, max: 180}
	offsetRange    = paramDescriptor{min: math.Inf(-1), max: math.Inf(1)}
)

var descriptors = map[string]paramDescriptor{
	SemiMajor:         lengthRange,
	SemiMinor:         lengthRange,
	CentralMeridian:   longitudeRange,
	LatitudeOfOrigin:  latitudeRange,
	ScaleFactor:       {def: 1, min: 0, max: math.Inf(1), minOpen: true},
	FalseEasting:      offsetRange,
	FalseNorthing:     offsetRange,
	StandardParallel1: latitudeRange,
	StandardParallel2: latitudeRange,
	LatitudeTrueScale: latitudeRange,
}

var aliases = map[string]string{
	standardParallel1b: StandardParallel1,
}

func canonicalName(name string) string {
	if c, ok := aliases[name]; ok {
		return c
	}
	return name
}

// Parameters is an immutable set of named projection parameters. Angles are
// expressed in decimal degrees and lengths in metres.
type Parameters struct {
	values map[string]float64
}

// NewParameters validates the given values against the known parameter
// names and ranges and returns an immutable copy. A name and its alias may
// both be given only when they carry the same value.
func NewParameters(values map[string]float64) (*Parameters, error) {
	p := &Parameters{values: make(map[string]float64, len(values))}
	for name, v := range values {
		if c := canonicalName(name); c != name {
			if other, ok := values[c]; ok && other != v {
				return nil, errors.Wrapf(ErrIllegalArgument, "parameter %q is %g but its alias %q is %g", c, other, name, v)
			}
		}
		if err := p.set(name, v); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// ParametersFromMap decodes loosely typed values, as found in configuration
// files, into a parameter set. Numeric strings are accepted.
func ParametersFromMap(raw map[string]interface{}) (*Parameters, error) {
	values := make(map[string]float64, len(raw))
	for name, v := range raw {
		var f float64
		if err := mapstructure.WeakDecode(v, &f); err != nil {
			return nil, errors.Wrapf(ErrIllegalArgument, "decoding parameter %q: %s", name, err)
		}
		values[name] = f
	}
	return NewParameters(values)
}

// EllipsoidParameters returns the semi-major and semi-minor axes of e as a
// parameter set.
func EllipsoidParameters(e Ellipsoid) *Parameters {
	return &Parameters{values: map[string]float64{
		SemiMajor: e.SemiMajor,
		SemiMinor: e.SemiMinor,
	}}
}

func (p *Parameters) set(name string, v float64) error {
	name = canonicalName(name)
	d, ok := descriptors[name]
	if !ok {
		return errors.Wrapf(ErrIllegalArgument, "unknown parameter %q", name)
	}
	if math.IsNaN(v) {
		return errors.Wrapf(ErrIllegalArgument, "parameter %q is NaN", name)
	}
	if v < d.min || v > d.max || (d.minOpen && v == d.min) {
		return errors.Wrapf(ErrIllegalArgument, "parameter %q value %g outside [%g, %g]", name, v, d.min, d.max)
	}
	p.values[name] = v
	return nil
}

// With returns a copy of p with name set to v.
func (p *Parameters) With(name string, v float64) (*Parameters, error) {
	c := p.clone()
	if err := c.set(name, v); err != nil {
		return nil, err
	}
	return c, nil
}

// WithEllipsoid returns a copy of p using the axes of e.
func (p *Parameters) WithEllipsoid(e Ellipsoid) *Parameters {
	c := p.clone()
	c.values[SemiMajor] = e.SemiMajor
	c.values[SemiMinor] = e.SemiMinor
	return c
}

func (p *Parameters) clone() *Parameters {
	c := &Parameters{values: make(map[string]float64, len(p.values)+2)}
	for k, v := range p.values {
		c.values[k] = v
	}
	return c
}

// Value returns the explicitly set value of name.
func (p *Parameters) Value(name string) (float64, bool) {
	if p == nil {
		return 0, false
	}
	v, ok := p.values[canonicalName(name)]
	return v, ok
}

// Get returns the value of name, falling back to the documented default.
// Mandatory parameters without a value yield ErrMissingParameter.
func (p *Parameters) Get(name string) (float64, error) {
	name = canonicalName(name)
	if v, ok := p.Value(name); ok {
		return v, nil
	}
	d, ok := descriptors[name]
	if !ok {
		return 0, errors.Wrapf(ErrIllegalArgument, "unknown parameter %q", name)
	}
	if math.IsNaN(d.def) {
		return 0, missingParameter(name)
	}
	return d.def, nil
}

// Names returns the explicitly set parameter names in sorted order.
func (p *Parameters) Names() []string {
	names := make([]string, 0, len(p.values))
	for k := range p.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Ellipsoid returns the earth model described by the semi-major and
// semi-minor axes.
func (p *Parameters) Ellipsoid() (Ellipsoid, error) {
	a, err := p.Get(SemiMajor)
	if err != nil {
		return Ellipsoid{}, err
	}
	b, err := p.Get(SemiMinor)
	if err != nil {
		return Ellipsoid{}, err
	}
	e := Ellipsoid{SemiMajor: a, SemiMinor: b}
	return e, e.validate()
}

// paramReader accumulates the first lookup error so that a constructor can
// read several values before checking.
type paramReader struct {
	p    *Parameters
	err  error
	used map[string]float64
}

func newParamReader(p *Parameters) *paramReader {
	return &paramReader{p: p, used: make(map[string]float64)}
}

func (r *paramReader) record(name string, v float64) float64 {
	r.used[canonicalName(name)] = v
	return v
}

func (r *paramReader) get(name string) float64 {
	v, err := r.p.Get(name)
	if err != nil {
		if r.err == nil {
			r.err = err
		}
		return v
	}
	return r.record(name, v)
}

// radians reads an angular parameter and converts it to radians.
func (r *paramReader) radians(name string) float64 {
	return r.get(name) * deg2Rad
}

// getOr returns the value of name, or def when the parameter is not set.
func (r *paramReader) getOr(name string, def float64) float64 {
	if v, ok := r.p.Value(name); ok {
		return r.record(name, v)
	}
	return r.record(name, def)
}

// require returns the explicitly set value of name, ignoring its default.
func (r *paramReader) require(name string) float64 {
	v, ok := r.p.Value(name)
	if !ok {
		if r.err == nil {
			r.err = missingParameter(canonicalName(name))
		}
		return v
	}
	return r.record(name, v)
}
