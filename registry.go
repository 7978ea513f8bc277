package mapproj

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Option configures a projection at construction.
type Option func(*options)

type options struct {
	selfCheck     *slog.Logger
	seriesInverse bool
}

// WithSelfCheck makes every single point transform verify itself by
// transforming the result back, logging a warning through logger when the
// round trip misses by more than one metre (five near the poles and the
// antimeridian). Results are never altered. Meant for debugging.
func WithSelfCheck(logger *slog.Logger) Option {
	return func(o *options) {
		o.selfCheck = logger
	}
}

// WithSeriesInverse selects the truncated trigonometric series instead of
// direct iteration for the inverse of the ellipsoidal polar stereographic
// projection. The series is slightly faster and slightly less accurate.
func WithSeriesInverse() Option {
	return func(o *options) {
		o.seriesInverse = true
	}
}

type buildFunc func(b *base, r *paramReader, o options) (projector, error)

type provider struct {
	classification string
	aliases        []string
	names          localizedNames
	params         []string
	build          buildFunc
}

var commonParams = []string{SemiMajor, SemiMinor, CentralMeridian, LatitudeOfOrigin, ScaleFactor, FalseEasting, FalseNorthing}

func withParams(extra ...string) []string {
	return append(append([]string(nil), commonParams...), extra...)
}

func without(params []string, drop ...string) []string {
	var out []string
next:
	for _, p := range params {
		for _, d := range drop {
			if p == d {
				continue next
			}
		}
		out = append(out, p)
	}
	return out
}

func defaultProviders() []*provider {
	return []*provider{
		{
			classification: "Mercator_1SP",
			aliases:        []string{"Mercator", "merc"},
			names:          namesMercator,
			params:         commonParams,
			build:          buildMercator1SP,
		},
		{
			classification: "Mercator_2SP",
			names:          namesMercator,
			params:         without(withParams(StandardParallel1), ScaleFactor),
			build:          buildMercator2SP,
		},
		{
			classification: "Transverse_Mercator",
			aliases:        []string{"tmerc", "Gauss_Kruger"},
			names:          namesTransverseMercator,
			params:         commonParams,
			build:          buildTransverseMercator,
		},
		{
			classification: "Transverse_Mercator_Extended",
			aliases:        []string{"etmerc"},
			names:          namesExtendedTransverseMercator,
			params:         commonParams,
			build:          buildExtendedTransverseMercator,
		},
		{
			classification: "Lambert_Conformal_Conic_1SP",
			names:          namesLambert,
			params:         commonParams,
			build:          buildLambert1SP,
		},
		{
			classification: "Lambert_Conformal_Conic_2SP",
			aliases:        []string{"Lambert_Conformal_Conic", "lcc"},
			names:          namesLambert,
			params:         withParams(StandardParallel1, StandardParallel2),
			build:          buildLambert2SP,
		},
		{
			classification: "Lambert_Conformal_Conic_2SP_Belgium",
			names:          namesLambert,
			params:         withParams(StandardParallel1, StandardParallel2),
			build:          buildLambert2SPBelgium,
		},
		{
			classification: "Albers_Conic_Equal_Area",
			aliases:        []string{"Albers", "aea"},
			names:          namesAlbers,
			params:         withParams(StandardParallel1, StandardParallel2),
			build:          buildAlbers,
		},
		{
			classification: "Stereographic",
			aliases:        []string{"stere"},
			names:          namesStereographic,
			params:         commonParams,
			build:          buildStereographic,
		},
		{
			classification: "Polar_Stereographic",
			names:          namesPolarStereographic,
			params:         withParams(LatitudeTrueScale),
			build:          buildPolarStereographic,
		},
		{
			classification: "Oblique_Stereographic",
			aliases:        []string{"sterea"},
			names:          namesObliqueStereographic,
			params:         commonParams,
			build:          buildObliqueStereographicEPSG,
		},
		{
			classification: "Orthographic",
			aliases:        []string{"ortho"},
			names:          namesOrthographic,
			params:         commonParams,
			build:          buildOrthographic,
		},
	}
}

// Registry maps classification names to projection implementations. A
// Registry is immutable once built and safe for concurrent use.
type Registry struct {
	providers map[string]*provider
	names     []string
}

// NewRegistry builds a registry holding every projection of this package.
func NewRegistry() *Registry {
	r := &Registry{providers: make(map[string]*provider)}
	for _, p := range defaultProviders() {
		r.names = append(r.names, p.classification)
		r.providers[strings.ToLower(p.classification)] = p
		for _, alias := range p.aliases {
			r.providers[strings.ToLower(alias)] = p
		}
	}
	sort.Strings(r.names)
	return r
}

// DefaultRegistry is the registry used by Create.
var DefaultRegistry = NewRegistry()

// Create builds a projection from DefaultRegistry.
func Create(classification string, params *Parameters, opts ...Option) (*Projection, error) {
	return DefaultRegistry.Create(classification, params, opts...)
}

// Classifications returns the canonical classification names, sorted.
func (r *Registry) Classifications() []string {
	return append([]string(nil), r.names...)
}

// ParameterNames returns the names of the parameters meaningful to the
// given classification.
func (r *Registry) ParameterNames(classification string) ([]string, error) {
	prov, err := r.lookup(classification)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), prov.params...), nil
}

func (r *Registry) lookup(classification string) (*provider, error) {
	prov, ok := r.providers[strings.ToLower(strings.TrimSpace(classification))]
	if !ok {
		return nil, errors.Wrapf(ErrIllegalArgument, "unknown classification %q", classification)
	}
	return prov, nil
}

// Create builds the projection named by classification from params. The
// spherical or ellipsoidal formulas, and for azimuthal projections the
// polar, oblique or equatorial case, are chosen from the parameters.
func (r *Registry) Create(classification string, params *Parameters, opts ...Option) (*Projection, error) {
	prov, err := r.lookup(classification)
	if err != nil {
		return nil, err
	}
	if params == nil {
		return nil, missingParameter(SemiMajor)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	pr := newParamReader(params)
	b, err := readBase(pr)
	if err != nil {
		return nil, errors.WithMessage(err, prov.classification)
	}
	core, err := prov.build(&b, pr, o)
	if err == nil {
		err = pr.err
	}
	if err != nil {
		return nil, errors.WithMessage(err, prov.classification)
	}
	return newProjection(prov, pr, b, core, o), nil
}
