package mapproj

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Definition describes a projection in a definitions file.
type Definition struct {
	Classification string                 `yaml:"classification"`
	Ellipsoid      string                 `yaml:"ellipsoid,omitempty"`
	Parameters     map[string]interface{} `yaml:"parameters"`
}

// Build creates the projection described by d from the registry r. A named
// ellipsoid supplies the semi_major and semi_minor parameters.
func (d Definition) Build(r *Registry, opts ...Option) (*Projection, error) {
	if d.Classification == "" {
		return nil, errors.Wrap(ErrMissingParameter, "classification")
	}
	params, err := ParametersFromMap(d.Parameters)
	if err != nil {
		return nil, err
	}
	if d.Ellipsoid != "" {
		ell, err := LookupEllipsoid(d.Ellipsoid)
		if err != nil {
			return nil, err
		}
		params = params.WithEllipsoid(ell)
	}
	return r.Create(d.Classification, params, opts...)
}

// LoadDefinitions reads a YAML document mapping names to projection
// definitions and builds every projection from DefaultRegistry:
//
//	utm32n:
//	  classification: Transverse_Mercator
//	  ellipsoid: WGS84
//	  parameters:
//	    central_meridian: 9
//	    scale_factor: 0.9996
//	    false_easting: 500000
func LoadDefinitions(r io.Reader, opts ...Option) (map[string]*Projection, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading definitions")
	}
	defs := map[string]Definition{}
	if err := yaml.Unmarshal(content, &defs); err != nil {
		return nil, errors.Wrap(err, "parsing definitions")
	}
	ret := make(map[string]*Projection, len(defs))
	for name, def := range defs {
		p, err := def.Build(DefaultRegistry, opts...)
		if err != nil {
			return nil, errors.WithMessagef(err, "definition %q", name)
		}
		ret[name] = p
	}
	return ret, nil
}

// LoadDefinitionsFile is LoadDefinitions on the content of a file.
func LoadDefinitionsFile(path string, opts ...Option) (map[string]*Projection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadDefinitions(f, opts...)
}
