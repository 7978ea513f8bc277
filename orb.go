package mapproj

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// OrbForward returns the forward transform as an orb.Projection taking
// (lon, lat) points in degrees. Points that cannot be projected become NaN.
func (p *Projection) OrbForward() orb.Projection {
	return orbProjection(p.forward, nil)
}

// OrbInverse returns the inverse transform as an orb.Projection.
func (p *Projection) OrbInverse() orb.Projection {
	return orbProjection(p.inverseDegrees, nil)
}

func orbProjection(fn pointFunc, firstErr *error) orb.Projection {
	return func(pt orb.Point) orb.Point {
		x, y, err := fn(pt[0], pt[1])
		if err != nil {
			if firstErr != nil && *firstErr == nil {
				*firstErr = err
			}
			return orb.Point{math.NaN(), math.NaN()}
		}
		return orb.Point{x, y}
	}
}

// ProjectGeometry returns a projected copy of g, whose coordinates are
// (lon, lat) in degrees; g itself is left untouched. Every vertex is
// projected; the error of the first vertex that failed, if any, is returned
// alongside the geometry, in which that vertex is NaN.
func (p *Projection) ProjectGeometry(g orb.Geometry) (orb.Geometry, error) {
	return projectGeometry(p.forward, g)
}

// UnprojectGeometry is the inverse of ProjectGeometry.
func (p *Projection) UnprojectGeometry(g orb.Geometry) (orb.Geometry, error) {
	return projectGeometry(p.inverseDegrees, g)
}

func projectGeometry(fn pointFunc, g orb.Geometry) (orb.Geometry, error) {
	if g == nil {
		return nil, nil
	}
	var err error
	out := project.Geometry(orb.Clone(g), orbProjection(fn, &err))
	return out, err
}
