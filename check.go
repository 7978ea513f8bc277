package mapproj

import (
	"math"

	"github.com/pkg/errors"
)

// Round trip tolerances in metres. Conditioning degrades close to the poles
// and the antimeridian, where the wider one applies.
const (
	roundTripTolerance     = 1.0
	roundTripWideTolerance = 5.0
)

func roundTripToleranceAt(lon, lat float64) float64 {
	if math.Abs(lon) > 179 || math.Abs(lat) > 89 {
		return roundTripWideTolerance
	}
	return roundTripTolerance
}

// CheckForward projects (lon, lat), maps the result back and reports
// ErrRoundTrip when the recovered point is too far from the original.
// Errors raised by the transforms themselves are returned unchanged.
func (p *Projection) CheckForward(lon, lat float64) error {
	x, y, err := p.forward(lon, lat)
	if err != nil {
		return err
	}
	return p.checkForward(lon, lat, x, y)
}

// CheckInverse is the converse of CheckForward for a projected point.
func (p *Projection) CheckInverse(x, y float64) error {
	lon, lat, err := p.inverseDegrees(x, y)
	if err != nil {
		return err
	}
	return p.checkInverse(x, y, lon, lat)
}

func (p *Projection) checkForward(lon, lat, x, y float64) error {
	lon2, lat2, err := p.inverseDegrees(x, y)
	if err != nil {
		return err
	}
	d := p.geographicDistance(lon, lat, lon2, lat2)
	if tol := roundTripToleranceAt(lon, lat); !(d <= tol) {
		return errors.Wrapf(ErrRoundTrip, "(%g, %g) came back as (%g, %g), %g m apart", lon, lat, lon2, lat2, d)
	}
	return nil
}

func (p *Projection) checkInverse(x, y, lon, lat float64) error {
	x2, y2, err := p.forward(lon, lat)
	if err != nil {
		return err
	}
	d := math.Hypot(x2-x, y2-y)
	if tol := roundTripToleranceAt(lon, lat); !(d <= tol) {
		return errors.Wrapf(ErrRoundTrip, "(%g, %g) came back as (%g, %g), %g m apart", x, y, x2, y2, d)
	}
	return nil
}

func (p *Projection) logCheck(err error, direction string, a, b float64) {
	if err == nil {
		return
	}
	p.selfCheck.Warn("projection self check failed",
		"projection", p.provider.classification,
		"direction", direction,
		"x", a,
		"y", b,
		"error", err)
}
