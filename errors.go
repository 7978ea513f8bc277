package mapproj

import (
	"fmt"

	"github.com/pkg/errors"
)

// Construction errors. These are fatal to building a projection.
var (
	ErrMissingParameter     = errors.New("missing parameter")
	ErrIllegalArgument      = errors.New("illegal argument")
	ErrAntipodalLatitudes   = errors.Wrap(ErrIllegalArgument, "standard parallels are antipodal")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrIllegalState         = errors.New("illegal state")
)

// Per-point errors. A failure of this kind only concerns the point being
// transformed; the projection stays usable.
var (
	ErrPointOutsideEnvelope   = errors.New("point outside envelope")
	ErrPointOutsideHemisphere = errors.New("point outside hemisphere")
	ErrPoleProjection         = errors.New("pole cannot be projected")
	ErrInfinity               = errors.New("value tends toward infinity")
	ErrToleranceCondition     = errors.New("tolerance condition error")
	ErrNoConvergence          = errors.New("no convergence")
)

// ErrRoundTrip is reported by the self-consistency checks when a
// transformed point does not map back onto its source.
var ErrRoundTrip = errors.New("round trip mismatch")

var pointErrors = []error{
	ErrPointOutsideEnvelope,
	ErrPointOutsideHemisphere,
	ErrPoleProjection,
	ErrInfinity,
	ErrToleranceCondition,
	ErrNoConvergence,
}

// IsPointError reports whether err is a recoverable failure to transform a
// single point, as opposed to a construction failure.
func IsPointError(err error) bool {
	for _, target := range pointErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// BatchError is returned by the array transforms when at least one point
// could not be transformed. The output ordinates of every failed point are
// NaN; Index and Err describe the first failure.
type BatchError struct {
	Index  int
	Failed int
	Total  int
	Err    error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%d of %d points failed, first at index %d: %s",
		e.Failed, e.Total, e.Index, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

func missingParameter(name string) error {
	return errors.Wrapf(ErrMissingParameter, "%q", name)
}
