package mapproj

import (
	"math"
	"sync"
	"unsafe"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type pointFunc func(a, b float64) (float64, float64, error)

// TransformArray projects numPts interleaved (lon, lat) pairs of src,
// starting at srcOff, into dst starting at dstOff. src and dst may be the
// same slice and may overlap. Every point is transformed even when some
// fail: the failed points are written as NaN and a single *BatchError is
// returned once the whole array has been processed.
func (p *Projection) TransformArray(src []float64, srcOff int, dst []float64, dstOff int, numPts int) error {
	return transformArray(p.forward, src, srcOff, dst, dstOff, numPts)
}

func transformArray(fn pointFunc, src []float64, srcOff int, dst []float64, dstOff int, numPts int) error {
	if numPts <= 0 {
		return nil
	}
	if srcOff < 0 || dstOff < 0 || srcOff+2*numPts > len(src) || dstOff+2*numPts > len(dst) {
		return errors.Wrapf(ErrIllegalArgument, "%d points do not fit src[%d:] (len %d) or dst[%d:] (len %d)",
			numPts, srcOff, len(src), dstOff, len(dst))
	}

	step := 2
	if startsAfter(&dst[dstOff], &src[srcOff]) {
		// Walk backward so that no source pair is overwritten before it
		// is read.
		srcOff += 2 * (numPts - 1)
		dstOff += 2 * (numPts - 1)
		step = -2
	}

	var batchErr *BatchError
	for i := 0; i < numPts; i++ {
		x, y, err := fn(src[srcOff], src[srcOff+1])
		if err != nil {
			x, y = math.NaN(), math.NaN()
			index := i
			if step < 0 {
				index = numPts - 1 - i
			}
			if batchErr == nil {
				batchErr = &BatchError{Index: index, Total: numPts, Err: err}
			} else if step < 0 {
				batchErr.Index, batchErr.Err = index, err
			}
			batchErr.Failed++
		}
		dst[dstOff], dst[dstOff+1] = x, y
		srcOff += step
		dstOff += step
	}
	if batchErr != nil {
		return batchErr
	}
	return nil
}

// startsAfter reports whether a lies after b in memory. Both point into
// float64 slices that may share a backing array.
func startsAfter(a, b *float64) bool {
	return uintptr(unsafe.Pointer(a)) > uintptr(unsafe.Pointer(b))
}

// TransformParallel projects pts in place, splitting the work across up to
// workers goroutines. Failed points become NaN and a single *BatchError
// describing the lowest failing index is returned.
func (p *Projection) TransformParallel(pts []orb.Point, workers int) error {
	return transformParallel(p.forward, pts, workers)
}

// InverseParallel is the inverse of TransformParallel.
func (p *Projection) InverseParallel(pts []orb.Point, workers int) error {
	return transformParallel(p.inverseDegrees, pts, workers)
}

func transformParallel(fn pointFunc, pts []orb.Point, workers int) error {
	if len(pts) == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (len(pts) + workers - 1) / workers

	var (
		mu       sync.Mutex
		batchErr *BatchError
	)
	var g errgroup.Group
	for start := 0; start < len(pts); start += chunk {
		part := pts[start:min(start+chunk, len(pts))]
		offset := start
		g.Go(func() error {
			var first error
			firstIndex, failed := -1, 0
			for i := range part {
				x, y, err := fn(part[i][0], part[i][1])
				if err != nil {
					x, y = math.NaN(), math.NaN()
					if first == nil {
						first, firstIndex = err, offset+i
					}
					failed++
				}
				part[i] = orb.Point{x, y}
			}
			if failed == 0 {
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			if batchErr == nil {
				batchErr = &BatchError{Index: firstIndex, Total: len(pts), Err: first}
			} else if firstIndex < batchErr.Index {
				batchErr.Index, batchErr.Err = firstIndex, first
			}
			batchErr.Failed += failed
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if batchErr != nil {
		return batchErr
	}
	return nil
}
