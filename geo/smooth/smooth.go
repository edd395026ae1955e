// Package smooth corrects isolated spikes in derived series and produces
// display curves. Nothing here writes back into a track or its metrics.
package smooth

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// DefaultDisplayPoints is the sample count of an interpolated display curve.
const DefaultDisplayPoints = 500

// akimaMinPoints is the fewest knots fitted with a spline; shorter series are joined linearly.
const akimaMinPoints = 5

var (
	ErrTooFewPoints   = errors.New("interpolation needs at least two points")
	ErrNotIncreasing  = errors.New("x values must be strictly increasing")
	ErrLengthMismatch = errors.New("x and y lengths differ")
)

// Dampen returns a copy of y with strict local maxima pulled toward their neighbors.
// A peak more than twice both neighbors is replaced with the neighbors' mean;
// any other peak becomes a 2:1:1 weighted blend of itself and its neighbors.
// Neighbor values are always read from y, so one correction never feeds the next.
// The first and last values are never changed.
func Dampen(y []float64) []float64 {
	out := make([]float64, len(y))
	copy(out, y)
	for i := 1; i < len(y)-1; i++ {
		prev, cur, next := y[i-1], y[i], y[i+1]
		if !(prev < cur && cur > next) {
			continue
		}
		if cur > 2*prev && cur > 2*next {
			out[i] = (prev + next) / 2
			continue
		}
		out[i] = 0.5*cur + 0.25*prev + 0.25*next
	}
	return out
}

type predictor interface {
	Predict(x float64) float64
}

// Interpolate fits a curve through (x, y) and samples it n times at even spacing
// over [x[0], x[len(x)-1]]. Five or more knots get an Akima spline, fewer are
// joined piecewise linearly.
func Interpolate(x, y []float64, n int) (xs, ys []float64, err error) {
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(x), len(y))
	}
	if len(x) < 2 {
		return nil, nil, ErrTooFewPoints
	}
	for i := 1; i < len(x); i++ {
		if x[i] <= x[i-1] {
			return nil, nil, fmt.Errorf("%w: x[%d]=%v after %v", ErrNotIncreasing, i, x[i], x[i-1])
		}
	}
	if n < 2 {
		n = 2
	}

	var p predictor
	if len(x) >= akimaMinPoints {
		as := &interp.AkimaSpline{}
		if err := as.Fit(x, y); err != nil {
			return nil, nil, err
		}
		p = as
	} else {
		pl := &interp.PiecewiseLinear{}
		if err := pl.Fit(x, y); err != nil {
			return nil, nil, err
		}
		p = pl
	}

	xs = floats.Span(make([]float64, n), x[0], x[len(x)-1])
	ys = make([]float64, n)
	for i, v := range xs {
		ys[i] = p.Predict(v)
	}
	return xs, ys, nil
}

// ScaleTo rescales series onto the range of ref for overlaying two series on one axis.
// Negative series are first shifted up to start at zero, then the series is divided
// by its max and multiplied by the max of ref.
// A series with no positive maximum is returned as zeros.
func ScaleTo(series, ref []float64) []float64 {
	out := make([]float64, len(series))
	if len(series) == 0 || len(ref) == 0 {
		return out
	}
	copy(out, series)
	if lo := floats.Min(out); lo < 0 {
		floats.AddConst(-lo, out)
	}
	hi := floats.Max(out)
	if hi <= 0 {
		return make([]float64, len(series))
	}
	floats.Scale(floats.Max(ref)/hi, out)
	return out
}
