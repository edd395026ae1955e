package geopoint

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
)

var ErrUnordered = errors.New("points out of temporal order")

// Path is one recorded track: insertion order is temporal order is traversal order.
type Path []GeoPoint

// Validate checks every coordinate and that timestamps never decrease.
// Equal timestamps are allowed; they make zero-length time deltas.
func (p Path) Validate() error {
	for i, pt := range p {
		if err := pt.Validate(); err != nil {
			return fmt.Errorf("point %d: %w", i, err)
		}
		if i > 0 && pt.Time < p[i-1].Time {
			return fmt.Errorf("%w: point %d at %v precedes point %d at %v",
				ErrUnordered, i, pt.Time, i-1, p[i-1].Time)
		}
	}
	return nil
}

// Clone returns a copy that shares nothing with p.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Elapsed is the wall-clock span in seconds between the first and last points.
func (p Path) Elapsed() float64 {
	if len(p) < 2 {
		return 0
	}
	return p[len(p)-1].Time - p[0].Time
}

// Distance is the cumulative distance of the last point.
// It is only meaningful for a path returned by pathmetrics.Walk.
func (p Path) Distance() float64 {
	if len(p) == 0 {
		return 0
	}
	return p[len(p)-1].CumulativeDistance
}

func (p Path) LineString() orb.LineString {
	ls := make(orb.LineString, 0, len(p))
	for _, pt := range p {
		ls = append(ls, pt.Point())
	}
	return ls
}

func (p Path) Points() []orb.Point {
	return []orb.Point(p.LineString())
}
