// Package pathmetrics walks a Path once, measuring how far it goes
// and how much it climbs and descends.
package pathmetrics

import "github.com/rotblauer/catpace/types/geopoint"

// Metrics are path totals in meters.
type Metrics struct {
	Distance      float64 `json:"distance"`
	ElevationGain float64 `json:"elevation_gain"`
	ElevationLoss float64 `json:"elevation_loss"`
}

// Walk folds over consecutive pairs of path and returns a copy of it with
// CumulativeDistance set on every point, along with the totals.
// The first point's CumulativeDistance is 0. The input is not modified.
//
// A descent (alt(i) > alt(i+1)) is added to ElevationLoss; anything else,
// including a flat step, is added to ElevationGain. Flat steps add zero either
// way, but the branch is kept so sums accumulate in the same order as
// reports produced by older tooling.
//
// Fewer than two points yields zero Metrics.
func Walk(path geopoint.Path) (geopoint.Path, Metrics) {
	out := path.Clone()
	m := Metrics{}
	if len(out) == 0 {
		return out, m
	}
	out[0].CumulativeDistance = 0
	for i := 1; i < len(out); i++ {
		prev, next := out[i-1], out[i]
		m.Distance += geopoint.Distance(prev, next)
		out[i].CumulativeDistance = m.Distance
		if prev.Elevation > next.Elevation {
			m.ElevationLoss += prev.Elevation - next.Elevation
		} else {
			m.ElevationGain += next.Elevation - prev.Elevation
		}
	}
	return out, m
}

// Compute returns the totals of Walk without the measured path.
func Compute(path geopoint.Path) Metrics {
	_, m := Walk(path)
	return m
}

// Segment returns the distance in meters between points i-1 and i of a measured path.
func Segment(measured geopoint.Path, i int) float64 {
	if i <= 0 || i >= len(measured) {
		return 0
	}
	return measured[i].CumulativeDistance - measured[i-1].CumulativeDistance
}
