// Package rest tells active time from resting time in a recording.
//
// GPS recorders that auto-pause simply stop writing points, so a pause shows up
// as one long gap between consecutive samples. Any gap longer than the threshold
// is counted, whole, as rest.
package rest

import (
	"time"

	"github.com/rotblauer/catpace/types/geopoint"
)

// Result is in seconds. Active = Total - Rest.
type Result struct {
	Total  float64 `json:"total"`
	Active float64 `json:"active"`
	Rest   float64 `json:"rest"`
}

// Gap is a resting interval between points Index-1 and Index.
type Gap struct {
	Index int     `json:"index"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func (g Gap) Duration() time.Duration {
	return time.Duration((g.End - g.Start) * float64(time.Second))
}

// ActiveTime classifies every inter-sample gap of path. Timestamps are seconds;
// a gap strictly greater than threshold is rest.
// Paths of fewer than two points return a zero Result.
func ActiveTime(path geopoint.Path, threshold time.Duration) Result {
	r := Result{}
	limit := threshold.Seconds()
	for i := 1; i < len(path); i++ {
		dt := path[i].Time - path[i-1].Time
		r.Total += dt
		if dt > limit {
			r.Rest += dt
		}
	}
	r.Active = r.Total - r.Rest
	return r
}

// Gaps returns the resting intervals that ActiveTime counts, in order.
func Gaps(path geopoint.Path, threshold time.Duration) []Gap {
	var gaps []Gap
	limit := threshold.Seconds()
	for i := 1; i < len(path); i++ {
		if path[i].Time-path[i-1].Time > limit {
			gaps = append(gaps, Gap{Index: i, Start: path[i-1].Time, End: path[i].Time})
		}
	}
	return gaps
}
