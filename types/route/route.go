// Package route summarizes a whole track: distance, climbing, elapsed and
// active time, and the pace and speed derived from them.
package route

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/rotblauer/catpace/common"
	"github.com/rotblauer/catpace/geo/pathmetrics"
	"github.com/rotblauer/catpace/geo/rest"
	"github.com/rotblauer/catpace/params"
	"github.com/rotblauer/catpace/types/activity"
	"github.com/rotblauer/catpace/types/geopoint"
)

var (
	ErrZeroDistance = errors.New("undefined pace: zero distance")
	ErrZeroDuration = errors.New("undefined speed: zero duration")
)

// Summary is computed once from a path and never changes.
// Times are seconds. Elapsed is the time pace and speed are computed over:
// the whole span of the track, or only the active part of it when rest is excluded.
type Summary struct {
	DistanceMiles float64           `json:"distance_miles"`
	ElevationGain float64           `json:"elevation_gain"`
	ElevationLost float64           `json:"elevation_lost"`
	TotalElapsed  float64           `json:"total_elapsed"`
	ActiveElapsed float64           `json:"active_elapsed"`
	Rest          float64           `json:"rest"`
	RestGaps      []rest.Gap        `json:"rest_gaps,omitempty"`
	IncludeRest   bool              `json:"include_rest"`
	Activity      activity.Activity `json:"activity"`
	PointCount    int               `json:"point_count"`
}

// Build summarizes path. Paths of fewer than two points give a zero summary.
// With config.IncludeRest unset, gaps longer than config.RestThreshold are
// counted as rest and left out of Elapsed.
func Build(path geopoint.Path, config *params.RouteConfig) Summary {
	if config == nil {
		config = params.DefaultRouteConfig()
	}
	s := Summary{
		IncludeRest: config.IncludeRest,
		PointCount:  len(path),
		Activity:    activity.Unknown,
	}
	if len(path) < 2 {
		return s
	}

	m := pathmetrics.Compute(path)
	s.DistanceMiles = m.Distance * params.MilesPerMeter
	s.ElevationGain = m.ElevationGain
	s.ElevationLost = m.ElevationLoss
	s.TotalElapsed = path.Elapsed()
	s.ActiveElapsed = s.TotalElapsed

	if !config.IncludeRest {
		r := rest.ActiveTime(path, config.RestThreshold)
		s.Rest = r.Rest
		s.ActiveElapsed = r.Active
		s.RestGaps = rest.Gaps(path, config.RestThreshold)
	}

	if s.Elapsed() > 0 {
		s.Activity = activity.InferFromSpeed(m.Distance/s.Elapsed(), 1, false)
	}
	return s
}

// Elapsed is the time pace and speed are measured over.
func (s Summary) Elapsed() float64 {
	if s.IncludeRest {
		return s.TotalElapsed
	}
	return s.ActiveElapsed
}

// Pace is elapsed time per mile, as whole minutes and the remaining whole seconds.
// Untimed routes, eg. planned ones, have no pace.
func (s Summary) Pace() (minutes, seconds int, err error) {
	if s.DistanceMiles <= 0 {
		return 0, 0, ErrZeroDistance
	}
	if s.Elapsed() <= 0 {
		return 0, 0, ErrZeroDuration
	}
	pace := s.Elapsed() / s.DistanceMiles
	return int(pace / common.SecondsPerMinute), int(math.Mod(pace, common.SecondsPerMinute)), nil
}

// PaceString formats Pace as M:SS.
func (s Summary) PaceString() (string, error) {
	m, sec, err := s.Pace()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d:%02d", m, sec), nil
}

// MPH is miles per hour of elapsed time.
func (s Summary) MPH() (float64, error) {
	if s.DistanceMiles <= 0 {
		return 0, ErrZeroDistance
	}
	if s.Elapsed() <= 0 {
		return 0, ErrZeroDuration
	}
	return s.DistanceMiles / (s.Elapsed() / common.SecondsPerHour), nil
}

// Duration formats the elapsed time as H:MM:SS, or M:SS under an hour.
func (s Summary) Duration() string {
	return FormatDuration(time.Duration(s.Elapsed() * float64(time.Second)))
}

func FormatDuration(d time.Duration) string {
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// Distance is the mileage rounded to hundredths.
func (s Summary) Distance() float64 {
	f, _ := decimal.NewFromFloat(s.DistanceMiles).Round(2).Float64()
	return f
}

// Report is a one line, human readable summary.
func (s Summary) Report() string {
	pace, err := s.PaceString()
	if err != nil {
		pace = "-:--"
	}
	return fmt.Sprintf("mileage: %s pace: %s time: %s elevation gain: %s elevation loss: %s activity: %s",
		humanize.FormatFloat("#,###.##", s.Distance()),
		pace,
		s.Duration(),
		humanize.CommafWithDigits(s.ElevationGain, 2),
		humanize.CommafWithDigits(s.ElevationLost, 2),
		s.Activity,
	)
}
