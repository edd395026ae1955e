// Package bucket resamples a track into fixed-size intervals of elapsed time
// or of distance, producing one pace and altitude value per interval.
// These are the series that get charted.
//
// Both modes walk consecutive point pairs, accumulating distance and time.
// When the accumulator of the mode's unit overshoots the interval, a bucket is
// emitted and both accumulators reset to zero; the overshoot is dropped, not
// carried into the next interval. The last, partial interval is never emitted.
package bucket

import (
	"context"
	"math"
	"time"

	"github.com/rotblauer/catpace/params"
	"github.com/rotblauer/catpace/types/geopoint"
)

// Bucket is one completed interval.
// X is Index*Interval, in seconds for time buckets and miles for distance buckets.
// Pace is minutes per mile. Altitude is meters, sampled from the point preceding
// the one that closed the interval.
// Stationary marks a time bucket that covered no distance; its Pace is 0.
type Bucket struct {
	Index      int     `json:"index"`
	X          float64 `json:"x"`
	Pace       float64 `json:"pace"`
	Altitude   float64 `json:"altitude"`
	Stationary bool    `json:"stationary,omitempty"`
}

// State accumulates points one at a time and emits buckets as intervals close.
type State struct {
	Mode     params.BucketMode
	Interval float64

	// Limit caps the number of emitted buckets. Zero means no cap.
	Limit int

	prev    *geopoint.GeoPoint
	meters  float64 // by-time accumulator
	miles   float64 // by-distance accumulator
	seconds float64
	index   int
}

func NewState(mode params.BucketMode, interval float64) *State {
	return &State{
		Mode:     mode,
		Interval: interval,
	}
}

// NewStateFor returns a State bucketing path by config, capped at the number of
// buckets path can fill. Time intervals are in seconds.
func NewStateFor(path geopoint.Path, config *params.BucketConfig) *State {
	if config == nil {
		config = params.DefaultBucketConfig()
	}
	if config.Mode == params.BucketByTime {
		s := NewState(params.BucketByTime, config.Interval)
		s.Limit = MaxBuckets(path.Elapsed(), config.Interval)
		return s
	}
	s := NewState(params.BucketByDistance, config.Interval)
	s.Limit = MaxBuckets(totalMiles(path), config.Interval)
	return s
}

func totalMiles(path geopoint.Path) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += geopoint.Distance(path[i-1], path[i]) * params.MilesPerMeter
	}
	return total
}

// Add consumes the next point of the track and returns a bucket if it closed one.
func (s *State) Add(pt geopoint.GeoPoint) (Bucket, bool) {
	defer func() {
		p := pt
		s.prev = &p
	}()
	if s.prev == nil || s.Interval <= 0 {
		return Bucket{}, false
	}
	if s.Limit > 0 && s.index >= s.Limit {
		return Bucket{}, false
	}

	d := geopoint.Distance(*s.prev, pt)
	s.seconds += pt.Time - s.prev.Time

	var b Bucket
	switch s.Mode {
	case params.BucketByTime:
		s.meters += d
		if s.seconds <= s.Interval {
			return Bucket{}, false
		}
		b = s.bucket(0)
		miles := s.meters * params.MilesPerMeter
		if miles > 0 {
			b.Pace = (s.Interval / 60) / miles
		} else {
			b.Stationary = true
		}
	case params.BucketByDistance:
		s.miles += d * params.MilesPerMeter
		if s.miles <= s.Interval {
			return Bucket{}, false
		}
		b = s.bucket((s.seconds / 60) / s.Interval)
	default:
		return Bucket{}, false
	}

	s.reset()
	return b, true
}

func (s *State) bucket(pace float64) Bucket {
	b := Bucket{
		Index:    s.index,
		X:        float64(s.index) * s.Interval,
		Pace:     pace,
		Altitude: s.prev.Elevation,
	}
	s.index++
	return b
}

func (s *State) reset() {
	s.meters, s.miles, s.seconds = 0, 0, 0
}

// Stream consumes a channel of points and emits completed buckets on a new channel,
// closed when in is drained or ctx is done. A State holds one track, so Stream
// should be called once.
// It will not flush the last, incomplete interval.
func (s *State) Stream(ctx context.Context, in <-chan geopoint.GeoPoint) <-chan Bucket {
	out := make(chan Bucket)
	go func() {
		defer close(out)
		for pt := range in {
			b, ok := s.Add(pt)
			if !ok {
				continue
			}
			select {
			case <-ctx.Done():
				return
			case out <- b:
			}
		}
	}()
	return out
}

// MaxBuckets is the most buckets a track of extent total can fill at size interval.
func MaxBuckets(total, interval float64) int {
	if interval <= 0 || total <= 0 {
		return 0
	}
	return int(math.Floor(total / interval))
}

func collect(s *State, path geopoint.Path) []Bucket {
	out := make([]Bucket, 0, s.Limit)
	for _, pt := range path {
		if b, ok := s.Add(pt); ok {
			out = append(out, b)
		}
	}
	return out
}

// ByTime buckets path every interval of elapsed time.
// Pace is (interval in minutes) / (miles covered in the interval).
func ByTime(path geopoint.Path, interval time.Duration) []Bucket {
	sec := interval.Seconds()
	if len(path) < 2 || sec <= 0 {
		return []Bucket{}
	}
	return collect(NewStateFor(path, &params.BucketConfig{Mode: params.BucketByTime, Interval: sec}), path)
}

// ByDistance buckets path every interval miles.
// Pace is (minutes spent in the interval) / interval.
func ByDistance(path geopoint.Path, interval float64) []Bucket {
	if len(path) < 2 || interval <= 0 {
		return []Bucket{}
	}
	return collect(NewStateFor(path, &params.BucketConfig{Mode: params.BucketByDistance, Interval: interval}), path)
}

// By dispatches on a bucket config.
func By(path geopoint.Path, config *params.BucketConfig) []Bucket {
	if config == nil {
		config = params.DefaultBucketConfig()
	}
	if config.Mode == params.BucketByTime {
		return ByTime(path, time.Duration(config.Interval*float64(time.Second)))
	}
	return ByDistance(path, config.Interval)
}
