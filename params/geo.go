package params

import "time"

// EarthRadius is the radius of the spherical Earth model, in meters.
// No ellipsoidal correction is applied anywhere.
const EarthRadius = 6378100.0

// MilesPerMeter converts meters to statute miles.
const MilesPerMeter = 0.000621371

// DefaultRestThreshold is the sample gap above which the whole gap counts as rest.
// GPX producers sample about once a second while moving; a pause stops the recorder,
// leaving a gap.
const DefaultRestThreshold = 3 * time.Second

type RouteConfig struct {
	// IncludeRest decides whether resting gaps count toward the elapsed time
	// used for pace and speed.
	IncludeRest bool

	// RestThreshold is only consulted when IncludeRest is false.
	RestThreshold time.Duration
}

func DefaultRouteConfig() *RouteConfig {
	return &RouteConfig{
		IncludeRest:   true,
		RestThreshold: DefaultRestThreshold,
	}
}

type BucketMode string

const (
	BucketByTime     BucketMode = "time"
	BucketByDistance BucketMode = "distance"
)

// DefaultTimeInterval and DefaultDistanceInterval are the bucket sizes used when a
// mode is chosen without an interval: seconds and miles.
const (
	DefaultTimeInterval     = 60.0
	DefaultDistanceInterval = 0.25
)

// DefaultInterval is the bucket size of the mode when none is given.
func (m BucketMode) DefaultInterval() float64 {
	if m == BucketByTime {
		return DefaultTimeInterval
	}
	return DefaultDistanceInterval
}

type BucketConfig struct {
	Mode BucketMode

	// Interval is seconds for BucketByTime and miles for BucketByDistance.
	Interval float64

	// Smooth applies spike dampening to the pace series.
	Smooth bool

	// DisplayPoints is the number of samples of the interpolated display curve.
	// Zero disables interpolation.
	DisplayPoints int
}

func DefaultBucketConfig() *BucketConfig {
	return &BucketConfig{
		Mode:          BucketByDistance,
		Interval:      DefaultDistanceInterval,
		Smooth:        true,
		DisplayPoints: 500,
	}
}
