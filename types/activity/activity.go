package activity

import (
	"math"
	"regexp"
	"strings"

	"github.com/rotblauer/catpace/common"
)

type Activity int

const (
	Stationary Activity = iota
	Walking
	Running
	Cycling
	Driving
	Unknown Activity = -1
)

var AllActivityNames = []string{
	Unknown.String(),
	Stationary.String(),
	Walking.String(),
	Running.String(),
	Cycling.String(),
	Driving.String(),
}

var (
	activityStationary = regexp.MustCompile(`(?i)stationary|still|\brest\b`)
	activityWalking    = regexp.MustCompile(`(?i)walk|hik`)
	activityRunning    = regexp.MustCompile(`(?i)run|jog`)
	activityCycling    = regexp.MustCompile(`(?i)cycl|bike|biking|ride`)
	activityDriving    = regexp.MustCompile(`(?i)drive|driving|automotive`)
)

// stravaTypes are the numeric activity types of older Strava GPX exports.
var stravaTypes = map[string]Activity{
	"1":  Cycling,
	"9":  Running,
	"10": Walking,
	"11": Walking,
}

// IsActive returns whether the activity is moving.
func (a Activity) IsActive() bool {
	return a > Stationary && a <= Driving
}

// IsKnown returns true if the activity is not Unknown.
func (a Activity) IsKnown() bool {
	return a != Unknown
}

// IsActiveHuman returns whether the activity is human-powered.
func (a Activity) IsActiveHuman() bool {
	return a >= Walking && a < Driving
}

// String implements the Stringer interface.
func (a Activity) String() string {
	switch a {
	case Stationary:
		return "Stationary"
	case Walking:
		return "Walking"
	case Running:
		return "Running"
	case Cycling:
		return "Cycling"
	case Driving:
		return "Driving"
	}
	return "Unknown"
}

// Emoji returns a single emoji representation of the activity.
func (a Activity) Emoji() string {
	switch a {
	case Stationary:
		return "📍"
	case Walking:
		return "🚶"
	case Running:
		return "🏃"
	case Cycling:
		return "🚴"
	case Driving:
		return "🚗"
	}
	return "❓"
}

func (a Activity) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Activity) UnmarshalText(text []byte) error {
	*a = FromString(string(text))
	return nil
}

// InferFromSpeed infers activity from a mean speed in m/s using high -> low max_speed breakpoints.
// maxMul is a multiplier to the max_speed of the activity.
// Anything faster than a bicycle is driving.
func InferFromSpeed(speed, maxMul float64, mustActive bool) Activity {
	if math.IsNaN(speed) || speed < 0 {
		return Unknown
	}
	if speed > common.SpeedOfCyclingMax*maxMul {
		return Driving
	}
	if speed > ((common.SpeedOfRunningMean+common.SpeedOfRunningMax)/2)*maxMul {
		return Cycling
	}
	if speed > common.SpeedOfWalkingMax*maxMul {
		return Running
	}
	if !mustActive && speed < common.SpeedOfWalkingMin {
		return Stationary
	}
	return Walking
}

// FromString parses a name like the <type> element of a GPX track.
func FromString(str string) Activity {
	str = strings.TrimSpace(str)
	if a, ok := stravaTypes[str]; ok {
		return a
	}
	switch {
	case activityStationary.MatchString(str):
		return Stationary
	case activityWalking.MatchString(str):
		return Walking
	case activityRunning.MatchString(str):
		return Running
	case activityCycling.MatchString(str):
		return Cycling
	case activityDriving.MatchString(str):
		return Driving
	}
	return Unknown
}
