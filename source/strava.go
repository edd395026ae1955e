package source

import (
	"github.com/tkrajina/gpxgo/gpx"

	"github.com/rotblauer/catpace/types/geopoint"
)

// Strava reads activity exports, which share Garmin's track layout.
type Strava struct{}

func (Strava) Name() string       { return "strava" }
func (Strava) HasElevation() bool { return true }

func (Strava) matches(raw []byte, doc *gpx.GPX) bool {
	return creatorContains(doc, "StravaGPX") || creatorContains(doc, "strava.com")
}

func (Strava) Parse(doc *gpx.GPX) (geopoint.Path, error) {
	return parseTrack(doc)
}
