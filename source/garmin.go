package source

import (
	"github.com/tkrajina/gpxgo/gpx"

	"github.com/rotblauer/catpace/types/geopoint"
)

// Garmin reads device and Garmin Connect exports: trk/trkseg/trkpt with ele and time.
type Garmin struct{}

func (Garmin) Name() string       { return "garmin" }
func (Garmin) HasElevation() bool { return true }

func (Garmin) matches(raw []byte, doc *gpx.GPX) bool {
	return creatorContains(doc, "garmin") || rawContains(raw, "garmin.com")
}

func (Garmin) Parse(doc *gpx.GPX) (geopoint.Path, error) {
	return parseTrack(doc)
}
