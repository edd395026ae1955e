package source

import (
	"fmt"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/rotblauer/catpace/types/geopoint"
)

// OnTheGoMap reads routes planned on onthegomap.com: rte/rtept with coordinates only.
// The points are untimed and have no elevation until enriched.
type OnTheGoMap struct{}

func (OnTheGoMap) Name() string       { return "onthegomap" }
func (OnTheGoMap) HasElevation() bool { return false }

func (OnTheGoMap) matches(raw []byte, doc *gpx.GPX) bool {
	return creatorContains(doc, "onthegomap") || rawContains(raw, "https://onthegomap.com")
}

func (OnTheGoMap) Parse(doc *gpx.GPX) (geopoint.Path, error) {
	n := 0
	for _, rte := range doc.Routes {
		n += len(rte.Points)
	}
	if n == 0 {
		return nil, ErrNoPoints
	}
	out := make(geopoint.Path, 0, n)
	for ri, rte := range doc.Routes {
		for pi := range rte.Points {
			pt := &rte.Points[pi]
			gp, err := geopoint.New(0, pt.Point.Latitude, pt.Point.Longitude, 0)
			if err != nil {
				return nil, fmt.Errorf("route %d point %d: %w", ri, pi, err)
			}
			gp.Timestamped = false
			out = append(out, gp)
		}
	}
	return out, nil
}
