// Package geopoint holds the timestamped geodetic sample that every
// metric in catpace is derived from, and the ordered Path of them.
package geopoint

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/rotblauer/catpace/common"
	"github.com/rotblauer/catpace/params"
)

var ErrInvalidCoordinate = errors.New("invalid coordinate")

// GeoPoint is a single GPS sample.
// Time is seconds, either since the epoch or relative to the start of a recording;
// only differences between samples are ever used.
// Elevation is meters and is 0 when the producer does not know it.
// CumulativeDistance is meters from the first point of its Path, written once by
// pathmetrics.Walk and zero before that.
type GeoPoint struct {
	Time               float64 `json:"time"`
	Timestamped        bool    `json:"timestamped"`
	Lat                float64 `json:"lat"`
	Lng                float64 `json:"lng"`
	Elevation          float64 `json:"elevation"`
	CumulativeDistance float64 `json:"cumulative_distance"`
}

// New returns a validated, timestamped point.
func New(t, lat, lng, elevation float64) (GeoPoint, error) {
	p := GeoPoint{Time: t, Timestamped: true, Lat: lat, Lng: lng, Elevation: elevation}
	return p, p.Validate()
}

// UnixSeconds converts a wall time to fractional epoch seconds.
func UnixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// Timestamp returns the wall time of the point, and false if the producer gave none.
func (p GeoPoint) Timestamp() (time.Time, bool) {
	if !p.Timestamped {
		return time.Time{}, false
	}
	sec, frac := math.Modf(p.Time)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))).UTC(), true
}

func (p GeoPoint) Validate() error {
	if math.IsNaN(p.Lat) || p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: lat=%.14f", ErrInvalidCoordinate, p.Lat)
	}
	if math.IsNaN(p.Lng) || p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("%w: lng=%.14f", ErrInvalidCoordinate, p.Lng)
	}
	return nil
}

// Point returns the orb (x,y::lng,lat) point.
func (p GeoPoint) Point() orb.Point {
	return orb.Point{p.Lng, p.Lat}
}

// Cartesian projects the point onto a sphere of radius EarthRadius+Elevation:
//
//	x = r·cos(φ)·sin(λ)
//	y = r·sin(φ)
//	z = r·cos(φ)·cos(λ)
func (p GeoPoint) Cartesian() r3.Vector {
	lat, lng := common.Radians(p.Lat), common.Radians(p.Lng)
	r := params.EarthRadius + p.Elevation
	return r3.Vector{
		X: r * math.Cos(lat) * math.Sin(lng),
		Y: r * math.Sin(lat),
		Z: r * math.Cos(lat) * math.Cos(lng),
	}
}

// Distance returns the straight-line distance in meters between the Cartesian
// projections of a and b.
//
// This is the chord through the sphere, not the arc along its surface.
// For the few meters between consecutive GPS samples the two agree to well under
// a millimeter, but the chord under-measures curvature as segments grow: about
// a meter short over 100 km. Use GreatCircleDistance when the points are far apart.
// Unlike the arc, the chord includes the altitude difference between the points.
func Distance(a, b GeoPoint) float64 {
	return a.Cartesian().Sub(b.Cartesian()).Norm()
}

// GreatCircleDistance returns the arc length in meters between a and b over a sphere
// of radius EarthRadius plus their mean elevation.
func GreatCircleDistance(a, b GeoPoint) float64 {
	angle := s2.LatLngFromDegrees(a.Lat, a.Lng).Distance(s2.LatLngFromDegrees(b.Lat, b.Lng))
	r := params.EarthRadius + (a.Elevation+b.Elevation)/2
	return angle.Radians() * r
}
