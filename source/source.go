// Package source turns GPX documents from known producers into paths.
//
// Each producer lays its files out a little differently, so a Provider is
// selected per document by Detect before any points are read.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/rotblauer/catpace/types/activity"
	"github.com/rotblauer/catpace/types/geopoint"
)

var (
	ErrUnsupportedFormat  = errors.New("unsupported gpx format")
	ErrMalformedTimestamp = errors.New("malformed or missing timestamp")
	ErrNoPoints           = errors.New("no points")
)

// Provider reads the points of one producer's GPX documents.
type Provider interface {
	Name() string
	Parse(doc *gpx.GPX) (geopoint.Path, error)

	// HasElevation is false for producers whose points need an elevation oracle.
	HasElevation() bool
}

type matcher interface {
	matches(raw []byte, doc *gpx.GPX) bool
}

// Providers are tried in order; the first match wins.
// Strava exports declare the Garmin extension namespace, so Strava is tried first.
var Providers = []Provider{
	OnTheGoMap{},
	Strava{},
	Garmin{},
}

// Detect parses raw and selects the provider that produced it.
func Detect(raw []byte) (Provider, *gpx.GPX, error) {
	doc, err := gpx.ParseBytes(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	for _, p := range Providers {
		if m, ok := p.(matcher); ok && m.matches(raw, doc) {
			return p, doc, nil
		}
	}
	return nil, doc, fmt.Errorf("%w: creator %q", ErrUnsupportedFormat, doc.Creator)
}

// Read detects the provider of raw and parses its points and declared activity.
func Read(raw []byte) (Provider, activity.Activity, geopoint.Path, error) {
	p, doc, err := Detect(raw)
	if err != nil {
		return nil, activity.Unknown, nil, err
	}
	path, err := p.Parse(doc)
	if err != nil {
		return p, activity.Unknown, nil, fmt.Errorf("%s: %w", p.Name(), err)
	}
	return p, Activity(doc), path, nil
}

// Activity returns the activity the document declares for its first track, if any.
func Activity(doc *gpx.GPX) activity.Activity {
	if doc == nil {
		return activity.Unknown
	}
	for _, trk := range doc.Tracks {
		if trk.Type != "" {
			return activity.FromString(trk.Type)
		}
		if a := activity.FromString(trk.Name); a.IsKnown() {
			return a
		}
	}
	return activity.Unknown
}

func creatorContains(doc *gpx.GPX, s string) bool {
	return strings.Contains(strings.ToLower(doc.Creator), strings.ToLower(s))
}

func rawContains(raw []byte, s string) bool {
	return bytes.Contains(bytes.ToLower(raw), []byte(strings.ToLower(s)))
}

// parseTrack reads every point of every track segment, in document order.
// Points must carry a timestamp.
func parseTrack(doc *gpx.GPX) (geopoint.Path, error) {
	n := 0
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			n += len(seg.Points)
		}
	}
	if n == 0 {
		return nil, ErrNoPoints
	}
	out := make(geopoint.Path, 0, n)
	for ti, trk := range doc.Tracks {
		for si, seg := range trk.Segments {
			for pi := range seg.Points {
				pt := &seg.Points[pi]
				if pt.Timestamp.IsZero() {
					return nil, fmt.Errorf("%w: track %d segment %d point %d", ErrMalformedTimestamp, ti, si, pi)
				}
				gp, err := geopoint.New(geopoint.UnixSeconds(pt.Timestamp), pt.Point.Latitude, pt.Point.Longitude, pt.Elevation.Value())
				if err != nil {
					return nil, fmt.Errorf("track %d segment %d point %d: %w", ti, si, pi, err)
				}
				out = append(out, gp)
			}
		}
	}
	return out, nil
}
