package source

import (
	"errors"
	"testing"

	"github.com/rotblauer/catpace/testing/testdata"
	"github.com/rotblauer/catpace/types/activity"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		fixture string
		want    string
	}{
		{testdata.GPX_GarminRun, "garmin"},
		{testdata.GPX_GarminRunGZ, "garmin"},
		{testdata.GPX_StravaRide, "strava"},
		{testdata.GPX_OnTheGoMapRoute, "onthegomap"},
	}
	for _, c := range cases {
		p, doc, err := Detect(testdata.MustReadGPX(c.fixture))
		if err != nil {
			t.Fatalf("%s: %v", c.fixture, err)
		}
		if p.Name() != c.want {
			t.Errorf("%s: detected %s, want %s", c.fixture, p.Name(), c.want)
		}
		if doc == nil {
			t.Errorf("%s: nil document", c.fixture)
		}
	}
}

func TestDetectUnsupported(t *testing.T) {
	_, _, err := Detect(testdata.MustReadGPX(testdata.GPX_Unsupported))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	_, _, path, err := Read([]byte("not a gpx document"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if path != nil {
		t.Errorf("expected no path, got %d points", len(path))
	}
}

func TestReadGarmin(t *testing.T) {
	p, declared, path, err := Read(testdata.MustReadGPX(testdata.GPX_GarminRun))
	if err != nil {
		t.Fatal(err)
	}
	if declared != activity.Running {
		t.Errorf("declared activity: %v", declared)
	}
	if !p.HasElevation() {
		t.Error("garmin tracks carry elevation")
	}
	if len(path) != 20 {
		t.Fatalf("expected 20 points, got %d", len(path))
	}
	if err := path.Validate(); err != nil {
		t.Fatal(err)
	}
	if path[0].Lat != 44.98 || path[0].Lng != -93.26 || path[0].Elevation != 250 {
		t.Errorf("unexpected first point %+v", path[0])
	}
	if !path[0].Timestamped {
		t.Error("track points are timestamped")
	}
	if ts, _ := path[0].Timestamp(); ts.Format("2006-01-02T15:04:05Z") != "2024-05-04T13:00:00Z" {
		t.Errorf("unexpected first timestamp %v", ts)
	}
	if e := path.Elapsed(); e != 49 {
		t.Errorf("expected 49s elapsed, got %v", e)
	}
}

func TestReadGarminMissingTime(t *testing.T) {
	_, _, _, err := Read(testdata.MustReadGPX(testdata.GPX_GarminMissingTime))
	if !errors.Is(err, ErrMalformedTimestamp) {
		t.Errorf("expected ErrMalformedTimestamp, got %v", err)
	}
}

func TestReadStrava(t *testing.T) {
	_, _, path, err := Read(testdata.MustReadGPX(testdata.GPX_StravaRide))
	if err != nil {
		t.Fatal(err)
	}
	if len(path) != 12 {
		t.Fatalf("expected 12 points, got %d", len(path))
	}
	if path.Elapsed() != 11 {
		t.Errorf("expected 11s elapsed, got %v", path.Elapsed())
	}
}

func TestReadOnTheGoMap(t *testing.T) {
	p, _, path, err := Read(testdata.MustReadGPX(testdata.GPX_OnTheGoMapRoute))
	if err != nil {
		t.Fatal(err)
	}
	if p.HasElevation() {
		t.Error("planned routes have no elevation")
	}
	if len(path) != 6 {
		t.Fatalf("expected 6 points, got %d", len(path))
	}
	for i, pt := range path {
		if pt.Timestamped || pt.Time != 0 || pt.Elevation != 0 {
			t.Errorf("point %d: expected untimed point without elevation, got %+v", i, pt)
		}
	}
	if path[1].Lat != 44.9405 || path[1].Lng != -93.2997 {
		t.Errorf("unexpected second point %+v", path[1])
	}
}

func TestActivity(t *testing.T) {
	cases := map[string]activity.Activity{
		testdata.GPX_GarminRun:       activity.Running,
		testdata.GPX_StravaRide:      activity.Cycling,
		testdata.GPX_OnTheGoMapRoute: activity.Unknown,
	}
	for fixture, want := range cases {
		_, doc, err := Detect(testdata.MustReadGPX(fixture))
		if err != nil {
			t.Fatal(err)
		}
		if got := Activity(doc); got != want {
			t.Errorf("%s: got %v want %v", fixture, got, want)
		}
	}
}
