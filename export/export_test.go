package export

import (
	"bufio"
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/rotblauer/catpace/geo/bucket"
	"github.com/rotblauer/catpace/params"
	"github.com/rotblauer/catpace/source"
	"github.com/rotblauer/catpace/testing/testdata"
	"github.com/rotblauer/catpace/types/route"
)

func TestWriteCSV(t *testing.T) {
	_, _, path, err := source.Read(testdata.MustReadGPX(testdata.GPX_GarminRun))
	if err != nil {
		t.Fatal(err)
	}
	buf := new(bytes.Buffer)
	if err := WriteCSV(buf, path); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(path)+1 {
		t.Fatalf("expected %d lines, got %d", len(path)+1, len(lines))
	}
	if lines[0] != "latitude,longitude,altitude,horizontal_acc,vertical_acc,course,speed,timestamp" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[1] != "44.98,-93.26,250,0,0,-1,-1,2024-05-04T13:00:00Z" {
		t.Errorf("unexpected first row %q", lines[1])
	}
	if lines[2] != "44.98003,-93.26,250.4,0,0,-1,-1,2024-05-04T13:00:01Z" {
		t.Errorf("unexpected second row %q", lines[2])
	}
}

func TestWriteCSVUntimed(t *testing.T) {
	_, _, path, err := source.Read(testdata.MustReadGPX(testdata.GPX_OnTheGoMapRoute))
	if err != nil {
		t.Fatal(err)
	}
	buf := new(bytes.Buffer)
	if err := WriteCSV(buf, path); err != nil {
		t.Fatal(err)
	}
	scanner := bufio.NewScanner(buf)
	scanner.Scan() // header
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), ",")
		if len(fields) != len(CSVHeader) {
			t.Fatalf("expected %d fields, got %q", len(CSVHeader), scanner.Text())
		}
		if fields[7] != "" {
			t.Errorf("expected empty timestamp, got %q", fields[7])
		}
		if strings.Join(fields[3:7], ",") != "0,0,-1,-1" {
			t.Errorf("unexpected constant columns %q", scanner.Text())
		}
	}
}

func TestNewRouteFeature(t *testing.T) {
	_, _, path, err := source.Read(testdata.MustReadGPX(testdata.GPX_GarminRun))
	if err != nil {
		t.Fatal(err)
	}
	summary := route.Build(path, params.DefaultRouteConfig())
	f := NewRouteFeature(path, summary, "garmin")

	ls, ok := f.Geometry.(orb.LineString)
	if !ok || len(ls) != len(path) {
		t.Fatalf("expected a %d point linestring, got %T", len(path), f.Geometry)
	}
	if f.Properties.MustString("Provider") != "garmin" {
		t.Errorf("provider: %v", f.Properties["Provider"])
	}
	if f.Properties.MustString("Time_Start_RFC3339") != "2024-05-04T13:00:00Z" {
		t.Errorf("start: %v", f.Properties["Time_Start_RFC3339"])
	}
	if f.Properties.MustFloat64("Duration") != 49 {
		t.Errorf("duration: %v", f.Properties["Duration"])
	}
	if f.Properties.MustFloat64("Elevation_Max") != 254 {
		t.Errorf("elevation max: %v", f.Properties["Elevation_Max"])
	}
	if f.Properties.MustFloat64("Distance_Traversed") <= 0 {
		t.Errorf("distance traversed: %v", f.Properties["Distance_Traversed"])
	}
	traversed, arc := f.Properties.MustFloat64("Distance_Traversed"), f.Properties.MustFloat64("Distance_Arc")
	if arc <= 0 || math.Abs(arc-traversed) > 0.05*traversed {
		t.Errorf("distance arc %v, traversed %v", arc, traversed)
	}

	buf := new(bytes.Buffer)
	if err := WriteGeoJSON(buf, path, summary, "garmin"); err != nil {
		t.Fatal(err)
	}
	back, err := geojson.UnmarshalFeature(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if back.Properties.MustString("Activity") != summary.Activity.String() {
		t.Errorf("activity: %v", back.Properties["Activity"])
	}
}

func TestWriteBucketsNDJSON(t *testing.T) {
	bs := []bucket.Bucket{
		{Index: 0, X: 0, Pace: 8.5, Altitude: 250},
		{Index: 1, X: 60, Stationary: true, Altitude: 251},
	}
	buf := new(bytes.Buffer)
	if err := WriteBucketsNDJSON(buf, bs); err != nil {
		t.Fatal(err)
	}
	want := `{"index":0,"x":0,"pace":8.5,"altitude":250}
{"index":1,"x":60,"pace":0,"altitude":251,"stationary":true}
`
	if buf.String() != want {
		t.Errorf("got\n%s\nwant\n%s", buf.String(), want)
	}

	buf.Reset()
	if err := WriteCurveNDJSON(buf, []float64{0, 1}, []float64{8, 9}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "{\"x\":0,\"pace\":8}\n{\"x\":1,\"pace\":9}\n" {
		t.Errorf("unexpected curve %q", buf.String())
	}
}
