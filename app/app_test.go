package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/paulmach/orb"

	"github.com/rotblauer/catpace/common"
	"github.com/rotblauer/catpace/elevation"
	"github.com/rotblauer/catpace/params"
	"github.com/rotblauer/catpace/source"
	"github.com/rotblauer/catpace/testing/testdata"
	"github.com/rotblauer/catpace/types/activity"
)

func init() {
	common.SlogResetLevel(slog.LevelWarn + 1)
}

func byTimeConfig(seconds float64) *params.JobConfig {
	c := params.DefaultJobConfig()
	c.Elevation.Backend = params.ElevationNone
	c.Bucket.Mode = params.BucketByTime
	c.Bucket.Interval = seconds
	return c
}

func TestRun(t *testing.T) {
	job := NewJob(byTimeConfig(5), nil)
	res, err := job.Run(context.Background(), testdata.MustReadGPX(testdata.GPX_GarminRun))
	if err != nil {
		t.Fatal(err)
	}
	if res.Provider != "garmin" {
		t.Errorf("provider: %s", res.Provider)
	}
	if res.Summary.PointCount != 20 || res.Summary.TotalElapsed != 49 {
		t.Errorf("unexpected summary %+v", res.Summary)
	}
	if res.Summary.Activity != activity.Running {
		t.Errorf("declared activity: %v", res.Summary.Activity)
	}
	if last := res.Path[len(res.Path)-1]; last.CumulativeDistance <= 0 {
		t.Error("path was not measured")
	}

	// Intervals close at points 6, 10 (across the pause) and 16.
	if len(res.Buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(res.Buckets))
	}
	if !(res.Buckets[1].Pace > res.Buckets[0].Pace && res.Buckets[1].Pace > res.Buckets[2].Pace) {
		t.Errorf("expected the pause bucket to stay the slowest, got %+v", res.Buckets)
	}
	if res.Curve == nil || len(res.Curve.X) != 500 || len(res.Curve.Y) != 500 {
		t.Fatalf("expected a 500 point display curve")
	}
	if res.Curve.X[0] != 0 || res.Curve.X[499] != 10 {
		t.Errorf("curve does not span the buckets: %v..%v", res.Curve.X[0], res.Curve.X[499])
	}
	if res.Pace.Max < res.Pace.Min {
		t.Errorf("unexpected pace stats %+v", res.Pace)
	}
}

func TestRunSmoothing(t *testing.T) {
	raw := testdata.MustReadGPX(testdata.GPX_GarminRun)
	smoothed := byTimeConfig(5)
	plain := byTimeConfig(5)
	plain.Bucket.Smooth = false

	a, err := NewJob(smoothed, nil).Run(context.Background(), raw)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewJob(plain, nil).Run(context.Background(), raw)
	if err != nil {
		t.Fatal(err)
	}
	if a.Buckets[1].Pace >= b.Buckets[1].Pace {
		t.Errorf("expected dampened peak, got %v vs raw %v", a.Buckets[1].Pace, b.Buckets[1].Pace)
	}
	if a.Buckets[0].Pace != b.Buckets[0].Pace || a.Buckets[2].Pace != b.Buckets[2].Pace {
		t.Error("boundary buckets changed by smoothing")
	}
}

func TestRunExcludeRest(t *testing.T) {
	c := byTimeConfig(5)
	c.Route.IncludeRest = false
	res, err := NewJob(c, nil).Run(context.Background(), testdata.MustReadGPX(testdata.GPX_GarminRun))
	if err != nil {
		t.Fatal(err)
	}
	if res.Summary.Rest != 31 || res.Summary.ActiveElapsed != 18 {
		t.Errorf("rest=%v active=%v", res.Summary.Rest, res.Summary.ActiveElapsed)
	}
}

func TestRunEnrichesRoutes(t *testing.T) {
	var calls atomic.Int32
	oracle := elevation.OracleFunc(func(ctx context.Context, points []orb.Point) ([]float64, error) {
		calls.Add(1)
		out := make([]float64, len(points))
		for i := range out {
			out[i] = 250 + float64(i)
		}
		return out, nil
	})
	res, err := NewJob(byTimeConfig(5), oracle).Run(context.Background(), testdata.MustReadGPX(testdata.GPX_OnTheGoMapRoute))
	if err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 1 {
		t.Errorf("expected exactly one oracle call, got %d", calls.Load())
	}
	if res.Summary.ElevationGain != 5 {
		t.Errorf("elevation gain: %v", res.Summary.ElevationGain)
	}
	if len(res.Buckets) != 0 {
		t.Errorf("untimed routes have no buckets, got %d", len(res.Buckets))
	}
}

func TestRunErrors(t *testing.T) {
	job := NewJob(byTimeConfig(5), nil)
	job.RequireElevation = true
	if _, err := job.Run(context.Background(), testdata.MustReadGPX(testdata.GPX_OnTheGoMapRoute)); !errors.Is(err, ErrNoOracle) {
		t.Errorf("expected ErrNoOracle, got %v", err)
	}
	if _, err := job.Run(context.Background(), testdata.MustReadGPX(testdata.GPX_Unsupported)); !errors.Is(err, source.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := job.Run(context.Background(), testdata.MustReadGPX(testdata.GPX_GarminMissingTime)); !errors.Is(err, source.ErrMalformedTimestamp) {
		t.Errorf("expected ErrMalformedTimestamp, got %v", err)
	}
}

func TestConvertAll(t *testing.T) {
	out := t.TempDir()
	files := []string{
		testdata.Path(testdata.GPX_GarminRun),
		testdata.Path(testdata.GPX_StravaRide),
		testdata.Path(testdata.GPX_OnTheGoMapRoute),
		testdata.Path(testdata.GPX_Unsupported),
	}
	job := NewJob(byTimeConfig(5), nil)
	failed, converted := 0, 0
	for c := range job.ConvertAll(context.Background(), files, out, 2) {
		if c.Err != nil {
			failed++
			if !errors.Is(c.Err, source.ErrUnsupportedFormat) {
				t.Errorf("%s: unexpected error %v", c.In, c.Err)
			}
			continue
		}
		converted++
		b, err := os.ReadFile(c.Out)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(string(b), "latitude,longitude,altitude,") {
			t.Errorf("%s: unexpected csv %q", c.Out, b[:40])
		}
	}
	if failed != 1 || converted != 3 {
		t.Errorf("expected 3 converted and 1 failed, got %d and %d", converted, failed)
	}
	if _, err := os.Stat(filepath.Join(out, "strava_ride.csv")); err != nil {
		t.Error(err)
	}
}
