// Package influxdb exports job results to an InfluxDB v2 bucket.
package influxdb

import (
	"errors"
	"strconv"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/rotblauer/catpace/app"
	"github.com/rotblauer/catpace/geo/pathmetrics"
	"github.com/rotblauer/catpace/params"
)

var ErrNoURL = errors.New("influxdb url not configured")

// Points converts a job result into line-protocol points:
// one catpace_point per timestamped sample, one catpace_bucket per bucket
// and a single catpace_summary. Buckets and the summary are stamped with
// the start of the route, or now for untimed routes, and buckets carry their
// index as a tag to stay distinct.
func Points(name string, res *app.Result) []*write.Point {
	start := time.Now().UTC()
	if len(res.Path) > 0 {
		if t, ok := res.Path[0].Timestamp(); ok {
			start = t
		}
	}
	act := res.Summary.Activity.String()
	tagged := func(measurement string, t time.Time) *write.Point {
		return influxdb2.NewPointWithMeasurement(measurement).
			SetTime(t).
			AddTag("name", name).
			AddTag("provider", res.Provider).
			AddTag("activity", act)
	}

	out := make([]*write.Point, 0, len(res.Path)+len(res.Buckets)+1)
	for i, pt := range res.Path {
		t, ok := pt.Timestamp()
		if !ok {
			continue
		}
		out = append(out, tagged("catpace_point", t).
			AddField("latitude", pt.Lat).
			AddField("longitude", pt.Lng).
			AddField("elevation", pt.Elevation).
			AddField("distance", pt.CumulativeDistance*params.MilesPerMeter).
			AddField("segment", pathmetrics.Segment(res.Path, i)))
	}
	for _, b := range res.Buckets {
		p := tagged("catpace_bucket", start).
			AddTag("index", strconv.Itoa(b.Index)).
			AddField("x", b.X).
			AddField("pace", b.Pace).
			AddField("altitude", b.Altitude)
		if b.Stationary {
			p.AddField("stationary", 1)
		}
		out = append(out, p)
	}

	s := res.Summary
	p := tagged("catpace_summary", start).
		AddField("distance_miles", s.DistanceMiles).
		AddField("elevation_gain", s.ElevationGain).
		AddField("elevation_lost", s.ElevationLost).
		AddField("total_elapsed", s.TotalElapsed).
		AddField("active_elapsed", s.ActiveElapsed).
		AddField("rest", s.Rest).
		AddField("points", s.PointCount)
	if mph, err := s.MPH(); err == nil {
		p.AddField("mph", mph)
	}
	if len(res.Buckets) > 0 {
		p.AddField("pace_mean", res.Pace.Mean).
			AddField("pace_median", res.Pace.Median)
	}
	out = append(out, p)
	return out
}

// Export posts a job result to an InfluxDB Write API.
// The Write API buffers and flushes; the last error encountered is returned.
func Export(config *params.InfluxConfig, name string, res *app.Result) error {
	if config == nil || config.URL == "" {
		return ErrNoURL
	}
	opts := influxdb2.DefaultOptions()
	opts.SetPrecision(time.Second)
	client := influxdb2.NewClientWithOptions(config.URL, config.Token, opts)
	writeAPI := client.WriteAPI(config.Org, config.Bucket)

	// Errors must be called before performing any writes for errors to be collected.
	// The chan is unbuffered and must be drained or the writer will block.
	errorsCh := writeAPI.Errors()
	var err error
	wait := sync.WaitGroup{}
	wait.Add(1)
	go func() {
		defer wait.Done()
		for e := range errorsCh {
			if e != nil {
				err = e
			}
		}
	}()

	for _, p := range Points(name, res) {
		writeAPI.WritePoint(p)
	}
	writeAPI.Flush()
	client.Close()
	wait.Wait()
	return err
}
