package export

import (
	"encoding/json"
	"io"
	"math"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"

	"github.com/rotblauer/catpace/common"
	"github.com/rotblauer/catpace/types/geopoint"
	"github.com/rotblauer/catpace/types/route"
)

// NewRouteFeature returns the path as a LineString feature with summary properties.
// Provider may be empty.
func NewRouteFeature(path geopoint.Path, summary route.Summary, provider string) *geojson.Feature {
	ls := make(orb.LineString, 0, len(path))
	for _, p := range path {
		ls = append(ls, p.Point())
	}
	f := geojson.NewFeature(ls)

	if provider != "" {
		f.Properties["Provider"] = provider
	}
	f.Properties["RawPointCount"] = len(path)
	f.Properties["Activity"] = summary.Activity.String()
	f.Properties["Distance_Miles"] = summary.Distance()
	f.Properties["Duration"] = math.Round(summary.TotalElapsed)
	f.Properties["Duration_Active"] = math.Round(summary.ActiveElapsed)
	f.Properties["Duration_Rest"] = math.Round(summary.Rest)
	f.Properties["Elevation_Gain"] = math.Floor(summary.ElevationGain)
	f.Properties["Elevation_Loss"] = math.Floor(summary.ElevationLost)
	if pace, err := summary.PaceString(); err == nil {
		f.Properties["Pace"] = pace
	}
	if mph, err := summary.MPH(); err == nil {
		f.Properties["Speed_MPH"] = common.DecimalToFixed(mph, 2)
	}

	if len(path) == 0 {
		return f
	}
	first, last := path[0], path[len(path)-1]
	if start, ok := first.Timestamp(); ok {
		f.Properties["Time_Start_Unix"] = start.Unix()
		f.Properties["Time_Start_RFC3339"] = start.Format(time.RFC3339)
	}
	if end, ok := last.Timestamp(); ok {
		f.Properties["Time_End_Unix"] = end.Unix()
		f.Properties["Time_End_RFC3339"] = end.Format(time.RFC3339)
	}

	elevations := make([]float64, 0, len(path))
	speeds := make([]float64, 0, len(path))
	traversed, arc := 0.0, 0.0
	for i, p := range path {
		elevations = append(elevations, math.Round(p.Elevation))
		if i == 0 {
			continue
		}
		meters := geopoint.Distance(path[i-1], p)
		traversed += meters
		arc += geopoint.GreatCircleDistance(path[i-1], p)
		if seconds := p.Time - path[i-1].Time; seconds > 0 {
			speeds = append(speeds, meters/seconds)
		}
	}

	statsMustFloat := func(fn func() (float64, error), def float64) float64 {
		out, err := fn()
		if err != nil {
			return def
		}
		return out
	}
	installStats := func(key string, data []float64, def float64, precision int) {
		statsData := stats.Float64Data(data)
		f.Properties[key+"_Mean"] = common.DecimalToFixed(statsMustFloat(statsData.Mean, def), precision)
		f.Properties[key+"_Median"] = common.DecimalToFixed(statsMustFloat(statsData.Median, def), precision)
		f.Properties[key+"_Min"] = common.DecimalToFixed(statsMustFloat(statsData.Min, def), precision)
		f.Properties[key+"_Max"] = common.DecimalToFixed(statsMustFloat(statsData.Max, def), precision)
	}
	installStats("Elevation", elevations, 0, 0)
	installStats("Speed_Calculated", speeds, 0, 2)

	f.Properties["Distance_Traversed"] = math.Round(traversed)
	f.Properties["Distance_Arc"] = math.Round(arc)
	f.Properties["Distance_Absolute"] = math.Round(geo.Distance(first.Point(), last.Point()))
	return f
}

// WriteGeoJSON writes the route feature as one JSON document.
func WriteGeoJSON(w io.Writer, path geopoint.Path, summary route.Summary, provider string) error {
	return json.NewEncoder(w).Encode(NewRouteFeature(path, summary, provider))
}
