package bucket

import (
	"github.com/montanaflynn/stats"
	"github.com/rotblauer/catpace/common"
)

func Xs(buckets []Bucket) []float64 {
	out := make([]float64, len(buckets))
	for i, b := range buckets {
		out[i] = b.X
	}
	return out
}

// XMinutes is Xs of time buckets in minutes.
func XMinutes(buckets []Bucket) []float64 {
	out := Xs(buckets)
	for i := range out {
		out[i] /= common.SecondsPerMinute
	}
	return out
}

func Paces(buckets []Bucket) []float64 {
	out := make([]float64, len(buckets))
	for i, b := range buckets {
		out[i] = b.Pace
	}
	return out
}

func Altitudes(buckets []Bucket) []float64 {
	out := make([]float64, len(buckets))
	for i, b := range buckets {
		out[i] = b.Altitude
	}
	return out
}

// WithPaces returns a copy of buckets with paces replaced, eg. by a smoothed series.
// Extra paces are ignored; missing ones leave the original value.
func WithPaces(buckets []Bucket, paces []float64) []Bucket {
	out := make([]Bucket, len(buckets))
	copy(out, buckets)
	for i := range out {
		if i < len(paces) {
			out[i].Pace = paces[i]
		}
	}
	return out
}

// SeriesStats describe the pace of a bucket series, minutes per mile.
type SeriesStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Describe summarizes the paces of the moving buckets.
// Stationary buckets have no pace and are left out.
func Describe(buckets []Bucket) SeriesStats {
	data := make([]float64, 0, len(buckets))
	for _, b := range buckets {
		if !b.Stationary {
			data = append(data, b.Pace)
		}
	}
	statsMustFloat := func(fn func() (float64, error)) float64 {
		out, err := fn()
		if err != nil {
			return 0
		}
		return out
	}
	statsData := stats.Float64Data(data)
	return SeriesStats{
		Mean:   common.DecimalToFixed(statsMustFloat(statsData.Mean), 2),
		Median: common.DecimalToFixed(statsMustFloat(statsData.Median), 2),
		Min:    common.DecimalToFixed(statsMustFloat(statsData.Min), 2),
		Max:    common.DecimalToFixed(statsMustFloat(statsData.Max), 2),
	}
}
