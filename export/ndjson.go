package export

import (
	"encoding/json"
	"io"

	"github.com/rotblauer/catpace/geo/bucket"
)

// WriteBucketsNDJSON writes one JSON object per bucket per line.
func WriteBucketsNDJSON(w io.Writer, buckets []bucket.Bucket) error {
	enc := json.NewEncoder(w)
	for _, b := range buckets {
		if err := enc.Encode(b); err != nil {
			return err
		}
	}
	return nil
}

// CurvePoint is one sample of an interpolated display curve.
type CurvePoint struct {
	X    float64 `json:"x"`
	Pace float64 `json:"pace"`
}

// WriteCurveNDJSON writes a display curve, one sample per line.
func WriteCurveNDJSON(w io.Writer, xs, ys []float64) error {
	enc := json.NewEncoder(w)
	for i := range xs {
		if i >= len(ys) {
			break
		}
		if err := enc.Encode(CurvePoint{X: xs[i], Pace: ys[i]}); err != nil {
			return err
		}
	}
	return nil
}
