// Package export writes paths and bucket series to files and streams.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotblauer/catpace/types/geopoint"
)

// CSVHeader is the column layout of point CSV files.
var CSVHeader = []string{
	"latitude", "longitude", "altitude",
	"horizontal_acc", "vertical_acc", "course", "speed",
	"timestamp",
}

// CSVTimeLayout is ISO-8601 UTC to the second.
const CSVTimeLayout = "2006-01-02T15:04:05Z"

// CSVRecord renders one point. Accuracy, course and speed are unknown and
// written as the constants 0,0,-1,-1. Untimed points get an empty timestamp.
func CSVRecord(p geopoint.GeoPoint) []string {
	ts := ""
	if t, ok := p.Timestamp(); ok {
		ts = t.UTC().Format(CSVTimeLayout)
	}
	return []string{
		strconv.FormatFloat(p.Lat, 'f', -1, 64),
		strconv.FormatFloat(p.Lng, 'f', -1, 64),
		strconv.FormatFloat(p.Elevation, 'f', -1, 64),
		"0", "0", "-1", "-1",
		ts,
	}
}

// WriteCSV writes a header and one row per point.
func WriteCSV(w io.Writer, path geopoint.Path) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, p := range path {
		if err := cw.Write(CSVRecord(p)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
