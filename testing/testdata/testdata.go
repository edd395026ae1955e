package testdata

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rotblauer/catpace/catz"
)

// basepath is the root directory of this package.
var basepath string

func init() {
	_, currentFile, _, _ := runtime.Caller(0)
	basepath = filepath.Dir(currentFile)
}

// Path returns the absolute path the given relative file or directory path,
// relative to this testdata/ directory in the user's GOPATH.
// If rel is already absolute, it is returned unmodified.
// Taken from https://github.com/grpc/grpc-go/blob/master/testdata/testdata.go.
func Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}

	return filepath.Join(basepath, rel)
}

// GPX_GarminRun is a 20 point run sampled each second, with a 31 second pause
// after the tenth point.
var GPX_GarminRun = "./gpx/garmin_run.gpx"
var GPX_GarminRunGZ = "./gpx/garmin_run.gpx.gz"

// GPX_GarminMissingTime is GPX_GarminRun with the <time> of its sixth point removed.
var GPX_GarminMissingTime = "./gpx/garmin_missing_time.gpx"

// GPX_StravaRide is a 12 point ride sampled each second.
var GPX_StravaRide = "./gpx/strava_ride.gpx"

// GPX_OnTheGoMapRoute is a 6 point planned route, no times and no elevations.
var GPX_OnTheGoMapRoute = "./gpx/onthegomap_route.gpx"

var GPX_Unsupported = "./gpx/unsupported.gpx"

// ReadGPX reads a fixture by its relative path, decompressing .gz files.
func ReadGPX(rel string) ([]byte, error) {
	p := Path(rel)
	if !strings.HasSuffix(p, ".gz") {
		return os.ReadFile(p)
	}
	gzr, err := catz.NewGZFileReader(p)
	if err != nil {
		return nil, err
	}
	defer gzr.Close()
	return io.ReadAll(gzr)
}

// MustReadGPX is ReadGPX for tests; it panics on error.
func MustReadGPX(rel string) []byte {
	b, err := ReadGPX(rel)
	if err != nil {
		panic(err)
	}
	return b
}
