package params

import (
	"os"
	"time"
)

type ElevationBackend string

const (
	ElevationNone   ElevationBackend = "none"
	ElevationGoogle ElevationBackend = "google"
	ElevationHTTP   ElevationBackend = "http"
)

type ElevationConfig struct {
	Backend ElevationBackend

	// GoogleAPIKey is read from GOOGLE_ELEVATION_API_KEY by default.
	GoogleAPIKey string

	// HTTPEndpoint is an open-elevation compatible lookup endpoint.
	HTTPEndpoint string

	Timeout time.Duration

	// CacheSize is the number of distinct lookups remembered by the cached oracle.
	CacheSize int
}

func DefaultElevationConfig() *ElevationConfig {
	c := &ElevationConfig{
		Backend:      ElevationNone,
		GoogleAPIKey: os.Getenv("GOOGLE_ELEVATION_API_KEY"),
		HTTPEndpoint: "https://api.open-elevation.com/api/v1/lookup",
		Timeout:      30 * time.Second,
		CacheSize:    256,
	}
	if c.GoogleAPIKey != "" {
		c.Backend = ElevationGoogle
	}
	return c
}
