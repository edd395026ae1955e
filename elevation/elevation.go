// Package elevation looks up ground elevations for points that were recorded
// or planned without them.
package elevation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/paulmach/orb"

	"github.com/rotblauer/catpace/params"
	"github.com/rotblauer/catpace/types/geopoint"
)

var (
	ErrLookup            = errors.New("elevation lookup failed")
	ErrElevationMismatch = errors.New("elevation response length mismatch")
	ErrMissingAPIKey     = errors.New("missing api key")
	ErrUnknownBackend    = errors.New("unknown elevation backend")
)

// Oracle returns one elevation in meters per point, in order.
type Oracle interface {
	Elevations(ctx context.Context, points []orb.Point) ([]float64, error)
}

// OracleFunc adapts a function to an Oracle.
type OracleFunc func(ctx context.Context, points []orb.Point) ([]float64, error)

func (f OracleFunc) Elevations(ctx context.Context, points []orb.Point) ([]float64, error) {
	return f(ctx, points)
}

// New builds the oracle a config names, cached when config.CacheSize is positive.
// The none backend returns a nil Oracle and no error.
func New(config *params.ElevationConfig) (Oracle, error) {
	if config == nil {
		config = params.DefaultElevationConfig()
	}
	var o Oracle
	switch config.Backend {
	case params.ElevationNone, "":
		return nil, nil
	case params.ElevationGoogle:
		g, err := NewGoogle(config.GoogleAPIKey)
		if err != nil {
			return nil, err
		}
		o = g
	case params.ElevationHTTP:
		o = NewHTTP(config.HTTPEndpoint, config.Timeout)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, config.Backend)
	}
	if config.CacheSize > 0 {
		return NewCached(o, config.CacheSize)
	}
	return o, nil
}

// Enrich asks oracle for the elevation of every point of path in one call and
// returns a copy of path carrying them.
func Enrich(ctx context.Context, oracle Oracle, path geopoint.Path) (geopoint.Path, error) {
	out := path.Clone()
	if len(path) == 0 {
		return out, nil
	}
	elevations, err := oracle.Elevations(ctx, path.Points())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLookup, err)
	}
	if len(elevations) != len(path) {
		return nil, fmt.Errorf("%w: requested %d, got %d", ErrElevationMismatch, len(path), len(elevations))
	}
	for i := range out {
		out[i].Elevation = elevations[i]
	}
	slog.Debug("Enriched elevations", "points", len(out))
	return out, nil
}
