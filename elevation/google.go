package elevation

import (
	"context"
	"fmt"

	"github.com/paulmach/orb"
	"googlemaps.github.io/maps"
)

// GoogleMaxLocations is the most locations the Elevation API accepts per request.
const GoogleMaxLocations = 512

// Google queries the Google Maps Elevation API.
type Google struct {
	client *maps.Client
}

func NewGoogle(apiKey string, opts ...maps.ClientOption) (*Google, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("google elevation: %w", ErrMissingAPIKey)
	}
	c, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Google{client: c}, nil
}

// Elevations requests the points in as few requests as the API allows.
func (g *Google) Elevations(ctx context.Context, points []orb.Point) ([]float64, error) {
	out := make([]float64, 0, len(points))
	for start := 0; start < len(points); start += GoogleMaxLocations {
		end := min(start+GoogleMaxLocations, len(points))
		req := &maps.ElevationRequest{
			Locations: make([]maps.LatLng, 0, end-start),
		}
		for _, p := range points[start:end] {
			req.Locations = append(req.Locations, maps.LatLng{Lat: p.Lat(), Lng: p.Lon()})
		}
		results, err := g.client.Elevation(ctx, req)
		if err != nil {
			return nil, err
		}
		for _, r := range results {
			out = append(out, r.Elevation)
		}
	}
	return out, nil
}
