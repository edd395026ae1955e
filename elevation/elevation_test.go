package elevation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"googlemaps.github.io/maps"

	"github.com/rotblauer/catpace/params"
	"github.com/rotblauer/catpace/types/geopoint"
)

func route() geopoint.Path {
	return geopoint.Path{
		{Lat: 44.94, Lng: -93.30},
		{Lat: 44.9405, Lng: -93.2997},
		{Lat: 44.941, Lng: -93.30},
	}
}

// latitudeOracle answers each point's latitude times ten, counting calls.
type latitudeOracle struct {
	calls atomic.Int32
	delay time.Duration
}

func (o *latitudeOracle) Elevations(ctx context.Context, points []orb.Point) ([]float64, error) {
	o.calls.Add(1)
	time.Sleep(o.delay)
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Lat() * 10
	}
	return out, nil
}

func TestEnrich(t *testing.T) {
	in := route()
	o := &latitudeOracle{}
	out, err := Enrich(context.Background(), o, in)
	if err != nil {
		t.Fatal(err)
	}
	if o.calls.Load() != 1 {
		t.Errorf("expected one oracle call, got %d", o.calls.Load())
	}
	for i := range out {
		if out[i].Elevation != in[i].Lat*10 {
			t.Errorf("point %d: elevation %v", i, out[i].Elevation)
		}
		if in[i].Elevation != 0 {
			t.Errorf("point %d: input mutated", i)
		}
	}
}

func TestEnrichMismatch(t *testing.T) {
	short := OracleFunc(func(ctx context.Context, points []orb.Point) ([]float64, error) {
		return []float64{1}, nil
	})
	if _, err := Enrich(context.Background(), short, route()); !errors.Is(err, ErrElevationMismatch) {
		t.Errorf("expected ErrElevationMismatch, got %v", err)
	}

	failing := OracleFunc(func(ctx context.Context, points []orb.Point) ([]float64, error) {
		return nil, errors.New("quota exceeded")
	})
	if _, err := Enrich(context.Background(), failing, route()); !errors.Is(err, ErrLookup) {
		t.Errorf("expected ErrLookup, got %v", err)
	}
}

func TestHTTP(t *testing.T) {
	var got struct {
		Locations []httpLocation `json:"locations"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Error(err)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results":[`)
		for i, l := range got.Locations {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"latitude":%v,"longitude":%v,"elevation":%d}`, l.Latitude, l.Longitude, 250+i)
		}
		fmt.Fprint(w, `]}`)
	}))
	defer srv.Close()

	h := NewHTTP(srv.URL, 5*time.Second)
	out, err := Enrich(context.Background(), h, route())
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Locations) != 3 || got.Locations[1].Latitude != 44.9405 || got.Locations[1].Longitude != -93.2997 {
		t.Errorf("unexpected request %+v", got.Locations)
	}
	for i, pt := range out {
		if pt.Elevation != float64(250+i) {
			t.Errorf("point %d: elevation %v", i, pt.Elevation)
		}
	}
}

func TestHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	if _, err := NewHTTP(srv.URL, time.Second).Elevations(context.Background(), route().Points()); err == nil {
		t.Error("expected error from failing endpoint")
	}
}

func TestGoogle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key in %s", r.URL)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"OK","results":[
			{"elevation":251.5,"location":{"lat":44.94,"lng":-93.3},"resolution":4.7},
			{"elevation":252.5,"location":{"lat":44.9405,"lng":-93.2997},"resolution":4.7},
			{"elevation":253.5,"location":{"lat":44.941,"lng":-93.3},"resolution":4.7}]}`)
	}))
	defer srv.Close()

	g, err := NewGoogle("test-key", maps.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatal(err)
	}
	out, err := g.Elevations(context.Background(), route().Points())
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{251.5, 252.5, 253.5}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("point %d: got %v want %v", i, out[i], want[i])
		}
	}
}

func TestCached(t *testing.T) {
	backend := &latitudeOracle{delay: 20 * time.Millisecond}
	c, err := NewCached(backend, 8)
	if err != nil {
		t.Fatal(err)
	}
	points := route().Points()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Elevations(context.Background(), points); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	out, err := c.Elevations(context.Background(), points)
	if err != nil {
		t.Fatal(err)
	}
	if n := backend.calls.Load(); n != 1 {
		t.Errorf("expected one backend call, got %d", n)
	}
	if out[0] != points[0].Lat()*10 {
		t.Errorf("unexpected elevation %v", out[0])
	}

	// Callers own their slices.
	out[0] = -1
	again, _ := c.Elevations(context.Background(), points)
	if again[0] == -1 {
		t.Error("cached value was mutated through a returned slice")
	}

	if _, err := c.Elevations(context.Background(), points[:2]); err != nil {
		t.Fatal(err)
	}
	if n := backend.calls.Load(); n != 2 {
		t.Errorf("expected a second backend call for new points, got %d", n)
	}
	if c.Len() != 2 {
		t.Errorf("expected 2 cached lookups, got %d", c.Len())
	}
}

func TestCachedCanceledCaller(t *testing.T) {
	var calls atomic.Int32
	backend := OracleFunc(func(ctx context.Context, points []orb.Point) ([]float64, error) {
		calls.Add(1)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return make([]float64, len(points)), nil
	})
	c, err := NewCached(backend, 8)
	if err != nil {
		t.Fatal(err)
	}
	points := route().Points()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Elevations(canceled, points); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled caller: expected context.Canceled, got %v", err)
	}
	// The lookup itself ran to completion and was cached for everyone else.
	if c.Len() != 1 {
		t.Fatalf("expected the lookup to be cached, got %d", c.Len())
	}
	out, err := c.Elevations(context.Background(), points)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(points) {
		t.Errorf("expected %d elevations, got %d", len(points), len(out))
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("expected one backend call, got %d", n)
	}
}

func TestNew(t *testing.T) {
	o, err := New(&params.ElevationConfig{Backend: params.ElevationNone})
	if err != nil || o != nil {
		t.Errorf("none: got %v, %v", o, err)
	}
	if _, err := New(&params.ElevationConfig{Backend: params.ElevationGoogle}); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("google without key: expected ErrMissingAPIKey, got %v", err)
	}
	if _, err := New(&params.ElevationConfig{Backend: "carrier-pigeon"}); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend, got %v", err)
	}
	o, err = New(&params.ElevationConfig{Backend: params.ElevationHTTP, HTTPEndpoint: "http://localhost:1", CacheSize: 4})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := o.(*Cached); !ok {
		t.Errorf("expected cached oracle, got %T", o)
	}
}
