package webd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rotblauer/catpace/app"
	"github.com/rotblauer/catpace/elevation"
	"github.com/rotblauer/catpace/export"
	"github.com/rotblauer/catpace/geo/bucket"
	"github.com/rotblauer/catpace/params"
	"github.com/rotblauer/catpace/source"
	"github.com/rotblauer/catpace/stream"
	"github.com/rotblauer/catpace/types/geopoint"
	"github.com/rotblauer/catpace/types/route"
)

func pingPong(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

type webDaemonStatus struct {
	StartedAt time.Time               `json:"started_at"`
	Uptime    string                  `json:"uptime"`
	Config    *params.WebDaemonConfig `json:"config"`
	Oracle    bool                    `json:"oracle"`
}

func (s *WebDaemon) statusReport(w http.ResponseWriter, r *http.Request) {
	cfg := *s.Config
	cfg.Job.Elevation.GoogleAPIKey = ""
	st := webDaemonStatus{
		StartedAt: s.started,
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Config:    &cfg,
		Oracle:    s.oracle != nil,
	}
	if err := json.NewEncoder(w).Encode(st); err != nil {
		s.logger.Error("Failed to write response", "error", err)
	}
}

// jobConfig overlays the request's query params on the daemon's job config.
//
//	exclude_rest=true  rest_threshold=3  (seconds)
//	by=time|distance   interval=60       (seconds or miles, default 60 or 0.25)
//	smooth=false       points=500
func (s *WebDaemon) jobConfig(r *http.Request) (*params.JobConfig, error) {
	c := s.Config.Job
	q := r.URL.Query()
	if v := q.Get("exclude_rest"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("exclude_rest: %w", err)
		}
		c.Route.IncludeRest = !b
	}
	if v := q.Get("rest_threshold"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return nil, fmt.Errorf("rest_threshold: invalid %q", v)
		}
		c.Route.RestThreshold = time.Duration(f * float64(time.Second))
	}
	if v := q.Get("by"); v != "" {
		switch params.BucketMode(v) {
		case params.BucketByTime, params.BucketByDistance:
			c.Bucket.Mode = params.BucketMode(v)
			if q.Get("interval") == "" {
				c.Bucket.Interval = c.Bucket.Mode.DefaultInterval()
			}
		default:
			return nil, fmt.Errorf("by: want %q or %q, got %q", params.BucketByTime, params.BucketByDistance, v)
		}
	}
	if v := q.Get("interval"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("interval: invalid %q", v)
		}
		c.Bucket.Interval = f
	}
	if v := q.Get("smooth"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("smooth: %w", err)
		}
		c.Bucket.Smooth = b
	}
	if v := q.Get("points"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("points: invalid %q", v)
		}
		c.Bucket.DisplayPoints = n
	}
	return &c, nil
}

// request reads the job config and the GPX body, writing the error response itself on failure.
func (s *WebDaemon) request(w http.ResponseWriter, r *http.Request) (*params.JobConfig, []byte, bool) {
	config, err := s.jobConfig(r)
	if err != nil {
		s.fail(w, "params", err, http.StatusBadRequest)
		return nil, nil, false
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, "too_large", err, http.StatusRequestEntityTooLarge)
			return nil, nil, false
		}
		s.fail(w, "read", err, http.StatusBadRequest)
		return nil, nil, false
	}
	return config, body, true
}

// run reads the request and runs the job, writing the error response itself on failure.
func (s *WebDaemon) run(w http.ResponseWriter, r *http.Request, endpoint string) (*app.Result, bool) {
	config, body, ok := s.request(w, r)
	if !ok {
		return nil, false
	}

	start := time.Now()
	res, err := app.NewJob(config, s.oracle).Run(r.Context(), body)
	s.metrics.JobDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		kind, status := classify(err)
		s.fail(w, kind, err, status)
		return nil, false
	}
	s.metrics.Jobs.WithLabelValues(endpoint, res.Provider).Inc()
	s.metrics.Points.Add(float64(len(res.Path)))
	return res, true
}

func classify(err error) (kind string, status int) {
	switch {
	case errors.Is(err, source.ErrUnsupportedFormat):
		return "unsupported", http.StatusUnsupportedMediaType
	case errors.Is(err, source.ErrMalformedTimestamp):
		return "timestamp", http.StatusUnprocessableEntity
	case errors.Is(err, source.ErrNoPoints),
		errors.Is(err, geopoint.ErrInvalidCoordinate),
		errors.Is(err, geopoint.ErrUnordered):
		return "points", http.StatusUnprocessableEntity
	case errors.Is(err, route.ErrZeroDistance):
		return "zero_distance", http.StatusUnprocessableEntity
	case errors.Is(err, route.ErrZeroDuration):
		return "zero_duration", http.StatusUnprocessableEntity
	case errors.Is(err, app.ErrNoOracle):
		return "elevation", http.StatusUnprocessableEntity
	case errors.Is(err, elevation.ErrLookup),
		errors.Is(err, elevation.ErrElevationMismatch):
		return "elevation_backend", http.StatusBadGateway
	}
	return "internal", http.StatusInternalServerError
}

func (s *WebDaemon) fail(w http.ResponseWriter, kind string, err error, status int) {
	s.metrics.Failures.WithLabelValues(kind).Inc()
	if status >= 500 {
		s.logger.Error("Job failed", "kind", kind, "error", err)
	} else {
		s.logger.Warn("Job rejected", "kind", kind, "error", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

type summaryResponse struct {
	Provider string        `json:"provider"`
	Summary  route.Summary `json:"summary"`
	Distance float64       `json:"distance"`
	Pace     string        `json:"pace"`
	MPH      float64       `json:"mph"`
	Duration string        `json:"duration"`
	Report   string        `json:"report"`
}

// handleSummary responds with the route summary of a posted GPX document.
// Pace is undefined for a route that never moves, which is rejected with 422.
func (s *WebDaemon) handleSummary(w http.ResponseWriter, r *http.Request) {
	res, ok := s.run(w, r, "summary")
	if !ok {
		return
	}
	pace, err := res.Summary.PaceString()
	if err != nil {
		kind, status := classify(err)
		s.fail(w, kind, err, status)
		return
	}
	mph, _ := res.Summary.MPH()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(summaryResponse{
		Provider: res.Provider,
		Summary:  res.Summary,
		Distance: res.Summary.Distance(),
		Pace:     pace,
		MPH:      mph,
		Duration: res.Summary.Duration(),
		Report:   res.Summary.Report(),
	})
}

// handleBuckets responds with the bucketed pace and altitude series of a posted GPX document.
func (s *WebDaemon) handleBuckets(w http.ResponseWriter, r *http.Request) {
	res, ok := s.run(w, r, "buckets")
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(res)
}

// handleBucketsNDJSON streams raw, undampened buckets one per line as the track is walked.
// Untimed routes have no buckets and get an empty body.
func (s *WebDaemon) handleBucketsNDJSON(w http.ResponseWriter, r *http.Request) {
	config, body, ok := s.request(w, r)
	if !ok {
		return
	}
	start := time.Now()
	provider, path, err := app.NewJob(config, s.oracle).Read(r.Context(), body)
	if err != nil {
		kind, status := classify(err)
		s.fail(w, kind, err, status)
		return
	}
	s.metrics.Jobs.WithLabelValues("buckets.ndjson", provider.Name()).Inc()
	s.metrics.Points.Add(float64(len(path)))

	w.Header().Set("Content-Type", "application/x-ndjson")
	if len(path) == 0 || !path[0].Timestamped {
		return
	}
	flusher, _ := w.(http.Flusher)
	enc := json.NewEncoder(w)
	state := bucket.NewStateFor(path, &config.Bucket)
	for b := range state.Stream(r.Context(), stream.Slice(r.Context(), path)) {
		if err := enc.Encode(b); err != nil {
			s.logger.Warn("Failed to write response", "error", err)
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
	s.metrics.JobDuration.Observe(time.Since(start).Seconds())
}

func (s *WebDaemon) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	res, ok := s.run(w, r, "export.csv")
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	if err := export.WriteCSV(w, res.Path); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}

func (s *WebDaemon) handleExportGeoJSON(w http.ResponseWriter, r *http.Request) {
	res, ok := s.run(w, r, "export.geojson")
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	if err := export.WriteGeoJSON(w, res.Path, res.Summary, res.Provider); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}
