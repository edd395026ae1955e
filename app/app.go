// Package app runs conversion jobs: one GPX document in, a summary and
// bucket series out.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rotblauer/catpace/elevation"
	"github.com/rotblauer/catpace/geo/bucket"
	"github.com/rotblauer/catpace/geo/pathmetrics"
	"github.com/rotblauer/catpace/geo/smooth"
	"github.com/rotblauer/catpace/params"
	"github.com/rotblauer/catpace/source"
	"github.com/rotblauer/catpace/types/activity"
	"github.com/rotblauer/catpace/types/geopoint"
	"github.com/rotblauer/catpace/types/route"
)

var ErrNoOracle = errors.New("points have no elevation and no elevation oracle is configured")

// Job holds everything a conversion needs. It is safe for concurrent use
// as long as its Oracle is.
type Job struct {
	Config *params.JobConfig
	Oracle elevation.Oracle

	// RequireElevation fails jobs whose points lack elevation when Oracle is nil.
	RequireElevation bool

	logger *slog.Logger
}

func NewJob(config *params.JobConfig, oracle elevation.Oracle) *Job {
	if config == nil {
		config = params.DefaultJobConfig()
	}
	return &Job{
		Config: config,
		Oracle: oracle,
		logger: slog.With("app", "job"),
	}
}

// Curve is an interpolated display curve of the pace series.
// Altitude is sampled at the same X and rescaled onto the pace axis for overlays.
type Curve struct {
	X        []float64 `json:"x"`
	Y        []float64 `json:"y"`
	Altitude []float64 `json:"altitude"`
}

type Result struct {
	Provider string        `json:"provider"`
	Path     geopoint.Path `json:"-"`
	Summary  route.Summary `json:"summary"`

	// Buckets are dampened when the job's bucket config says to smooth.
	Buckets []bucket.Bucket    `json:"buckets"`
	Pace    bucket.SeriesStats `json:"pace"`
	Curve   *Curve             `json:"curve,omitempty"`
}

// Read detects, parses and, if needed, enriches a document, returning the measured path.
func (j *Job) Read(ctx context.Context, raw []byte) (source.Provider, geopoint.Path, error) {
	provider, _, path, err := j.read(ctx, raw)
	return provider, path, err
}

func (j *Job) read(ctx context.Context, raw []byte) (source.Provider, activity.Activity, geopoint.Path, error) {
	provider, declared, path, err := source.Read(raw)
	if err != nil {
		return provider, activity.Unknown, nil, err
	}
	if err := path.Validate(); err != nil {
		return provider, activity.Unknown, nil, err
	}
	if !provider.HasElevation() {
		if j.Oracle != nil {
			path, err = elevation.Enrich(ctx, j.Oracle, path)
			if err != nil {
				return provider, activity.Unknown, nil, err
			}
		} else if j.RequireElevation {
			return provider, activity.Unknown, nil, fmt.Errorf("%s: %w", provider.Name(), ErrNoOracle)
		}
	}
	measured, _ := pathmetrics.Walk(path)
	return provider, declared, measured, nil
}

// Run performs the whole job on one document.
// An activity declared by the document wins over the one inferred from speed.
func (j *Job) Run(ctx context.Context, raw []byte) (*Result, error) {
	provider, declared, path, err := j.read(ctx, raw)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Provider: provider.Name(),
		Path:     path,
		Summary:  route.Build(path, &j.Config.Route),
		Buckets:  []bucket.Bucket{},
	}
	if declared.IsKnown() {
		res.Summary.Activity = declared
	}
	if err := j.Summarize(res); err != nil {
		return nil, err
	}
	j.logger.Info("Job done", "provider", res.Provider,
		"points", len(path), "miles", res.Summary.Distance(), "buckets", len(res.Buckets))
	return res, nil
}

// Summarize fills in the bucket series of a result whose path and summary are set.
// Untimed paths have no bucket series.
func (j *Job) Summarize(res *Result) error {
	if len(res.Path) == 0 || !res.Path[0].Timestamped {
		return nil
	}
	bc := &j.Config.Bucket
	buckets := bucket.By(res.Path, bc)
	if bc.Smooth {
		buckets = bucket.WithPaces(buckets, smooth.Dampen(bucket.Paces(buckets)))
	}
	res.Buckets = buckets
	res.Pace = bucket.Describe(buckets)

	if bc.DisplayPoints > 0 && len(buckets) >= 2 {
		xs, ys, err := smooth.Interpolate(bucket.Xs(buckets), bucket.Paces(buckets), bc.DisplayPoints)
		if err != nil {
			return fmt.Errorf("display curve: %w", err)
		}
		_, alts, err := smooth.Interpolate(bucket.Xs(buckets), bucket.Altitudes(buckets), bc.DisplayPoints)
		if err != nil {
			return fmt.Errorf("display curve: %w", err)
		}
		res.Curve = &Curve{X: xs, Y: ys, Altitude: smooth.ScaleTo(alts, ys)}
	}
	return nil
}
