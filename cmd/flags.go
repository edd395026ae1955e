/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rotblauer/catpace/app"
	"github.com/rotblauer/catpace/elevation"
	"github.com/rotblauer/catpace/params"
)

// jobFlagSet holds the flags shared by every command that runs a job.
func jobFlagSet() *pflag.FlagSet {
	defaults := params.DefaultJobConfig()
	fs := pflag.NewFlagSet("job", pflag.ExitOnError)

	fs.Bool("exclude-rest", !defaults.Route.IncludeRest, "Exclude resting gaps from elapsed time")
	fs.Duration("rest-threshold", defaults.Route.RestThreshold, "Sample gap above which the whole gap is rest")

	fs.String("by", string(defaults.Bucket.Mode), "Bucket by 'time' or 'distance'")
	fs.Float64("interval", defaults.Bucket.Interval,
		fmt.Sprintf("Bucket interval: miles by distance, seconds by time (default %v)", params.DefaultTimeInterval))
	fs.Bool("smooth", defaults.Bucket.Smooth, "Dampen pace spikes")
	fs.Int("points", defaults.Bucket.DisplayPoints, "Samples of the interpolated display curve, 0 to disable")

	fs.String("elevation", string(defaults.Elevation.Backend), "Elevation oracle for routes: none, google or http")
	fs.String("elevation-key", "", "Google Elevation API key (default $GOOGLE_ELEVATION_API_KEY)")
	fs.String("elevation-url", defaults.Elevation.HTTPEndpoint, "Open-elevation compatible lookup endpoint")
	fs.Duration("elevation-timeout", defaults.Elevation.Timeout, "Elevation lookup timeout")
	fs.Int("elevation-cache", defaults.Elevation.CacheSize, "Elevation lookups to remember, 0 to disable")
	return fs
}

// jobConfig reads the job flags, as overlaid by config file and env.
func jobConfig() (*params.JobConfig, error) {
	c := params.DefaultJobConfig()

	c.Route.IncludeRest = !viper.GetBool("exclude-rest")
	c.Route.RestThreshold = viper.GetDuration("rest-threshold")
	if c.Route.RestThreshold < 0 {
		return nil, fmt.Errorf("rest-threshold: must not be negative")
	}

	switch mode := params.BucketMode(viper.GetString("by")); mode {
	case params.BucketByTime, params.BucketByDistance:
		c.Bucket.Mode = mode
		c.Bucket.Interval = mode.DefaultInterval()
	default:
		return nil, fmt.Errorf("by: want %q or %q, got %q", params.BucketByTime, params.BucketByDistance, mode)
	}
	if viper.IsSet("interval") {
		c.Bucket.Interval = viper.GetFloat64("interval")
	}
	if c.Bucket.Interval <= 0 {
		return nil, fmt.Errorf("interval: must be positive")
	}
	c.Bucket.Smooth = viper.GetBool("smooth")
	c.Bucket.DisplayPoints = viper.GetInt("points")

	if key := viper.GetString("elevation-key"); key != "" {
		c.Elevation.GoogleAPIKey = key
		c.Elevation.Backend = params.ElevationGoogle
	}
	if viper.IsSet("elevation") {
		c.Elevation.Backend = params.ElevationBackend(viper.GetString("elevation"))
	}
	c.Elevation.HTTPEndpoint = viper.GetString("elevation-url")
	c.Elevation.Timeout = viper.GetDuration("elevation-timeout")
	c.Elevation.CacheSize = viper.GetInt("elevation-cache")
	return c, nil
}

// newJob builds a job and its elevation oracle from flags.
func newJob() (*app.Job, error) {
	config, err := jobConfig()
	if err != nil {
		return nil, err
	}
	oracle, err := elevation.New(&config.Elevation)
	if err != nil {
		return nil, err
	}
	slog.Debug("Job config", "route", config.Route, "bucket", config.Bucket,
		"elevation", config.Elevation.Backend)
	return app.NewJob(config, oracle), nil
}
