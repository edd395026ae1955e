package params

import "compress/gzip"

var DefaultGZipCompressionLevel = gzip.BestCompression

// DefaultWorkers is the number of files converted in parallel by batch commands.
var DefaultWorkers = 4

// JobConfig bundles every knob of a single conversion job.
// Nothing inside a job reads package-level state; callers pass one of these.
type JobConfig struct {
	Route     RouteConfig
	Bucket    BucketConfig
	Elevation ElevationConfig
}

func DefaultJobConfig() *JobConfig {
	return &JobConfig{
		Route:     *DefaultRouteConfig(),
		Bucket:    *DefaultBucketConfig(),
		Elevation: *DefaultElevationConfig(),
	}
}
