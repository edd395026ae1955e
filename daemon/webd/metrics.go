package webd

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type collector struct {
	reg *prometheus.Registry

	Jobs        *prometheus.CounterVec // endpoint, provider
	Failures    *prometheus.CounterVec // kind
	JobDuration prometheus.Histogram
	Points      prometheus.Counter
}

func newCollector() *collector {
	reg := prometheus.NewRegistry()
	c := &collector{
		reg: reg,
		Jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catpace_jobs_total",
			Help: "Jobs completed, by endpoint and detected provider.",
		}, []string{"endpoint", "provider"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catpace_job_failures_total",
			Help: "Jobs failed, by kind of failure.",
		}, []string{"kind"}),
		JobDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "catpace_job_duration_seconds",
			Help:    "Duration of jobs, elevation lookups included.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}),
		Points: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catpace_points_total",
			Help: "Track points read.",
		}),
	}
	reg.MustRegister(c.Jobs, c.Failures, c.JobDuration, c.Points)
	return c
}

func (c *collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
