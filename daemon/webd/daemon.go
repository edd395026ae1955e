package webd

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/rotblauer/catpace/elevation"
	"github.com/rotblauer/catpace/params"
)

type WebDaemon struct {
	Config  *params.WebDaemonConfig
	oracle  elevation.Oracle
	metrics *collector
	logger  *slog.Logger
	started time.Time
}

// NewWebDaemon returns a daemon running jobs with config.Job, looking up
// missing elevations with oracle when it is not nil.
func NewWebDaemon(config *params.WebDaemonConfig, oracle elevation.Oracle) *WebDaemon {
	if config == nil {
		config = params.DefaultWebDaemonConfig()
	}
	return &WebDaemon{
		Config:  config,
		oracle:  oracle,
		metrics: newCollector(),
		logger:  slog.With("d", "web"),
		started: time.Now(),
	}
}

// Run listens and serves until ctx is canceled, then shuts down gracefully.
func (s *WebDaemon) Run(ctx context.Context) error {
	l, err := net.Listen(s.Config.Network, s.Config.Address)
	if err != nil {
		return err
	}
	server := &http.Server{
		Handler:           s.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting web daemon", "network", s.Config.Network, "address", l.Addr().String())

	errs := make(chan error, 1)
	go func() {
		errs <- server.Serve(l)
	}()
	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("Stopping web daemon")
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdown)
	}
}

func (s *WebDaemon) NewRouter() *mux.Router {
	router := mux.NewRouter().StrictSlash(false)
	router.Use(loggingMiddleware)

	apiRoutes := router.NewRoute().Subrouter()

	// All API routes use permissive CORS settings.
	apiRoutes.Use(permissiveCorsMiddleware)

	// /ping is a simple server healthcheck endpoint
	apiRoutes.Path("/ping").HandlerFunc(pingPong).Methods(http.MethodGet)
	apiRoutes.Path("/metrics").Handler(s.metrics.Handler()).Methods(http.MethodGet)

	apiJSONRoutes := apiRoutes.NewRoute().Subrouter()
	apiJSONRoutes.Use(contentTypeMiddlewareFunc("application/json"))
	apiJSONRoutes.Path("/status").HandlerFunc(s.statusReport).Methods(http.MethodGet)

	jobRoutes := apiRoutes.NewRoute().Subrouter()
	jobRoutes.Use(tokenAuthenticationMiddleware)
	jobRoutes.Use(s.bodyLimitMiddleware)
	jobRoutes.Path("/summary").HandlerFunc(s.handleSummary).Methods(http.MethodPost)
	jobRoutes.Path("/buckets").HandlerFunc(s.handleBuckets).Methods(http.MethodPost)
	jobRoutes.Path("/buckets.ndjson").HandlerFunc(s.handleBucketsNDJSON).Methods(http.MethodPost)
	jobRoutes.Path("/export.csv").HandlerFunc(s.handleExportCSV).Methods(http.MethodPost)
	jobRoutes.Path("/export.geojson").HandlerFunc(s.handleExportGeoJSON).Methods(http.MethodPost)

	return router
}
