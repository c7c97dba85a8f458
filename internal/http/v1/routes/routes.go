package routes

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/janisto/greeting-function/internal/http/health"
	"github.com/janisto/greeting-function/internal/http/v1/hello"
	"github.com/janisto/greeting-function/internal/invoke"
	"github.com/janisto/greeting-function/internal/platform/metrics"
)

// Options carries what the routes need from main.
type Options struct {
	FunctionName string
	Version      string
	Recorder     *metrics.Recorder
	// Gatherer enables /metrics when non-nil.
	Gatherer prometheus.Gatherer
}

// Register wires every route: huma operations on api, raw handlers on router.
func Register(router chi.Router, api huma.API, opts Options) {
	router.Get("/health", health.Handler(opts.FunctionName, opts.Version))
	if opts.Gatherer != nil {
		router.Handle("/metrics", metrics.Handler(opts.Gatherer))
	}
	invoke.Register(router, opts.Recorder)
	hello.Register(api, opts.Recorder)
}
