package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lumina-ai/lumina-console/internal/logging"
)

// Outcomes recorded for fetches
const (
	OutcomeApplied   = "applied"
	OutcomeDiscarded = "discarded"
	OutcomeFailed    = "failed"
	OutcomeSuccess   = "success"
)

// Recorder counts console activity on a private registry.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	auth          *prometheus.CounterVec
	detailFetch   *prometheus.CounterVec
	notifications *prometheus.CounterVec
	pageFetch     *prometheus.CounterVec
	registry      *prometheus.Registry
}

// New creates a Recorder with its own registry
func New() *Recorder {
	r := &Recorder{
		auth: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lumina_auth_total",
			Help: "Login and logout attempts by outcome.",
		}, []string{"op", "outcome"}),
		detailFetch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lumina_detail_fetch_total",
			Help: "Request log detail fetches by outcome.",
		}, []string{"outcome"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lumina_notifications_total",
			Help: "Notifications shown by kind.",
		}, []string{"kind"}),
		pageFetch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lumina_page_fetch_total",
			Help: "Request log page fetches by mode and outcome.",
		}, []string{"mode", "outcome"}),
		registry: prometheus.NewRegistry(),
	}
	r.registry.MustRegister(r.auth, r.detailFetch, r.notifications, r.pageFetch)
	return r
}

// Registry exposes the underlying registry for tests and handlers
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Auth records a login or logout outcome
func (r *Recorder) Auth(op, outcome string) {
	if r == nil {
		return
	}
	r.auth.WithLabelValues(op, outcome).Inc()
}

// DetailFetch records the outcome of a detail completion
func (r *Recorder) DetailFetch(outcome string) {
	if r == nil {
		return
	}
	r.detailFetch.WithLabelValues(outcome).Inc()
}

// Notification records a notification being shown
func (r *Recorder) Notification(kind string) {
	if r == nil {
		return
	}
	r.notifications.WithLabelValues(kind).Inc()
}

// PageFetch records the outcome of a page completion
func (r *Recorder) PageFetch(mode, outcome string) {
	if r == nil {
		return
	}
	r.pageFetch.WithLabelValues(mode, outcome).Inc()
}

// Handler serves the registry in the Prometheus text format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logging.Logger.Info("Serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
