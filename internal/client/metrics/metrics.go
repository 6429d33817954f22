// Package metrics counts how often the client reaches the backend, falls
// back to local data and trips the quota breaker.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/divyadrishti/internal/client/client"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "divyadrishti"

// Outcome labels of remote_calls_total.
const (
	OutcomeOK           = "ok"
	OutcomeUnavailable  = "unavailable"
	OutcomeQuota        = "quota"
	OutcomeUnauthorized = "unauthorized"
	OutcomeServer       = "server_error"
	OutcomeBadResponse  = "bad_response"
	OutcomeSkipped      = "skipped"
	OutcomeOther        = "error"
)

// Recorder owns a private registry. A nil *Recorder records nothing.
type Recorder struct {
	registry     *prometheus.Registry
	remoteCalls  *prometheus.CounterVec
	fallbacks    *prometheus.CounterVec
	breakerTrips prometheus.Counter
	breakerOpen  prometheus.Gauge
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		remoteCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_calls_total",
			Help:      "Backend calls by operation and outcome.",
		}, []string{"op", "outcome"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallbacks_total",
			Help:      "Operations answered from local data or canned content.",
		}, []string{"op"}),
		breakerTrips: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quota_breaker_trips_total",
			Help:      "Times the AI quota breaker opened.",
		}),
		breakerOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "quota_breaker_open",
			Help:      "1 while remote AI calls are suspended.",
		}),
	}
	r.registry.MustRegister(r.remoteCalls, r.fallbacks, r.breakerTrips, r.breakerOpen)
	return r
}

func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// RemoteCall counts one backend call for op classified by err.
func (r *Recorder) RemoteCall(op string, err error) {
	if r == nil {
		return
	}
	r.remoteCalls.WithLabelValues(op, Outcome(err)).Inc()
}

// Skipped counts an AI call not attempted because the breaker was open.
func (r *Recorder) Skipped(op string) {
	if r == nil {
		return
	}
	r.remoteCalls.WithLabelValues(op, OutcomeSkipped).Inc()
}

func (r *Recorder) Fallback(op string) {
	if r == nil {
		return
	}
	r.fallbacks.WithLabelValues(op).Inc()
}

func (r *Recorder) BreakerTripped() {
	if r == nil {
		return
	}
	r.breakerTrips.Inc()
	r.breakerOpen.Set(1)
}

func (r *Recorder) BreakerReset() {
	if r == nil {
		return
	}
	r.breakerOpen.Set(0)
}

// Outcome maps a remote client error to its label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, client.ErrQuotaExceeded):
		return OutcomeQuota
	case errors.Is(err, client.ErrUnavailable):
		return OutcomeUnavailable
	case errors.Is(err, client.ErrUnauthorized):
		return OutcomeUnauthorized
	case errors.Is(err, client.ErrServer):
		return OutcomeServer
	case errors.Is(err, client.ErrBadResponse):
		return OutcomeBadResponse
	}
	return OutcomeOther
}

// Serve exposes the registry on addr at /metrics until ctx is done.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
