// Package metrics exports navigation counters in Prometheus format. A
// Collector satisfies the observer interfaces of the focus, keys and idle
// packages so it can be plugged into all of them.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gitlab.com/tinyland/lab/tvnav/pkg/focus"
	"gitlab.com/tinyland/lab/tvnav/pkg/idle"
)

// Collector holds the navigation metrics.
type Collector struct {
	registry *prometheus.Registry

	navigations *prometheus.CounterVec
	dispatches  *prometheus.CounterVec
	scans       prometheus.Counter
	focusSet    prometheus.Gauge
	idleState   prometheus.Gauge
	transitions *prometheus.CounterVec
}

// New registers the metrics on a fresh registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Collector{
		registry: reg,
		navigations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tvnav",
			Name:      "navigations_total",
			Help:      "Directional navigation attempts by direction and result.",
		}, []string{"direction", "result"}),
		dispatches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tvnav",
			Name:      "key_dispatches_total",
			Help:      "Key events dispatched by resolved route and outcome.",
		}, []string{"route", "outcome"}),
		scans: f.NewCounter(prometheus.CounterOpts{
			Namespace: "tvnav",
			Name:      "focus_scans_total",
			Help:      "Focus registry scans.",
		}),
		focusSet: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "tvnav",
			Name:      "focus_set_size",
			Help:      "Number of focusable nodes after the last scan.",
		}),
		idleState: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "tvnav",
			Name:      "idle",
			Help:      "1 while the screensaver is shown.",
		}),
		transitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tvnav",
			Name:      "idle_transitions_total",
			Help:      "Idle monitor transitions by target state.",
		}, []string{"to"}),
	}
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Scanned implements focus.Observer.
func (c *Collector) Scanned(size, _ int) {
	c.scans.Inc()
	c.focusSet.Set(float64(size))
}

// Navigated implements focus.Observer.
func (c *Collector) Navigated(dir focus.Direction, matched bool) {
	result := "miss"
	if matched {
		result = "hit"
	}
	c.navigations.WithLabelValues(dir.String(), result).Inc()
}

// Dispatched implements keys.Observer.
func (c *Collector) Dispatched(route string, handled bool) {
	outcome := "dropped"
	if handled {
		outcome = "handled"
	}
	c.dispatches.WithLabelValues(route, outcome).Inc()
}

// Transitioned implements idle.Observer.
func (c *Collector) Transitioned(to idle.State) {
	c.transitions.WithLabelValues(to.String()).Inc()
	if to == idle.Idle {
		c.idleState.Set(1)
	} else {
		c.idleState.Set(0)
	}
}

// Handler returns the /metrics HTTP handler.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (c *Collector) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics: shutdown failed", "err", err)
		}
	}()

	logger.Info("metrics: listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
