// internal/infra/metrics/metrics.go
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const namespace = "homework_bot"

// Collector groups the bot's Prometheus metrics on a private registry.
type Collector struct {
	registry      *prometheus.Registry
	polls         *prometheus.CounterVec
	notifications *prometheus.CounterVec
	cursor        prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Collector{
		registry: reg,
		polls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_total",
			Help:      "Poll cycles by outcome.",
		}, []string{"outcome"}),
		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Chat notifications by delivery result.",
		}, []string{"result"}),
		cursor: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "poll_cursor",
			Help:      "Current from_date used for the homework API.",
		}),
	}
}

// ObservePoll counts a finished poll cycle. Safe to call on a nil collector.
func (c *Collector) ObservePoll(outcome string) {
	if c == nil {
		return
	}
	c.polls.WithLabelValues(outcome).Inc()
}

// ObserveNotification counts a delivery attempt. Safe to call on a nil collector.
func (c *Collector) ObserveNotification(delivered bool) {
	if c == nil {
		return
	}
	result := "sent"
	if !delivered {
		result = "failed"
	}
	c.notifications.WithLabelValues(result).Inc()
}

// SetCursor publishes the current poll cursor. Safe to call on a nil collector.
func (c *Collector) SetCursor(cursor int64) {
	if c == nil {
		return
	}
	c.cursor.Set(float64(cursor))
}

// Handler exposes the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Server serves /metrics until ctx is cancelled.
type Server struct {
	srv    *http.Server
	logger *logrus.Entry
}

func NewServer(addr string, c *Collector, logger *logrus.Entry) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start runs the listener in the background.
func (s *Server) Start() {
	go func() {
		s.logger.WithField("addr", s.srv.Addr).Info("Metrics server listening")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.WithError(err).Error("Metrics server stopped unexpectedly")
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
