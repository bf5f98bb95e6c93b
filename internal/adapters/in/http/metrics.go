package http

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "textile"

// Metrics holds the collectors of one server. Each server gets its own registry so tests can
// build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorsTotal     *prometheus.CounterVec
	jobStageTotal   *prometheus.CounterVec
	metersCredited  prometheus.Counter
	metersDiscarded prometheus.Counter
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests by route and status code",
			},
			[]string{"method", "route", "code"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "domain_errors_total",
				Help:      "Total number of rejected use cases by error kind",
			},
			[]string{"kind"},
		),
		jobStageTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "floor",
				Name:      "job_stage_transitions_total",
				Help:      "Total number of job orders entering a stage",
			},
			[]string{"stage"},
		),
		metersCredited: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "floor",
			Name:      "meters_credited_total",
			Help:      "Meters credited to job orders from shift reports",
		}),
		metersDiscarded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "floor",
			Name:      "meters_discarded_total",
			Help:      "Reported meters above plan that were not credited",
		}),
	}
}

// Registry exposes the collectors, e.g. for tests gathering values.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry}))
}

// Middleware counts requests by their route pattern, never by the raw path.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Response().Status)).Inc()
			m.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

func (m *Metrics) jobEntered(stage string) {
	m.jobStageTotal.WithLabelValues(stage).Inc()
}

func (m *Metrics) production(credited, discarded int) {
	m.metersCredited.Add(float64(credited))
	m.metersDiscarded.Add(float64(discarded))
}

func (m *Metrics) rejected(kind string) {
	m.errorsTotal.WithLabelValues(kind).Inc()
}
