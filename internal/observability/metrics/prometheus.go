package metrics

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smallbiznis/netlicensing/internal/apierror"
	"github.com/smallbiznis/netlicensing/pkg/rest"
)

// RESTMetrics records outbound calls made by the REST client.
type RESTMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ rest.Observer = (*RESTMetrics)(nil)

// NewRESTMetrics registers the client instruments with registerer.
func NewRESTMetrics(registerer prometheus.Registerer, cfg Config) (*RESTMetrics, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	ns := namespace(cfg)

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "REST calls by method, resource, status and error kind.",
	}, []string{"method", "resource", "status", "kind"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns,
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "REST call latency by method and resource.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "resource"})

	var err error
	if requests, err = register(registerer, requests); err != nil {
		return nil, err
	}
	if duration, err = register(registerer, duration); err != nil {
		return nil, err
	}

	return &RESTMetrics{requests: requests, duration: duration}, nil
}

// ObserveRequest implements rest.Observer.
func (m *RESTMetrics) ObserveRequest(method, resource string, status int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	method = sanitizeLabel(method)
	resource = sanitizeLabel(resource)
	m.requests.WithLabelValues(method, resource, statusLabel(status), kindLabel(err)).Inc()
	m.duration.WithLabelValues(method, resource).Observe(elapsed.Seconds())
}

// HTTPMetrics records inbound requests served by the mock service.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the server instruments with registerer.
func NewHTTPMetrics(registerer prometheus.Registerer, cfg Config) (*HTTPMetrics, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	ns := namespace(cfg)

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	var err error
	if requests, err = register(registerer, requests); err != nil {
		return nil, err
	}
	if duration, err = register(registerer, duration); err != nil {
		return nil, err
	}

	return &HTTPMetrics{requests: requests, duration: duration}, nil
}

// GinMiddleware observes every request handled by the engine.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		method := sanitizeLabel(c.Request.Method)
		m.requests.WithLabelValues(method, route, statusLabel(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// register returns the already registered collector when an identical one
// exists, so constructing twice against the default registry is harmless.
func register[C prometheus.Collector](registerer prometheus.Registerer, c C) (C, error) {
	if err := registerer.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func statusLabel(status int) string {
	if status <= 0 {
		return "none"
	}
	return strconv.Itoa(status)
}

func kindLabel(err error) string {
	if err == nil {
		return "none"
	}
	if kind := apierror.KindOf(err); kind != "" {
		return string(kind)
	}
	return "unknown"
}

func sanitizeLabel(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return strings.ToLower(value)
}
