package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/smallbiznis/netlicensing/internal/apierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("resource", "licensee"),
		attribute.String("number", "I-123"),
		attribute.String("outcome", "ok"),
	)
	require.Len(t, attrs, 2)
	assert.Equal(t, attribute.Key("resource"), attrs[0].Key)
	assert.Equal(t, attribute.Key("outcome"), attrs[1].Key)
}

func TestRESTMetricsObserveRequest(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := NewRESTMetrics(registry, Config{Namespace: "nl"})
	require.NoError(t, err)

	m.ObserveRequest("POST", "licensetemplate", 200, 20*time.Millisecond, nil)
	m.ObserveRequest("POST", "licensetemplate", 400, time.Millisecond,
		apierror.MalformedRequest("price", "bad"))
	m.ObserveRequest("GET", "product", 0, time.Millisecond, errors.New("dial tcp: refused"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("post", "licensetemplate", "200", "none")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("post", "licensetemplate", "400", "MalformedRequestException")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("get", "product", "none", "unknown")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestRegisterTwiceReusesCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	first, err := NewRESTMetrics(registry, Config{})
	require.NoError(t, err)
	second, err := NewRESTMetrics(registry, Config{})
	require.NoError(t, err)

	first.ObserveRequest("GET", "license", 200, time.Millisecond, nil)
	assert.Equal(t, 1.0, testutil.ToFloat64(second.requests.WithLabelValues("get", "license", "200", "none")))
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	registry := prometheus.NewRegistry()
	m, err := NewHTTPMetrics(registry, Config{})
	require.NoError(t, err)

	r := gin.New()
	r.Use(GinMiddleware(m))
	r.GET("/core/v2/rest/:resource", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for range 3 {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/core/v2/rest/product", nil))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requests.WithLabelValues("get", "/core/v2/rest/:resource", "404")))
}

func TestEntityInstruments(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := New(Config{ServiceName: "mock"}, provider)
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordEntityOperation(ctx, "licensetemplate", "create", "ok")
	m.RecordEntityOperation(ctx, "licensetemplate", "create", "ok")
	m.RecordRejection(ctx, "licensetemplate", "IllegalOperationException")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	totals := map[string]int64{}
	for _, metric := range rm.ScopeMetrics[0].Metrics {
		sum, ok := metric.Data.(metricdata.Sum[int64])
		require.True(t, ok)
		for _, point := range sum.DataPoints {
			totals[metric.Name] += point.Value
		}
	}
	assert.Equal(t, int64(2), totals["netlicensing_entity_operations_total"])
	assert.Equal(t, int64(1), totals["netlicensing_validation_rejections_total"])
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	m.RecordEntityOperation(context.Background(), "product", "get", "ok")

	var rm *RESTMetrics
	rm.ObserveRequest("GET", "product", 200, time.Millisecond, nil)

	_, err := New(Config{}, noop.NewMeterProvider())
	assert.NoError(t, err)
}
