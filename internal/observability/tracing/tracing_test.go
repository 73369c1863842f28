package tracing

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func TestSafeAttributesDropsCredentials(t *testing.T) {
	attrs := SafeAttributes(
		attribute.String("http.route", "/core/v2/rest/product"),
		attribute.String("api_key", "secret"),
		attribute.String("auth.password", "x"),
	)
	require.Len(t, attrs, 1)
	assert.Equal(t, attribute.Key("http.route"), attrs[0].Key)
}

func TestSafeError(t *testing.T) {
	assert.NoError(t, SafeError(nil))
	assert.EqualError(t, SafeError(errors.New("invalid Authorization header")), "request failed")

	plain := errors.New("boom")
	assert.Same(t, plain, SafeError(plain))
}

func TestNewProviderWithoutExport(t *testing.T) {
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	tp, err := NewProvider(nil, Config{ServiceName: "netlicensing", SamplingRatio: 1}, zap.NewNop())
	require.NoError(t, err)
	assert.Same(t, tp, otel.GetTracerProvider())

	_, err = newExporter(t.Context(), "carrier-pigeon", "")
	assert.Error(t, err)
}

func TestGinMiddlewareRecordsServerSpan(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/core/v2/rest/product/:number", func(c *gin.Context) {
		_ = c.Error(errors.New("storage unavailable"))
		c.Status(http.StatusInternalServerError)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/core/v2/rest/product/P1", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "HTTP GET /core/v2/rest/product/:number", spans[0].Name())
	assert.Len(t, spans[0].Events(), 1)
}
