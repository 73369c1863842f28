package correlation

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestEnsureCorrelationIDKeepsExisting(t *testing.T) {
	ctx := ContextWithCorrelationID(context.Background(), "cid-1")
	_, cid := EnsureCorrelationID(ctx)
	assert.Equal(t, "cid-1", cid)

	ctx, generated := EnsureCorrelationID(context.Background())
	require.NotEmpty(t, generated)
	assert.Equal(t, generated, ExtractCorrelationID(ctx))
}

func TestInjectAndReadHeaders(t *testing.T) {
	h := http.Header{}
	cid, rid := InjectHeaders(ContextWithCorrelationID(context.Background(), "cid-2"), h)
	assert.Equal(t, "cid-2", cid)
	assert.Equal(t, "cid-2", h.Get(HeaderCorrelationID))
	assert.Equal(t, rid, h.Get(HeaderRequestID))
	assert.Len(t, rid, 36)

	ctx, got := FromHeaders(context.Background(), h)
	assert.Equal(t, "cid-2", got)
	assert.Equal(t, "cid-2", ExtractCorrelationID(ctx))
}

func TestContextWithRemoteSpan(t *testing.T) {
	ctx := ContextWithRemoteSpan(context.Background(), "4bf92f3577b34da6a3ce929d0e0e4736", "00f067aa0ba902b7")
	sc := trace.SpanContextFromContext(ctx)
	assert.True(t, sc.IsValid())
	assert.True(t, sc.IsRemote())

	unchanged := ContextWithRemoteSpan(context.Background(), "bad", "ids")
	assert.False(t, trace.SpanContextFromContext(unchanged).IsValid())
}
