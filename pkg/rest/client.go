package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/smallbiznis/netlicensing/internal/apierror"
	"github.com/smallbiznis/netlicensing/pkg/log/ctxlogger"
	"github.com/smallbiznis/netlicensing/pkg/telemetry/correlation"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://go.netlicensing.io/core/v2/rest"
	DefaultTimeout = 30 * time.Second

	// APIKeyUser is the basic-auth user name paired with an API key.
	APIKeyUser = "apiKey"

	tracerName  = "github.com/smallbiznis/netlicensing/pkg/rest"
	maxBodySize = 4 << 20
)

var ErrInvalidBaseURL = errors.New("invalid_base_url")

type Config struct {
	BaseURL  string
	Username string
	Password string
	APIKey   string
	Timeout  time.Duration
}

// Observer is notified once per completed call.
type Observer interface {
	ObserveRequest(method, resource string, status int, elapsed time.Duration, err error)
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log.Named("rest.client")
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

func WithPropagator(p propagation.TextMapPropagator) Option {
	return func(c *Client) { c.propagator = p }
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		if tp != nil {
			c.tracer = tp.Tracer(tracerName)
		}
	}
}

// Client is the HTTP Transport.
type Client struct {
	baseURL    *url.URL
	cfg        Config
	http       *http.Client
	log        *zap.Logger
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
	observer   Observer
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(raw)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{
		baseURL: base,
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		log:     zap.NewNop(),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Do(ctx context.Context, req Request) (*Envelope, error) {
	ctx, _ = correlation.EnsureCorrelationID(ctx)
	ctx = ctxlogger.ContextWithResource(ctx, req.Resource)

	ctx, span := c.tracer.Start(ctx, "netlicensing."+req.Resource,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("netlicensing.resource", req.Resource),
		),
	)
	defer span.End()

	start := time.Now()
	env, status, err := c.do(ctx, req)
	elapsed := time.Since(start)

	span.SetAttributes(attribute.Int("http.response.status_code", status))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if c.observer != nil {
		c.observer.ObserveRequest(req.Method, req.Resource, status, elapsed, err)
	}

	log := ctxlogger.WithContext(ctx, c.log)
	if err != nil {
		log.Debug("request failed",
			zap.String("method", req.Method),
			zap.String("path", req.Path()),
			zap.Int("status", status),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return nil, err
	}
	log.Debug("request completed",
		zap.String("method", req.Method),
		zap.String("path", req.Path()),
		zap.Int("status", status),
		zap.Duration("elapsed", elapsed),
	)
	return env, nil
}

func (c *Client) do(ctx context.Context, req Request) (*Envelope, int, error) {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, 0, apierror.Transport("failed to build request", err)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, 0, apierror.Transport("request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, resp.StatusCode, apierror.Transport("failed to read response", err)
	}

	env := &Envelope{}
	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, env); err != nil {
			if resp.StatusCode >= http.StatusBadRequest {
				return nil, resp.StatusCode, statusError(resp.StatusCode)
			}
			return nil, resp.StatusCode, apierror.Transport("failed to decode response", err)
		}
	}

	if info, ok := env.ErrorInfo(); ok {
		return nil, resp.StatusCode, apierror.FromServiceInfo(info.ID, info.Value)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, resp.StatusCode, statusError(resp.StatusCode)
	}
	return env, resp.StatusCode, nil
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target := c.baseURL.JoinPath(req.Path())
	var body io.Reader
	encoded := req.Params.Encode()
	if method == http.MethodPost || method == http.MethodPut {
		body = strings.NewReader(encoded)
	} else if encoded != "" {
		target.RawQuery = encoded
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	switch {
	case c.cfg.APIKey != "":
		httpReq.SetBasicAuth(APIKeyUser, c.cfg.APIKey)
	case c.cfg.Username != "":
		httpReq.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	}

	correlation.InjectHeaders(ctx, httpReq.Header)
	propagator := c.propagator
	if propagator == nil {
		propagator = otel.GetTextMapPropagator()
	}
	propagator.Inject(ctx, propagation.HeaderCarrier(httpReq.Header))
	return httpReq, nil
}

func statusError(status int) error {
	if status == http.StatusNotFound {
		return apierror.NotFound(http.StatusText(status))
	}
	return apierror.FromServiceInfo("", fmt.Sprintf("%d %s", status, http.StatusText(status)))
}
