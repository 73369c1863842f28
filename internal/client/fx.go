// Package client wires the REST transport and the entity services that
// run on top of it.
package client

import (
	"github.com/smallbiznis/netlicensing/internal/config"
	"github.com/smallbiznis/netlicensing/internal/license"
	"github.com/smallbiznis/netlicensing/internal/licensee"
	"github.com/smallbiznis/netlicensing/internal/licensetemplate"
	"github.com/smallbiznis/netlicensing/internal/product"
	"github.com/smallbiznis/netlicensing/internal/productmodule"
	"github.com/smallbiznis/netlicensing/internal/reference"
	"github.com/smallbiznis/netlicensing/pkg/rest"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("client",
	fx.Provide(
		NewClient,
		func(c *rest.Client) rest.Transport { return c },
	),
	product.Module,
	productmodule.Module,
	licensetemplate.Module,
	licensee.Module,
	license.Module,
	reference.Module,
)

type Params struct {
	fx.In

	Config         config.Config
	Log            *zap.Logger
	Observer       rest.Observer        `optional:"true"`
	TracerProvider trace.TracerProvider `optional:"true"`
}

// NewClient builds the REST client from the configured endpoint and
// credentials.
func NewClient(p Params) (*rest.Client, error) {
	return rest.NewClient(rest.Config{
		BaseURL:  p.Config.BaseURL,
		Username: p.Config.Username,
		Password: p.Config.Password,
		APIKey:   p.Config.APIKey,
		Timeout:  p.Config.Timeout,
	},
		rest.WithLogger(p.Log),
		rest.WithObserver(p.Observer),
		rest.WithTracerProvider(p.TracerProvider),
		rest.WithPropagator(otel.GetTextMapPropagator()),
	)
}
