package mockserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/netlicensing/internal/config"
	"github.com/smallbiznis/netlicensing/internal/entity"
	licensedomain "github.com/smallbiznis/netlicensing/internal/license/domain"
	licenseedomain "github.com/smallbiznis/netlicensing/internal/licensee/domain"
	templatedomain "github.com/smallbiznis/netlicensing/internal/licensetemplate/domain"
	"github.com/smallbiznis/netlicensing/internal/mockserver/store"
	"github.com/smallbiznis/netlicensing/internal/observability"
	obslogger "github.com/smallbiznis/netlicensing/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/netlicensing/internal/observability/metrics"
	obstracing "github.com/smallbiznis/netlicensing/internal/observability/tracing"
	productdomain "github.com/smallbiznis/netlicensing/internal/product/domain"
	moduledomain "github.com/smallbiznis/netlicensing/internal/productmodule/domain"
	refdomain "github.com/smallbiznis/netlicensing/internal/reference/domain"
	"github.com/smallbiznis/netlicensing/pkg/rest"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// BasePath is where the REST resources are mounted, matching the path of
// the hosted service.
const BasePath = "/core/v2/rest"

type Params struct {
	fx.In

	Log           *zap.Logger
	Observability observability.Config `optional:"true"`
	Products      productdomain.Service
	Modules       moduledomain.Service
	Templates     templatedomain.Service
	Licensees     licenseedomain.Service
	Licenses      licensedomain.Service
	Reference     refdomain.Repository
	Authorizer    *Authorizer             `optional:"true"`
	Metrics       *obsmetrics.Metrics     `optional:"true"`
	HTTPMetrics   *obsmetrics.HTTPMetrics `optional:"true"`
}

// Server is an in-process stand-in for the licensing service.
type Server struct {
	engine    *gin.Engine
	log       *zap.Logger
	reference refdomain.Repository
	auth      *Authorizer
	handlers  map[string]resourceHandler
}

func NewServer(p Params) *Server {
	s := &Server{
		engine:    NewEngine(p.Observability, p.HTTPMetrics),
		log:       p.Log.Named("mockserver"),
		reference: p.Reference,
		auth:      p.Authorizer,
		handlers:  newHandlers(p),
	}
	s.RegisterRoutes()
	return s
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func (s *Server) RegisterRoutes() {
	api := s.engine.Group(BasePath)
	api.Use(s.auth.Middleware())

	api.GET("/utility/licenseTypes", s.ListLicenseTypes)
	api.GET("/utility/licensingModels", s.ListLicensingModels)
	api.GET("/utility/paymentMethods", s.ListPaymentMethods)
	api.GET("/utility/paymentMethods/:method", s.GetPaymentMethod)

	api.POST("/:resource", s.dispatch(resourceHandler.Create))
	api.GET("/:resource", s.dispatch(resourceHandler.List))
	api.GET("/:resource/:number", s.dispatch(resourceHandler.Get))
	api.POST("/:resource/:number", s.dispatch(resourceHandler.Update))
	api.DELETE("/:resource/:number", s.dispatch(resourceHandler.Delete))
}

// dispatch routes a request to the handler of its :resource.
func (s *Server) dispatch(op func(resourceHandler, *gin.Context)) gin.HandlerFunc {
	return func(c *gin.Context) {
		h, ok := s.handlers[c.Param("resource")]
		if !ok {
			AbortWithError(c, store.ErrUnknownResource)
			return
		}
		op(h, c)
	}
}

func newHandlers(p Params) map[string]resourceHandler {
	return map[string]resourceHandler{
		rest.ResourceProduct: &endpoint[productdomain.Product]{
			resource: rest.ResourceProduct,
			itemType: rest.TypeProduct,
			metrics:  p.Metrics,
			create:   p.Products.Create,
			get:      p.Products.Get,
			list: func(ctx context.Context, filter string) (*entity.Page[productdomain.Product], error) {
				return p.Products.List(ctx, productdomain.ListRequest{Filter: filter})
			},
			update: p.Products.Update,
			delete: p.Products.Delete,
		},
		rest.ResourceProductModule: &endpoint[moduledomain.ProductModule]{
			resource: rest.ResourceProductModule,
			itemType: rest.TypeProductModule,
			metrics:  p.Metrics,
			create: func(ctx context.Context, m *moduledomain.ProductModule) (*moduledomain.ProductModule, error) {
				return p.Modules.Create(ctx, m.ProductNumber, m)
			},
			get: p.Modules.Get,
			list: func(ctx context.Context, filter string) (*entity.Page[moduledomain.ProductModule], error) {
				return p.Modules.List(ctx, moduledomain.ListRequest{Filter: filter})
			},
			update: p.Modules.Update,
			delete: p.Modules.Delete,
		},
		rest.ResourceLicenseTemplate: &endpoint[templatedomain.LicenseTemplate]{
			resource: rest.ResourceLicenseTemplate,
			itemType: rest.TypeLicenseTemplate,
			metrics:  p.Metrics,
			create: func(ctx context.Context, t *templatedomain.LicenseTemplate) (*templatedomain.LicenseTemplate, error) {
				return p.Templates.Create(ctx, t.ProductModuleNumber, t)
			},
			get: p.Templates.Get,
			list: func(ctx context.Context, filter string) (*entity.Page[templatedomain.LicenseTemplate], error) {
				return p.Templates.List(ctx, templatedomain.ListRequest{Filter: filter})
			},
			update: p.Templates.Update,
			delete: p.Templates.Delete,
		},
		rest.ResourceLicensee: &endpoint[licenseedomain.Licensee]{
			resource: rest.ResourceLicensee,
			itemType: rest.TypeLicensee,
			metrics:  p.Metrics,
			create: func(ctx context.Context, l *licenseedomain.Licensee) (*licenseedomain.Licensee, error) {
				return p.Licensees.Create(ctx, l.ProductNumber, l)
			},
			get: p.Licensees.Get,
			list: func(ctx context.Context, filter string) (*entity.Page[licenseedomain.Licensee], error) {
				return p.Licensees.List(ctx, licenseedomain.ListRequest{Filter: filter})
			},
			update: p.Licensees.Update,
			delete: p.Licensees.Delete,
		},
		rest.ResourceLicense: &endpoint[licensedomain.License]{
			resource: rest.ResourceLicense,
			itemType: rest.TypeLicense,
			metrics:  p.Metrics,
			create: func(ctx context.Context, l *licensedomain.License) (*licensedomain.License, error) {
				return p.Licenses.Create(ctx, licensedomain.CreateRequest{
					LicenseeNumber:        l.LicenseeNumber,
					LicenseTemplateNumber: l.LicenseTemplateNumber,
					License:               l,
				})
			},
			get: p.Licenses.Get,
			list: func(ctx context.Context, filter string) (*entity.Page[licensedomain.License], error) {
				return p.Licenses.List(ctx, licensedomain.ListRequest{Filter: filter})
			},
			update: p.Licenses.Update,
			delete: p.Licenses.Delete,
		},
	}
}

func run(lc fx.Lifecycle, cfg config.Config, s *Server, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.Mock.Addr,
		Handler: s.Handler(),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("mock service listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
