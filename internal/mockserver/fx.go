package mockserver

import (
	"github.com/casbin/casbin/v2"
	"github.com/smallbiznis/netlicensing/internal/config"
	licensedomain "github.com/smallbiznis/netlicensing/internal/license/domain"
	licenseservice "github.com/smallbiznis/netlicensing/internal/license/service"
	licenseedomain "github.com/smallbiznis/netlicensing/internal/licensee/domain"
	licenseeservice "github.com/smallbiznis/netlicensing/internal/licensee/service"
	templatedomain "github.com/smallbiznis/netlicensing/internal/licensetemplate/domain"
	templateservice "github.com/smallbiznis/netlicensing/internal/licensetemplate/service"
	"github.com/smallbiznis/netlicensing/internal/mockserver/store"
	productdomain "github.com/smallbiznis/netlicensing/internal/product/domain"
	productservice "github.com/smallbiznis/netlicensing/internal/product/service"
	moduledomain "github.com/smallbiznis/netlicensing/internal/productmodule/domain"
	moduleservice "github.com/smallbiznis/netlicensing/internal/productmodule/service"
	"github.com/smallbiznis/netlicensing/internal/reference"
	"github.com/smallbiznis/netlicensing/pkg/rest"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Module runs the mock service: the domain services on top of the
// embedded store, behind the HTTP routes, listening on mock.addr. A
// *snowflake.Node must be supplied by the application.
var Module = fx.Module("mockserver",
	fx.Provide(
		provideDBConfig,
		provideCredentials,
		provideEnforcer,
		NewAuthorizer,
	),
	store.Module,
	reference.Module,
	fx.Provide(
		provideProductRepository,
		provideModuleRepository,
		provideTemplateRepository,
		provideLicenseeRepository,
		provideLicenseRepository,
	),
	fx.Provide(
		productservice.New,
		moduleservice.New,
		templateservice.New,
		licenseeservice.New,
		licenseservice.New,
	),
	fx.Provide(NewServer),
	fx.Invoke(run),
)

func provideDBConfig(cfg config.Config) store.DBConfig {
	return store.DBConfig{DSN: cfg.Mock.DSN}
}

func provideCredentials(cfg config.Config) Credentials {
	return Credentials{
		Username: cfg.Mock.Username,
		Password: cfg.Mock.Password,
		APIKey:   cfg.Mock.APIKey,
	}
}

func provideEnforcer(db *gorm.DB, creds Credentials, log *zap.Logger) (*casbin.SyncedEnforcer, error) {
	enforcer, err := NewEnforcer(db, creds)
	if err != nil {
		return nil, err
	}
	if !creds.enabled() {
		log.Warn("mock service credentials not configured, serving requests anonymously")
	}
	return enforcer, nil
}

func provideProductRepository(s *store.Store) productdomain.Repository {
	return store.Provide[productdomain.Product](s, rest.ResourceProduct)
}

func provideModuleRepository(s *store.Store) moduledomain.Repository {
	return store.Provide[moduledomain.ProductModule](s, rest.ResourceProductModule)
}

func provideTemplateRepository(s *store.Store) templatedomain.Repository {
	return store.Provide[templatedomain.LicenseTemplate](s, rest.ResourceLicenseTemplate)
}

func provideLicenseeRepository(s *store.Store) licenseedomain.Repository {
	return store.Provide[licenseedomain.Licensee](s, rest.ResourceLicensee)
}

func provideLicenseRepository(s *store.Store) licensedomain.Repository {
	return store.Provide[licensedomain.License](s, rest.ResourceLicense)
}
