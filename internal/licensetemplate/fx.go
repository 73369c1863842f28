package licensetemplate

import (
	"github.com/smallbiznis/netlicensing/internal/licensetemplate/repository"
	"github.com/smallbiznis/netlicensing/internal/licensetemplate/service"
	"go.uber.org/fx"
)

var Module = fx.Module("licensetemplate.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
