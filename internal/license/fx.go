package license

import (
	"github.com/smallbiznis/netlicensing/internal/license/repository"
	"github.com/smallbiznis/netlicensing/internal/license/service"
	"go.uber.org/fx"
)

var Module = fx.Module("license.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
