package licensee

import (
	"github.com/smallbiznis/netlicensing/internal/licensee/repository"
	"github.com/smallbiznis/netlicensing/internal/licensee/service"
	"go.uber.org/fx"
)

var Module = fx.Module("licensee.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
