package productmodule

import (
	"github.com/smallbiznis/netlicensing/internal/productmodule/repository"
	"github.com/smallbiznis/netlicensing/internal/productmodule/service"
	"go.uber.org/fx"
)

var Module = fx.Module("productmodule.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
