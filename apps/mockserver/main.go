package main

import (
	"os"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/netlicensing/internal/config"
	"github.com/smallbiznis/netlicensing/internal/logger"
	"github.com/smallbiznis/netlicensing/internal/mockserver"
	"github.com/smallbiznis/netlicensing/internal/observability"
	"github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	flags := pflag.NewFlagSet("mockserver", pflag.ExitOnError)
	flags.String("mock.addr", config.DefaultMockAddr, "listen address")
	flags.String("mock.dsn", "", "SQLite data source; blank keeps the data in memory")
	flags.String("mock.username", "", "vendor user name; blank disables authentication")
	flags.String("mock.password", "", "vendor password")
	flags.String("mock.api_key", "", "API key granted licensee and license operations")
	flags.String("log.level", "info", "log level")
	_ = flags.Parse(os.Args[1:])

	app := fx.New(
		fx.Supply(flags),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		mockserver.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
