package logger

import (
	"context"
	"strings"

	"github.com/smallbiznis/netlicensing/internal/config"
	"github.com/smallbiznis/netlicensing/pkg/log/ctxlogger"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewFromConfig creates a zap logger from Config and replaces globals.
func NewFromConfig(appCfg config.Config) (*zap.Logger, zap.AtomicLevel, error) {
	log, level, err := New(Config{
		ServiceName: appCfg.AppName,
		Environment: appCfg.Environment,
		Version:     appCfg.AppVersion,
		Level:       appCfg.Log.Level,
		Format:      appCfg.Log.Format,
		Debug:       appCfg.IsDevelopment(),
		OutputPaths: outputPaths(appCfg.Log.Output),
	})
	if err != nil {
		return nil, level, err
	}

	ctxlogger.SetServiceName(appCfg.AppName)
	zap.ReplaceGlobals(log)
	return log, level, nil
}

func outputPaths(output string) []string {
	output = strings.TrimSpace(output)
	if output == "" {
		return nil
	}
	return []string{output}
}

func registerHooks(lc fx.Lifecycle, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = ctx
			_ = log.Sync()
			return nil
		},
	})
}

type watchParams struct {
	fx.In

	Viper *viper.Viper `optional:"true"`
	Log   *zap.Logger
	Level zap.AtomicLevel
}

func watchLevel(p watchParams) {
	if p.Viper == nil {
		return
	}
	config.Watch(p.Viper, p.Log.Named("config"), func(cfg config.Config) {
		if err := SetLevel(p.Level, cfg.Log.Level); err != nil {
			p.Log.Warn("log level not changed", zap.Error(err))
		}
	})
}

// Module wires the global zap logger for the application.
var Module = fx.Module("logger",
	fx.Provide(
		NewFromConfig,
	),
	fx.Invoke(registerHooks),
	fx.Invoke(watchLevel),
)
