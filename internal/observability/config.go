package observability

import (
	"strings"

	"github.com/smallbiznis/netlicensing/internal/config"
)

// Config holds observability configuration derived from the application config.
type Config struct {
	ServiceName string
	Environment string
	Version     string

	LogLevel  string
	LogFormat string

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string
	OtelSamplingRatio    float64

	MetricsNamespace string
}

func LoadConfig(cfg config.Config) Config {
	serviceName := strings.TrimSpace(cfg.AppName)
	if serviceName == "" {
		serviceName = "netlicensing"
	}
	namespace := strings.TrimSpace(cfg.Metrics.Namespace)
	if namespace == "" {
		namespace = config.DefaultNamespace
	}

	return Config{
		ServiceName:          serviceName,
		Environment:          cfg.Environment,
		Version:              strings.TrimSpace(cfg.AppVersion),
		LogLevel:             cfg.Log.Level,
		LogFormat:            cfg.Log.Format,
		OtelEnabled:          cfg.Otel.Enabled,
		OtelExporterEndpoint: cfg.Otel.Endpoint,
		OtelExporterProtocol: cfg.Otel.Protocol,
		OtelSamplingRatio:    cfg.Otel.SamplingRatio,
		MetricsNamespace:     namespace,
	}
}

func (c Config) Debug() bool {
	if strings.EqualFold(strings.TrimSpace(c.LogLevel), "debug") {
		return true
	}
	return isDevEnv(c.Environment)
}

func isDevEnv(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	switch env {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}
