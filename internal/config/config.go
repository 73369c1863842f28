package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

const (
	EnvPrefix  = "NETLICENSING"
	ConfigName = "netlicensing"

	DefaultBaseURL   = "https://go.netlicensing.io/core/v2/rest"
	DefaultMockAddr  = ":8089"
	DefaultNamespace = "netlicensing"
)

var ErrInvalidConfig = errors.New("invalid_config")

// Config holds application configuration.
type Config struct {
	AppName     string `mapstructure:"app_name"`
	AppVersion  string `mapstructure:"app_version"`
	Environment string `mapstructure:"environment"`

	BaseURL  string        `mapstructure:"base_url"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`

	Log     LogConfig     `mapstructure:"log"`
	Otel    OtelConfig    `mapstructure:"otel"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Mock    MockConfig    `mapstructure:"mock"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// Output is a zap sink such as stdout, stderr or a file path.
	Output string `mapstructure:"output"`
}

type OtelConfig struct {
	Enabled       bool    `mapstructure:"enabled"`
	Endpoint      string  `mapstructure:"endpoint"`
	Protocol      string  `mapstructure:"protocol"`
	SamplingRatio float64 `mapstructure:"sampling_ratio"`
}

type MetricsConfig struct {
	Namespace string `mapstructure:"namespace"`
}

type MockConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	APIKey   string `mapstructure:"api_key"`
	// DSN of the SQLite database backing the mock. Blank keeps it in memory.
	DSN      string `mapstructure:"dsn"`
}

// Module provides the viper instance and Config. A *pflag.FlagSet in the
// graph is bound on top of file and environment values.
var Module = fx.Module("config",
	fx.Provide(provideViper, FromViper),
)

type viperParams struct {
	fx.In

	Flags *pflag.FlagSet `optional:"true"`
}

func provideViper(p viperParams) (*viper.Viper, error) {
	return New(p.Flags)
}

// SetDefaults registers every known key so environment variables bind even
// without a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "netlicensing")
	v.SetDefault("app_version", "0.1.0")
	v.SetDefault("environment", "development")
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("username", "")
	v.SetDefault("password", "")
	v.SetDefault("api_key", "")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("otel.enabled", false)
	v.SetDefault("otel.endpoint", "localhost:4317")
	v.SetDefault("otel.protocol", "grpc")
	v.SetDefault("otel.sampling_ratio", 0.1)
	v.SetDefault("metrics.namespace", DefaultNamespace)
	v.SetDefault("mock.addr", DefaultMockAddr)
	v.SetDefault("mock.username", "")
	v.SetDefault("mock.password", "")
	v.SetDefault("mock.api_key", "")
	v.SetDefault("mock.dsn", "")
}

// New returns a viper instance reading defaults, an optional netlicensing.yaml
// and NETLICENSING_* environment variables. flags, when given, take
// precedence over everything else.
func New(flags *pflag.FlagSet) (*viper.Viper, error) {
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)

	v.SetConfigName(ConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.netlicensing")
	v.AddConfigPath("/etc/netlicensing")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Load builds Config from New(flags).
func Load(flags *pflag.FlagSet) (Config, error) {
	v, err := New(flags)
	if err != nil {
		return Config{}, err
	}
	return FromViper(v)
}

func FromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	normalize(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func normalize(cfg *Config) {
	cfg.AppName = strings.TrimSpace(cfg.AppName)
	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.Username = strings.TrimSpace(cfg.Username)
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	cfg.Otel.Endpoint = strings.TrimSpace(cfg.Otel.Endpoint)
	cfg.Otel.Protocol = strings.ToLower(strings.TrimSpace(cfg.Otel.Protocol))
	cfg.Metrics.Namespace = strings.TrimSpace(cfg.Metrics.Namespace)
	cfg.Mock.Addr = strings.TrimSpace(cfg.Mock.Addr)
	cfg.Mock.DSN = strings.TrimSpace(cfg.Mock.DSN)
}

func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: base_url is empty", ErrInvalidConfig)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if c.Otel.SamplingRatio < 0 || c.Otel.SamplingRatio > 1 {
		return fmt.Errorf("%w: otel.sampling_ratio must be within [0, 1]", ErrInvalidConfig)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// IsDevelopment reports whether the environment is a local one.
func (c Config) IsDevelopment() bool {
	switch c.Environment {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}
