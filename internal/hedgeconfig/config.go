package hedgeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix = "hedge"

	// DefaultServiceURL is the hosted backtest computation endpoint. The
	// service owns the simulation math; this repo only talks to it.
	DefaultServiceURL = "https://web-production-c5eac.up.railway.app/backtest_mvp"
)

type Config struct {
	Service ServiceConfig `mapstructure:"service"`
	Api     ApiConfig     `mapstructure:"api"`
}

type ServiceConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type ApiConfig struct {
	Port int `mapstructure:"port"`
}

func (c ServiceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load reads hedge.yaml if present and applies HEDGE_* env overrides on top
// of the defaults. A missing config file is fine - every setting has a
// usable default.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("hedge")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Valid(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.base_url", DefaultServiceURL)
	v.SetDefault("service.timeout_seconds", 60)
	v.SetDefault("api.port", 3009)
}

func (c Config) Valid() error {
	if c.Service.BaseURL == "" {
		return fmt.Errorf("service.base_url is required")
	}
	if c.Service.TimeoutSeconds <= 0 {
		return fmt.Errorf("service.timeout_seconds must be > 0, got %d", c.Service.TimeoutSeconds)
	}
	if c.Api.Port <= 0 || c.Api.Port > 65535 {
		return fmt.Errorf("api.port must be a valid port, got %d", c.Api.Port)
	}
	return nil
}
