// Package config loads service settings from the environment and an optional
// energymonitor.yaml file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	GRPC    GRPCConfig    `mapstructure:"grpc"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Store   StoreConfig   `mapstructure:"store"`
	Billing BillingConfig `mapstructure:"billing"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type GRPCConfig struct {
	Addr string `mapstructure:"addr"`
	// MetricsAddr serves /metrics for the gRPC process; empty disables it.
	MetricsAddr string `mapstructure:"metrics_addr"`
}

type HTTPConfig struct {
	Addr       string `mapstructure:"addr"`
	GRPCTarget string `mapstructure:"grpc_target"`
	// GRPCWaitTimeoutMs bounds how long the gateway waits for the gRPC health
	// check at startup.
	GRPCWaitTimeoutMs int `mapstructure:"grpc_wait_timeout_ms"`
}

type StoreConfig struct {
	CSVPath string `mapstructure:"csv_path"`
}

type BillingConfig struct {
	// Timezone is the IANA zone used for calendar months, days and hours.
	Timezone string `mapstructure:"timezone"`
	// Region is billed when a request does not name one.
	Region string `mapstructure:"region"`
}

type LoggingConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

func (c HTTPConfig) GRPCWait() time.Duration {
	return time.Duration(c.GRPCWaitTimeoutMs) * time.Millisecond
}

// Location resolves the configured timezone.
func (c BillingConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Load reads configuration. Environment variables win over the config file,
// which wins over the defaults.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("energymonitor")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetDefault("grpc.addr", ":9090")
	v.SetDefault("grpc.metrics_addr", ":9091")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.grpc_target", "127.0.0.1:9090")
	v.SetDefault("http.grpc_wait_timeout_ms", 20_000)
	v.SetDefault("store.csv_path", "readings.csv")
	v.SetDefault("billing.timezone", "UTC")
	v.SetDefault("billing.region", "Saudi Arabia")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.development", false)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("grpc.addr", "GRPC_ADDR")
	_ = v.BindEnv("grpc.metrics_addr", "METRICS_ADDR")
	_ = v.BindEnv("http.addr", "HTTP_ADDR")
	_ = v.BindEnv("http.grpc_target", "GRPC_TARGET")
	_ = v.BindEnv("http.grpc_wait_timeout_ms", "GRPC_WAIT_TIMEOUT_MS")
	_ = v.BindEnv("store.csv_path", "CSV_PATH")
	_ = v.BindEnv("billing.timezone", "TIMEZONE")
	_ = v.BindEnv("billing.region", "DEFAULT_REGION")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("logging.development", "LOG_DEVELOPMENT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.HTTP.GRPCWaitTimeoutMs < 0 {
		cfg.HTTP.GRPCWaitTimeoutMs = 0
	}
	return &cfg, nil
}
