package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App     AppConfig
	Log     LogConfig
	Pricing PricingConfig
	Metrics MetricsConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Version     string
}

type LogConfig struct {
	Level      string
	Format     string
	OutputPath string
}

type PricingConfig struct {
	// SpecialistMultiplier scales the base price for specialist
	// appointments. Standard appointments always charge the base price.
	SpecialistMultiplier float64
}

type MetricsConfig struct {
	Enabled bool
	// Addr for the observability endpoint, e.g. ":9090".
	Addr            string
	Namespace       string
	ShutdownTimeout time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "clinicdesk"),
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "0.0.0"),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			OutputPath: getEnv("LOG_OUTPUT", "stdout"),
		},
		Pricing: PricingConfig{
			SpecialistMultiplier: getEnvFloat("PRICING_SPECIALIST_MULTIPLIER", 1.25),
		},
		Metrics: MetricsConfig{
			Enabled:   getEnvBool("METRICS_ENABLED", false),
			Addr:            getEnv("METRICS_ADDR", ":9090"),
			Namespace:       getEnv("METRICS_NAMESPACE", "clinicdesk"),
			ShutdownTimeout: getEnvDuration("METRICS_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	var errs []string

	if cfg.Pricing.SpecialistMultiplier <= 0 {
		errs = append(errs, "PRICING_SPECIALIST_MULTIPLIER must be positive")
	}

	switch cfg.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Sprintf("LOG_FORMAT %q is not supported (json, console)", cfg.Log.Format))
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Addr == "" {
		errs = append(errs, "METRICS_ADDR is required when METRICS_ENABLED=true")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
