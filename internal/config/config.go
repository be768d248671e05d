// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Tracers.
const (
	TracerNone        = "none"
	TracerOpenTracing = "opentracing"
	TracerOTel        = "otel"
)

// Config holds every server setting.
type Config struct {
	Addr            string        `env:"ADDR" envDefault:":4000"`
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"gamereviews"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	StoreBackend    string        `env:"STORE_BACKEND" envDefault:"memory"`
	SQLitePath      string        `env:"SQLITE_PATH" envDefault:"gamereviews.db"`
	Seed            bool          `env:"SEED" envDefault:"true"`
	MaxParallelism  int           `env:"MAX_PARALLELISM" envDefault:"10"`
	MaxDepth        int           `env:"MAX_DEPTH" envDefault:"10"`
	Tracer          string        `env:"TRACER" envDefault:"none"`
	OTelEndpoint    string        `env:"OTEL_ENDPOINT"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// DotEnvFiles are loaded, when present, before the environment is parsed.
// Values already set in the process environment win.
var DotEnvFiles = []string{".env", ".env.local"}

// Load reads the optional dotenv files and parses the environment.
func Load() (Config, error) {
	for _, f := range DotEnvFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return Parse()
}

// Parse parses the environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate reports settings that cannot be served.
func (c Config) Validate() error {
	var errs []error
	switch c.StoreBackend {
	case BackendMemory, BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend))
	}
	switch c.Tracer {
	case TracerNone, TracerOpenTracing, TracerOTel:
	default:
		errs = append(errs, fmt.Errorf("unknown TRACER %q", c.Tracer))
	}
	if c.Tracer == TracerOTel && c.OTelEndpoint == "" {
		errs = append(errs, errors.New("OTEL_ENDPOINT is required when TRACER=otel"))
	}
	if c.MaxParallelism < 1 {
		errs = append(errs, fmt.Errorf("MAX_PARALLELISM must be positive, got %d", c.MaxParallelism))
	}
	if c.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("MAX_DEPTH must be positive, got %d", c.MaxDepth))
	}
	return errors.Join(errs...)
}
