// Package config loads runtime settings from defaults, an optional TOML file,
// an optional .env file and the process environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment keys.
const (
	EnvConfigFile     = "CONFIG_FILE"
	EnvPort           = "PORT"
	EnvLogLevel       = "LOG_LEVEL"
	EnvFunctionName   = "FUNCTION_NAME"
	EnvMetricsEnabled = "METRICS_ENABLED"
)

// Config holds everything the hosts need at startup.
type Config struct {
	Port           string       `toml:"port"`
	LogLevel       string       `toml:"log_level"`
	FunctionName   string       `toml:"function_name"`
	MetricsEnabled bool         `toml:"metrics_enabled"`
	Server         ServerConfig `toml:"server"`
}

// ServerConfig holds http.Server limits. Only the TOML file sets these.
type ServerConfig struct {
	ReadTimeout       time.Duration `toml:"read_timeout"`
	ReadHeaderTimeout time.Duration `toml:"read_header_timeout"`
	WriteTimeout      time.Duration `toml:"write_timeout"`
	IdleTimeout       time.Duration `toml:"idle_timeout"`
	ShutdownTimeout   time.Duration `toml:"shutdown_timeout"`
	MaxBodyBytes      int64         `toml:"max_body_bytes"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:           "8080",
		LogLevel:       "info",
		FunctionName:   "greeting",
		MetricsEnabled: true,
		Server: ServerConfig{
			ReadTimeout:       5 * time.Second,
			ReadHeaderTimeout: 2 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			MaxBodyBytes:      1 << 20,
		},
	}
}

// Load builds the configuration. envFiles defaults to ".env"; missing files are
// skipped. Values in envFiles never override variables already set in the
// process environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	dotenv := map[string]string{}
	for _, path := range envFiles {
		values, err := godotenv.Read(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("read env file %s: %w", path, err)
		}
		for k, v := range values {
			if _, ok := dotenv[k]; !ok {
				dotenv[k] = v
			}
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	cfg := Default()
	if path, ok := lookup(EnvConfigFile); ok && path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPort); ok && v != "" {
		c.Port = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvFunctionName); ok && v != "" {
		c.FunctionName = v
	}
	if v, ok := lookup(EnvMetricsEnabled); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvMetricsEnabled, err)
		}
		c.MetricsEnabled = enabled
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if c.FunctionName == "" {
		return errors.New("function name must not be empty")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
