package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/iconhub/internal/domain"
)

// Drivers lists the supported store drivers.
var Drivers = []string{"valkey", "redis", "postgres", "memory"}

// Config holds the iconhub configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Export   ExportConfig   `yaml:"export"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	IdleTimeoutSec  int `yaml:"idle_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // valkey, redis, postgres, memory (default: valkey)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	DSN              string   `yaml:"dsn"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// CatalogConfig holds catalog query and import settings.
type CatalogConfig struct {
	DefaultPageSize int    `yaml:"default_page_size"`
	MaxPageSize     int    `yaml:"max_page_size"`
	AssetsBaseURL   string `yaml:"assets_base_url"`
	AssetsDir       string `yaml:"assets_dir"`
}

// ExportConfig holds settings of the catalog export endpoint.
// The endpoint is disabled while Keys is empty. Blank keys are dropped.
type ExportConfig struct {
	Keys   []string       `yaml:"keys"`
	Target DatabaseConfig `yaml:"target"`
}

// Enabled reports whether export is configured.
func (e ExportConfig) Enabled() bool { return len(e.Keys) > 0 }

// Domain converts the catalog section to use case settings.
func (c CatalogConfig) Domain() domain.CatalogConfig {
	return domain.CatalogConfig{
		PageSize:      c.DefaultPageSize,
		MaxPageSize:   c.MaxPageSize,
		AssetsBaseURL: c.AssetsBaseURL,
	}
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A .env file in the working directory, if present, is loaded first.
func Load(env string) (Config, error) {
	_ = godotenv.Load()

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML config data, expanding ${VAR} references first.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.IdleTimeoutSec <= 0 {
		c.HTTP.IdleTimeoutSec = 60
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	c.Database.applyDefaults()
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "iconhub:"
	}

	defaults := domain.DefaultCatalogConfig()
	if c.Catalog.DefaultPageSize <= 0 {
		c.Catalog.DefaultPageSize = defaults.PageSize
	}
	if c.Catalog.MaxPageSize <= 0 {
		c.Catalog.MaxPageSize = defaults.MaxPageSize
	}
	if c.Catalog.AssetsBaseURL == "" {
		c.Catalog.AssetsBaseURL = defaults.AssetsBaseURL
	}
	if c.Catalog.AssetsDir == "" {
		c.Catalog.AssetsDir = "."
	}

	c.Export.Keys = slices.DeleteFunc(c.Export.Keys, func(k string) bool {
		return strings.TrimSpace(k) == ""
	})
	if c.Export.Enabled() {
		c.Export.Target.applyDefaults()
	}
}

func (d *DatabaseConfig) applyDefaults() {
	if d.Driver == "" {
		d.Driver = "valkey"
	}
	if d.ReadinessTimeout <= 0 {
		d.ReadinessTimeout = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if err := c.Database.validate("database"); err != nil {
		return err
	}
	if c.Catalog.DefaultPageSize > c.Catalog.MaxPageSize {
		return fmt.Errorf(
			"catalog.default_page_size (%d) exceeds catalog.max_page_size (%d)",
			c.Catalog.DefaultPageSize, c.Catalog.MaxPageSize,
		)
	}
	if c.Export.Enabled() {
		if err := c.Export.Target.validate("export.target"); err != nil {
			return err
		}
	}
	return nil
}

func (d *DatabaseConfig) validate(section string) error {
	if !slices.Contains(Drivers, d.Driver) {
		return fmt.Errorf("%s.driver must be one of %s, got %q", section, strings.Join(Drivers, ", "), d.Driver)
	}
	switch d.Driver {
	case "valkey", "redis":
		if len(d.Addrs) == 0 {
			return fmt.Errorf("%s.addrs is required", section)
		}
	case "postgres":
		if d.DSN == "" {
			return fmt.Errorf("%s.dsn is required", section)
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
