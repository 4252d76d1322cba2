package configloader

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultServerPort        = "8080"
	defaultDaysOption        = "30d"
	defaultMaxWalletsPerRun  = 500
	defaultMaxConcurrency    = 10
	defaultCacheTTLMinutes   = 15
	defaultCacheCleanupMins  = 30
	defaultSwaggerPath       = "/swagger"
	defaultSwaggerSpecFile   = "docs/swagger.yaml"
	defaultServerTimeoutSecs = 15
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AnalysisConfig controls how wallet requests are turned into statistics.
type AnalysisConfig struct {
	DefaultDaysOption       string  `yaml:"default_days_option"`
	MaxWalletsPerRun        int     `yaml:"max_wallets_per_run"`
	MaxConcurrency          int     `yaml:"max_concurrency"`
	RequestsPerSecond       float64 `yaml:"requests_per_second"` // 0 disables the limiter
	Burst                   int     `yaml:"burst"`
	StrictAddressValidation bool    `yaml:"strict_address_validation"`
}

// CacheConfig holds configuration for the stats cache used by the HTTP API.
type CacheConfig struct {
	TTLMinutes             int `yaml:"ttlMinutes"`
	CleanupIntervalMinutes int `yaml:"cleanupIntervalMinutes"`
	// PreloadFile is an optional results file whose records seed the cache at startup.
	PreloadFile string `yaml:"preloadFile"`
}

// SwaggerConfig holds configuration for Swagger UI.
type SwaggerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Path     string `yaml:"path"`
	SpecFile string `yaml:"specFile"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	Analysis AnalysisConfig `yaml:"analysis"`
	// SupportedChains lists enabled chains; empty enables all of them.
	SupportedChains []string      `yaml:"supported_chains"`
	Cache           CacheConfig   `yaml:"cache"`
	Swagger         SwaggerConfig `yaml:"swagger"`

	// LegacyDefaultDaysOption is the top-level key older settings files use.
	LegacyDefaultDaysOption string `yaml:"default_days_option"`
}

// Load reads the configuration file from the given path and unmarshals it.
// JSON settings files are accepted as well, since JSON is valid YAML.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}
	return cfg, nil
}

// Parse unmarshals raw configuration data and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = defaultServerPort
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = defaultServerTimeoutSecs
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = defaultServerTimeoutSecs
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 4 * defaultServerTimeoutSecs
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Analysis.DefaultDaysOption == "" {
		if cfg.LegacyDefaultDaysOption != "" {
			cfg.Analysis.DefaultDaysOption = cfg.LegacyDefaultDaysOption
		} else {
			cfg.Analysis.DefaultDaysOption = defaultDaysOption
			logrus.Infof("analysis.default_days_option not set, defaulting to %s", defaultDaysOption)
		}
	}
	if cfg.Analysis.MaxWalletsPerRun <= 0 {
		cfg.Analysis.MaxWalletsPerRun = defaultMaxWalletsPerRun
		logrus.Infof("analysis.max_wallets_per_run not set, defaulting to %d", defaultMaxWalletsPerRun)
	}
	if cfg.Analysis.MaxConcurrency <= 0 {
		cfg.Analysis.MaxConcurrency = defaultMaxConcurrency
	}
	if cfg.Analysis.RequestsPerSecond < 0 {
		logrus.Warnf("analysis.requests_per_second is negative (%v), disabling the limiter", cfg.Analysis.RequestsPerSecond)
		cfg.Analysis.RequestsPerSecond = 0
	}
	if cfg.Analysis.RequestsPerSecond > 0 && cfg.Analysis.Burst <= 0 {
		cfg.Analysis.Burst = 1
	}

	if cfg.Cache.TTLMinutes <= 0 {
		cfg.Cache.TTLMinutes = defaultCacheTTLMinutes
	}
	if cfg.Cache.CleanupIntervalMinutes <= 0 {
		cfg.Cache.CleanupIntervalMinutes = defaultCacheCleanupMins
	}

	if cfg.Swagger.Path == "" {
		cfg.Swagger.Path = defaultSwaggerPath
	}
	if cfg.Swagger.SpecFile == "" {
		cfg.Swagger.SpecFile = defaultSwaggerSpecFile
	}
}
