package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"gamelib/internal/config"
	"gamelib/internal/domain/catalog"
)

const (
	defaultEnv             = config.EnvLocal
	defaultCatalogBaseURL  = "https://api.rawg.io/api"
	defaultPageSize        = 20
	defaultPopularOrdering = string(catalog.OrderByRating)
	defaultHTTPTimeout     = 30 * time.Second
	defaultRetryDelay      = time.Second
	defaultConfigDir       = ".gamelib"
	defaultDataFile        = "games.db"
	configFileName         = "config.yaml"
)

type Config struct {
	Env string `mapstructure:"app_env"`

	CatalogBaseURL  string        `mapstructure:"catalog_base_url"`
	APIKey          string        `mapstructure:"catalog_api_key"`
	PageSize        int           `mapstructure:"catalog_page_size"`
	PopularOrdering string        `mapstructure:"popular_ordering"`
	HTTPTimeout     time.Duration `mapstructure:"http_timeout"`
	MaxRetries      int           `mapstructure:"max_retries"`
	RetryDelay      time.Duration `mapstructure:"retry_delay"`
	// RateLimit is the maximum number of catalog requests per second. Zero disables limiting.
	RateLimit float64 `mapstructure:"rate_limit"`
	// OperationTimeout bounds each search. Zero means no timeout.
	OperationTimeout time.Duration `mapstructure:"operation_timeout"`

	ConfigDir     string `mapstructure:"config_dir"`
	DataPath      string `mapstructure:"data_path"`
	LogFile       string `mapstructure:"log_file"`
	WatchExternal bool   `mapstructure:"watch_external"`
}

// SetDefaults registers every client setting on v so environment variables are picked up.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app_env", defaultEnv)
	v.SetDefault("catalog_base_url", defaultCatalogBaseURL)
	v.SetDefault("catalog_api_key", "")
	v.SetDefault("catalog_page_size", defaultPageSize)
	v.SetDefault("popular_ordering", defaultPopularOrdering)
	v.SetDefault("http_timeout", defaultHTTPTimeout)
	v.SetDefault("max_retries", 0)
	v.SetDefault("retry_delay", defaultRetryDelay)
	v.SetDefault("rate_limit", 0)
	v.SetDefault("operation_timeout", 0)
	v.SetDefault("config_dir", "")
	v.SetDefault("data_path", "")
	v.SetDefault("log_file", "")
	v.SetDefault("watch_external", true)
}

// Load reads the client configuration from .env, the environment and an
// optional config.yaml inside the config directory. Values already bound on v
// (for example command line flags) take precedence.
func Load(v *viper.Viper) (*Config, error) {
	if _, err := config.LoadDotEnv(".env", "../.env"); err != nil {
		return nil, err
	}

	v.AutomaticEnv()
	SetDefaults(v)

	configDir := v.GetString("config_dir")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "."
		}
		configDir = filepath.Join(homeDir, defaultConfigDir)
	}

	configFile := filepath.Join(configDir, configFileName)
	if _, err := os.Stat(configFile); err == nil {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.ConfigDir = configDir
	if cfg.DataPath == "" {
		cfg.DataPath = filepath.Join(configDir, defaultDataFile)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load with a fresh viper instance that panics on error.
func MustLoad() *Config {
	cfg, err := Load(viper.New())
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) validate() error {
	if !config.ValidEnv(c.Env) {
		return fmt.Errorf("unknown app_env %q", c.Env)
	}
	if c.CatalogBaseURL == "" {
		return errors.New("catalog_base_url must not be empty")
	}
	if c.PageSize <= 0 || c.PageSize > catalog.MaxPageSize {
		return fmt.Errorf("catalog_page_size must be within 1..%d", catalog.MaxPageSize)
	}
	if !catalog.Ordering(c.PopularOrdering).Valid() {
		return fmt.Errorf("unknown popular_ordering %q", c.PopularOrdering)
	}
	if c.HTTPTimeout < 0 || c.OperationTimeout < 0 || c.RetryDelay < 0 {
		return errors.New("timeouts must not be negative")
	}
	if c.MaxRetries < 0 {
		return errors.New("max_retries must not be negative")
	}
	if c.RateLimit < 0 {
		return errors.New("rate_limit must not be negative")
	}
	return nil
}

func (c *Config) IsProd() bool {
	return c.Env == config.EnvProd
}

func (c *Config) IsDev() bool {
	return c.Env == config.EnvDev
}

func (c *Config) IsLocal() bool {
	return c.Env == config.EnvLocal || c.Env == ""
}
