package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"gamelib/internal/config"
	"gamelib/internal/domain/catalog"
)

const (
	defaultRunAddress = ":8080"
	defaultMigrations = "migrations/postgres"
)

type Config struct {
	Env    string
	DB     db
	Server server
}

type db struct {
	DatabaseURI string
	Migrations  string
}

type server struct {
	RunAddress string
	PageSize   int
	// APIKey, when set, must be passed as ?key= on every catalog request.
	APIKey string
}

// Load reads the catalog server configuration from .env and the environment.
func Load(v *viper.Viper) (*Config, error) {
	if _, err := config.LoadDotEnv(".env", "../../.env"); err != nil {
		return nil, err
	}

	v.AutomaticEnv()
	v.SetDefault("app_env", config.EnvLocal)
	v.SetDefault("run_address", defaultRunAddress)
	v.SetDefault("database_uri", "")
	v.SetDefault("migrations_path", defaultMigrations)
	v.SetDefault("catalog_page_size", catalog.DefaultPageSize)
	v.SetDefault("api_key", "")

	cfg := &Config{
		Env: v.GetString("app_env"),
		DB: db{
			DatabaseURI: v.GetString("database_uri"),
			Migrations:  v.GetString("migrations_path"),
		},
		Server: server{
			RunAddress: v.GetString("run_address"),
			PageSize:   v.GetInt("catalog_page_size"),
			APIKey:     v.GetString("api_key"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

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
	if c.DB.DatabaseURI == "" {
		return errors.New("database_uri must be set")
	}
	if c.Server.RunAddress == "" {
		return errors.New("run_address must not be empty")
	}
	if c.Server.PageSize <= 0 || c.Server.PageSize > catalog.MaxPageSize {
		return fmt.Errorf("catalog_page_size must be within 1..%d", catalog.MaxPageSize)
	}
	return nil
}
