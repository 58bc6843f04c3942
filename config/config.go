package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv           string   `mapstructure:"APP_ENV"`
	Port             string   `mapstructure:"PORT"`
	LogLevel         string   `mapstructure:"LOG_LEVEL"`
	DBUser           string   `mapstructure:"DB_USER"`
	DBPassword       string   `mapstructure:"DB_PASSWORD"`
	DBHost           string   `mapstructure:"DB_HOST"`
	DBPort           string   `mapstructure:"DB_PORT"`
	DBName           string   `mapstructure:"DB_NAME"`
	JournalEnabled   bool     `mapstructure:"JOURNAL_ENABLED"`
	WSAllowedOrigins []string `mapstructure:"WS_ALLOWED_ORIGINS"`
}

var keys = []string{
	"APP_ENV", "PORT", "LOG_LEVEL",
	"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME",
	"JOURNAL_ENABLED", "WS_ALLOWED_ORIGINS",
}

var (
	cfg     *Config
	cfgErr  error
	once    sync.Once
	warning string
)

// LoadConfig loads the process configuration once and caches it.
func LoadConfig() (*Config, error) {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			warning = ".env file not found, relying on environment variables"
		}
		cfg, cfgErr = Load()
	})
	return cfg, cfgErr
}

// Warning reports a non-fatal problem met while loading, if any.
func Warning() string {
	return warning
}

// Load reads the environment without caching.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("JOURNAL_ENABLED", false)
	v.SetDefault("WS_ALLOWED_ORIGINS", "*")
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.WSAllowedOrigins = trimList(c.WSAllowedOrigins)
	if c.JournalEnabled && (c.DBHost == "" || c.DBName == "") {
		return nil, fmt.Errorf("JOURNAL_ENABLED requires DB_HOST and DB_NAME")
	}
	return c, nil
}

func (c *Config) IsDev() bool {
	return c.AppEnv == "development"
}

// OriginAllowed checks a websocket Origin header against WS_ALLOWED_ORIGINS.
func (c *Config) OriginAllowed(origin string) bool {
	for _, o := range c.WSAllowedOrigins {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

func trimList(in []string) []string {
	var out []string
	for _, part := range in {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
