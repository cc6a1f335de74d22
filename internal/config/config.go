package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/lorenzquack/agora-rest/pkg/rest"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName      string `mapstructure:"app_name"`
	Env          string `mapstructure:"app_env"`
	LogLevel     string `mapstructure:"log_level"`
	BaseURL      string `mapstructure:"base_url"`
	BodyEncoding string `mapstructure:"body_encoding"`
	RequestsFile string `mapstructure:"requests_file"`
}

// DefaultEnvFile is read before the environment; missing files are ignored.
const DefaultEnvFile = "configs/.env"

// Load reads configuration from environment variables and the default .env file.
func Load() (*Config, error) {
	return LoadFrom(DefaultEnvFile)
}

// LoadFrom is Load with an explicit .env path.
func LoadFrom(envFile string) (*Config, error) {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}

	v := viper.New()

	v.SetDefault("app_name", "agora-rest")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("base_url", rest.DefaultBaseURL)
	v.SetDefault("body_encoding", "form")
	v.SetDefault("requests_file", "./configs/requests.yaml")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.BodyEncoding = strings.ToLower(strings.TrimSpace(cfg.BodyEncoding))
	if err := (rest.Config{BaseURL: cfg.BaseURL, BodyEncoding: cfg.BodyEncoding}).Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
