package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents runtime configuration for the service.
type Config struct {
	Server    ServerConfig              `mapstructure:"server"`
	Log       LogConfig                 `mapstructure:"log"`
	Assistant AssistantConfig           `mapstructure:"assistant"`
	Providers map[string]ProviderConfig `mapstructure:"providers"`
	Database  DatabaseConfig            `mapstructure:"database"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Mode    string `mapstructure:"mode"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AssistantConfig selects the model provider used by the chat controller.
type AssistantConfig struct {
	Provider  string `mapstructure:"provider"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

type ProviderConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	APIKey  string `mapstructure:"api_key"`
}

// DatabaseConfig points at the record store. An empty DSN means the store is not
// configured; the service still starts and answers with empty data.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

const (
	ProviderClaude = "claude"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	DefaultClaudeModel = "claude-sonnet-4-5-20250929"
	DefaultMaxTokens   = 2048
)

// credentialEnv maps each provider to the plain environment variable the hosted
// deployments already export.
var credentialEnv = map[string]string{
	ProviderClaude: "ANTHROPIC_API_KEY",
	ProviderOpenAI: "OPENAI_API_KEY",
	ProviderGemini: "GEMINI_API_KEY",
}

var supportedDrivers = map[string]bool{
	"postgres": true,
	"sqlite3":  true,
	"mysql":    true,
}

// Load reads configuration from the provided path. An empty path searches for
// config.yaml in the working directory and ./configs; a missing file is not an error.
// Values can be overridden with LEDES_* environment variables, and a .env file in the
// working directory is loaded first when present.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("LEDES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	overrideFromEnv(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8090")
	v.SetDefault("server.mode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("assistant.provider", ProviderClaude)
	v.SetDefault("assistant.max_tokens", DefaultMaxTokens)
	v.SetDefault("providers.claude.model", DefaultClaudeModel)
	v.SetDefault("providers.claude.api_key", "")
	v.SetDefault("providers.claude.base_url", "")
	v.SetDefault("providers.openai.model", "gpt-4o-mini")
	v.SetDefault("providers.openai.api_key", "")
	v.SetDefault("providers.openai.base_url", "")
	v.SetDefault("providers.gemini.model", "gemini-2.5-flash")
	v.SetDefault("providers.gemini.api_key", "")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "")
}

// overrideFromEnv fills values that are still empty from the well-known variables.
func overrideFromEnv(cfg *Config) {
	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}
	for name, env := range credentialEnv {
		p := cfg.Providers[name]
		if p.APIKey == "" {
			p.APIKey = os.Getenv(env)
		}
		cfg.Providers[name] = p
	}
	if cfg.Database.DSN == "" {
		for _, env := range []string{"SUPABASE_DB_URL", "DATABASE_URL"} {
			if val := os.Getenv(env); val != "" {
				cfg.Database.DSN = val
				break
			}
		}
	}
}

func validate(cfg *Config) error {
	cfg.Assistant.Provider = strings.ToLower(strings.TrimSpace(cfg.Assistant.Provider))
	if _, ok := credentialEnv[cfg.Assistant.Provider]; !ok {
		return fmt.Errorf("unsupported provider: %s", cfg.Assistant.Provider)
	}
	if cfg.Assistant.MaxTokens <= 0 {
		cfg.Assistant.MaxTokens = DefaultMaxTokens
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	if cfg.Database.Driver == "sqlite" {
		cfg.Database.Driver = "sqlite3"
	}
	if !supportedDrivers[cfg.Database.Driver] {
		return fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	return nil
}

// ActiveProvider returns the selected provider name and its settings.
func (c *Config) ActiveProvider() (string, ProviderConfig) {
	name := c.Assistant.Provider
	return name, c.Providers[name]
}

// StoreConfigured reports whether a record store DSN is present.
func (c *Config) StoreConfigured() bool {
	return strings.TrimSpace(c.Database.DSN) != ""
}
