package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	Groq       GroqConfig       `mapstructure:"groq"`
	Generation GenerationConfig `mapstructure:"generation"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Cache      CacheConfig      `mapstructure:"cache"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig holds the sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// AuthConfig holds the session token settings.
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// GeminiConfig holds the Gemini generation settings.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// GroqConfig holds the Groq fallback generation settings.
type GroqConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// GenerationConfig holds the sampling parameters shared by all providers.
type GenerationConfig struct {
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// RateLimitConfig holds the API rate limit settings.
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// CacheConfig holds the file side-cache settings.
type CacheConfig struct {
	Dir string `mapstructure:"dir"`
}

// Load reads the configuration from the environment (optionally via a .env
// file loaded beforehand), applies defaults and validates it.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("server.port", "PORT")
	v.BindEnv("database.path", "DATABASE_PATH")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	v.BindEnv("gemini.model", "GEMINI_MODEL")
	v.BindEnv("groq.api_key", "GROQ_API_KEY")
	v.BindEnv("groq.model", "GROQ_MODEL")
	v.BindEnv("generation.max_tokens", "GENERATION_MAX_TOKENS")
	v.BindEnv("generation.timeout", "GENERATION_TIMEOUT")
	v.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	v.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	v.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	v.BindEnv("cache.dir", "CACHE_DIR")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("app.debug", "APP_DEBUG")
	v.BindEnv("app.log_level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.version", "1.0.0")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")

	v.SetDefault("database.path", "data/planner.db")
	v.SetDefault("cache.dir", "data/cache")

	v.SetDefault("auth.token_ttl", "720h")

	v.SetDefault("gemini.model", "gemini-1.5-flash")
	v.SetDefault("groq.model", "llama-3.3-70b-versatile")

	v.SetDefault("generation.max_tokens", 4000)
	v.SetDefault("generation.temperature", 0.7)
	v.SetDefault("generation.timeout", "120s")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 {
		return fmt.Errorf("server port is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable not set")
	}
	if cfg.Gemini.APIKey == "" && cfg.Groq.APIKey == "" {
		return fmt.Errorf("either GEMINI_API_KEY or GROQ_API_KEY must be set")
	}
	if cfg.Generation.MaxTokens <= 0 {
		return fmt.Errorf("invalid generation max tokens")
	}
	if cfg.RateLimit.Enabled && cfg.RateLimit.Requests <= 0 {
		return fmt.Errorf("invalid rate limit requests")
	}
	return nil
}
