package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level service configuration
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Log    LogConfig    `mapstructure:"log"`
	AI     AIConfig     `mapstructure:"ai"`
}

type ServerConfig struct {
	Port        string `mapstructure:"port"`
	CORSOrigins string `mapstructure:"cors_origins"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwt_secret"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours"`
}

type LogConfig struct {
	Mode string `mapstructure:"mode"`
}

// envBindings keeps the plain environment names the deployment already uses
var envBindings = map[string][]string{
	"server.port":          {"PORT"},
	"server.cors_origins":  {"CORS_ALLOWED_ORIGINS"},
	"mongo.uri":            {"MONGO_URI"},
	"mongo.database":       {"MONGO_DB"},
	"redis.addr":           {"REDIS_URI", "REDIS_ADDR"},
	"auth.jwt_secret":      {"JWT_SECRET"},
	"auth.token_ttl_hours": {"TOKEN_TTL_HOURS"},
	"log.mode":             {"LOG_MODE"},
	"ai.provider":          {"AI_PROVIDER"},
	"ai.api_key":           {"AI_API_KEY"},
	"ai.gemini_api_key":    {"GEMINI_API_KEY"},
	"ai.groq_api_key":      {"GROQ_API_KEY"},
	"ai.base_url":          {"AI_BASE_URL"},
	"ai.model":             {"AI_MODEL"},
	"ai.timeout_ms":        {"AI_TIMEOUT_MS"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.cors_origins", "*")
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "mindwell")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("auth.jwt_secret", "change-me-in-production")
	v.SetDefault("auth.token_ttl_hours", 24)
	v.SetDefault("log.mode", "dev")
	v.SetDefault("ai.provider", ProviderGemini)
}

// Load reads config.yaml (optional) from the given paths, then the environment
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.AI = withProviderDefaults(cfg.AI)
	if cfg.AI.APIKey == "" {
		// Only the selected provider's own key; a key for the other provider would be rejected.
		cfg.AI.APIKey = v.GetString(providerKeySetting(cfg.AI.Provider))
	}
	cfg.Redis.Addr = strings.TrimPrefix(cfg.Redis.Addr, "redis://")
	return &cfg, nil
}

// providerKeySetting names the per-provider key setting, e.g. "ai.groq_api_key"
func providerKeySetting(provider string) string {
	return "ai." + provider + "_api_key"
}

// withProviderDefaults fills unset AI fields from the provider's defaults
func withProviderDefaults(ai AIConfig) AIConfig {
	def := DefaultAIConfig(ai.Provider)
	if ai.BaseURL == "" {
		ai.BaseURL = def.BaseURL
	}
	if ai.Model == "" {
		ai.Model = def.Model
	}
	if ai.TimeoutMS <= 0 {
		ai.TimeoutMS = def.TimeoutMS
	}
	ai.Provider = def.Provider
	return ai
}
