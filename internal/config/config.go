package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	JWT        JWTConfig
	Log        LogConfig
	Validation ValidationConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT verification settings.
type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
	Issuer      string        `mapstructure:"issuer"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ValidationConfig holds validation engine settings. Per-rule overrides use
// the separate VALIDATION_RULE_* variables read by the config resolver.
type ValidationConfig struct {
	ConfigTTL         time.Duration `mapstructure:"config_ttl"`
	PriceHistoryLimit int           `mapstructure:"price_history_limit"`
	RuleTimeout       time.Duration `mapstructure:"rule_timeout"`
}

// Load reads configuration from environment variables with the VERISTACK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("VERISTACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "veristack")
	v.SetDefault("db.password", "veristack_secret")
	v.SetDefault("db.name", "veristack_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.token_expiry", "15m")
	v.SetDefault("jwt.issuer", "veristack")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Validation engine defaults
	v.SetDefault("validation.config_ttl", "5m")
	v.SetDefault("validation.price_history_limit", 50)
	v.SetDefault("validation.rule_timeout", "10s")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "VERISTACK_SERVER_PORT",
		"server.read_timeout":            "VERISTACK_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "VERISTACK_SERVER_WRITE_TIMEOUT",
		"server.environment":             "VERISTACK_SERVER_ENVIRONMENT",
		"db.host":                        "VERISTACK_DB_HOST",
		"db.port":                        "VERISTACK_DB_PORT",
		"db.user":                        "VERISTACK_DB_USER",
		"db.password":                    "VERISTACK_DB_PASSWORD",
		"db.name":                        "VERISTACK_DB_NAME",
		"db.sslmode":                     "VERISTACK_DB_SSLMODE",
		"db.max_open":                    "VERISTACK_DB_MAX_OPEN",
		"db.max_idle":                    "VERISTACK_DB_MAX_IDLE",
		"jwt.secret":                     "VERISTACK_JWT_SECRET",
		"jwt.token_expiry":               "VERISTACK_JWT_TOKEN_EXPIRY",
		"jwt.issuer":                     "VERISTACK_JWT_ISSUER",
		"log.level":                      "VERISTACK_LOG_LEVEL",
		"log.format":                     "VERISTACK_LOG_FORMAT",
		"validation.config_ttl":          "VERISTACK_VALIDATION_CONFIG_TTL",
		"validation.price_history_limit": "VERISTACK_VALIDATION_PRICE_HISTORY_LIMIT",
		"validation.rule_timeout":        "VERISTACK_VALIDATION_RULE_TIMEOUT",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
