// Package config loads tlaudit settings from an optional YAML file and
// TLAUDIT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZaguanLabs/tlaudit"
	"github.com/ZaguanLabs/tlaudit/cache"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override (TLAUDIT_LOG_LEVEL).
const EnvPrefix = "TLAUDIT"

// Config holds every setting of the CLI and MCP server.
type Config struct {
	TargetLanguage string       `mapstructure:"target_language"`
	ExceptionsFile string       `mapstructure:"exceptions_file"`
	Concurrency    int          `mapstructure:"concurrency"`
	Report         ReportConfig `mapstructure:"report"`
	Log            LogConfig    `mapstructure:"log"`
	Cache          CacheConfig  `mapstructure:"cache"`
	MCP            MCPConfig    `mapstructure:"mcp"`
}

type ReportConfig struct {
	Format string `mapstructure:"format"` // text, json or html
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

type CacheConfig struct {
	Backend   string        `mapstructure:"backend"` // none, memory or redis
	Size      int           `mapstructure:"size"`
	TTL       time.Duration `mapstructure:"ttl"`
	RedisURL  string        `mapstructure:"redis_url"`
	KeyPrefix string        `mapstructure:"key_prefix"`
}

// Options converts the section into cache.New arguments.
func (c CacheConfig) Options() cache.Config {
	return cache.Config{
		Backend:    c.Backend,
		Size:       c.Size,
		TTL:        c.TTL,
		RedisURL:   c.RedisURL,
		KeyPrefix:  c.KeyPrefix,
		ClientName: tlaudit.UserAgent(),
	}
}

type MCPConfig struct {
	Transport string `mapstructure:"transport"` // stdio or http
	Addr      string `mapstructure:"addr"`
	Path      string `mapstructure:"path"`
}

// Load reads configuration. An explicit path must exist; otherwise
// tlaudit.yaml is looked up in the working directory, ./config and
// $HOME/.config/tlaudit, and its absence is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("tlaudit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "tlaudit"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Validate checks enumerated values and numeric ranges.
func (c *Config) Validate() error {
	if c.Concurrency < 1 {
		return &tlaudit.ConfigError{Key: "concurrency", Message: fmt.Sprintf("must be at least 1, got %d", c.Concurrency)}
	}
	if err := oneOf("report.format", c.Report.Format, "text", "json", "html"); err != nil {
		return err
	}
	if err := oneOf("log.level", c.Log.Level, "debug", "info", "warn", "error"); err != nil {
		return err
	}
	if err := oneOf("log.format", c.Log.Format, "json", "console"); err != nil {
		return err
	}
	if err := oneOf("cache.backend", c.Cache.Backend, cache.BackendNone, cache.BackendMemory, cache.BackendRedis); err != nil {
		return err
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.RedisURL == "" {
		return &tlaudit.ConfigError{Key: "cache.redis_url", Message: "required for the redis backend"}
	}
	if c.Cache.Size < 0 {
		return &tlaudit.ConfigError{Key: "cache.size", Message: "must not be negative"}
	}
	if err := oneOf("mcp.transport", c.MCP.Transport, "stdio", "http"); err != nil {
		return err
	}
	return nil
}

func oneOf(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &tlaudit.ConfigError{
		Key:     key,
		Message: fmt.Sprintf("unsupported value %q (want one of %s)", value, strings.Join(allowed, ", ")),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("target_language", tlaudit.DefaultLanguage)
	v.SetDefault("exceptions_file", "")
	v.SetDefault("concurrency", 4)

	v.SetDefault("report.format", "text")

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	v.SetDefault("cache.backend", cache.BackendNone)
	v.SetDefault("cache.size", 10000)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.key_prefix", cache.DefaultKeyPrefix)

	v.SetDefault("mcp.transport", "stdio")
	v.SetDefault("mcp.addr", "127.0.0.1:8090")
	v.SetDefault("mcp.path", "/mcp")
}
