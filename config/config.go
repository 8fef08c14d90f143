// file: treekit/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/rskv-p/treekit/pkg/x_log"
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "TREEKIT_"

// EnvConfigPath names the env var holding the config file path.
const EnvConfigPath = "TREEKIT_CONFIG"

// Config holds all runtime settings of treekit.
type Config struct {
	Log       x_log.Config `json:"log" mapstructure:"log"`
	DB        DBConfig     `json:"db" mapstructure:"db"`
	HTTP      HTTPConfig   `json:"http" mapstructure:"http"`
	NATS      NATSConfig   `json:"nats" mapstructure:"nats"`
	Branching int          `json:"branching" mapstructure:"branching"`
}

// DBConfig selects the snapshot store.
type DBConfig struct {
	Dialect string `json:"dialect" mapstructure:"dialect"` // sqlite | postgres
	DSN     string `json:"dsn" mapstructure:"dsn"`
	Debug   bool   `json:"debug" mapstructure:"debug"`
}

// HTTPConfig configures the inspection API.
type HTTPConfig struct {
	Addr        string        `json:"addr" mapstructure:"addr"`
	JWTSecret   string        `json:"jwt_secret" mapstructure:"jwt_secret"`
	TokenTTL    time.Duration `json:"token_ttl" mapstructure:"token_ttl"`
	ReadTimeout time.Duration `json:"read_timeout" mapstructure:"read_timeout"`

	// Users maps a login name to its bcrypt password hash.
	Users map[string]string `json:"users,omitempty" mapstructure:"users"`
}

// NATSConfig configures the visit event bus.
type NATSConfig struct {
	URL     string        `json:"url" mapstructure:"url"`
	Subject string        `json:"subject" mapstructure:"subject"`
	Service string        `json:"service" mapstructure:"service"` // endpoint subject prefix
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

// ----------------------------------------------------
// Defaults
// ----------------------------------------------------

// Default returns a default config.
func Default() *Config {
	return &Config{
		Log: x_log.DefaultConfig(),
		DB: DBConfig{
			Dialect: "sqlite",
			DSN:     "treekit.db",
		},
		HTTP: HTTPConfig{
			Addr:        "127.0.0.1:8080",
			TokenTTL:    time.Hour,
			ReadTimeout: 10 * time.Second,
		},
		NATS: NATSConfig{
			URL:     "nats://127.0.0.1:4222",
			Subject: "treekit.visit",
			Service: "treekit",
			Timeout: 5 * time.Second,
		},
		Branching: 2,
	}
}

// ----------------------------------------------------
// Loading
// ----------------------------------------------------

// Load reads a JSON config file, expanding ${ENV} references. Keys absent
// from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	data = ReplaceEnvVars(data)

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config json: %w", err)
	}
	return Decode(raw)
}

// Decode builds a Config from a raw map on top of the defaults.
func Decode(raw map[string]any) (*Config, error) {
	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, fmt.Errorf("config decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables using prefix.
func (cfg *Config) ApplyEnv(prefix string) {
	cfg.Log.Level = GetEnvStr(prefix+"LOG_LEVEL", cfg.Log.Level)
	cfg.Log.LogFile = GetEnvStr(prefix+"LOG_FILE", cfg.Log.LogFile)
	cfg.Log.ToFile = GetEnvBool(prefix+"LOG_TO_FILE", cfg.Log.ToFile)
	cfg.Log.Style = GetEnvStr(prefix+"LOG_STYLE", cfg.Log.Style)

	cfg.DB.Dialect = GetEnvStr(prefix+"DB_DIALECT", cfg.DB.Dialect)
	cfg.DB.DSN = GetEnvStr(prefix+"DB_DSN", cfg.DB.DSN)
	cfg.DB.Debug = GetEnvBool(prefix+"DB_DEBUG", cfg.DB.Debug)

	cfg.HTTP.Addr = GetEnvStr(prefix+"HTTP_ADDR", cfg.HTTP.Addr)
	cfg.HTTP.JWTSecret = GetEnvStr(prefix+"HTTP_JWT_SECRET", cfg.HTTP.JWTSecret)
	cfg.HTTP.TokenTTL = GetEnvDuration(prefix+"HTTP_TOKEN_TTL", cfg.HTTP.TokenTTL)
	cfg.HTTP.ReadTimeout = GetEnvDuration(prefix+"HTTP_READ_TIMEOUT", cfg.HTTP.ReadTimeout)

	cfg.NATS.URL = GetEnvStr(prefix+"NATS_URL", cfg.NATS.URL)
	cfg.NATS.Subject = GetEnvStr(prefix+"NATS_SUBJECT", cfg.NATS.Subject)
	cfg.NATS.Service = GetEnvStr(prefix+"NATS_SERVICE", cfg.NATS.Service)
	cfg.NATS.Timeout = GetEnvDuration(prefix+"NATS_TIMEOUT", cfg.NATS.Timeout)

	cfg.Branching = GetEnvInt(prefix+"BRANCHING", cfg.Branching)
}

// LoadWithFallback loads path (or $TREEKIT_CONFIG, or defaults when
// neither is set), applies TREEKIT_* overrides and validates.
func LoadWithFallback(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.ApplyEnv(EnvPrefix)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ----------------------------------------------------
// Validation & dump
// ----------------------------------------------------

// Validate checks config for required values.
func (cfg *Config) Validate() error {
	var missing []string
	switch cfg.DB.Dialect {
	case "sqlite", "postgres":
	default:
		missing = append(missing, fmt.Sprintf("db.dialect(%q)", cfg.DB.Dialect))
	}
	if cfg.DB.DSN == "" {
		missing = append(missing, "db.dsn")
	}
	if cfg.HTTP.Addr == "" {
		missing = append(missing, "http.addr")
	}
	if cfg.NATS.Subject == "" {
		missing = append(missing, "nats.subject")
	}
	if cfg.NATS.Service == "" {
		missing = append(missing, "nats.service")
	}
	if cfg.Branching < 1 {
		missing = append(missing, fmt.Sprintf("branching(%d)", cfg.Branching))
	}
	if len(missing) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (cfg *Config) String() string {
	data, _ := json.MarshalIndent(cfg.redacted(), "", "  ")
	return string(data)
}

// Dump writes the config as indented JSON, secrets masked.
func (cfg *Config) Dump(w io.Writer) {
	_, _ = io.WriteString(w, cfg.String())
}

func (cfg *Config) redacted() Config {
	c := *cfg
	if c.HTTP.JWTSecret != "" {
		c.HTTP.JWTSecret = "***"
	}
	if len(c.HTTP.Users) > 0 {
		users := make(map[string]string, len(c.HTTP.Users))
		for name := range c.HTTP.Users {
			users[name] = "***"
		}
		c.HTTP.Users = users
	}
	return c
}
