// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "edinburgh.toml"

// Config represents the edinburgh configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	NATS      NATSConfig      `toml:"nats"`
	Search    SearchConfig    `toml:"search"`    // web-search tool
	Tools     ToolsConfig     `toml:"tools"`     // tool allow-list
	Agents    AgentsConfig    `toml:"agents"`    // user-defined agents
	Log       LogConfig       `toml:"log"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

// ServerConfig contains HTTP API settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// NATSConfig contains the NATS tool responder settings.
// An empty URL disables the responder.
type NATSConfig struct {
	URL           string `toml:"url"`
	SubjectPrefix string `toml:"subject_prefix"` // tools answer on <prefix>.<tool>
}

// SearchConfig contains web-search tool settings.
type SearchConfig struct {
	Endpoint     string `toml:"endpoint"`
	UserAgent    string `toml:"user_agent"`
	Timeout      int    `toml:"timeout"`       // seconds
	DefaultLimit int    `toml:"default_limit"` // results when the caller gives none
}

// ToolsConfig contains the tool allow-list.
type ToolsConfig struct {
	Enabled []string `toml:"enabled"` // empty = all built-in tools
}

// AgentsConfig contains agent definition settings.
type AgentsConfig struct {
	Dir string `toml:"dir"` // directory of *.md agent definitions
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `toml:"level"`  // debug|info|warn|error
	Format string `toml:"format"` // console|json
}

// TelemetryConfig contains telemetry settings.
type TelemetryConfig struct {
	Enabled     bool              `toml:"enabled"`
	ServiceName string            `toml:"service_name"`
	Endpoint    string            `toml:"endpoint"` // OTLP endpoint (e.g., localhost:4317)
	Protocol    string            `toml:"protocol"` // grpc (default) or http
	Insecure    bool              `toml:"insecure"` // Disable TLS (default false)
	Headers     map[string]string `toml:"headers"`
}

// New creates a new config with defaults.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":3000",
		},
		NATS: NATSConfig{
			SubjectPrefix: "edinburgh.tools",
		},
		Search: SearchConfig{
			Endpoint:     "https://html.duckduckgo.com/html/",
			UserAgent:    "Mozilla/5.0 (compatible; ResearchAgent/1.0)",
			Timeout:      30,
			DefaultLimit: 5,
		},
		Agents: AgentsConfig{
			Dir: "agents",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "edinburgh",
			Protocol:    "grpc",
		},
	}
}

// LoadFile loads configuration from a TOML file.
func LoadFile(path string) (*Config, error) {
	cfg := New()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads edinburgh.toml from the current directory. A missing file
// is not an error; defaults are returned instead.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	path := filepath.Join(cwd, DefaultFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := New()
		cfg.applyEnv()
		return cfg, cfg.Validate()
	}
	return LoadFile(path)
}

// Load loads path when given, otherwise falls back to LoadDefault.
func Load(path string) (*Config, error) {
	if path == "" {
		return LoadDefault()
	}
	return LoadFile(path)
}

// Environment overrides, applied after the file is decoded.
const (
	EnvLogLevel   = "EDINBURGH_LOG_LEVEL"
	EnvServerAddr = "EDINBURGH_SERVER_ADDR"
	EnvNATSURL    = "EDINBURGH_NATS_URL"
)

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvServerAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvNATSURL); v != "" {
		c.NATS.URL = v
	}
}

// Validate checks values that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	if c.Search.Timeout <= 0 {
		return fmt.Errorf("search.timeout: must be positive, got %d", c.Search.Timeout)
	}
	if c.Search.DefaultLimit <= 0 {
		return fmt.Errorf("search.default_limit: must be positive, got %d", c.Search.DefaultLimit)
	}
	if c.Telemetry.Enabled {
		switch c.Telemetry.Protocol {
		case "grpc", "http":
		default:
			return fmt.Errorf("telemetry.protocol: unknown protocol %q", c.Telemetry.Protocol)
		}
	}
	return nil
}

// ToolEnabled reports whether the allow-list permits name.
func (c *Config) ToolEnabled(name string) bool {
	if len(c.Tools.Enabled) == 0 {
		return true
	}
	for _, n := range c.Tools.Enabled {
		if n == name {
			return true
		}
	}
	return false
}
