package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig_LoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "edinburgh.toml")
	os.WriteFile(configPath, []byte(`
[server]
addr = ":8080"

[nats]
url = "nats://localhost:4222"
subject_prefix = "lab.tools"

[search]
endpoint = "http://search.local/html/"
user_agent = "test-agent"
timeout = 5
default_limit = 3

[tools]
enabled = ["classify-entropy", "calculator"]

[agents]
dir = "/srv/agents"

[log]
level = "debug"
format = "json"

[telemetry]
enabled = true
endpoint = "localhost:4318"
protocol = "http"
insecure = true
headers = { "x-team" = "research" }
`), 0644)

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("server.addr: expected ':8080', got %s", cfg.Server.Addr)
	}
	if cfg.NATS.URL != "nats://localhost:4222" {
		t.Errorf("nats.url: expected 'nats://localhost:4222', got %s", cfg.NATS.URL)
	}
	if cfg.NATS.SubjectPrefix != "lab.tools" {
		t.Errorf("nats.subject_prefix: expected 'lab.tools', got %s", cfg.NATS.SubjectPrefix)
	}
	if cfg.Search.Endpoint != "http://search.local/html/" {
		t.Errorf("search.endpoint: got %s", cfg.Search.Endpoint)
	}
	if cfg.Search.UserAgent != "test-agent" {
		t.Errorf("search.user_agent: got %s", cfg.Search.UserAgent)
	}
	if cfg.Search.Timeout != 5 {
		t.Errorf("search.timeout: expected 5, got %d", cfg.Search.Timeout)
	}
	if cfg.Search.DefaultLimit != 3 {
		t.Errorf("search.default_limit: expected 3, got %d", cfg.Search.DefaultLimit)
	}
	if len(cfg.Tools.Enabled) != 2 {
		t.Errorf("tools.enabled: expected 2 entries, got %v", cfg.Tools.Enabled)
	}
	if cfg.Agents.Dir != "/srv/agents" {
		t.Errorf("agents.dir: got %s", cfg.Agents.Dir)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log: got %+v", cfg.Log)
	}
	if !cfg.Telemetry.Enabled || cfg.Telemetry.Protocol != "http" || !cfg.Telemetry.Insecure {
		t.Errorf("telemetry: got %+v", cfg.Telemetry)
	}
	if cfg.Telemetry.Headers["x-team"] != "research" {
		t.Errorf("telemetry.headers: got %v", cfg.Telemetry.Headers)
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := New()

	if cfg.Server.Addr != ":3000" {
		t.Errorf("default addr should be ':3000', got %s", cfg.Server.Addr)
	}
	if cfg.Search.DefaultLimit != 5 {
		t.Errorf("default search limit should be 5, got %d", cfg.Search.DefaultLimit)
	}
	if cfg.Search.Timeout != 30 {
		t.Errorf("default search timeout should be 30, got %d", cfg.Search.Timeout)
	}
	if cfg.NATS.URL != "" {
		t.Errorf("NATS should be disabled by default, got %s", cfg.NATS.URL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestConfig_PartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "edinburgh.toml")
	os.WriteFile(configPath, []byte(`
[server]
addr = "127.0.0.1:9000"
`), 0644)

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("expected addr override, got %s", cfg.Server.Addr)
	}
	if cfg.Search.Endpoint != "https://html.duckduckgo.com/html/" {
		t.Errorf("expected default search endpoint, got %s", cfg.Search.Endpoint)
	}
}

func TestConfig_LoadDefault(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	os.WriteFile(DefaultFile, []byte(`
[agents]
dir = "custom-agents"
`), 0644)

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Agents.Dir != "custom-agents" {
		t.Errorf("expected dir 'custom-agents', got %s", cfg.Agents.Dir)
	}
}

func TestConfig_LoadDefaultMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("missing default file should not fail: %v", err)
	}
	if cfg.Server.Addr != ":3000" {
		t.Errorf("expected defaults, got addr %s", cfg.Server.Addr)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvServerAddr, ":7000")
	t.Setenv(EnvNATSURL, "nats://broker:4222")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected level warn, got %s", cfg.Log.Level)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("expected addr :7000, got %s", cfg.Server.Addr)
	}
	if cfg.NATS.URL != "nats://broker:4222" {
		t.Errorf("expected nats url override, got %s", cfg.NATS.URL)
	}
}

func TestConfig_FileNotFound(t *testing.T) {
	_, err := LoadFile("/nonexistent/path/edinburgh.toml")
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestConfig_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "edinburgh.toml")
	os.WriteFile(configPath, []byte(`[invalid`), 0644)

	_, err := LoadFile(configPath)
	if err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"zero timeout", func(c *Config) { c.Search.Timeout = 0 }, "search.timeout"},
		{"negative limit", func(c *Config) { c.Search.DefaultLimit = -1 }, "search.default_limit"},
		{"bad telemetry protocol", func(c *Config) {
			c.Telemetry.Enabled = true
			c.Telemetry.Protocol = "carrier-pigeon"
		}, "telemetry.protocol"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfig_ToolEnabled(t *testing.T) {
	cfg := New()
	if !cfg.ToolEnabled("calculator") {
		t.Error("empty allow-list should enable every tool")
	}

	cfg.Tools.Enabled = []string{"classify-entropy"}
	if !cfg.ToolEnabled("classify-entropy") {
		t.Error("listed tool should be enabled")
	}
	if cfg.ToolEnabled("calculator") {
		t.Error("unlisted tool should be disabled")
	}
}
