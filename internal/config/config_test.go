package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadWithFileOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
server:
  port: 9090
auth:
  enabled: true
  api_key: secret
http:
  timeout_seconds: 45
  max_retries: 4
  backoff_initial_ms: 100
  backoff_max_ms: 500
scrape:
  user_agent: insights-agent
  hero_limit: 8
  brand_min_chars: 150
  cache_ttl_hours: 12
db:
  dsn: postgres://localhost/insights
  table: records
logging:
  development: false
`
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Server.Port)
	}
	if !cfg.Auth.Enabled || cfg.Auth.APIKey != "secret" {
		t.Fatalf("expected auth enabled with secret key")
	}
	if cfg.Scrape.UserAgent != "insights-agent" || cfg.Scrape.HeroLimit != 8 {
		t.Fatalf("expected scrape overrides to apply: %+v", cfg.Scrape)
	}
	if cfg.DB.DSN != "postgres://localhost/insights" || cfg.DB.Table != "records" {
		t.Fatalf("expected db overrides to apply: %+v", cfg.DB)
	}
	if cfg.Logging.Development {
		t.Fatal("expected logging.development false")
	}
	if got := cfg.RequestTimeout(); got != 45*time.Second {
		t.Fatalf("expected request timeout 45s, got %v", got)
	}
	if got := cfg.CacheTTL(); got != 12*time.Hour {
		t.Fatalf("expected cache ttl 12h, got %v", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Scrape.HeroLimit != 5 || cfg.Scrape.BrandMinChars != 100 {
		t.Fatalf("expected default scrape limits, got %+v", cfg.Scrape)
	}
	if cfg.CacheTTL() != 24*time.Hour {
		t.Fatalf("expected default cache ttl 24h, got %v", cfg.CacheTTL())
	}
	if cfg.DB.DSN != "" {
		t.Fatalf("expected empty default dsn, got %q", cfg.DB.DSN)
	}
}

func TestConfigValidateErrors(t *testing.T) {
	t.Parallel()

	base := Config{
		Server: ServerConfig{Port: 8080},
		HTTP:   HTTPConfig{TimeoutSeconds: 10},
		Scrape: ScrapeConfig{HeroLimit: 5},
	}

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "invalid port",
			cfg: func() Config {
				c := base
				c.Server.Port = 0
				return c
			}(),
			want: "server.port",
		},
		{
			name: "invalid timeout",
			cfg: func() Config {
				c := base
				c.HTTP.TimeoutSeconds = 0
				return c
			}(),
			want: "http.timeout_seconds",
		},
		{
			name: "invalid hero limit",
			cfg: func() Config {
				c := base
				c.Scrape.HeroLimit = 0
				return c
			}(),
			want: "scrape.hero_limit",
		},
		{
			name: "negative cache ttl",
			cfg: func() Config {
				c := base
				c.Scrape.CacheTTLHours = -1
				return c
			}(),
			want: "scrape.cache_ttl_hours",
		},
		{
			name: "auth missing api key",
			cfg: func() Config {
				c := base
				c.Auth.Enabled = true
				return c
			}(),
			want: "auth.api_key",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
