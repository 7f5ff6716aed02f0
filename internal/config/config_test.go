package config

import (
	"testing"
	"time"
)

const sample = `
database:
  host: db.internal
  port: 5433
  user: chef
  password: secret
  database: recipes
rabbitmq:
  host: mq.internal
  user: guest
  password: guest
api:
  base_url: http://recipe-api:3000
  timeout: 3s
http:
  port: 8080
  allowed_origins:
    - http://localhost:5173
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.Host != "db.internal" || cfg.Database.Port != 5433 || cfg.Database.Database != "recipes" {
		t.Fatalf("unexpected database config: %+v", cfg.Database)
	}
	if cfg.RabbitMQ.Port != 5672 {
		t.Fatalf("expected default rabbitmq port, got %d", cfg.RabbitMQ.Port)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %s", cfg.API.Timeout)
	}
	if cfg.API.FetchRetries != 1 {
		t.Fatalf("expected default of one fetch retry, got %d", cfg.API.FetchRetries)
	}
	if cfg.HTTP.Port != 8080 || len(cfg.HTTP.AllowedOrigins) != 1 {
		t.Fatalf("unexpected http config: %+v", cfg.HTTP)
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte("database: [unclosed")); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}

	env := map[string]string{
		"DATABASE_HOST":  "override",
		"DATABASE_PORT":  "6543",
		"RECIPE_API_URL": "http://other:9000",
		"RABBITMQ_USER":  "",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	if err := cfg.applyEnv(lookup); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Host != "override" || cfg.Database.Port != 6543 {
		t.Fatalf("expected database overrides, got %+v", cfg.Database)
	}
	if cfg.API.BaseURL != "http://other:9000" {
		t.Fatalf("expected api url override, got %s", cfg.API.BaseURL)
	}
	if cfg.RabbitMQ.User != "guest" {
		t.Fatalf("expected empty env value to be ignored, got %s", cfg.RabbitMQ.User)
	}

	env["RABBITMQ_PORT"] = "not-a-port"
	if err := cfg.applyEnv(lookup); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestParseFetchRetries(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want int
	}{
		{"unset", "api:\n  base_url: http://recipe-api:3000\n", 1},
		{"disabled", "api:\n  fetch_retries: 0\n", 0},
		{"explicit", "api:\n  fetch_retries: 3\n", 3},
		{"negative", "api:\n  fetch_retries: -2\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.API.FetchRetries != tt.want {
				t.Fatalf("expected %d fetch retries, got %d", tt.want, cfg.API.FetchRetries)
			}
		})
	}
}
